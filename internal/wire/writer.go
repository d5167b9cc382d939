// Package wire serializes the in-memory RSS and ATOM document models to
// their XML wire formats.
package wire

import (
	"encoding/xml"
	"fmt"

	"newsroot/syndicator/internal/atom"
	"newsroot/syndicator/internal/rss"
)

// Writer renders feed documents to XML text.
type Writer struct{}

// NewWriter creates a feed document writer.
func NewWriter() *Writer {
	return &Writer{}
}

// ChannelXML renders an RSS channel document to an XML string, XML
// declaration included.
func (w *Writer) ChannelXML(channel *rss.Channel) (string, error) {
	if channel == nil {
		return "", fmt.Errorf("nil channel document")
	}
	return marshal(toRSSDocument(channel))
}

// FeedXML renders an ATOM feed document to an XML string, XML
// declaration included.
func (w *Writer) FeedXML(feed *atom.Feed) (string, error) {
	if feed == nil {
		return "", fmt.Errorf("nil feed document")
	}
	return marshal(toAtomFeed(feed))
}

func marshal(doc any) (string, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal feed document: %w", err)
	}
	return xml.Header + string(body), nil
}

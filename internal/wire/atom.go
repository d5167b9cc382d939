package wire

import (
	"encoding/xml"
	"time"

	"newsroot/syndicator/internal/atom"
)

const atomNamespace = "http://www.w3.org/2005/Atom"

// atomFeed is the XML wire form of an ATOM 1.0 feed.
type atomFeed struct {
	XMLName     xml.Name       `xml:"feed"`
	Xmlns       string         `xml:"xmlns,attr"`
	MediaXmlns  string         `xml:"xmlns:media,attr,omitempty"`
	ITunesXmlns string         `xml:"xmlns:itunes,attr,omitempty"`
	XMLBase     string         `xml:"xml:base,attr,omitempty"`
	ID          string         `xml:"id"`
	Title       string         `xml:"title"`
	Subtitle    *atomContent   `xml:"subtitle,omitempty"`
	Updated     string         `xml:"updated,omitempty"`
	Links       []atomLink     `xml:"link"`
	Authors     []atomPerson   `xml:"author,omitempty"`
	Contribs    []atomPerson   `xml:"contributor,omitempty"`
	Categories  []atomCategory `xml:"category,omitempty"`
	Generator   *atomGenerator `xml:"generator,omitempty"`
	Logo        string         `xml:"logo,omitempty"`
	Icon        string         `xml:"icon,omitempty"`
	Rights      string         `xml:"rights,omitempty"`
	Entries     []atomEntry    `xml:"entry"`
}

type atomContent struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type atomLink struct {
	Rel      string `xml:"rel,attr,omitempty"`
	Href     string `xml:"href,attr"`
	Title    string `xml:"title,attr,omitempty"`
	Type     string `xml:"type,attr,omitempty"`
	Hreflang string `xml:"hreflang,attr,omitempty"`
	Length   int64  `xml:"length,attr,omitempty"`
}

type atomPerson struct {
	Name  string `xml:"name"`
	Email string `xml:"email,omitempty"`
	URI   string `xml:"uri,omitempty"`
}

type atomCategory struct {
	Term   string `xml:"term,attr"`
	Label  string `xml:"label,attr,omitempty"`
	Scheme string `xml:"scheme,attr,omitempty"`
}

type atomGenerator struct {
	URI     string `xml:"uri,attr,omitempty"`
	Version string `xml:"version,attr,omitempty"`
	Value   string `xml:",chardata"`
}

// atomSource is the minimal feed metadata carried in an entry's source
// element. Entries are deliberately not rendered back into it.
type atomSource struct {
	ID      string `xml:"id,omitempty"`
	Title   string `xml:"title,omitempty"`
	Updated string `xml:"updated,omitempty"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      *atomContent   `xml:"title,omitempty"`
	Updated    string         `xml:"updated,omitempty"`
	Published  string         `xml:"published,omitempty"`
	Summary    *atomContent   `xml:"summary,omitempty"`
	Links      []atomLink     `xml:"link,omitempty"`
	Authors    []atomPerson   `xml:"author,omitempty"`
	Contribs   []atomPerson   `xml:"contributor,omitempty"`
	Rights     string         `xml:"rights,omitempty"`
	Categories []atomCategory `xml:"category,omitempty"`
	Contents   []atomContent  `xml:"content,omitempty"`
	Source     *atomSource    `xml:"source,omitempty"`

	mediaModule
	itunesModule
}

func toAtomFeed(feed *atom.Feed) *atomFeed {
	doc := &atomFeed{
		Xmlns:      atomNamespace,
		XMLBase:    feed.XMLBase,
		ID:         feed.ID,
		Title:      feed.Title,
		Updated:    atomTime(feed.Updated),
		Logo:       feed.Logo,
		Icon:       feed.Icon,
		Rights:     feed.Rights,
		Authors:    toAtomPersons(feed.Authors),
		Contribs:   toAtomPersons(feed.Contributors),
		Categories: toAtomCategories(feed.Categories),
	}
	if feed.Subtitle != nil {
		doc.Subtitle = &atomContent{Type: feed.Subtitle.Type, Value: feed.Subtitle.Value}
	}
	if feed.Generator != nil {
		doc.Generator = &atomGenerator{
			URI:     feed.Generator.URL,
			Version: feed.Generator.Version,
			Value:   feed.Generator.Value,
		}
	}
	doc.Links = toAtomLinks(feed.OtherLinks)
	for i := range feed.Entries {
		entry := toAtomEntry(&feed.Entries[i])
		doc.Entries = append(doc.Entries, entry)
		if !entry.mediaModule.empty() {
			doc.MediaXmlns = mediaNamespace
		}
		if !entry.itunesModule.empty() {
			doc.ITunesXmlns = itunesNamespace
		}
	}
	return doc
}

func toAtomEntry(entry *atom.Entry) atomEntry {
	out := atomEntry{
		ID:           entry.ID,
		Updated:      atomTime(entry.Updated),
		Published:    atomTime(entry.Published),
		Rights:       entry.Rights,
		Authors:      toAtomPersons(entry.Authors),
		Contribs:     toAtomPersons(entry.Contributors),
		Categories:   toAtomCategories(entry.Categories),
		mediaModule:  toMediaModule(entry.Media),
		itunesModule: toITunesModule(entry.ITunes),
	}
	if entry.Title != nil {
		out.Title = &atomContent{Type: entry.Title.Type, Value: entry.Title.Value}
	}
	if entry.Summary != nil {
		out.Summary = &atomContent{Type: entry.Summary.Type, Value: entry.Summary.Value}
	}
	out.Links = append(toAtomLinks(entry.AlternateLinks), toAtomLinks(entry.OtherLinks)...)
	for _, c := range entry.Contents {
		out.Contents = append(out.Contents, atomContent{Type: c.Type, Value: c.Value})
	}
	if entry.Source != nil {
		out.Source = &atomSource{
			ID:      entry.Source.ID,
			Title:   entry.Source.Title,
			Updated: atomTime(entry.Source.Updated),
		}
	}
	return out
}

func toAtomLinks(links []atom.Link) []atomLink {
	if len(links) == 0 {
		return nil
	}
	out := make([]atomLink, 0, len(links))
	for _, l := range links {
		link := atomLink{
			Rel:      l.Rel,
			Href:     l.Href,
			Title:    l.Title,
			Type:     l.Type,
			Hreflang: l.Hreflang,
		}
		if l.Length != nil {
			link.Length = *l.Length
		}
		out = append(out, link)
	}
	return out
}

func toAtomPersons(persons []atom.Person) []atomPerson {
	if len(persons) == 0 {
		return nil
	}
	out := make([]atomPerson, 0, len(persons))
	for _, p := range persons {
		out = append(out, atomPerson{Name: p.Name, Email: p.Email, URI: p.URI})
	}
	return out
}

func toAtomCategories(categories []atom.Category) []atomCategory {
	if len(categories) == 0 {
		return nil
	}
	out := make([]atomCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, atomCategory{Term: c.Term, Label: c.Label, Scheme: c.Scheme})
	}
	return out
}

func atomTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

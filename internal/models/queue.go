package models

// QueueDefinition represents a named, user-owned collection of posts
// syndicated under one feed identity. Instances are created by queue
// management upstream and are read-only to the publishing core.
type QueueDefinition struct {
	ID             int64  `json:"id"`
	Ident          string `json:"ident"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	Generator      string `json:"generator,omitempty"`
	TransportIdent string `json:"transportIdent"`
	Username       string `json:"username"`
	ExportConfig   string `json:"exportConfig,omitempty"`
	Copyright      string `json:"copyright,omitempty"`
	Language       string `json:"language,omitempty"`
	ImageIdent     string `json:"imageIdent,omitempty"`
}

// DisplayTitle resolves the queue's display title, falling back to the
// ident when no title is set.
func (q *QueueDefinition) DisplayTitle() string {
	if q.Title != "" {
		return q.Title
	}
	return q.Ident
}

// DisplayDescription resolves the queue's description, falling back to
// the resolved display title.
func (q *QueueDefinition) DisplayDescription() string {
	if q.Description != "" {
		return q.Description
	}
	return q.DisplayTitle()
}

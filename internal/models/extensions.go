package models

// PostMedia is the Media RSS extension payload carried by a post.
type PostMedia struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ContentURL   string `json:"contentUrl,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Duration     int64  `json:"duration,omitempty"`
	Credit       string `json:"credit,omitempty"`
}

// PostITunes is the iTunes podcast extension payload carried by a post.
type PostITunes struct {
	Author      string `json:"author,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Summary     string `json:"summary,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Duration    int64  `json:"duration,omitempty"`
	Explicit    bool   `json:"explicit,omitempty"`
	EpisodeType string `json:"episodeType,omitempty"`
	Episode     int    `json:"episode,omitempty"`
	Season      int    `json:"season,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Block       bool   `json:"block,omitempty"`
}

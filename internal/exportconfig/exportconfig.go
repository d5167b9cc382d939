// Package exportconfig parses a queue's free-form export-configuration
// blob into typed per-format option blocks. Malformed or missing input
// never fails a publish; it degrades to "no optional configuration".
package exportconfig

import "encoding/json"

// RSSOptions is the "rssConfig" sub-block of a queue's export
// configuration. Nil fields mean the key was absent, which disables the
// corresponding optional channel property.
type RSSOptions struct {
	ManagingEditor         *string `json:"managingEditor"`
	WebMaster              *string `json:"webMaster"`
	Docs                   *string `json:"docs"`
	Rating                 *string `json:"rating"`
	CloudDomain            *string `json:"cloudDomain"`
	CloudPath              *string `json:"cloudPath"`
	CloudPort              *int    `json:"cloudPort"`
	CloudProtocol          *string `json:"cloudProtocol"`
	CloudRegisterProcedure *string `json:"cloudRegisterProcedure"`
	SkipHours              *string `json:"skipHours"`
	SkipDays               *string `json:"skipDays"`
	CategoryValue          *string `json:"categoryValue"`
	CategoryDomain         *string `json:"categoryDomain"`
	TextInputDescription   *string `json:"textInputDescription"`
	TextInputLink          *string `json:"textInputLink"`
	TextInputName          *string `json:"textInputName"`
	TextInputTitle         *string `json:"textInputTitle"`
}

// AtomOptions is the "atomConfig" sub-block of a queue's export
// configuration.
type AtomOptions struct {
	AuthorName       *string `json:"authorName"`
	AuthorEmail      *string `json:"authorEmail"`
	AuthorURI        *string `json:"authorUri"`
	ContributorName  *string `json:"contributorName"`
	ContributorEmail *string `json:"contributorEmail"`
	ContributorURI   *string `json:"contributorUri"`
	CategoryTerm     *string `json:"categoryTerm"`
	CategoryLabel    *string `json:"categoryLabel"`
	CategoryScheme   *string `json:"categoryScheme"`
	XMLBase          *string `json:"xmlBase"`
}

const (
	rssKey  = "rssConfig"
	atomKey = "atomConfig"
)

// ParseRSS extracts the rssConfig sub-block from raw export
// configuration text. Returns nil when the text is empty, unparseable,
// or has no such sub-object.
func ParseRSS(raw string) *RSSOptions {
	sub := subObject(raw, rssKey)
	if sub == nil {
		return nil
	}
	var opts RSSOptions
	if err := json.Unmarshal(sub, &opts); err != nil {
		return nil
	}
	return &opts
}

// ParseAtom extracts the atomConfig sub-block from raw export
// configuration text. Returns nil when the text is empty, unparseable,
// or has no such sub-object.
func ParseAtom(raw string) *AtomOptions {
	sub := subObject(raw, atomKey)
	if sub == nil {
		return nil
	}
	var opts AtomOptions
	if err := json.Unmarshal(sub, &opts); err != nil {
		return nil
	}
	return &opts
}

func subObject(raw, key string) json.RawMessage {
	if raw == "" {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil
	}
	return obj[key]
}

// Str resolves an optional string property, returning "" when absent.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// IntOr resolves an optional numeric property, returning the fallback
// when absent.
func IntOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

package domain

import "strings"

// Document is a searchable block of the detail page. Target is where a hit
// should scroll to: ElementID when set, otherwise the section.
type Document struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Section     string   `json:"section" yaml:"section"`
	ElementID   string   `json:"elementId,omitempty" yaml:"elementId"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	FullText    string   `json:"fullText,omitempty" yaml:"fullText"`
}

func (d Document) Target() string {
	if d.ElementID != "" {
		return d.ElementID
	}
	return d.Section
}

// Matches expects query already lower-cased.
func (d Document) Matches(query string) bool {
	if strings.Contains(strings.ToLower(d.Title), query) ||
		strings.Contains(strings.ToLower(d.Description), query) ||
		strings.Contains(strings.ToLower(d.FullText), query) {
		return true
	}
	for _, k := range d.Keywords {
		if strings.Contains(strings.ToLower(k), query) {
			return true
		}
	}
	return false
}

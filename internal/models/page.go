// Package models defines the domain types shared by the converter stages.
package models

// DefaultWeight is written into every emitted header and marks a page whose
// weight has not been assigned yet.
const DefaultWeight = 99

// IndexFile is the canonical document name inside every content folder.
const IndexFile = "_index.md"

// Document is one converted note, ready to be written.
type Document struct {
	Source string
	Dest   string
	Title  string
	Slug   string
	Weight int
	Tags   []string
	Body   []byte
}

// Header is the metadata block at the top of an emitted document.
type Header struct {
	Title  string   `yaml:"title"`
	Slug   string   `yaml:"slug"`
	Weight int      `yaml:"weight"`
	Tags   []string `yaml:"tags"`
}

// Link is one `[name](url)` occurrence located in a document.
type Link struct {
	Start int
	End   int
	Name  string
	URL   string
}

// CritMarker is a struck-through `~~crit ...~~` annotation located in a document.
type CritMarker struct {
	Start int
	End   int
	Group string
}

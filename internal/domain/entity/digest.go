package entity

import "strings"

// Entry pairs an article link with its generated summary.
type Entry struct {
	Link    string
	Summary string
}

// Digest is the ordered collection of summarized articles produced by a run.
type Digest struct {
	Source  string
	Entries []Entry
}

// NewDigest creates an empty digest for the given source page.
func NewDigest(source string, capacity int) *Digest {
	return &Digest{Source: source, Entries: make([]Entry, 0, capacity)}
}

// Add appends an entry, preserving insertion order.
func (d *Digest) Add(link, summary string) {
	d.Entries = append(d.Entries, Entry{Link: link, Summary: summary})
}

// Len returns the number of entries.
func (d *Digest) Len() int {
	return len(d.Entries)
}

// Markdown renders the digest: an H3 heading per link followed by its
// summary, entries separated by a blank line. An empty digest renders as "".
func (d *Digest) Markdown() string {
	var sb strings.Builder
	for i, e := range d.Entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("### ")
		sb.WriteString(e.Link)
		sb.WriteString("\n\n")
		sb.WriteString(e.Summary)
	}
	return sb.String()
}

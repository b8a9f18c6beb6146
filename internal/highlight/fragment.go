// Package highlight re-locates a search occurrence inside the text fragments of a rendered
// page and marks it, reversibly.
//
// Rendering libraries split page text into fragments (pdf.js text-layer spans, canvas
// runs) whose boundaries follow glyph positioning rather than words, so one match can span
// several fragments. Find walks the fragments once with a two-state scanner and counts
// candidates in reading order; the candidate whose ordinal equals the occurrence index is
// the one the search engine reported.
package highlight

import "html"

// RenderFragment is a contiguous slice of rendered page text.
//
// Text returns a snapshot of the fragment's plain text; it does not change when the
// fragment is highlighted. Highlight marks the byte range [start, end) of Text and
// remembers the content it replaced, Unhighlight restores that content exactly.
type RenderFragment interface {
	Text() string
	Highlight(start, end int)
	Unhighlight()
}

// Marker is the markup wrapped around highlighted text.
type Marker struct {
	Open  string
	Close string
}

// NewMarker returns a marker wrapping text in a span with the given CSS class.
func NewMarker(class string) Marker {
	return Marker{
		Open:  `<span class="` + html.EscapeString(class) + `">`,
		Close: `</span>`,
	}
}

// DefaultMarker matches the classes the viewer styles as a selected search hit.
var DefaultMarker = NewMarker("highlight selected appended")

// TextFragment is an in-memory RenderFragment whose content is a plain string.
type TextFragment struct {
	text    string
	content string
	prior   *string
	marker  Marker
}

// NewTextFragment returns a fragment over text using DefaultMarker.
func NewTextFragment(text string) *TextFragment {
	return NewTextFragmentWithMarker(text, DefaultMarker)
}

// NewTextFragmentWithMarker returns a fragment over text using marker.
func NewTextFragmentWithMarker(text string, marker Marker) *TextFragment {
	return &TextFragment{text: text, content: text, marker: marker}
}

// TextFragments wraps each string in a TextFragment.
func TextFragments(texts ...string) []RenderFragment {
	fragments := make([]RenderFragment, len(texts))
	for i, text := range texts {
		fragments[i] = NewTextFragment(text)
	}
	return fragments
}

func (f *TextFragment) Text() string {
	return f.text
}

// Content returns the current content, including highlight markup if any.
func (f *TextFragment) Content() string {
	return f.content
}

func (f *TextFragment) Highlight(start, end int) {
	if start < 0 || end > len(f.text) || start >= end {
		return
	}
	if f.prior == nil {
		prior := f.content
		f.prior = &prior
	}
	f.content = f.text[:start] + f.marker.Open + f.text[start:end] + f.marker.Close + f.text[end:]
}

func (f *TextFragment) Unhighlight() {
	if f.prior == nil {
		return
	}
	f.content = *f.prior
	f.prior = nil
}

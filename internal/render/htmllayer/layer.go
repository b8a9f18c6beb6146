// Package htmllayer exposes a rendered HTML text layer, such as the one pdf.js draws over
// a page canvas, as highlightable fragments.
package htmllayer

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gcbaptista/go-document-reader/internal/highlight"
)

// Layer is a parsed text layer. Its fragments are the leaf span elements in document order.
type Layer struct {
	doc       *goquery.Document
	fragments []highlight.RenderFragment
}

// Parse reads a text-layer HTML snippet. Highlighted text is wrapped with marker.
func Parse(snippet string, marker highlight.Marker) (*Layer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return nil, fmt.Errorf("failed to parse text layer: %w", err)
	}

	layer := &Layer{doc: doc}
	doc.Find("body span").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		layer.fragments = append(layer.fragments, &spanFragment{
			sel:    s,
			text:   s.Text(),
			marker: marker,
		})
	})
	return layer, nil
}

// Fragments returns the layer's fragments in reading order.
func (l *Layer) Fragments() []highlight.RenderFragment {
	return l.fragments
}

// HTML renders the layer's current markup.
func (l *Layer) HTML() (string, error) {
	return l.doc.Find("body").Html()
}

// spanFragment is a leaf span whose text is replaced by marked-up HTML when highlighted.
type spanFragment struct {
	sel    *goquery.Selection
	text   string
	prior  *string
	marker highlight.Marker
}

func (f *spanFragment) Text() string {
	return f.text
}

func (f *spanFragment) Highlight(start, end int) {
	if start < 0 || end > len(f.text) || start >= end {
		return
	}
	if f.prior == nil {
		prior, err := f.sel.Html()
		if err != nil {
			return
		}
		f.prior = &prior
	}
	f.sel.SetHtml(html.EscapeString(f.text[:start]) +
		f.marker.Open + html.EscapeString(f.text[start:end]) + f.marker.Close +
		html.EscapeString(f.text[end:]))
}

func (f *spanFragment) Unhighlight() {
	if f.prior == nil {
		return
	}
	f.sel.SetHtml(*f.prior)
	f.prior = nil
}

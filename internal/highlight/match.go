package highlight

// Part is the stretch of one fragment covered by a match.
// Start and End are byte offsets into the fragment's Text.
type Part struct {
	Fragment RenderFragment
	Start    int
	End      int
	Text     string
}

// HighlightableMatch is a located occurrence that can be marked and unmarked.
type HighlightableMatch interface {
	// Highlight marks every participating fragment.
	Highlight()
	// Unhighlight restores every participating fragment to its exact prior content.
	Unhighlight()
	// Parts returns the participating fragments in reading order.
	Parts() []Part
}

// singleMatch is an occurrence that fits inside one fragment.
type singleMatch struct {
	part        Part
	highlighted bool
}

func (m *singleMatch) Highlight() {
	if m.highlighted {
		return
	}
	m.part.Fragment.Highlight(m.part.Start, m.part.End)
	m.highlighted = true
}

func (m *singleMatch) Unhighlight() {
	if !m.highlighted {
		return
	}
	m.part.Fragment.Unhighlight()
	m.highlighted = false
}

func (m *singleMatch) Parts() []Part {
	return []Part{m.part}
}

// multiMatch is an occurrence spread over consecutive fragments.
type multiMatch struct {
	parts       []Part
	highlighted bool
}

func (m *multiMatch) Highlight() {
	if m.highlighted {
		return
	}
	for _, p := range m.parts {
		p.Fragment.Highlight(p.Start, p.End)
	}
	m.highlighted = true
}

func (m *multiMatch) Unhighlight() {
	if !m.highlighted {
		return
	}
	for _, p := range m.parts {
		p.Fragment.Unhighlight()
	}
	m.highlighted = false
}

func (m *multiMatch) Parts() []Part {
	parts := make([]Part, len(m.parts))
	copy(parts, m.parts)
	return parts
}

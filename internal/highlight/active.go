package highlight

import "log/slog"

// Active holds the match currently shown to the user. The zero value is ready to use.
// It is not safe for concurrent use; each viewer owns its own.
type Active struct {
	Logger  *slog.Logger
	current HighlightableMatch
}

// Activate unhighlights the current match, if any, and highlights m.
func (a *Active) Activate(m HighlightableMatch) {
	if a.current != nil {
		a.current.Unhighlight()
	}
	a.current = m
	if m != nil {
		m.Highlight()
	}
}

// Clear unhighlights and forgets the current match.
func (a *Active) Clear() {
	a.Activate(nil)
}

// Current returns the active match or nil.
func (a *Active) Current() HighlightableMatch {
	return a.current
}

func (a *Active) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Apply locates occurrence occurrenceIndex of matchText among fragments and makes it the
// active highlight. When the occurrence cannot be found the previous highlight is cleared,
// the miss is logged, and the error is returned for callers that want to surface it.
func Apply(active *Active, matchText string, occurrenceIndex int, fragments []RenderFragment) (HighlightableMatch, error) {
	match, err := Find(matchText, occurrenceIndex, fragments)
	if err != nil {
		active.Clear()
		active.logger().Info("highlight not applied",
			"match_text", matchText,
			"occurrence_index", occurrenceIndex,
			"fragments", len(fragments),
			"error", err)
		return nil, err
	}
	active.Activate(match)
	return match, nil
}

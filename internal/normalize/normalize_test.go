package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"lowercases", "Hello World", "hello world"},
		{"collapses whitespace runs", "hello \n\t  world", "hello world"},
		{"trims", "  hello  ", "hello"},
		{"strips acute accent", "José", "jose"},
		{"strips tilde and diaeresis", "Año Pingüino", "ano pinguino"},
		{"decomposed input", "Jose\u0301", "jose"},
		{"uppercase accented", "ÉCOLE", "ecole"},
		{"non-breaking space is whitespace", "a\u00a0b", "a b"},
		{"punctuation preserved", "Zacatlán, Puebla.", "zacatlan, puebla."},
		{"lone combining mark dropped", "\u0301abc", "abc"},
		{"lone combining mark between spaces", "a \u0301 b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"José  María", "ÁRBOL\tverde", "  x  ", "Zacatlán a Amozoc"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "José María", CollapseWhitespace("  José \n\n María\t"))
	assert.Equal(t, "", CollapseWhitespace("\n"))
}

func TestMapping_SourceSpan(t *testing.T) {
	t.Run("precomposed text is length preserving", func(t *testing.T) {
		m := Map("Señor José")
		assert.Equal(t, "senor jose", m.String())

		s, e := m.SourceSpan(6, 10)
		assert.Equal(t, "José", string(m.Source()[s:e]))
	})

	t.Run("decomposed text includes trailing marks", func(t *testing.T) {
		m := Map("Jose\u0301 Luis")
		assert.Equal(t, "jose luis", m.String())

		s, e := m.SourceSpan(0, 4)
		assert.Equal(t, "Jose\u0301", string(m.Source()[s:e]))

		s, e = m.SourceSpan(5, 9)
		assert.Equal(t, "Luis", string(m.Source()[s:e]))
	})

	t.Run("whitespace runs map to their first rune", func(t *testing.T) {
		m := Map("  ab \n cd ")
		assert.Equal(t, "ab cd", m.String())

		s, e := m.SourceSpan(0, 5)
		assert.Equal(t, "ab \n cd", string(m.Source()[s:e]))
	})

	t.Run("empty range", func(t *testing.T) {
		m := Map("abc")
		s, e := m.SourceSpan(2, 2)
		assert.Equal(t, 0, s)
		assert.Equal(t, 0, e)
	})
}

func TestMapping_ByteSpan(t *testing.T) {
	text := "lán a A"
	m := Map(text)
	assert.Equal(t, "lan a a", m.String())

	bs, be := m.ByteSpan(0, 3)
	assert.Equal(t, "lán", text[bs:be])

	bs, be = m.ByteSpan(4, 7)
	assert.Equal(t, "a A", text[bs:be])
}

func TestIndexRunes(t *testing.T) {
	hay := []rune("aaaa")
	assert.Equal(t, 0, IndexRunes(hay, []rune("aa"), 0))
	assert.Equal(t, 1, IndexRunes(hay, []rune("aa"), 1))
	assert.Equal(t, 2, IndexRunes(hay, []rune("aa"), 2))
	assert.Equal(t, -1, IndexRunes(hay, []rune("aa"), 3))
	assert.Equal(t, -1, IndexRunes(hay, []rune(""), 0))
	assert.Equal(t, -1, IndexRunes([]rune("ab"), []rune("abc"), 0))
}

func TestPrefixSuffixRunes(t *testing.T) {
	assert.True(t, HasPrefixRunes([]rune("zacatlan"), []rune("zac")))
	assert.False(t, HasPrefixRunes([]rune("za"), []rune("zac")))
	assert.True(t, HasSuffixRunes([]rune("zacat"), []rune("cat")))
	assert.True(t, HasSuffixRunes([]rune("zacat"), []rune("")))
	assert.False(t, HasSuffixRunes([]rune("zacat"), []rune("zac")))
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-document-reader/model"
)

func TestDecorate(t *testing.T) {
	docs := []*model.Document{
		{ID: "a", Title: "Atlas"},
		{ID: "b", Title: ""},
		nil,
	}
	occurrences := []model.Occurrence{
		{DocumentID: "a", PageNumber: 1},
		{DocumentID: "b", PageNumber: 2},
		{DocumentID: "missing", PageNumber: 3},
	}

	got := Decorate(occurrences, docs)

	assert.Equal(t, []string{"Atlas", model.UnknownTitle, model.UnknownTitle},
		[]string{got[0].DocumentTitle, got[1].DocumentTitle, got[2].DocumentTitle})
	assert.Empty(t, occurrences[0].DocumentTitle, "input must not be mutated")
	assert.Equal(t, 3, got[2].PageNumber)
}

func TestDecorateEmpty(t *testing.T) {
	assert.Empty(t, Decorate(nil, nil))
}

// Package catalog joins search occurrences with catalog metadata.
package catalog

import "github.com/gcbaptista/go-document-reader/model"

// Decorate returns copies of occurrences with DocumentTitle taken from the matching
// document in docs. Occurrences whose document is not in docs get model.UnknownTitle.
func Decorate(occurrences []model.Occurrence, docs []*model.Document) []model.Occurrence {
	titles := make(map[string]string, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		titles[doc.ID] = doc.Title
	}

	decorated := make([]model.Occurrence, len(occurrences))
	for i, occ := range occurrences {
		title, ok := titles[occ.DocumentID]
		if !ok || title == "" {
			title = model.UnknownTitle
		}
		occ.DocumentTitle = title
		decorated[i] = occ
	}
	return decorated
}

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-document-reader/services"
)

// SearchRequest is the body of POST /search. Without a document ID the whole library
// is searched.
type SearchRequest struct {
	Query      string `json:"query"`
	DocumentID string `json:"document_id,omitempty"`
}

// SearchHandler runs a full-text query and returns every occurrence with its context.
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := ValidateSearchRequest(&req); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	result, err := api.library.Search(c.Request.Context(), services.SearchQuery{
		Query:      req.Query,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		if c.Request.Context().Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			SendSearchError(c, err)
			return
		}
		SendMappedError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

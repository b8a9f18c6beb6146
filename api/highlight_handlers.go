package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-document-reader/services"
)

// HighlightRequest is the body of the highlight endpoint: the page's rendered text layer
// and the occurrence to mark in it.
type HighlightRequest struct {
	TextLayerHTML   string `json:"text_layer_html"`
	MatchText       string `json:"match_text"`
	OccurrenceIndex int    `json:"occurrence_index"`
}

// HighlightHandler marks one occurrence inside a page's text layer. An occurrence that
// cannot be located is not an error: the response has found=false and the layer unchanged.
func (api *API) HighlightHandler(c *gin.Context) {
	documentID := c.Param("documentId")
	if validation := ValidateDocumentID(documentID); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}
	page, validation := ValidatePageNumber(c.Param("page"))
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	var req HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if validation := ValidateHighlightRequest(&req); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	result, err := api.library.Highlight(c.Request.Context(), documentID, page, services.HighlightRequest{
		TextLayerHTML:   req.TextLayerHTML,
		MatchText:       req.MatchText,
		OccurrenceIndex: req.OccurrenceIndex,
	})
	if err != nil {
		SendMappedError(c, "highlight", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

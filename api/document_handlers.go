package api

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-document-reader/services"
)

// ListDocumentsHandler lists the catalog in the order searches walk it.
func (api *API) ListDocumentsHandler(c *gin.Context) {
	docs, err := api.library.ListDocuments(c.Request.Context())
	if err != nil {
		SendMappedError(c, "list documents", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"total":     len(docs),
	})
}

// GetDocumentHandler returns one catalog entry.
func (api *API) GetDocumentHandler(c *gin.Context) {
	documentID := c.Param("documentId")
	if validation := ValidateDocumentID(documentID); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	doc, err := api.library.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		SendMappedError(c, "get document", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetContentHandler streams the stored PDF for inline viewing.
func (api *API) GetContentHandler(c *gin.Context) {
	documentID := c.Param("documentId")
	if validation := ValidateDocumentID(documentID); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	content, doc, err := api.library.OpenDocument(c.Request.Context(), documentID)
	if err != nil {
		SendMappedError(c, "open document", err)
		return
	}
	defer content.Close()

	size := int64(-1)
	if stater, ok := content.(interface{ Stat() (fs.FileInfo, error) }); ok {
		if info, err := stater.Stat(); err == nil {
			size = info.Size()
		}
	}

	filename := doc.OriginalFilename
	if filename == "" {
		filename = doc.Filename
	}
	c.DataFromReader(http.StatusOK, size, "application/pdf", content, map[string]string{
		"Content-Disposition": mime.FormatMediaType("inline", map[string]string{"filename": filename}),
	})
}

// GetDocumentTextHandler returns the extracted text of every page.
func (api *API) GetDocumentTextHandler(c *gin.Context) {
	documentID := c.Param("documentId")
	if validation := ValidateDocumentID(documentID); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	corpus, err := api.library.DocumentText(c.Request.Context(), documentID)
	if err != nil {
		SendMappedError(c, "load document text", err)
		return
	}

	c.JSON(http.StatusOK, corpus)
}

// IngestDocumentHandler accepts a multipart upload and ingests it in the background.
// Form fields: file (required), title, author, published_date.
func (api *API) IngestDocumentHandler(c *gin.Context) {
	upload, header, ok := api.formFile(c)
	if !ok {
		return
	}
	defer upload.Close()

	publishedDate, validation := ParsePublishedDate(c.PostForm("published_date"))
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	jobID, doc, err := api.library.IngestAsync(c.Request.Context(), services.IngestRequest{
		Filename:      header.Filename,
		Title:         c.PostForm("title"),
		Author:        c.PostForm("author"),
		PublishedDate: publishedDate,
		Content:       upload,
	})
	if err != nil {
		SendMappedError(c, "ingest document", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":      "accepted",
		"message":     fmt.Sprintf("Ingestion started for '%s'", header.Filename),
		"job_id":      jobID,
		"document_id": doc.ID,
	})
}

// IdentifyDocumentHandler reports the file type and PDF metadata of an upload without
// storing it.
func (api *API) IdentifyDocumentHandler(c *gin.Context) {
	upload, header, ok := api.formFile(c)
	if !ok {
		return
	}
	defer upload.Close()

	ident, err := api.library.Identify(c.Request.Context(), services.IngestRequest{
		Filename: header.Filename,
		Content:  upload,
	})
	if err != nil {
		SendMappedError(c, "identify document", err)
		return
	}

	c.JSON(http.StatusOK, ident)
}

// DeleteDocumentHandler removes a document in the background.
func (api *API) DeleteDocumentHandler(c *gin.Context) {
	documentID := c.Param("documentId")
	if validation := ValidateDocumentID(documentID); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	jobID, err := api.library.DeleteDocumentAsync(c.Request.Context(), documentID)
	if err != nil {
		SendMappedError(c, "delete document", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":      "accepted",
		"message":     fmt.Sprintf("Deletion started for document '%s'", documentID),
		"job_id":      jobID,
		"document_id": documentID,
	})
}

// formFile opens the "file" form field, sending the error response itself on failure.
func (api *API) formFile(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			SendMappedError(c, "read upload", err)
			return nil, nil, false
		}
		result := &ValidationResult{Valid: true}
		result.AddError("file", "A file upload is required")
		SendValidationError(c, result)
		return nil, nil, false
	}

	upload, err := header.Open()
	if err != nil {
		SendInternalError(c, "open upload", err)
		return nil, nil, false
	}
	return upload, header, true
}

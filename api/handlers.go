package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-document-reader/config"
	"github.com/gcbaptista/go-document-reader/services"
)

// multipartOverhead is allowed on top of the upload limit for form boundaries and fields.
const multipartOverhead = 1 << 20

// API holds dependencies for API handlers, primarily the document library.
type API struct {
	library  services.DocumentLibrary
	settings config.Settings
	logger   *slog.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(library services.DocumentLibrary, settings config.Settings, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		library:  library,
		settings: settings,
		logger:   logger.With("component", "api"),
	}
}

// SetupRoutes defines all the API routes for the document reader.
func SetupRoutes(router *gin.Engine, library services.DocumentLibrary, settings config.Settings, logger *slog.Logger) {
	apiHandler := NewAPI(library, settings, logger)

	router.Use(
		RequestIDMiddleware(),
		RequestLoggerMiddleware(apiHandler.logger),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(settings.MaxUploadBytes+multipartOverhead),
	)

	router.GET("/health", apiHandler.HealthCheckHandler)

	router.POST("/search", apiHandler.SearchHandler)
	router.POST("/identify-document", apiHandler.IdentifyDocumentHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally per document and status
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}

	// Document routes
	docRoutes := router.Group("/documents")
	{
		docRoutes.GET("", apiHandler.ListDocumentsHandler)                    // List the catalog
		docRoutes.POST("", apiHandler.IngestDocumentHandler)                  // Upload and ingest a PDF
		docRoutes.GET("/:documentId", apiHandler.GetDocumentHandler)          // Get document metadata
		docRoutes.DELETE("/:documentId", apiHandler.DeleteDocumentHandler)    // Delete a document
		docRoutes.GET("/:documentId/content", apiHandler.GetContentHandler)   // Stream the stored PDF
		docRoutes.GET("/:documentId/text", apiHandler.GetDocumentTextHandler) // Extracted page texts
		docRoutes.POST("/:documentId/pages/:page/highlight", apiHandler.HighlightHandler)
	}
}

// HealthCheckHandler reports that the server is up.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "go-document-reader",
	})
}

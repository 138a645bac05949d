package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// documentHandler handles HTTP requests for case document uploads.
type documentHandler struct {
	docService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{docService: ds}
}

// registerDocumentRoutes registers the document routes.
func registerDocumentRoutes(rg *gin.RouterGroup, docService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(docService)

	docs := rg.Group("/cases/:id/documents")
	{
		docs.GET("", h.listDocuments)
		docs.POST("", h.uploadDocument)
	}
}

// uploadDocument godoc
// @Summary Upload a case document
// @Description Stores the file with the document storage collaborator and records its metadata against the case.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Case ID"
// @Param file formData file true "Document file"
// @Param shareholder formData string false "Shareholder the document belongs to"
// @Param category formData string false "Document category, e.g. PAN Card"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, logger, err, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.docService.UploadDocument(
		c.Request.Context(),
		c.Param("id"),
		c.PostForm("shareholder"),
		c.PostForm("category"),
		fileHeader.Filename,
		file,
		userID,
	)
	if err != nil {
		respondError(c, logger, err, "Failed to upload document")
		return
	}

	logger.Info("Document uploaded", slog.String("document_id", doc.DocumentID), slog.Int64("size", doc.Size))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List the documents of a case
// @Tags documents
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	docs, err := h.docService.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}

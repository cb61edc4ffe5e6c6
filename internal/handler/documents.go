package handler

import (
	"net/http"
	"time"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/middleware"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentsHandler manages the customer document cabinet. Thin enough that it
// talks to the repository directly.
type DocumentsHandler struct{ repo repository.DocumentRepository }

func NewDocumentsHandler(repo repository.DocumentRepository) *DocumentsHandler {
	return &DocumentsHandler{repo: repo}
}

// Create godoc
// @Summary      Register a customer document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveDocumentRequest true "Document"
// @Success      201  {object} dto.DocumentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/documents [post]
func (h *DocumentsHandler) Create(c *gin.Context) {
	var req dto.SaveDocumentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	uploadedBy := "system"
	if claims := middleware.GetClaims(c); claims != nil {
		uploadedBy = claims.Username
	}

	doc := &model.DocumentEntry{
		CustomerID:   uuid.MustParse(req.CustomerID),
		DocumentType: req.DocumentType,
		FileName:     req.FileName,
		FilePath:     req.FilePath,
		UploadedBy:   uploadedBy,
		UploadedOn:   time.Now(),
	}
	if req.BookingID != nil {
		bookingID := uuid.MustParse(*req.BookingID)
		doc.BookingID = &bookingID
	}

	if err := h.repo.Create(c.Request.Context(), doc); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, documentToResponse(doc))
}

// ListByCustomer godoc
// @Summary      List a customer's documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer UUID"
// @Success      200 {array} dto.DocumentResponse
// @Router       /v1/customers/{id}/documents [get]
func (h *DocumentsHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	docs, err := h.repo.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, *documentToResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Delete godoc
// @Summary      Delete a document entry
// @Tags         documents
// @Security     BearerAuth
// @Param        id path string true "Document UUID"
// @Success      204
// @Router       /v1/documents/{id} [delete]
func (h *DocumentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func documentToResponse(d *model.DocumentEntry) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:           d.ID.String(),
		CustomerID:   d.CustomerID.String(),
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		FilePath:     d.FilePath,
		UploadedBy:   d.UploadedBy,
		UploadedOn:   d.UploadedOn.Format("2006-01-02"),
	}
	if d.BookingID != nil {
		s := d.BookingID.String()
		resp.BookingID = &s
	}
	return resp
}

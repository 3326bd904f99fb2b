package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/file"
	filehttp "github.com/nekogravitycat/boat-rental-backend/internal/file/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/request"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
)

const maxImageBytes = 8 * 1024 * 1024

type BoatHandler struct {
	service     boat.Service
	fileHandler *filehttp.Handler
}

func NewHandler(service boat.Service, fileHandler *filehttp.Handler) *BoatHandler {
	return &BoatHandler{
		service:     service,
		fileHandler: fileHandler,
	}
}

// List returns one catalog page matching the query filters.
func (h *BoatHandler) List(c *gin.Context) {
	var req ListBoatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	filter := req.Filter()
	if err := filter.Normalize(); err != nil {
		response.Error(c, err)
		return
	}

	boats, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BoatResponse, len(boats))
	for i, b := range boats {
		items[i] = NewBoatResponse(b)
	}
	response.Page(c, items, filter.Page, filter.PerPage, total)
}

func (h *BoatHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid boat id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewBoatResponse(b))
}

// Create adds a boat to the catalog.
// Access Control: admin only.
func (h *BoatHandler) Create(c *gin.Context) {
	var req CreateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), req.ServiceRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, NewBoatResponse(b))
}

// Update applies a partial update.
// Access Control: admin only.
func (h *BoatHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid boat id")
		return
	}

	var body UpdateBoatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, body.ServiceRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewBoatResponse(b))
}

// Access Control: admin only.
func (h *BoatHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid boat id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadImage stores a photo and appends its URL to the boat's gallery.
// Access Control: admin only.
func (h *BoatHandler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid boat id")
		return
	}

	// Fail before storing anything when the boat does not exist.
	if _, err := h.service.GetByID(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		MaxSizeBytes: maxImageBytes,
		AllowedTypes: []string{"image/jpeg", "image/png"},
		AfterUpload: func(ctx context.Context, f *file.File) (any, error) {
			b, err := h.service.AddImage(ctx, uri.ID, file.FileURL(f.ID))
			if err != nil {
				return nil, err
			}
			return NewBoatResponse(b), nil
		},
	})
}

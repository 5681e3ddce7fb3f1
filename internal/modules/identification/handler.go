package identification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/baedyl/Loxea-api/internal/middleware"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
)

const maxCSVBytes = 20 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(bo *gin.RouterGroup, policy *middleware.RoutePolicy) {
	bo.GET("/identifications", h.List)
	bo.GET("/identifications/:id", h.Get)
	bo.POST("/identifications", h.Create)
	bo.PUT("/identifications/:id", h.Update)
	bo.DELETE("/identifications/:id", h.Delete)
	bo.POST("/identifications/upload-file", h.Upload)

	base := bo.BasePath()
	policy.Protect(http.MethodGet, base+"/identifications")
	policy.Protect(http.MethodGet, base+"/identifications/:id")
	policy.Protect(http.MethodPost, base+"/identifications")
	policy.Protect(http.MethodPut, base+"/identifications/:id")
	policy.Protect(http.MethodDelete, base+"/identifications/:id")
	policy.Protect(http.MethodPost, base+"/identifications/upload-file")
}

func (h *Handler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "30"))
	if offset < 0 {
		offset = 0
	}
	if size <= 0 || size > 100 {
		size = 30
	}

	resp, err := h.service.List(c.Request.Context(), offset, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req IdentificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req IdentificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload ingests a CSV file sent as the multipart field "file".
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, httperr.New(http.StatusBadRequest, "Missing File",
			"A CSV file must be supplied in the 'file' field"))
		return
	}
	if fh.Size > maxCSVBytes {
		response.Error(c, httperr.New(http.StatusBadRequest, "File Too Large",
			"The uploaded file exceeds the 20MB limit"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	defer f.Close()

	resp, err := h.service.ImportCSV(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, httperr.New(http.StatusBadRequest, "Invalid Identifier", "id must be an integer"))
		return 0, false
	}
	return id, true
}

package assistance

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baedyl/Loxea-api/internal/middleware"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
)

// Uploaded photos are held in memory before the object-store write.
const maxImageBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterClientRoutes mounts the mobile-facing endpoint.
func (h *Handler) RegisterClientRoutes(api *gin.RouterGroup, policy *middleware.RoutePolicy) {
	api.POST("/request-assistance", h.Request)
	policy.Protect(http.MethodPost, api.BasePath()+"/request-assistance")
}

// RegisterBackOfficeRoutes mounts the dispatcher views.
func (h *Handler) RegisterBackOfficeRoutes(bo *gin.RouterGroup, policy *middleware.RoutePolicy) {
	bo.GET("/assistance", h.List)
	bo.GET("/assistance/:id", h.Get)
	bo.PUT("/assistance/:id", h.UpdateStatus)
	policy.Protect(http.MethodGet, bo.BasePath()+"/assistance")
	policy.Protect(http.MethodGet, bo.BasePath()+"/assistance/:id")
	policy.Protect(http.MethodPut, bo.BasePath()+"/assistance/:id")
}

// Request accepts either a JSON body or a multipart form; only the
// multipart form can carry photos.
func (h *Handler) Request(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, httperr.Unauthorized())
		return
	}

	var req RequestAssistanceRequest
	var images []Image

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.BindError(c, err)
			return
		}
		form, err := c.MultipartForm()
		if err != nil {
			response.BindError(c, err)
			return
		}
		for _, fh := range form.File["images"] {
			if fh.Size > maxImageBytes {
				response.Error(c, httperr.New(http.StatusBadRequest, "Image Too Large",
					"Each image must be 10MB or smaller"))
				return
			}
			f, err := fh.Open()
			if err != nil {
				response.Error(c, httperr.ServerError(err))
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				response.Error(c, httperr.ServerError(err))
				return
			}
			images = append(images, Image{
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	record, err := h.service.Request(c.Request.Context(), user, req, images)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"external_reference": record.ExternalReference,
		"incident_type":      record.IncidentType,
		"status":             record.Status,
		"created_at":         record.CreatedAt,
	})
}

func (h *Handler) List(c *gin.Context) {
	offset, size := pagination(c)
	resp, err := h.service.List(c.Request.Context(), c.Query("type"), offset, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, httperr.New(http.StatusBadRequest, "Invalid Identifier", "id must be an integer"))
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, httperr.New(http.StatusBadRequest, "Invalid Identifier", "id must be an integer"))
		return
	}
	var req UpdateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pagination(c *gin.Context) (offset, size int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "30"))
	if offset < 0 {
		offset = 0
	}
	if size <= 0 || size > 100 {
		size = 30
	}
	return offset, size
}

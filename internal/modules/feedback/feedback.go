package feedback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/middleware"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
)

// Store is the slice of the feedback repository the handlers use.
type Store interface {
	Create(ctx context.Context, f *domain.Feedback) error
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)
	List(ctx context.Context, offset, limit int) ([]domain.Feedback, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.FeedbackCategory, error)
	ListCategories(ctx context.Context) ([]domain.FeedbackCategory, error)
}

type SubmitFeedbackRequest struct {
	CategoryID *int64 `json:"category_id"`
	Message    string `json:"message" binding:"required"`
}

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FeedbackResponse struct {
	ID          int64       `json:"id"`
	User        UserSummary `json:"user"`
	CategoryID  *int64      `json:"category_id,omitempty"`
	Message     string      `json:"message"`
	CreatedAt   time.Time   `json:"created_at"`
	LastUpdated time.Time   `json:"last_updated"`
}

type ListResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Handler is thin enough here that no separate service layer is needed.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterClientRoutes(api *gin.RouterGroup, policy *middleware.RoutePolicy) {
	api.POST("/submit-feedback", h.Submit)
	api.GET("/feedback-categories", h.Categories)
	policy.Protect(http.MethodPost, api.BasePath()+"/submit-feedback")
}

func (h *Handler) RegisterBackOfficeRoutes(bo *gin.RouterGroup, policy *middleware.RoutePolicy) {
	bo.GET("/feedbacks", h.List)
	bo.GET("/feedbacks/:id", h.Get)
	policy.Protect(http.MethodGet, bo.BasePath()+"/feedbacks")
	policy.Protect(http.MethodGet, bo.BasePath()+"/feedbacks/:id")
}

func (h *Handler) Submit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, httperr.Unauthorized())
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if req.CategoryID != nil {
		if _, err := h.store.GetCategoryByID(c.Request.Context(), *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, httperr.NotFound("Category Not Found",
					fmt.Sprintf("No feedback category with id %d", *req.CategoryID)))
				return
			}
			response.Error(c, httperr.ServerError(err))
			return
		}
	}

	entry := &domain.Feedback{
		UserID:     user.ID,
		CategoryID: req.CategoryID,
		Message:    req.Message,
	}
	if err := h.store.Create(c.Request.Context(), entry); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         entry.ID,
		"message":    entry.Message,
		"created_at": entry.CreatedAt,
	})
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) List(c *gin.Context) {
	offset, size := pagination(c)
	entries, err := h.store.List(c.Request.Context(), offset, size)
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	out := ListResponse{Feedbacks: make([]FeedbackResponse, 0, len(entries))}
	for i := range entries {
		out.Feedbacks = append(out.Feedbacks, toResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, httperr.New(http.StatusBadRequest, "Invalid Identifier", "id must be an integer"))
		return
	}
	entry, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, httperr.NotFound("Feedback Not Found", fmt.Sprintf("No feedback with id %d", id)))
			return
		}
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusOK, toResponse(entry))
}

func toResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID: f.ID,
		User: UserSummary{
			ID:    f.User.ID,
			Name:  f.User.Name,
			Email: f.User.Email,
		},
		CategoryID:  f.CategoryID,
		Message:     f.Message,
		CreatedAt:   f.CreatedAt,
		LastUpdated: f.LastUpdated,
	}
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

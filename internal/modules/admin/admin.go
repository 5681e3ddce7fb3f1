// Package admin holds the back-office user management surface.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/middleware"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SoftDelete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UserDetailResponse struct {
	ID                int64     `json:"id"`
	ExternalReference string    `json:"external_reference"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	IsAdmin           bool      `json:"is_admin"`
	CreatedAt         time.Time `json:"created_at"`
	LastUpdated       time.Time `json:"last_updated"`
}

type UserListResponse struct {
	Users []UserDetailResponse `json:"users"`
}

type Handler struct {
	users UserStore
}

func NewHandler(users UserStore) *Handler {
	return &Handler{users: users}
}

func (h *Handler) RegisterRoutes(bo *gin.RouterGroup, policy *middleware.RoutePolicy) {
	bo.GET("/health", h.Health)
	bo.GET("/users", h.List)
	bo.GET("/users/:id", h.Get)
	bo.POST("/users", h.Create)
	bo.PUT("/users/:id", h.Update)
	bo.DELETE("/users/:id", h.Delete)

	base := bo.BasePath()
	policy.Protect(http.MethodGet, base+"/users")
	policy.Protect(http.MethodGet, base+"/users/:id")
	policy.Protect(http.MethodPost, base+"/users")
	policy.Protect(http.MethodPut, base+"/users/:id")
	policy.Protect(http.MethodDelete, base+"/users/:id")
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ping": "pong"})
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

	users, err := h.users.List(c.Request.Context(), offset, size)
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	out := UserListResponse{Users: make([]UserDetailResponse, 0, len(users))}
	for i := range users {
		out.Users = append(out.Users, toDetail(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, lookupErr(id, err))
		return
	}
	c.JSON(http.StatusOK, toDetail(user))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	exists, err := h.users.ExistsByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	if exists {
		response.Error(c, httperr.EmailTaken(req.Email))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusCreated, toDetail(user))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, lookupErr(id, err))
		return
	}
	user.Name = req.Name
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusOK, toDetail(user))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, lookupErr(id, err))
		return
	}
	c.Status(http.StatusNoContent)
}

func toDetail(u *domain.User) UserDetailResponse {
	return UserDetailResponse{
		ID:                u.ID,
		ExternalReference: u.ExternalReference,
		Name:              u.Name,
		Email:             u.Email,
		IsAdmin:           u.IsAdmin,
		CreatedAt:         u.CreatedAt,
		LastUpdated:       u.LastUpdated,
	}
}

func lookupErr(id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound("User Not Found", fmt.Sprintf("No user with id %d", id))
	}
	return httperr.ServerError(err)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, httperr.New(http.StatusBadRequest, "Invalid Identifier", "id must be an integer"))
		return 0, false
	}
	return id, true
}

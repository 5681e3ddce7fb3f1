// Package directory serves the reference content shown in the app:
// emergency contact numbers and frequently asked questions.
package directory

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

type ContactStore interface {
	Create(ctx context.Context, c *domain.EmergencyContact) error
	GetByID(ctx context.Context, id int64) (*domain.EmergencyContact, error)
	List(ctx context.Context, offset, limit int) ([]domain.EmergencyContact, error)
	Update(ctx context.Context, c *domain.EmergencyContact) error
	SoftDelete(ctx context.Context, id int64) error
}

type FAQStore interface {
	Create(ctx context.Context, f *domain.FAQ) error
	GetByID(ctx context.Context, id int64) (*domain.FAQ, error)
	List(ctx context.Context, offset, limit int) ([]domain.FAQ, error)
	Update(ctx context.Context, f *domain.FAQ) error
	SoftDelete(ctx context.Context, id int64) error
}

type ContactRequest struct {
	Name   string `json:"name" binding:"required"`
	Number string `json:"number" binding:"required"`
}

type ContactResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Number      string    `json:"number"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

type FAQRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type FAQResponse struct {
	ID          int64     `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

type Handler struct {
	contacts ContactStore
	faqs     FAQStore
}

func NewHandler(contacts ContactStore, faqs FAQStore) *Handler {
	return &Handler{contacts: contacts, faqs: faqs}
}

// RegisterClientRoutes mounts the public read-only views.
func (h *Handler) RegisterClientRoutes(api *gin.RouterGroup) {
	api.GET("/emergency-contacts", h.ListContacts)
	api.GET("/faqs", h.ListFAQs)
}

// RegisterBackOfficeRoutes mounts the management CRUD.
func (h *Handler) RegisterBackOfficeRoutes(bo *gin.RouterGroup, policy *middleware.RoutePolicy) {
	bo.GET("/contacts", h.ListContacts)
	bo.GET("/contacts/:id", h.GetContact)
	bo.POST("/contacts", h.CreateContact)
	bo.PUT("/contacts/:id", h.UpdateContact)
	bo.DELETE("/contacts/:id", h.DeleteContact)

	bo.GET("/faqs", h.ListFAQs)
	bo.GET("/faqs/:id", h.GetFAQ)
	bo.POST("/faqs", h.CreateFAQ)
	bo.PUT("/faqs/:id", h.UpdateFAQ)
	bo.DELETE("/faqs/:id", h.DeleteFAQ)

	base := bo.BasePath()
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/contacts"},
		{http.MethodGet, "/contacts/:id"},
		{http.MethodPost, "/contacts"},
		{http.MethodPut, "/contacts/:id"},
		{http.MethodDelete, "/contacts/:id"},
		{http.MethodGet, "/faqs"},
		{http.MethodGet, "/faqs/:id"},
		{http.MethodPost, "/faqs"},
		{http.MethodPut, "/faqs/:id"},
		{http.MethodDelete, "/faqs/:id"},
	} {
		policy.Protect(route.method, base+route.path)
	}
}

func (h *Handler) ListContacts(c *gin.Context) {
	offset, size := pagination(c)
	contacts, err := h.contacts.List(c.Request.Context(), offset, size)
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, toContactResponse(&contacts[i]))
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

func (h *Handler) GetContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contact, err := h.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, contactLookupErr(id, err))
		return
	}
	c.JSON(http.StatusOK, toContactResponse(contact))
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	contact := &domain.EmergencyContact{Name: req.Name, Number: req.Number}
	if err := h.contacts.Create(c.Request.Context(), contact); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusCreated, toContactResponse(contact))
}

func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	contact, err := h.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, contactLookupErr(id, err))
		return
	}
	contact.Name = req.Name
	contact.Number = req.Number
	if err := h.contacts.Update(c.Request.Context(), contact); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusOK, toContactResponse(contact))
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.contacts.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, contactLookupErr(id, err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListFAQs(c *gin.Context) {
	offset, size := pagination(c)
	faqs, err := h.faqs.List(c.Request.Context(), offset, size)
	if err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	out := make([]FAQResponse, 0, len(faqs))
	for i := range faqs {
		out = append(out, toFAQResponse(&faqs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"faqs": out})
}

func (h *Handler) GetFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	faq, err := h.faqs.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, faqLookupErr(id, err))
		return
	}
	c.JSON(http.StatusOK, toFAQResponse(faq))
}

func (h *Handler) CreateFAQ(c *gin.Context) {
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	faq := &domain.FAQ{Question: req.Question, Answer: req.Answer}
	if err := h.faqs.Create(c.Request.Context(), faq); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusCreated, toFAQResponse(faq))
}

func (h *Handler) UpdateFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	faq, err := h.faqs.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, faqLookupErr(id, err))
		return
	}
	faq.Question = req.Question
	faq.Answer = req.Answer
	if err := h.faqs.Update(c.Request.Context(), faq); err != nil {
		response.Error(c, httperr.ServerError(err))
		return
	}
	c.JSON(http.StatusOK, toFAQResponse(faq))
}

func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.faqs.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, faqLookupErr(id, err))
		return
	}
	c.Status(http.StatusNoContent)
}

func toContactResponse(contact *domain.EmergencyContact) ContactResponse {
	return ContactResponse{
		ID:          contact.ID,
		Name:        contact.Name,
		Number:      contact.Number,
		CreatedAt:   contact.CreatedAt,
		LastUpdated: contact.LastUpdated,
	}
}

func toFAQResponse(faq *domain.FAQ) FAQResponse {
	return FAQResponse{
		ID:          faq.ID,
		Question:    faq.Question,
		Answer:      faq.Answer,
		CreatedAt:   faq.CreatedAt,
		LastUpdated: faq.LastUpdated,
	}
}

func contactLookupErr(id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound("Contact Not Found", fmt.Sprintf("No emergency contact with id %d", id))
	}
	return httperr.ServerError(err)
}

func faqLookupErr(id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound("FAQ Not Found", fmt.Sprintf("No FAQ with id %d", id))
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

package assistance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
)

// Image is an in-memory photo attached to an accident declaration.
type Image struct {
	ContentType string
	Data        []byte
}

// Service creates assistance requests and serves the back-office views
// over them.
type Service struct {
	store   Store
	objects ObjectStore
	log     *zap.Logger
}

func NewService(store Store, objects ObjectStore, log *zap.Logger) *Service {
	return &Service{store: store, objects: objects, log: log}
}

// Request records an incident for the given user and uploads any attached
// photos. A failed upload does not fail the request; the incident itself
// is already persisted and dispatchable.
func (s *Service) Request(ctx context.Context, user *domain.User, req RequestAssistanceRequest, images []Image) (*domain.Assistance, error) {
	incidentType := domain.IncidentType(req.IncidentType)
	if incidentType == "" {
		incidentType = domain.IncidentAssistance
	}

	record := &domain.Assistance{
		UserID:            user.ID,
		GpsLatitude:       strings.TrimSpace(req.Latitude),
		GpsLongitude:      strings.TrimSpace(req.Longitude),
		AddressComplement: req.AddressComplement,
		Comment:           req.Comment,
		IncidentType:      incidentType,
		Status:            domain.AssistancePending,
	}
	if err := s.store.Create(ctx, record); err != nil {
		return nil, httperr.ServerError(err)
	}

	for i, img := range images {
		key := fmt.Sprintf("assistance/%s/%s", record.ExternalReference, strings.ReplaceAll(uuid.NewString(), "-", ""))
		if err := s.objects.UploadBytes(ctx, key, img.ContentType, img.Data); err != nil {
			s.log.Error("incident image upload failed",
				zap.String("assistance_ref", record.ExternalReference),
				zap.Int("image_index", i),
				zap.Error(err),
			)
			continue
		}
		if err := s.store.AddImage(ctx, &domain.AssistanceImage{
			AssistanceID: record.ID,
			ObjectKey:    key,
		}); err != nil {
			return nil, httperr.ServerError(err)
		}
	}

	return record, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*AssistanceResponse, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("Assistance Not Found", fmt.Sprintf("No assistance request with id %d", id))
		}
		return nil, httperr.ServerError(err)
	}
	resp := s.toResponse(ctx, record)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, incidentType string, offset, limit int) (*ListResponse, error) {
	records, err := s.store.List(ctx, domain.IncidentType(incidentType), offset, limit)
	if err != nil {
		return nil, httperr.ServerError(err)
	}

	out := ListResponse{Assistance: make([]AssistanceResponse, 0, len(records))}
	for i := range records {
		out.Assistance = append(out.Assistance, s.toResponse(ctx, &records[i]))
	}
	return &out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*AssistanceResponse, error) {
	if err := s.store.UpdateStatus(ctx, id, domain.AssistanceStatus(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("Assistance Not Found", fmt.Sprintf("No assistance request with id %d", id))
		}
		return nil, httperr.ServerError(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) toResponse(ctx context.Context, record *domain.Assistance) AssistanceResponse {
	resp := AssistanceResponse{
		ID:                record.ID,
		ExternalReference: record.ExternalReference,
		GpsLatitude:       record.GpsLatitude,
		GpsLongitude:      record.GpsLongitude,
		AddressComplement: record.AddressComplement,
		Comment:           record.Comment,
		IncidentType:      record.IncidentType,
		Status:            record.Status,
		Images:            make([]ImageResponse, 0, len(record.Images)),
		CreatedAt:         record.CreatedAt,
		LastUpdated:       record.LastUpdated,
	}
	if record.User.ID != 0 {
		resp.User = &UserSummary{
			ID:                record.User.ID,
			ExternalReference: record.User.ExternalReference,
			Name:              record.User.Name,
			Email:             record.User.Email,
		}
	}
	for _, img := range record.Images {
		url, err := s.objects.SignedURL(ctx, img.ObjectKey)
		if err != nil {
			s.log.Warn("sign image url failed", zap.String("key", img.ObjectKey), zap.Error(err))
			continue
		}
		resp.Images = append(resp.Images, ImageResponse{ImageURL: url})
	}
	return resp
}

package assistance

import (
	"context"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// Store is the slice of the assistance repository the service uses.
type Store interface {
	Create(ctx context.Context, a *domain.Assistance) error
	GetByID(ctx context.Context, id int64) (*domain.Assistance, error)
	List(ctx context.Context, incidentType domain.IncidentType, offset, limit int) ([]domain.Assistance, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AssistanceStatus) error
	AddImage(ctx context.Context, img *domain.AssistanceImage) error
}

// ObjectStore saves incident photos and signs read URLs for them.
type ObjectStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) error
	SignedURL(ctx context.Context, key string) (string, error)
}

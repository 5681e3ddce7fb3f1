package identification

import (
	"context"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// Store is the slice of the identification repository the service uses.
type Store interface {
	GetByID(ctx context.Context, id int64) (*domain.Identification, error)
	List(ctx context.Context, offset, limit int) ([]domain.Identification, error)
	Create(ctx context.Context, ident *domain.Identification) error
	Update(ctx context.Context, ident *domain.Identification) error
	SoftDelete(ctx context.Context, id int64) error
	BulkCreate(ctx context.Context, idents []domain.Identification) (int, error)
}

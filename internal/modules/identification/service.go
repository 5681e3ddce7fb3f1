package identification

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/validator"
)

var expectedHeaders = []string{"chassis_number", "plate_number", "type"}

type csvRow struct {
	ChassisNumber string `validate:"required"`
	PlateNumber   string `validate:"required"`
	VehicleType   string `validate:"required"`
}

// Service manages the vehicle identification registry, including the CSV
// bulk import the fleet operator sends.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id int64) (*IdentificationResponse, error) {
	ident, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(id, err)
	}
	resp := toResponse(ident)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) (*ListResponse, error) {
	idents, err := s.store.List(ctx, offset, limit)
	if err != nil {
		return nil, httperr.ServerError(err)
	}
	out := ListResponse{Identifications: make([]IdentificationResponse, 0, len(idents))}
	for i := range idents {
		out.Identifications = append(out.Identifications, toResponse(&idents[i]))
	}
	return &out, nil
}

func (s *Service) Create(ctx context.Context, req IdentificationRequest) (*IdentificationResponse, error) {
	ident := &domain.Identification{
		ChassisNumber: strings.TrimSpace(req.ChassisNumber),
		PlateNumber:   strings.TrimSpace(req.PlateNumber),
		VehicleType:   req.Type,
	}
	if err := s.store.Create(ctx, ident); err != nil {
		return nil, saveErr(err)
	}
	resp := toResponse(ident)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, req IdentificationRequest) (*IdentificationResponse, error) {
	ident, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(id, err)
	}
	ident.ChassisNumber = strings.TrimSpace(req.ChassisNumber)
	ident.PlateNumber = strings.TrimSpace(req.PlateNumber)
	ident.VehicleType = req.Type
	if err := s.store.Update(ctx, ident); err != nil {
		return nil, saveErr(err)
	}
	resp := toResponse(ident)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return lookupErr(id, err)
	}
	return nil
}

// ImportCSV reads a headered CSV stream and inserts every row whose
// chassis/plate pair is not already in the registry. The header set must
// be exactly {chassis_number, plate_number, type}, in any order.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*UploadResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, invalidHeaders()
	}
	cols, ok := headerIndex(header)
	if !ok {
		return nil, invalidHeaders()
	}

	var records []domain.Identification
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Bad quoting or a wrong field count is the caller's file, not
			// a server fault.
			return nil, httperr.New(http.StatusBadRequest, "Failed to process file",
				fmt.Sprintf("Row %d is malformed: %v", len(records)+2, err))
		}
		parsed := csvRow{
			ChassisNumber: strings.TrimSpace(row[cols["chassis_number"]]),
			PlateNumber:   strings.TrimSpace(row[cols["plate_number"]]),
			VehicleType:   strings.TrimSpace(row[cols["type"]]),
		}
		if violations := validator.Check(parsed); violations != nil {
			return nil, httperr.New(http.StatusBadRequest, "Failed to process file",
				fmt.Sprintf("Row %d has missing values: %v", len(records)+2, violations))
		}
		records = append(records, domain.Identification{
			ChassisNumber: parsed.ChassisNumber,
			PlateNumber:   parsed.PlateNumber,
			VehicleType:   parsed.VehicleType,
		})
	}

	inserted, err := s.store.BulkCreate(ctx, records)
	if err != nil {
		return nil, httperr.ServerError(err)
	}
	return &UploadResponse{ProcessedRecords: inserted}, nil
}

func headerIndex(header []string) (map[string]int, bool) {
	if len(header) != len(expectedHeaders) {
		return nil, false
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, want := range expectedHeaders {
		if _, ok := cols[want]; !ok {
			return nil, false
		}
	}
	return cols, true
}

func invalidHeaders() error {
	return httperr.New(http.StatusBadRequest, "Invalid headers",
		fmt.Sprintf("The headers in the file are invalid: Expected headers: %v", expectedHeaders))
}

func toResponse(ident *domain.Identification) IdentificationResponse {
	return IdentificationResponse{
		ID:            ident.ID,
		ChassisNumber: ident.ChassisNumber,
		PlateNumber:   ident.PlateNumber,
		Type:          ident.VehicleType,
		CreatedAt:     ident.CreatedAt,
		LastUpdated:   ident.LastUpdated,
	}
}

func lookupErr(id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound("Identification Not Found", fmt.Sprintf("No identification record with id %d", id))
	}
	return httperr.ServerError(err)
}

func saveErr(err error) error {
	if errors.Is(err, domain.ErrDuplicateIdentification) {
		return httperr.New(http.StatusBadRequest, "Duplicate Identification",
			"A record with the same chassis number or plate number already exists.")
	}
	return httperr.ServerError(err)
}

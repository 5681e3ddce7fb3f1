package identification

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/baedyl/Loxea-api/internal/domain"
	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*domain.Identification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identification), args.Error(1)
}

func (m *mockStore) List(ctx context.Context, offset, limit int) ([]domain.Identification, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]domain.Identification), args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, ident *domain.Identification) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *mockStore) Update(ctx context.Context, ident *domain.Identification) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *mockStore) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) BulkCreate(ctx context.Context, idents []domain.Identification) (int, error) {
	args := m.Called(ctx, idents)
	return args.Int(0), args.Error(1)
}

func TestImportCSV_Success(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	csvBody := "chassis_number,plate_number,type\n" +
		"VF1RFB00123456,AB-123-CD,sedan\n" +
		"VF1RFB00654321,EF-456-GH,suv\n"

	store.On("BulkCreate", mock.Anything, mock.MatchedBy(func(records []domain.Identification) bool {
		return len(records) == 2 &&
			records[0].ChassisNumber == "VF1RFB00123456" &&
			records[1].VehicleType == "suv"
	})).Return(2, nil)

	resp, err := svc.ImportCSV(context.Background(), strings.NewReader(csvBody))

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.ProcessedRecords)
	store.AssertExpectations(t)
}

func TestImportCSV_HeadersInAnyOrder(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	csvBody := "type,chassis_number,plate_number\n" +
		"sedan,VF1RFB00123456,AB-123-CD\n"

	store.On("BulkCreate", mock.Anything, mock.MatchedBy(func(records []domain.Identification) bool {
		return len(records) == 1 &&
			records[0].ChassisNumber == "VF1RFB00123456" &&
			records[0].PlateNumber == "AB-123-CD" &&
			records[0].VehicleType == "sedan"
	})).Return(1, nil)

	resp, err := svc.ImportCSV(context.Background(), strings.NewReader(csvBody))

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedRecords)
}

func TestImportCSV_InvalidHeaders(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	for _, body := range []string{
		"",
		"chassis_number,plate_number\nVF1,AB\n",
		"chassis_number,plate_number,color\nVF1,AB,red\n",
		"chassis_number,plate_number,type,extra\nVF1,AB,sedan,x\n",
	} {
		_, err := svc.ImportCSV(context.Background(), strings.NewReader(body))

		var httpErr *httperr.Error
		assert.ErrorAs(t, err, &httpErr, "body %q", body)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, "Invalid headers", httpErr.Title)
	}
	store.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestImportCSV_RowWithMissingValues(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	csvBody := "chassis_number,plate_number,type\n" +
		",AB-123-CD,sedan\n"

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(csvBody))

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Failed to process file", httpErr.Title)
	store.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestImportCSV_MalformedRow(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	// Wrong field count and a broken quote are both the caller's file to
	// fix, so neither may surface as a server error.
	for _, body := range []string{
		"chassis_number,plate_number,type\nCH1,PL1\n",
		"chassis_number,plate_number,type\nCH1,\"PL1,sedan\n",
	} {
		_, err := svc.ImportCSV(context.Background(), strings.NewReader(body))

		var httpErr *httperr.Error
		assert.ErrorAs(t, err, &httpErr, "body %q", body)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, "Failed to process file", httpErr.Title)
	}
	store.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestImportCSV_SkippedDuplicatesReflectedInCount(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	csvBody := "chassis_number,plate_number,type\n" +
		"CH1,PL1,sedan\n" +
		"CH2,PL2,suv\n"

	// One of the two rows already exists downstream.
	store.On("BulkCreate", mock.Anything, mock.Anything).Return(1, nil)

	resp, err := svc.ImportCSV(context.Background(), strings.NewReader(csvBody))

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedRecords)
}

func TestCreate_Duplicate(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store)

	store.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateIdentification)

	_, err := svc.Create(context.Background(), IdentificationRequest{
		ChassisNumber: "CH1", PlateNumber: "PL1", Type: "sedan",
	})

	var httpErr *httperr.Error
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Duplicate Identification", httpErr.Title)
}

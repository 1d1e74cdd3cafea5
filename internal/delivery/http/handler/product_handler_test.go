package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fonda-catalogo/internal/delivery/dto"
	"fonda-catalogo/internal/domain/repository"
	"fonda-catalogo/internal/usecase"
	"fonda-catalogo/internal/validation"
	"fonda-catalogo/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductUsecase is a mock implementation of usecase.ProductUsecase.
type MockProductUsecase struct {
	mock.Mock
}

func (m *MockProductUsecase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) Create(ctx context.Context, payload dto.ProductPayload) (int64, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductUsecase) Update(ctx context.Context, id int64, payload dto.ProductPayload) (bool, error) {
	args := m.Called(ctx, id, payload)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductUsecase) Stats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductStatsResponse), args.Error(1)
}

func newTestHandler(mockUsecase *MockProductUsecase) *ProductHandler {
	return NewProductHandler(mockUsecase, validator.NewValidator())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestProductHandler_List(t *testing.T) {
	t.Run("Returns the catalog", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("List", mock.Anything).Return([]dto.ProductResponse{
			{ID: 2, Name: "B", Price: decimal.RequireFromString("2.00"), CreatedAt: time.Now()},
			{ID: 1, Name: "A", Price: decimal.RequireFromString("1.00"), CreatedAt: time.Now()},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()
		newTestHandler(mockUsecase).List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["data"], 2)
	})

	t.Run("Store failure maps to 500", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()
		newTestHandler(mockUsecase).List(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, decodeBody(t, rec)["success"])
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("GetByID", mock.Anything, int64(7)).Return(&dto.ProductResponse{ID: 7, Name: "Empanada"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/7", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "7"})
		rec := httptest.NewRecorder()
		newTestHandler(mockUsecase).GetByID(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("GetByID", mock.Anything, int64(99)).Return(nil, usecase.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		newTestHandler(mockUsecase).GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "product not found", decodeBody(t, rec)["message"])
	})
}

func postAction(t *testing.T, h *ProductHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Actions(rec, req)
	return rec
}

func TestProductHandler_Actions(t *testing.T) {
	t.Run("Create returns the new id", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"create","data":{"name":"Empanada","price":1500}}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(42), body["id"])
	})

	t.Run("Create validation failure carries every message", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Create", mock.Anything, mock.Anything).
			Return(int64(0), &validation.ValidationError{Messages: []string{"name is required", "price must be numeric"}})

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"create","data":{"price":"abc"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "invalid data: name is required, price must be numeric", body["message"])
	})

	t.Run("Update reflects the affected row count", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Update", mock.Anything, int64(5), mock.Anything).Return(true, nil)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"update","id":5,"data":{"price":9.999}}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])
	})

	t.Run("Update of a missing product maps to 404", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Update", mock.Anything, int64(99), mock.Anything).Return(false, usecase.ErrProductNotFound)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"update","id":99,"data":{"price":1}}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Update with nothing to change maps to 400", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Update", mock.Anything, int64(5), mock.Anything).Return(false, repository.ErrNoFieldsToUpdate)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"update","id":5,"data":{}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no fields to update", decodeBody(t, rec)["message"])
	})

	t.Run("Delete succeeds", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Delete", mock.Anything, int64(5)).Return(true, nil)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"delete","id":5}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])
	})

	t.Run("Delete of a missing product maps to 404", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)
		mockUsecase.On("Delete", mock.Anything, int64(99)).Return(false, usecase.ErrProductNotFound)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"delete","id":99}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Unknown action is rejected", func(t *testing.T) {
		mockUsecase := new(MockProductUsecase)

		rec := postAction(t, newTestHandler(mockUsecase), `{"action":"replace","id":5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "action not recognized", decodeBody(t, rec)["message"])
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Missing action is rejected", func(t *testing.T) {
		rec := postAction(t, newTestHandler(new(MockProductUsecase)), `{"id":5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed body is rejected", func(t *testing.T) {
		rec := postAction(t, newTestHandler(new(MockProductUsecase)), `{"action":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decodeBody(t, rec)["message"])
	})
}

func TestProductHandler_Stats(t *testing.T) {
	mockUsecase := new(MockProductUsecase)
	mockUsecase.On("Stats", mock.Anything).Return(&dto.ProductStatsResponse{
		TotalProducts: 2,
		AveragePrice:  decimal.RequireFromString("5.25"),
		MinPrice:      decimal.RequireFromString("0.50"),
		MaxPrice:      decimal.RequireFromString("10.00"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/stats", nil)
	rec := httptest.NewRecorder()
	newTestHandler(mockUsecase).Stats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_products"])
}

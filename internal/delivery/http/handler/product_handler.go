package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fonda-catalogo/internal/delivery/dto"
	"fonda-catalogo/internal/domain/repository"
	"fonda-catalogo/internal/usecase"
	"fonda-catalogo/internal/validation"
	"fonda-catalogo/pkg/response"
	"fonda-catalogo/pkg/validator"

	"github.com/gorilla/mux"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

// List handles GET /products and returns all active products, newest first.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "failed to list products")
		return
	}

	response.Success(w, http.StatusOK, products)
}

// GetByID handles GET /products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid product id")
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "product not found")
		default:
			response.InternalServerError(w, "failed to get product")
		}
		return
	}

	response.Success(w, http.StatusOK, product)
}

// Stats handles GET /products/stats.
func (h *ProductHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.productUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "failed to get product stats")
		return
	}

	response.Success(w, http.StatusOK, stats)
}

// Actions handles POST /products, dispatching on the action field of the
// request body: create, update or delete.
func (h *ProductHandler) Actions(w http.ResponseWriter, r *http.Request) {
	var req dto.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		for _, msg := range h.validator.FormatValidationErrors(err) {
			response.BadRequest(w, msg)
			return
		}
		response.BadRequest(w, "invalid request")
		return
	}

	switch req.Action {
	case "create":
		h.create(w, r, req)
	case "update":
		h.update(w, r, req)
	case "delete":
		h.delete(w, r, req)
	default:
		response.BadRequest(w, "action not recognized")
	}
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request, req dto.ActionRequest) {
	id, err := h.productUsecase.Create(r.Context(), req.Data)
	if err != nil {
		var validationErr *validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			response.BadRequest(w, validationErr.Error())
		default:
			response.InternalServerError(w, "failed to create product")
		}
		return
	}

	response.JSON(w, http.StatusCreated, dto.CreateResult{Success: true, ID: id})
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, req dto.ActionRequest) {
	updated, err := h.productUsecase.Update(r.Context(), req.ID, req.Data)
	if err != nil {
		var validationErr *validation.ValidationError
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "product not found")
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			response.BadRequest(w, "no fields to update")
		case errors.As(err, &validationErr):
			response.BadRequest(w, validationErr.Error())
		default:
			response.InternalServerError(w, "failed to update product")
		}
		return
	}

	response.JSON(w, http.StatusOK, dto.ActionResult{Success: updated})
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, req dto.ActionRequest) {
	deleted, err := h.productUsecase.Delete(r.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "product not found")
		default:
			response.InternalServerError(w, "failed to delete product")
		}
		return
	}

	response.JSON(w, http.StatusOK, dto.ActionResult{Success: deleted})
}

package handler

import (
	"encoding/json"
	"net/http"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/middleware"
	"orderdesk-be/internal/product"
	"orderdesk-be/internal/user"

	"github.com/google/uuid"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req product.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.Validationf("invalid request body"))
		return
	}

	resp, err := h.products.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/products/"+resp.ID.String())
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	// Admins also see disabled products.
	includeDisabled := false
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		includeDisabled = claims.Role == user.RoleAdmin
	}

	resp, err := h.products.GetAll(r.Context(), includeDisabled)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, apperr.Validationf("invalid product id"))
		return
	}

	resp, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, apperr.Validationf("invalid product id"))
		return
	}

	var req product.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.Validationf("invalid request body"))
		return
	}

	resp, err := h.products.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) Disable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, apperr.Validationf("invalid product id"))
		return
	}

	if err := h.products.Disable(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/order"

	"github.com/google/uuid"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req order.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.Validationf("invalid request body"))
		return
	}

	resp, err := h.orders.PlaceOrder(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/orders/"+resp.ID.String())
	writeJSON(w, http.StatusCreated, resp)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseQueryFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.orders.GetOrders(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, apperr.Validationf("invalid order id"))
		return
	}

	resp, err := h.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateStatusRequest struct {
	NewStatus string `json:"newStatus"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, apperr.Validationf("invalid order id"))
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.Validationf("invalid request body"))
		return
	}

	resp, err := h.orders.UpdateStatus(r.Context(), id, req.NewStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseQueryFilter(r *http.Request) (order.QueryFilter, error) {
	filter := order.QueryFilter{PageNumber: 1, PageSize: 10}
	q := r.URL.Query()

	if text := q.Get("status"); text != "" {
		status, err := order.ParseStatus(text)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if text := q.Get("customerId"); text != "" {
		id, err := uuid.Parse(text)
		if err != nil {
			return filter, apperr.Validationf("invalid customerId filter")
		}
		filter.CustomerID = &id
	}

	if text := q.Get("pageNumber"); text != "" {
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return filter, apperr.Validationf("pageNumber must be a positive integer")
		}
		filter.PageNumber = n
	}

	if text := q.Get("pageSize"); text != "" {
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return filter, apperr.Validationf("pageSize must be a positive integer")
		}
		filter.PageSize = n
	}

	return filter, nil
}

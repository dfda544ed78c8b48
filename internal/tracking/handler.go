package tracking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pizzeria-backend/internal/domain"
	"pizzeria-backend/internal/orders"
)

// Handler exposes the read-only order views for customers and cashiers.
type Handler struct {
	svc *orders.Service
	log *zap.Logger
}

func NewHandler(svc *orders.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/orders/{id}", h.get)
	r.Get("/orders/{id}/status", h.status)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	order, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	order, ok := h.load(w, r)
	if !ok {
		return
	}
	resp := map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	}
	if order.Invoice != nil {
		resp["invoice_status"] = order.Invoice.Status
	}
	if order.Delivery != nil {
		resp["delivery_status"] = order.Delivery.Status
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return nil, false
	}
	order, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return nil, false
		}
		h.log.Error("order_load_failed", zap.Int("order_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return nil, false
	}
	return order, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

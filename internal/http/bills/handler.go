package bills

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/catalog"
	"github.com/okvann/billdesk/internal/http/auth"
)

type Handler struct {
	svc     *billing.Service
	catalog *catalog.Service
}

func NewHandler(svc *billing.Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{svc: svc, catalog: catalogSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var record billing.TransactionRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The bill belongs to whoever the token says, not whoever the
	// payload claims.
	staffID := auth.StaffID(r.Context())
	if record.StaffID != 0 && record.StaffID != staffID {
		http.Error(w, "staffId does not match the authenticated staff", http.StatusBadRequest)
		return
	}

	record.StaffID = staffID

	bill, err := h.svc.Record(r.Context(), &record)
	if err != nil {
		var invalid *billing.InvalidRecordError
		if errors.As(err, &invalid) {
			http.Error(w, invalid.Reason, http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	// Stock deduction is best-effort; a failed deduction never undoes a
	// recorded sale.
	for _, item := range bill.Items {
		if err := h.catalog.Deduct(r.Context(), item.ProductID, item.Quantity); err != nil {
			slog.Warn("stock deduction failed", "product_id", item.ProductID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(bill); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if bills == nil {
		bills = []billing.Bill{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(bills); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/catalog"
	"github.com/jcmexdev/storefront/internal/checkout"
	"github.com/jcmexdev/storefront/internal/coordinator/auditlog"
	"github.com/jcmexdev/storefront/internal/navigation"
	"github.com/jcmexdev/storefront/internal/notifier"
	"github.com/jcmexdev/storefront/internal/pkg/constants"
	"github.com/jcmexdev/storefront/internal/session"
	"github.com/jcmexdev/storefront/internal/shell"
)

// Handler exposes the storefront session operations over HTTP.
type Handler struct {
	catalog  *catalog.Catalog
	sessions *session.Registry
	// audit is nil when the submission log is disabled.
	audit auditlog.Repository
}

func NewHandler(cat *catalog.Catalog, sessions *session.Registry, audit auditlog.Repository) *Handler {
	return &Handler{catalog: cat, sessions: sessions, audit: audit}
}

// ListCatalog returns every item in display order.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.Items()
	out := make([]CatalogItemResponse, len(items))
	for i, it := range items {
		out[i] = CatalogItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: cart.Money(it.UnitPrice),
			ImageRef:  it.ImageRef,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	writeJSON(w, http.StatusOK, mapView(s.View()))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	s := h.session(w, r)
	view, err := s.AddToCart(req.ID)
	if err != nil {
		writeShellError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapView(view))
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity_required", "")
		return
	}

	s := h.session(w, r)
	writeJSON(w, http.StatusOK, mapView(s.SetQuantity(id, *req.Quantity)))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	s := h.session(w, r)
	writeJSON(w, http.StatusOK, mapView(s.SetQuantity(id, 0)))
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	screen, ok := navigation.ParseScreen(req.Screen)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_screen", req.Screen)
		return
	}

	s := h.session(w, r)
	writeJSON(w, http.StatusOK, mapView(s.Navigate(screen)))
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	writeJSON(w, http.StatusOK, mapView(s.Back()))
}

func (h *Handler) UpdateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutDraftDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	s := h.session(w, r)
	view := s.UpdateDraft(checkout.Form{
		FullName:      req.FullName,
		ContactInfo:   req.ContactInfo,
		PaymentMethod: req.PaymentMethod,
	})
	writeJSON(w, http.StatusOK, mapView(view))
}

// Submit sends the order and returns the receipt together with the new view.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	// Use comma-ok idiom to safely extract typed context values.
	idempKey, _ := r.Context().Value(constants.ContextKeyIdempotencyKey).(string)
	requestID, _ := r.Context().Value(constants.ContextKeyRequestID).(string)

	s := h.session(w, r)
	slog.InfoContext(r.Context(), "submitting order", "request_id", requestID)

	receipt, err := s.Submit(r.Context(), idempKey)
	if err != nil {
		writeShellError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{
		SubmissionID: receipt.SubmissionID,
		Total:        cart.Money(receipt.Total),
		View:         mapView(s.View()),
	})
}

// GetSubmission returns the audit trail of one submission, oldest first.
func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.audit == nil {
		writeError(w, http.StatusNotFound, "submission_not_found", id)
		return
	}

	entries, err := h.audit.History(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read submission history", "submission_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "submission_not_found", id)
		return
	}

	out := SubmissionHistoryResponse{
		SubmissionID: id,
		Entries:      make([]SubmissionEntryResponse, len(entries)),
	}
	for i, e := range entries {
		out.Entries[i] = SubmissionEntryResponse{
			Status:    string(e.Status),
			Step:      e.Step,
			Errors:    rawErrors(e.Errors),
			TraceID:   e.TraceID,
			SpanID:    e.SpanID,
			UpdatedAt: e.UpdatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// session resolves the caller's shell and echoes its id.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *shell.Shell {
	requested, _ := r.Context().Value(constants.ContextKeySessionID).(string)
	id, s := h.sessions.Resolve(requested)
	w.Header().Set(constants.HeaderXSessionID, id)
	return s
}

func itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item_id", chi.URLParam(r, "id"))
		return 0, false
	}
	return id, true
}

// rawErrors passes the stored JSON array through, or an empty one when the
// column is not valid JSON.
func rawErrors(s string) json.RawMessage {
	if !json.Valid([]byte(s)) {
		return json.RawMessage("[]")
	}
	return json.RawMessage(s)
}

func mapView(v shell.View) ViewResponse {
	lines := make([]CartLineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = CartLineResponse{
			ID:        l.ID,
			Name:      l.Name,
			ImageRef:  l.ImageRef,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
		}
	}
	return ViewResponse{
		Screen:    string(v.Screen),
		Title:     v.Title,
		CanGoBack: v.CanGoBack,
		Lines:     lines,
		ItemCount: v.ItemCount,
		Subtotal:  v.Subtotal,
		Taxes:     v.Taxes,
		Total:     v.Total,
		Draft: CheckoutDraftDTO{
			FullName:      v.Draft.FullName,
			ContactInfo:   v.Draft.ContactInfo,
			PaymentMethod: v.Draft.PaymentMethod,
		},
		Busy:   v.Busy,
		Notice: v.Notice,
	}
}

// writeShellError maps the shell error taxonomy onto status codes.
func writeShellError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_failed",
			Message: verr.Message,
			Field:   string(verr.Field),
		})
	case notifier.IsNotification(err):
		writeError(w, http.StatusBadGateway, "notification_failed", shell.NoticeSendFailed)
	case errors.Is(err, shell.ErrReservationUnavailable):
		writeError(w, http.StatusServiceUnavailable, "reservation_unavailable", shell.NoticeSendFailed)
	case errors.Is(err, shell.ErrBusy):
		writeError(w, http.StatusConflict, "submission_in_progress", err.Error())
	case errors.Is(err, shell.ErrNotAtCheckout):
		writeError(w, http.StatusConflict, "not_at_checkout", err.Error())
	case errors.Is(err, shell.ErrDuplicateSubmission):
		writeError(w, http.StatusConflict, "duplicate_submission", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "item_not_found", err.Error())
	default:
		slog.ErrorContext(r.Context(), "unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

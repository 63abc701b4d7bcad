package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jerrymart/quickmart/internal/core/domain"
	"github.com/jerrymart/quickmart/internal/core/service"
)

type HTTPHandler struct {
	checkout *service.CheckoutService
}

func NewHTTPHandler(checkout *service.CheckoutService) *HTTPHandler {
	return &HTTPHandler{checkout: checkout}
}

// Register attaches every route to the mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/sessions", h.CreateSession)
	mux.HandleFunc("/api/items", h.ListItems)
	mux.HandleFunc("/api/cart", h.GetCart)
	mux.HandleFunc("/api/cart/add", h.AddToCart)
	mux.HandleFunc("/api/cart/remove", h.RemoveFromCart)
	mux.HandleFunc("/api/cart/clear", h.ClearCart)
	mux.HandleFunc("/api/customer", h.SetCustomerType)
	mux.HandleFunc("/api/checkout", h.Checkout)
	mux.HandleFunc("/api/catalog", h.UploadCatalog)
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type itemResponse struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	RegularPrice string `json:"regular_price"`
	MemberPrice  string `json:"member_price"`
	Taxable      bool   `json:"taxable"`
}

type cartLineResponse struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

type cartResponse struct {
	Member    bool               `json:"member"`
	Lines     []cartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
	Tax       string             `json:"tax"`
	Total     string             `json:"total"`
}

type cartMutationRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type customerRequest struct {
	SessionID string `json:"session_id"`
	Member    bool   `json:"member"`
}

type checkoutRequest struct {
	SessionID string `json:"session_id"`
	Cash      string `json:"cash"`
}

type checkoutResponse struct {
	Transaction int    `json:"transaction"`
	Receipt     string `json:"receipt"`
	Change      string `json:"change"`
}

type catalogRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, err := h.checkout.CreateSession()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not open session"})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID()})
}

func (h *HTTPHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.session(w, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	items := make([]itemResponse, 0)
	for _, s := range sess.AvailableItems() {
		items = append(items, itemResponse{
			Name:         s.Item.Name,
			Quantity:     s.Quantity,
			RegularPrice: s.Item.RegularPrice.StringFixed(2),
			MemberPrice:  s.Item.MemberPrice.StringFixed(2),
			Taxable:      s.Item.Taxable(),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.session(w, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	lines := make([]cartLineResponse, 0)
	count := 0
	for _, l := range sess.CartLines() {
		lines = append(lines, cartLineResponse{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Total:     l.Total().StringFixed(2),
		})
		count += l.Quantity
	}
	subtotal, tax, total := sess.Totals()
	writeJSON(w, http.StatusOK, cartResponse{
		Member:    sess.IsMember(),
		Lines:     lines,
		ItemCount: count,
		Subtotal:  subtotal.StringFixed(2),
		Tax:       tax.StringFixed(2),
		Total:     total.StringFixed(2),
	})
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartMutationRequest
	if !decodePost(w, r, &req) {
		return
	}
	sess, ok := h.session(w, req.SessionID)
	if !ok {
		return
	}
	if err := sess.AddItem(req.Name, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartMutationRequest
	if !decodePost(w, r, &req) {
		return
	}
	sess, ok := h.session(w, req.SessionID)
	if !ok {
		return
	}
	sess.RemoveItem(req.Name)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	var req cartMutationRequest
	if !decodePost(w, r, &req) {
		return
	}
	sess, ok := h.session(w, req.SessionID)
	if !ok {
		return
	}
	sess.ClearCart()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) SetCustomerType(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodePost(w, r, &req) {
		return
	}
	sess, ok := h.session(w, req.SessionID)
	if !ok {
		return
	}
	sess.SetMember(req.Member)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Checkout completes the sale. Each attempt carries the cash tendered; an
// insufficient amount gets 402 so the clerk can re-prompt and retry without
// anything having changed.
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodePost(w, r, &req) {
		return
	}
	sess, ok := h.session(w, req.SessionID)
	if !ok {
		return
	}
	cash, err := decimal.NewFromString(req.Cash)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cash is not a numeric amount"})
		return
	}
	txn, receipt, err := sess.Checkout(r.Context(), cash)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Transaction: txn.Sequence,
		Receipt:     receipt,
		Change:      txn.Change().StringFixed(2),
	})
}

func (h *HTTPHandler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if !decodePost(w, r, &req) {
		return
	}
	sess, ok := h.session(w, req.SessionID)
	if !ok {
		return
	}
	if err := sess.ReloadCatalog(req.Text); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) session(w http.ResponseWriter, id string) (*service.Session, bool) {
	sess, err := h.checkout.Session(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	return sess, true
}

func decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientCash):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownItem):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

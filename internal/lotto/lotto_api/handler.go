package lotto_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/lotto"
	lottery "ms-lotto/internal/lotto/service"
	"ms-lotto/internal/utils"

	"github.com/go-chi/chi/v5"
)

// Handler serves the lotto HTTP endpoints.
type Handler struct {
	Service *lottery.Service
	Logger  *logger.Logger
}

func NewHandler(service *lottery.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Service: service,
		Logger:  logger,
	}
}

// RegisterRoutes registers the lotto routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/lotto", func(r chi.Router) {
		r.Get("/tiers", h.GetTiers)
		r.Get("/tiers/{tier}", h.GetTier)
		r.Post("/purchases", h.CreatePurchase)
		r.Get("/purchases/{purchaseId}", h.GetPurchase)
		r.Delete("/purchases/{purchaseId}", h.DeletePurchase)
		r.Get("/purchases/{purchaseId}/tickets/{index}/qr", h.GetTicketQR)
		r.Post("/purchases/{purchaseId}/results", h.CheckResults)
	})
}

// Amount stays raw so the input reaches ParsePurchaseAmount untouched.
type purchaseRequest struct {
	Amount json.RawMessage `json:"amount"`
	Seed   *uint64         `json:"seed,omitempty"`
}

type resultsRequest struct {
	Numbers []*int `json:"numbers"`
	Bonus   *int   `json:"bonus"`
}

type purchaseResponse struct {
	PurchaseID  string         `json:"purchase_id"`
	Amount      int64          `json:"amount"`
	TicketCount int            `json:"ticket_count"`
	Tickets     []lotto.Ticket `json:"tickets"`
	IssuedAt    time.Time      `json:"issued_at"`
}

func (h *Handler) GetTiers(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Prize tiers", lottery.PrizeTable()))
}

func (h *Handler) GetTier(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	info, err := lottery.LookupTier(chi.URLParam(r, "tier"))
	if err != nil {
		h.fail(w, r, start, statusFor(err), "Unknown prize tier", err)
		return
	}
	h.ok(w, r, start, http.StatusOK, "Prize tier", info)
}

func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, start, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	purchase, err := h.Service.Purchase(r.Context(), rawAmount(req.Amount), req.Seed)
	if err != nil {
		h.fail(w, r, start, statusFor(err), "Purchase failed", err)
		return
	}

	resp := purchaseResponse{
		PurchaseID:  purchase.PurchaseID,
		Amount:      purchase.Amount,
		TicketCount: len(purchase.Tickets),
		Tickets:     purchase.Tickets,
		IssuedAt:    purchase.IssuedAt,
	}
	h.ok(w, r, start, http.StatusCreated, fmt.Sprintf("%d tickets issued", resp.TicketCount), resp)
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	purchaseID := chi.URLParam(r, "purchaseId")

	purchase, err := h.Service.GetPurchase(r.Context(), purchaseID)
	if err != nil {
		h.fail(w, r, start, statusFor(err), "Failed to fetch purchase", err)
		return
	}

	resp := purchaseResponse{
		PurchaseID:  purchase.PurchaseID,
		Amount:      purchase.Amount,
		TicketCount: len(purchase.Tickets),
		Tickets:     purchase.Tickets,
		IssuedAt:    purchase.IssuedAt,
	}
	h.ok(w, r, start, http.StatusOK, "Purchase found", resp)
}

func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	purchaseID := chi.URLParam(r, "purchaseId")

	if err := h.Service.DiscardPurchase(r.Context(), purchaseID); err != nil {
		h.fail(w, r, start, statusFor(err), "Failed to delete purchase", err)
		return
	}
	h.ok(w, r, start, http.StatusOK, "Purchase deleted", nil)
}

func (h *Handler) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	purchaseID := chi.URLParam(r, "purchaseId")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.fail(w, r, start, http.StatusBadRequest, "Invalid ticket index", err)
		return
	}

	png, err := h.Service.TicketQR(r.Context(), purchaseID, index)
	if err != nil {
		h.fail(w, r, start, statusFor(err), "Failed to render ticket QR", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("HTTP", fmt.Sprintf("Failed to write QR for %s: %v", purchaseID, err))
	}
	h.Logger.LogAPI(r.Method, r.URL.Path, strconv.Itoa(http.StatusOK), time.Since(start).String())
}

func (h *Handler) CheckResults(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	purchaseID := chi.URLParam(r, "purchaseId")

	var req resultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, start, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Service.CheckResults(r.Context(), purchaseID, req.Numbers, req.Bonus)
	if err != nil {
		h.fail(w, r, start, statusFor(err), "Result check failed", err)
		return
	}
	h.ok(w, r, start, http.StatusOK, "Results computed", result)
}

// rawAmount accepts both "8000" and 8000 in the request body.
func rawAmount(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func statusFor(err error) int {
	switch {
	case lotto.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, lottery.ErrPurchaseNotFound), errors.Is(err, lottery.ErrTicketIndexOutOfRange),
		errors.Is(err, lotto.ErrUnknownTier):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, data interface{}) {
	utils.WriteJSON(w, status, utils.SuccessResponse(message, data))
	h.Logger.LogAPI(r.Method, r.URL.Path, strconv.Itoa(status), time.Since(start).String())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("HTTP", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	} else {
		h.Logger.Warn("HTTP", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	}
	utils.WriteJSON(w, status, utils.ErrorResponse(message, err.Error()))
	h.Logger.LogAPI(r.Method, r.URL.Path, strconv.Itoa(status), time.Since(start).String())
}

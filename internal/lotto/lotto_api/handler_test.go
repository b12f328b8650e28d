package lotto_api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/lotto"
	"ms-lotto/internal/lotto/lotto_api"
	qr "ms-lotto/internal/lotto/qr_generator"
	lottery "ms-lotto/internal/lotto/service"
	"ms-lotto/internal/lotto/store"
	"ms-lotto/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupRouter(t *testing.T) (http.Handler, *store.Memory) {
	t.Helper()
	log := logger.NewLoggerWithWriter(io.Discard)
	mem := store.NewMemory(time.Hour)
	svc := lottery.NewLotteryService(mem, nil, qr.NewQRGenerator("test"), lotto.NewSeededRNG(1), log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		lotto_api.NewHandler(svc, log).RegisterRoutes(r)
	})
	return r, mem
}

func seedPurchase(t *testing.T, mem *store.Memory, id string, amount int64, tickets ...[]int) {
	t.Helper()
	list := make([]lotto.Ticket, len(tickets))
	for i, numbers := range tickets {
		ticket, err := lotto.NewTicket(numbers)
		require.NoError(t, err)
		list[i] = ticket
	}
	require.NoError(t, mem.SavePurchase(t.Context(), models.Purchase{
		PurchaseID: id,
		Amount:     amount,
		Tickets:    list,
		IssuedAt:   time.Now().UTC(),
	}))
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func TestGetTiers(t *testing.T) {
	h, _ := setupRouter(t)

	rr, env := do(t, h, http.MethodGet, "/api/lotto/tiers", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)

	var tiers []lottery.TierInfo
	require.NoError(t, json.Unmarshal(env.Data, &tiers))
	require.Len(t, tiers, 5)
	assert.Equal(t, lotto.TierSecond, tiers[1].Tier)
	assert.Equal(t, int64(30_000_000), tiers[1].Payout)
}

func TestCreatePurchase(t *testing.T) {
	h, _ := setupRouter(t)

	rr, env := do(t, h, http.MethodPost, "/api/lotto/purchases", `{"amount":"8000"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, env.Success)

	var data struct {
		PurchaseID  string  `json:"purchase_id"`
		TicketCount int     `json:"ticket_count"`
		Tickets     [][]int `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.PurchaseID)
	assert.Equal(t, 8, data.TicketCount)
	assert.Len(t, data.Tickets, 8)

	rr, _ = do(t, h, http.MethodGet, "/api/lotto/purchases/"+data.PurchaseID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreatePurchase_NumericAmount(t *testing.T) {
	h, _ := setupRouter(t)

	rr, _ := do(t, h, http.MethodPost, "/api/lotto/purchases", `{"amount":3000,"seed":9}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreatePurchase_InvalidAmounts(t *testing.T) {
	h, _ := setupRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"below unit price", `{"amount":"999"}`},
		{"not a multiple", `{"amount":"1500"}`},
		{"not a number", `{"amount":"abc"}`},
		{"missing", `{}`},
		{"bad json", `{"amount":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := do(t, h, http.MethodPost, "/api/lotto/purchases", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestGetPurchase_NotFound(t *testing.T) {
	h, _ := setupRouter(t)

	rr, env := do(t, h, http.MethodGet, "/api/lotto/purchases/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
}

func TestCheckResults(t *testing.T) {
	h, mem := setupRouter(t)
	seedPurchase(t, mem, "p1", 2000, []int{1, 2, 3, 4, 5, 6}, []int{1, 2, 3, 4, 5, 7})

	rr, env := do(t, h, http.MethodPost, "/api/lotto/purchases/p1/results", `{"numbers":[1,2,3,4,5,6],"bonus":7}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Statistics struct {
			Counts      map[string]int `json:"counts"`
			TotalPayout int64          `json:"total_payout"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Statistics.Counts["FIRST"])
	assert.Equal(t, 1, data.Statistics.Counts["SECOND"])
	assert.Equal(t, int64(2_030_000_000), data.Statistics.TotalPayout)
}

func TestCheckResults_Validation(t *testing.T) {
	h, mem := setupRouter(t)
	seedPurchase(t, mem, "p1", 1000, []int{1, 2, 3, 4, 5, 6})

	tests := []struct {
		name string
		body string
	}{
		{"bonus collision", `{"numbers":[1,2,3,4,5,6],"bonus":6}`},
		{"missing bonus", `{"numbers":[1,2,3,4,5,6]}`},
		{"null number", `{"numbers":[1,2,3,4,5,null],"bonus":7}`},
		{"five numbers", `{"numbers":[1,2,3,4,5],"bonus":7}`},
		{"duplicate", `{"numbers":[1,1,3,4,5,6],"bonus":7}`},
		{"out of range", `{"numbers":[1,2,3,4,5,46],"bonus":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := do(t, h, http.MethodPost, "/api/lotto/purchases/p1/results", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestGetTicketQR(t *testing.T) {
	h, mem := setupRouter(t)
	seedPurchase(t, mem, "p1", 1000, []int{1, 2, 3, 4, 5, 6})

	rr, _ := do(t, h, http.MethodGet, "/api/lotto/purchases/p1/tickets/0/qr", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr, _ = do(t, h, http.MethodGet, "/api/lotto/purchases/p1/tickets/3/qr", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, h, http.MethodGet, "/api/lotto/purchases/p1/tickets/x/qr", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreatePurchase_AboveTicketLimit(t *testing.T) {
	h, _ := setupRouter(t)
	h = middleware.Recoverer(h)

	for _, amount := range []string{"1000000000000", "100000000000000000", "101000"} {
		rr, env := do(t, h, http.MethodPost, "/api/lotto/purchases", `{"amount":"`+amount+`"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code, amount)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "ticket limit")
	}

	rr, _ := do(t, h, http.MethodPost, "/api/lotto/purchases", `{"amount":"100000"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestGetTier(t *testing.T) {
	h, _ := setupRouter(t)

	rr, env := do(t, h, http.MethodGet, "/api/lotto/tiers/fourth", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var info lottery.TierInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, lotto.TierFourth, info.Tier)
	assert.Equal(t, int64(50_000), info.Payout)

	rr, _ = do(t, h, http.MethodGet, "/api/lotto/tiers/sixth", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeletePurchase(t *testing.T) {
	h, mem := setupRouter(t)
	seedPurchase(t, mem, "p1", 1000, []int{1, 2, 3, 4, 5, 6})

	rr, _ := do(t, h, http.MethodDelete, "/api/lotto/purchases/p1", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, h, http.MethodGet, "/api/lotto/purchases/p1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, h, http.MethodDelete, "/api/lotto/purchases/p1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

package lottery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/lotto"
	qr "ms-lotto/internal/lotto/qr_generator"
	"ms-lotto/internal/lotto/store"
	"ms-lotto/internal/models"
	"ms-lotto/internal/utils"
)

var (
	ErrPurchaseNotFound      = errors.New("purchase not found")
	ErrTicketIndexOutOfRange = errors.New("ticket index out of range")
)

type PurchaseStore interface {
	SavePurchase(ctx context.Context, purchase models.Purchase) error
	GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error)
	DeletePurchase(ctx context.Context, purchaseID string) error
}

type EventPublisher interface {
	PublishTicketsIssued(ctx context.Context, event models.TicketsIssuedEvent) error
	PublishResultsChecked(ctx context.Context, event models.ResultsCheckedEvent) error
}

// Service issues tickets for purchases and checks them against a draw.
type Service struct {
	Store       PurchaseStore
	Publisher   EventPublisher // optional
	QRGenerator *qr.QRGenerator
	Logger      *logger.Logger

	Now   func() time.Time
	NewID func() string

	// MaxTickets bounds a single purchase; 0 means lotto.MaxTicketsPerPurchase.
	MaxTickets int

	rngMu sync.Mutex
	rng   lotto.RandomSource
}

// NewLotteryService wires a service; rng nil means crypto randomness.
func NewLotteryService(purchases PurchaseStore, publisher EventPublisher, qrGen *qr.QRGenerator, rng lotto.RandomSource, log *logger.Logger) *Service {
	if rng == nil {
		rng = lotto.DefaultRNG()
	}
	return &Service{
		Store:       purchases,
		Publisher:   publisher,
		QRGenerator: qrGen,
		Logger:      log,
		Now:         func() time.Time { return time.Now().UTC() },
		NewID:       utils.GeneratePurchaseID,
		rng:         rng,
	}
}

// lockedSource serialises access to a shared generator across requests.
type lockedSource struct {
	mu  *sync.Mutex
	src lotto.RandomSource
}

func (l lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Purchase validates rawAmount, issues the tickets and stores them.
// A non-nil seed makes the batch reproducible.
func (s *Service) Purchase(ctx context.Context, rawAmount string, seed *uint64) (*models.Purchase, error) {
	amount, err := lotto.ParsePurchaseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	if err := amount.CheckTicketLimit(s.MaxTickets); err != nil {
		return nil, err
	}

	var rng lotto.RandomSource = lockedSource{mu: &s.rngMu, src: s.rng}
	if seed != nil {
		rng = lotto.NewSeededRNG(*seed)
	}
	batch, err := lotto.GenerateBatch(amount, rng)
	if err != nil {
		return nil, fmt.Errorf("issue tickets: %w", err)
	}

	purchase := models.NewPurchase(s.NewID(), amount, batch, s.Now())
	if err := s.Store.SavePurchase(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}
	s.Logger.LogPurchase(purchase.PurchaseID, amount.Value(), batch.Len())

	if s.Publisher != nil {
		event := models.TicketsIssuedEvent{
			PurchaseID:  purchase.PurchaseID,
			Amount:      purchase.Amount,
			TicketCount: batch.Len(),
			IssuedAt:    purchase.IssuedAt,
		}
		if err := s.Publisher.PublishTicketsIssued(ctx, event); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish tickets issued for %s: %v", purchase.PurchaseID, err))
		}
	}

	return &purchase, nil
}

func (s *Service) GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	purchase, err := s.Store.GetPurchase(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPurchaseNotFound, purchaseID)
		}
		return nil, fmt.Errorf("failed to fetch purchase %s: %w", purchaseID, err)
	}
	return purchase, nil
}

// DiscardPurchase removes a purchase before its TTL runs out.
func (s *Service) DiscardPurchase(ctx context.Context, purchaseID string) error {
	if _, err := s.GetPurchase(ctx, purchaseID); err != nil {
		return err
	}
	if err := s.Store.DeletePurchase(ctx, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}
	s.Logger.Info("LOTTO", fmt.Sprintf("[DISCARD] %s", purchaseID))
	return nil
}

// CheckResults compares a stored purchase with the winning numbers and bonus.
func (s *Service) CheckResults(ctx context.Context, purchaseID string, numbers []*int, bonus *int) (*Result, error) {
	wc, err := lotto.ParseWinningCombination(numbers, bonus)
	if err != nil {
		return nil, err
	}

	purchase, err := s.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	amount, batch, err := purchase.Domain()
	if err != nil {
		return nil, fmt.Errorf("stored purchase is invalid: %w", err)
	}

	stats := lotto.ComputeStatistics(batch, wc)
	rate, err := amount.ProfitRate(stats)
	if err != nil {
		return nil, err
	}

	result := newResult(purchase.PurchaseID, wc, stats, rate)
	s.Logger.LogResults(purchase.PurchaseID, fmt.Sprintf("payout %d KRW, profit rate %s", stats.TotalPayout(), rate))

	if s.Publisher != nil {
		event := models.ResultsCheckedEvent{
			PurchaseID:     purchase.PurchaseID,
			WinningNumbers: result.WinningNumbers,
			BonusNumber:    result.BonusNumber,
			Statistics:     stats,
			ProfitRate:     rate,
			CheckedAt:      s.Now(),
		}
		if err := s.Publisher.PublishResultsChecked(ctx, event); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish results for %s: %v", purchase.PurchaseID, err))
		}
	}

	return result, nil
}

// TicketQR renders the index-th ticket (0-based) of a purchase as an encrypted QR PNG.
func (s *Service) TicketQR(ctx context.Context, purchaseID string, index int) ([]byte, error) {
	purchase, err := s.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(purchase.Tickets) {
		return nil, fmt.Errorf("%w: %d of %d", ErrTicketIndexOutOfRange, index, len(purchase.Tickets))
	}
	payload := models.TicketQRPayload{
		PurchaseID: purchase.PurchaseID,
		Index:      index,
		Numbers:    purchase.Tickets[index].Numbers(),
		IssuedAt:   purchase.IssuedAt,
	}
	png, err := s.QRGenerator.GenerateEncryptedQR(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR: %w", err)
	}
	return png, nil
}

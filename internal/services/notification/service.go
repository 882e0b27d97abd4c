// Package notification dispatches user-facing notifications after
// withdrawal transitions. Dispatch is fire-and-forget: a failed
// notification is logged and never affects the financial transition
// that triggered it.
package notification

import (
	"context"
	"log"

	"pawpay/internal/models"
)

// Dispatcher is implemented by the delivery subsystem (push, in-app).
type Dispatcher interface {
	WithdrawalApproved(ctx context.Context, w *models.Withdrawal)
	WithdrawalRejected(ctx context.Context, w *models.Withdrawal)
	WithdrawalCompleted(ctx context.Context, w *models.Withdrawal)
	WithdrawalFailed(ctx context.Context, w *models.Withdrawal)
}

// Service is a minimal log-backed dispatcher.
type Service struct{}

// NewService creates a new notification service.
func NewService() *Service { return &Service{} }

func (s *Service) WithdrawalApproved(ctx context.Context, w *models.Withdrawal) {
	log.Printf("Notify provider %d: withdrawal %d approved (%s)", w.ProviderID, w.ID, w.Status.Title())
}

func (s *Service) WithdrawalRejected(ctx context.Context, w *models.Withdrawal) {
	log.Printf("Notify provider %d: withdrawal %d rejected: %s", w.ProviderID, w.ID, w.RejectionReason)
}

func (s *Service) WithdrawalCompleted(ctx context.Context, w *models.Withdrawal) {
	log.Printf("Notify provider %d: withdrawal %d paid out to %s", w.ProviderID, w.ID, w.MaskedAccountNumber())
}

func (s *Service) WithdrawalFailed(ctx context.Context, w *models.Withdrawal) {
	log.Printf("Notify provider %d: withdrawal %d transfer failed: %s", w.ProviderID, w.ID, w.RejectionReason)
}

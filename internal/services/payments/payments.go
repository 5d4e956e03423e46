package payments

import (
	"context"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/store"
)

// Service moves order money through the wallet: buyer is debited at
// checkout, seller is credited when the buyer accepts delivery, buyer is
// refunded on cancellation. Every movement leaves a ledger entry.
type Service struct {
	Stores store.Stores
}

func NewService(stores store.Stores) *Service {
	return &Service{Stores: stores}
}

// Checkout debits the buyer for the full amount and marks the order paid.
func (s *Service) Checkout(ctx context.Context, o *models.Order, method string) error {
	if err := s.Stores.Wallet.Debit(ctx, o.BuyerID, o.Amount, o.ID, "Payment for order "+o.OrderCode); err != nil {
		return err
	}

	now := time.Now()
	o.PaymentMethod = method
	o.Reference = "INV-" + o.OrderCode
	o.PaidAt = &now
	o.Status = models.OrderPaid
	return s.Stores.Orders.Update(ctx, o)
}

// Complete credits the seller with the net amount (amount minus platform fee).
func (s *Service) Complete(ctx context.Context, o *models.Order) error {
	if err := s.Stores.Wallet.Credit(ctx, o.SellerID, o.NetAmount, models.WalletCredit, o.ID, "Earnings for order "+o.OrderCode); err != nil {
		return err
	}
	o.Status = models.OrderCompleted
	return s.Stores.Orders.Update(ctx, o)
}

// Cancel refunds the buyer when the order was already paid.
func (s *Service) Cancel(ctx context.Context, o *models.Order) error {
	if o.Status == models.OrderPaid {
		if err := s.Stores.Wallet.Credit(ctx, o.BuyerID, o.Amount, models.WalletRefund, o.ID, "Refund for order "+o.OrderCode); err != nil {
			return err
		}
	}
	o.Status = models.OrderCancelled
	return s.Stores.Orders.Update(ctx, o)
}

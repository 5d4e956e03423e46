package store

import (
	"context"
	"errors"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memWalletStore struct {
	db *memoryDB
}

func (s *memWalletStore) Debit(ctx context.Context, userID string, amount int64, referenceID, description string) error {
	if amount <= 0 {
		return errors.New("amount to debit must be greater than zero")
	}
	nid, err := normalizeNumericID(userID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[nid]
	if !ok {
		return ErrNotFound
	}
	if u.Balance < amount {
		return ErrInsufficientFunds
	}
	u.Balance -= amount
	u.UpdatedAt = time.Now()
	s.db.users[nid] = u

	s.db.appendLedgerLocked(nid, amount, models.WalletDebit, referenceID, description)
	return nil
}

func (s *memWalletStore) Credit(ctx context.Context, userID string, amount int64, trxType models.WalletTrxType, referenceID, description string) error {
	if amount <= 0 {
		return errors.New("amount to credit must be greater than zero")
	}
	nid, err := normalizeNumericID(userID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[nid]
	if !ok {
		return ErrNotFound
	}
	u.Balance += amount
	u.UpdatedAt = time.Now()
	s.db.users[nid] = u

	s.db.appendLedgerLocked(nid, amount, trxType, referenceID, description)
	return nil
}

func (s *memWalletStore) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.WalletTransaction, int64, error) {
	nid, err := normalizeNumericID(userID)
	if err != nil {
		return nil, 0, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	entries := make([]models.WalletTransaction, 0)
	for _, e := range s.db.wallet {
		if e.UserID == nid {
			entries = append(entries, e)
		}
	}
	sortByCreatedDesc(entries, func(e models.WalletTransaction) time.Time { return e.CreatedAt })
	total := int64(len(entries))
	return pageSlice(entries, page, limit), total, nil
}

func (s *memWalletStore) SumByUserAndType(ctx context.Context, userID string, t models.WalletTrxType) (int64, error) {
	nid, err := normalizeNumericID(userID)
	if err != nil {
		return 0, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var sum int64
	for _, e := range s.db.wallet {
		if e.UserID == nid && e.Type == t {
			sum += e.Amount
		}
	}
	return sum, nil
}

// appendLedgerLocked must be called with db.mu held.
func (db *memoryDB) appendLedgerLocked(userID string, amount int64, t models.WalletTrxType, referenceID, description string) {
	e := models.WalletTransaction{
		ID:          db.nextID(),
		UserID:      userID,
		Amount:      amount,
		Type:        t,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if referenceID != "" {
		ref := referenceID
		e.ReferenceID = &ref
	}
	db.wallet = append(db.wallet, e)
}

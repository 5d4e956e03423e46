package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormWalletStore struct {
	db *gorm.DB
}

// Debit deducts funds and writes a ledger entry inside one transaction.
// The guarded UPDATE keeps the balance from going negative under
// concurrent checkouts.
func (s *gormWalletStore) Debit(ctx context.Context, userID string, amount int64, referenceID, description string) error {
	if amount <= 0 {
		return errors.New("amount to debit must be greater than zero")
	}
	nid, err := normalizeUUID(userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", nid, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var u models.User
			if err := tx.First(&u, "id = ?", nid).Error; err != nil {
				return translateGormErr(err)
			}
			return ErrInsufficientFunds
		}
		return tx.Create(ledgerEntry(nid, amount, models.WalletDebit, referenceID, description)).Error
	})
}

func (s *gormWalletStore) Credit(ctx context.Context, userID string, amount int64, trxType models.WalletTrxType, referenceID, description string) error {
	if amount <= 0 {
		return errors.New("amount to credit must be greater than zero")
	}
	nid, err := normalizeUUID(userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", nid).
			Update("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(ledgerEntry(nid, amount, trxType, referenceID, description)).Error
	})
}

func (s *gormWalletStore) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.WalletTransaction, int64, error) {
	nid, err := normalizeUUID(userID)
	if err != nil {
		return nil, 0, err
	}
	_, limit, offset := normalizePage(page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.WalletTransaction{}).
		Where("user_id = ?", nid).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.WalletTransaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", nid).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *gormWalletStore) SumByUserAndType(ctx context.Context, userID string, t models.WalletTrxType) (int64, error) {
	nid, err := normalizeUUID(userID)
	if err != nil {
		return 0, err
	}
	var sum int64
	err = s.db.WithContext(ctx).Model(&models.WalletTransaction{}).
		Where("user_id = ?", nid).
		Where("type = ?", t).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func ledgerEntry(userID string, amount int64, t models.WalletTrxType, referenceID, description string) *models.WalletTransaction {
	e := &models.WalletTransaction{
		ID:          newUUID(),
		UserID:      userID,
		Amount:      amount,
		Type:        t,
		Description: description,
	}
	if referenceID != "" {
		e.ReferenceID = &referenceID
	}
	return e
}

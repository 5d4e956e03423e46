package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormOrderStore struct {
	db *gorm.DB
}

func (s *gormOrderStore) Create(ctx context.Context, o *models.Order) error {
	return translateGormErr(s.db.WithContext(ctx).Create(o).Error)
}

func (s *gormOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	nid, err := normalizeUUID(id)
	if err != nil {
		return nil, err
	}
	var o models.Order
	if err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Buyer").
		Preload("Seller").
		First(&o, "id = ?", nid).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &o, nil
}

func (s *gormOrderStore) Update(ctx context.Context, o *models.Order) error {
	return translateGormErr(s.db.WithContext(ctx).Save(o).Error)
}

func (s *gormOrderStore) ListByUser(ctx context.Context, userID string, side OrderSide, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	nid, err := normalizeUUID(userID)
	if err != nil {
		return nil, 0, err
	}
	_, limit, offset := normalizePage(page, limit)

	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Order{})
		switch side {
		case OrderSideBuyer:
			q = q.Where("buyer_id = ?", nid)
		case OrderSideSeller:
			q = q.Where("seller_id = ?", nid)
		default:
			q = q.Where("buyer_id = ? OR seller_id = ?", nid, nid)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := base().
		Preload("Service").
		Preload("Buyer").
		Preload("Seller").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *gormOrderStore) CountBySeller(ctx context.Context, sellerID string, statuses []models.OrderStatus) (int64, error) {
	nid, err := normalizeUUID(sellerID)
	if err != nil {
		return 0, err
	}
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Order{}).Where("seller_id = ?", nid)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err = q.Count(&n).Error
	return n, err
}

func (s *gormOrderStore) SumAmountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var sum int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (s *gormOrderStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

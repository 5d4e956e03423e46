package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormReviewStore struct {
	db *gorm.DB
}

func (s *gormReviewStore) Create(ctx context.Context, r *models.Review) error {
	var existing models.Review
	err := s.db.WithContext(ctx).Where("order_id = ?", r.OrderID).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return translateGormErr(s.db.WithContext(ctx).Create(r).Error)
}

func (s *gormReviewStore) GetByOrderID(ctx context.Context, orderID string) (*models.Review, error) {
	nid, err := normalizeUUID(orderID)
	if err != nil {
		return nil, err
	}
	var r models.Review
	if err := s.db.WithContext(ctx).Where("order_id = ?", nid).First(&r).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &r, nil
}

func (s *gormReviewStore) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	nid, err := normalizeUUID(serviceID)
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Where("service_id = ?", nid).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *gormReviewStore) SellerRating(ctx context.Context, sellerID string) (float64, int64, error) {
	nid, err := normalizeUUID(sellerID)
	if err != nil {
		return 0, 0, err
	}
	var stats struct {
		AvgRating   float64
		ReviewCount int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("seller_id = ?", nid).
		Select("COALESCE(AVG(rating), 0) as avg_rating, COUNT(*) as review_count").
		Scan(&stats).Error; err != nil {
		return 0, 0, err
	}
	return stats.AvgRating, stats.ReviewCount, nil
}

package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormServiceStore struct {
	db *gorm.DB
}

func (s *gormServiceStore) Create(ctx context.Context, svc *models.Service) error {
	return translateGormErr(s.db.WithContext(ctx).Create(svc).Error)
}

func (s *gormServiceStore) GetByID(ctx context.Context, id string) (*models.Service, error) {
	nid, err := normalizeUUID(id)
	if err != nil {
		return nil, err
	}
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", nid).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &svc, nil
}

func (s *gormServiceStore) Update(ctx context.Context, svc *models.Service) error {
	return translateGormErr(s.db.WithContext(ctx).Save(svc).Error)
}

func (s *gormServiceStore) Delete(ctx context.Context, id string) error {
	nid, err := normalizeUUID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", nid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormServiceStore) applyFilter(q *gorm.DB, f ServiceFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("services.status = ?", f.Status)
	}
	if f.FreelancerID != "" {
		q = q.Where("services.freelancer_id = ?", f.FreelancerID)
	}
	if f.Query != "" {
		q = q.Where("LOWER(services.title) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	if f.Category != "" {
		q = q.Where("services.category = ?", f.Category)
	}
	if f.MinPrice > 0 {
		q = q.Where("services.price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("services.price <= ?", f.MaxPrice)
	}
	return q
}

func (s *gormServiceStore) List(ctx context.Context, f ServiceFilter) ([]ServiceSummary, int64, error) {
	_, limit, offset := normalizePage(f.Page, f.Limit)

	var total int64
	countQ := s.applyFilter(s.db.WithContext(ctx).Table("services"), f)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	type row struct {
		models.Service
		SellerName  string
		AvgRating   float64
		ReviewCount int64
		Sold        int64
	}

	q := s.db.WithContext(ctx).
		Table("services").
		Select(`
			services.*,
			u.name as seller_name,
			(SELECT COALESCE(AVG(rating), 0) FROM reviews r WHERE r.service_id = services.id) as avg_rating,
			(SELECT COUNT(*) FROM reviews r WHERE r.service_id = services.id) as review_count,
			(SELECT COUNT(*) FROM orders o WHERE o.service_id = services.id AND o.status = 'completed') as sold
		`).
		Joins("LEFT JOIN users u ON u.id = services.freelancer_id")

	q = s.applyFilter(q, f)

	switch f.Sort {
	case "price_low":
		q = q.Order("services.price ASC")
	case "price_high":
		q = q.Order("services.price DESC")
	default:
		q = q.Order("services.created_at DESC")
	}

	var rows []row
	if err := q.Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]ServiceSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, ServiceSummary{
			Service:     r.Service,
			SellerName:  r.SellerName,
			AvgRating:   r.AvgRating,
			ReviewCount: r.ReviewCount,
			Sold:        r.Sold,
		})
	}
	return out, total, nil
}

func (s *gormServiceStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).
		Table("services").
		Where("status = ?", models.ServicePublished).
		Distinct("category").
		Pluck("category", &categories).
		Error
	return categories, err
}

func (s *gormServiceStore) Stats(ctx context.Context, serviceID string) (ServiceStats, error) {
	nid, err := normalizeUUID(serviceID)
	if err != nil {
		return ServiceStats{}, err
	}

	var stats ServiceStats
	if err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("service_id = ?", nid).
		Select("COALESCE(AVG(rating), 0) as avg_rating, COUNT(*) as review_count").
		Scan(&stats).Error; err != nil {
		return ServiceStats{}, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("service_id = ? AND status = ?", nid, models.OrderCompleted).
		Count(&stats.Sold).Error; err != nil {
		return ServiceStats{}, err
	}
	return stats, nil
}

func (s *gormServiceStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Service{}).Count(&n).Error
	return n, err
}

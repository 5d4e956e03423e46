package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormJobStore struct {
	db *gorm.DB
}

func (s *gormJobStore) Create(ctx context.Context, j *models.Job) error {
	return translateGormErr(s.db.WithContext(ctx).Create(j).Error)
}

func (s *gormJobStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	nid, err := normalizeUUID(id)
	if err != nil {
		return nil, err
	}
	var j models.Job
	if err := s.db.WithContext(ctx).Preload("Employer").First(&j, "id = ?", nid).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &j, nil
}

func (s *gormJobStore) Update(ctx context.Context, j *models.Job) error {
	return translateGormErr(s.db.WithContext(ctx).Save(j).Error)
}

func (s *gormJobStore) applyFilter(q *gorm.DB, f JobFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmployerID != "" {
		q = q.Where("employer_id = ?", f.EmployerID)
	}
	if f.Query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinBudget > 0 {
		q = q.Where("budget >= ?", f.MinBudget)
	}
	if f.MaxBudget > 0 {
		q = q.Where("budget <= ?", f.MaxBudget)
	}
	return q
}

func (s *gormJobStore) List(ctx context.Context, f JobFilter) ([]models.Job, int64, error) {
	_, limit, offset := normalizePage(f.Page, f.Limit)

	var total int64
	if err := s.applyFilter(s.db.WithContext(ctx).Model(&models.Job{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := s.applyFilter(s.db.WithContext(ctx).Model(&models.Job{}), f)
	switch f.Sort {
	case "budget_low":
		q = q.Order("budget ASC")
	case "budget_high":
		q = q.Order("budget DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var jobs []models.Job
	if err := q.Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (s *gormJobStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Job{}).Count(&n).Error
	return n, err
}

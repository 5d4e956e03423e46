package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormApplicationStore struct {
	db *gorm.DB
}

func (s *gormApplicationStore) Create(ctx context.Context, a *models.Application) error {
	var existing models.Application
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND freelancer_id = ?", a.JobID, a.FreelancerID).
		First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return translateGormErr(s.db.WithContext(ctx).Create(a).Error)
}

func (s *gormApplicationStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	nid, err := normalizeUUID(id)
	if err != nil {
		return nil, err
	}
	var a models.Application
	if err := s.db.WithContext(ctx).Preload("Job").First(&a, "id = ?", nid).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &a, nil
}

func (s *gormApplicationStore) Update(ctx context.Context, a *models.Application) error {
	return translateGormErr(s.db.WithContext(ctx).Save(a).Error)
}

func (s *gormApplicationStore) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	nid, err := normalizeUUID(jobID)
	if err != nil {
		return nil, err
	}
	var apps []models.Application
	if err := s.db.WithContext(ctx).
		Preload("Freelancer").
		Where("job_id = ?", nid).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *gormApplicationStore) ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Application, error) {
	nid, err := normalizeUUID(freelancerID)
	if err != nil {
		return nil, err
	}
	var apps []models.Application
	if err := s.db.WithContext(ctx).
		Preload("Job").
		Where("freelancer_id = ?", nid).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityarahman/gighub_be/internal/models"
)

type gormUserStore struct {
	db *gorm.DB
}

func (s *gormUserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newUUID()
	}
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *gormUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	nid, err := normalizeUUID(id)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", nid).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &u, nil
}

func (s *gormUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &u, nil
}

func (s *gormUserStore) Update(ctx context.Context, u *models.User) error {
	return translateGormErr(s.db.WithContext(ctx).Save(u).Error)
}

func (s *gormUserStore) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	_, limit, offset := normalizePage(page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

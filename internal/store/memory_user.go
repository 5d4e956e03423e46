package store

import (
	"context"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memUserStore struct {
	db *memoryDB
}

func (s *memUserStore) Create(ctx context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}

	u.ID = s.db.nextID()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Status == "" {
		u.Status = models.UserActive
	}
	s.db.users[u.ID] = *u
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	nid, err := normalizeNumericID(id)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[nid]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) Update(ctx context.Context, u *models.User) error {
	nid, err := normalizeNumericID(u.ID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[nid]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now()
	s.db.users[nid] = *u
	return nil
}

func (s *memUserStore) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	users := make([]models.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, u)
	}
	sortByCreatedDesc(users, func(u models.User) time.Time { return u.CreatedAt })
	total := int64(len(users))
	return pageSlice(users, page, limit), total, nil
}

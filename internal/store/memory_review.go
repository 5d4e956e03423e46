package store

import (
	"context"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memReviewStore struct {
	db *memoryDB
}

func (s *memReviewStore) Create(ctx context.Context, r *models.Review) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.reviews {
		if existing.OrderID == r.OrderID {
			return ErrDuplicate
		}
	}

	r.ID = s.db.nextID()
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	s.db.reviews[r.ID] = *r
	return nil
}

func (s *memReviewStore) GetByOrderID(ctx context.Context, orderID string) (*models.Review, error) {
	nid, err := normalizeNumericID(orderID)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, r := range s.db.reviews {
		if r.OrderID == nid {
			out := r
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memReviewStore) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	nid, err := normalizeNumericID(serviceID)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, r := range s.db.reviews {
		if r.ServiceID != nid {
			continue
		}
		if u, ok := s.db.users[r.ReviewerID]; ok {
			rev := u
			r.Reviewer = &rev
		}
		reviews = append(reviews, r)
	}
	sortByCreatedDesc(reviews, func(r models.Review) time.Time { return r.CreatedAt })
	return reviews, nil
}

func (s *memReviewStore) SellerRating(ctx context.Context, sellerID string) (float64, int64, error) {
	nid, err := normalizeNumericID(sellerID)
	if err != nil {
		return 0, 0, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var sum int
	var count int64
	for _, r := range s.db.reviews {
		if r.SellerID == nid {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

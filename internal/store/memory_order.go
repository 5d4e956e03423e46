package store

import (
	"context"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memOrderStore struct {
	db *memoryDB
}

func (s *memOrderStore) Create(ctx context.Context, o *models.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	o.ID = s.db.nextID()
	if o.OrderCode == "" {
		o.OrderCode = models.GenerateOrderCode()
	}
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	stored := *o
	stored.Service, stored.Buyer, stored.Seller = nil, nil, nil
	s.db.orders[o.ID] = stored
	return nil
}

func (s *memOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	nid, err := normalizeNumericID(id)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	o, ok := s.db.orders[nid]
	if !ok {
		return nil, ErrNotFound
	}
	s.db.attachOrderRelationsLocked(&o)
	return &o, nil
}

func (s *memOrderStore) Update(ctx context.Context, o *models.Order) error {
	nid, err := normalizeNumericID(o.ID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.orders[nid]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now()
	stored := *o
	stored.Service, stored.Buyer, stored.Seller = nil, nil, nil
	s.db.orders[nid] = stored
	return nil
}

func (s *memOrderStore) ListByUser(ctx context.Context, userID string, side OrderSide, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	nid, err := normalizeNumericID(userID)
	if err != nil {
		return nil, 0, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	matched := make([]models.Order, 0)
	for _, o := range s.db.orders {
		switch side {
		case OrderSideBuyer:
			if o.BuyerID != nid {
				continue
			}
		case OrderSideSeller:
			if o.SellerID != nid {
				continue
			}
		default:
			if o.BuyerID != nid && o.SellerID != nid {
				continue
			}
		}
		if status != "" && o.Status != status {
			continue
		}
		s.db.attachOrderRelationsLocked(&o)
		matched = append(matched, o)
	}
	sortByCreatedDesc(matched, func(o models.Order) time.Time { return o.CreatedAt })
	total := int64(len(matched))
	return pageSlice(matched, page, limit), total, nil
}

func (s *memOrderStore) CountBySeller(ctx context.Context, sellerID string, statuses []models.OrderStatus) (int64, error) {
	nid, err := normalizeNumericID(sellerID)
	if err != nil {
		return 0, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var n int64
	for _, o := range s.db.orders {
		if o.SellerID != nid {
			continue
		}
		if len(statuses) == 0 {
			n++
			continue
		}
		for _, st := range statuses {
			if o.Status == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (s *memOrderStore) SumAmountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var sum int64
	for _, o := range s.db.orders {
		if o.Status == status {
			sum += o.Amount
		}
	}
	return sum, nil
}

func (s *memOrderStore) Count(ctx context.Context) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return int64(len(s.db.orders)), nil
}

// attachOrderRelationsLocked must be called with db.mu held.
func (db *memoryDB) attachOrderRelationsLocked(o *models.Order) {
	if svc, ok := db.services[o.ServiceID]; ok {
		sv := svc
		o.Service = &sv
	}
	if u, ok := db.users[o.BuyerID]; ok {
		b := u
		o.Buyer = &b
	}
	if u, ok := db.users[o.SellerID]; ok {
		sl := u
		o.Seller = &sl
	}
}

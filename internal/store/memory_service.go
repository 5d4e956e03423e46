package store

import (
	"context"
	"sort"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memServiceStore struct {
	db *memoryDB
}

func (s *memServiceStore) Create(ctx context.Context, svc *models.Service) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	svc.ID = s.db.nextID()
	now := time.Now()
	svc.CreatedAt, svc.UpdatedAt = now, now
	if svc.Status == "" {
		svc.Status = models.ServiceDraft
	}
	s.db.services[svc.ID] = *svc
	return nil
}

func (s *memServiceStore) GetByID(ctx context.Context, id string) (*models.Service, error) {
	nid, err := normalizeNumericID(id)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	svc, ok := s.db.services[nid]
	if !ok {
		return nil, ErrNotFound
	}
	return &svc, nil
}

func (s *memServiceStore) Update(ctx context.Context, svc *models.Service) error {
	nid, err := normalizeNumericID(svc.ID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.services[nid]; !ok {
		return ErrNotFound
	}
	svc.UpdatedAt = time.Now()
	s.db.services[nid] = *svc
	return nil
}

func (s *memServiceStore) Delete(ctx context.Context, id string) error {
	nid, err := normalizeNumericID(id)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.services[nid]; !ok {
		return ErrNotFound
	}
	delete(s.db.services, nid)
	return nil
}

func (f ServiceFilter) matches(svc models.Service) bool {
	if f.Status != "" && svc.Status != f.Status {
		return false
	}
	if f.FreelancerID != "" && svc.FreelancerID != f.FreelancerID {
		return false
	}
	if !matchQuery(svc.Title, f.Query) {
		return false
	}
	if f.Category != "" && svc.Category != f.Category {
		return false
	}
	if f.MinPrice > 0 && svc.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && svc.Price > f.MaxPrice {
		return false
	}
	return true
}

func (s *memServiceStore) List(ctx context.Context, f ServiceFilter) ([]ServiceSummary, int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	matched := make([]models.Service, 0)
	for _, svc := range s.db.services {
		if f.matches(svc) {
			matched = append(matched, svc)
		}
	}

	switch f.Sort {
	case "price_low":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price_high":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	default:
		sortByCreatedDesc(matched, func(svc models.Service) time.Time { return svc.CreatedAt })
	}

	total := int64(len(matched))
	pageItems := pageSlice(matched, f.Page, f.Limit)

	out := make([]ServiceSummary, 0, len(pageItems))
	for _, svc := range pageItems {
		sum := ServiceSummary{Service: svc}
		if u, ok := s.db.users[svc.FreelancerID]; ok {
			sum.SellerName = u.Name
		}
		sum.AvgRating, sum.ReviewCount, sum.Sold = s.db.serviceStatsLocked(svc.ID)
		out = append(out, sum)
	}
	return out, total, nil
}

func (s *memServiceStore) Categories(ctx context.Context) ([]string, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, svc := range s.db.services {
		if svc.Status != models.ServicePublished || svc.Category == "" || seen[svc.Category] {
			continue
		}
		seen[svc.Category] = true
		categories = append(categories, svc.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *memServiceStore) Stats(ctx context.Context, serviceID string) (ServiceStats, error) {
	nid, err := normalizeNumericID(serviceID)
	if err != nil {
		return ServiceStats{}, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	avg, count, sold := s.db.serviceStatsLocked(nid)
	return ServiceStats{AvgRating: avg, ReviewCount: count, Sold: sold}, nil
}

func (s *memServiceStore) Count(ctx context.Context) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return int64(len(s.db.services)), nil
}

// serviceStatsLocked must be called with db.mu held.
func (db *memoryDB) serviceStatsLocked(serviceID string) (avg float64, count int64, sold int64) {
	var sum int
	for _, r := range db.reviews {
		if r.ServiceID == serviceID {
			sum += r.Rating
			count++
		}
	}
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	for _, o := range db.orders {
		if o.ServiceID == serviceID && o.Status == models.OrderCompleted {
			sold++
		}
	}
	return avg, count, sold
}

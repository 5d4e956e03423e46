package store

import (
	"context"
	"sort"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memJobStore struct {
	db *memoryDB
}

func (s *memJobStore) Create(ctx context.Context, j *models.Job) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	j.ID = s.db.nextID()
	now := time.Now()
	j.CreatedAt, j.UpdatedAt = now, now
	if j.Status == "" {
		j.Status = models.JobOpen
	}
	s.db.jobs[j.ID] = *j
	return nil
}

func (s *memJobStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	nid, err := normalizeNumericID(id)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	j, ok := s.db.jobs[nid]
	if !ok {
		return nil, ErrNotFound
	}
	if u, ok := s.db.users[j.EmployerID]; ok {
		emp := u
		j.Employer = &emp
	}
	return &j, nil
}

func (s *memJobStore) Update(ctx context.Context, j *models.Job) error {
	nid, err := normalizeNumericID(j.ID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.jobs[nid]; !ok {
		return ErrNotFound
	}
	j.UpdatedAt = time.Now()
	stored := *j
	stored.Employer = nil
	s.db.jobs[nid] = stored
	return nil
}

func (f JobFilter) matches(j models.Job) bool {
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.EmployerID != "" && j.EmployerID != f.EmployerID {
		return false
	}
	if !matchQuery(j.Title, f.Query) {
		return false
	}
	if f.Category != "" && j.Category != f.Category {
		return false
	}
	if f.MinBudget > 0 && j.Budget < f.MinBudget {
		return false
	}
	if f.MaxBudget > 0 && j.Budget > f.MaxBudget {
		return false
	}
	return true
}

func (s *memJobStore) List(ctx context.Context, f JobFilter) ([]models.Job, int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	matched := make([]models.Job, 0)
	for _, j := range s.db.jobs {
		if f.matches(j) {
			matched = append(matched, j)
		}
	}

	switch f.Sort {
	case "budget_low":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Budget < matched[j].Budget })
	case "budget_high":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Budget > matched[j].Budget })
	default:
		sortByCreatedDesc(matched, func(j models.Job) time.Time { return j.CreatedAt })
	}

	total := int64(len(matched))
	return pageSlice(matched, f.Page, f.Limit), total, nil
}

func (s *memJobStore) Count(ctx context.Context) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return int64(len(s.db.jobs)), nil
}

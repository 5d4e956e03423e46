package store

import (
	"context"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

type memApplicationStore struct {
	db *memoryDB
}

func (s *memApplicationStore) Create(ctx context.Context, a *models.Application) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.applications {
		if existing.JobID == a.JobID && existing.FreelancerID == a.FreelancerID {
			return ErrDuplicate
		}
	}

	a.ID = s.db.nextID()
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}
	s.db.applications[a.ID] = *a
	return nil
}

func (s *memApplicationStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	nid, err := normalizeNumericID(id)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	a, ok := s.db.applications[nid]
	if !ok {
		return nil, ErrNotFound
	}
	if j, ok := s.db.jobs[a.JobID]; ok {
		job := j
		a.Job = &job
	}
	return &a, nil
}

func (s *memApplicationStore) Update(ctx context.Context, a *models.Application) error {
	nid, err := normalizeNumericID(a.ID)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.applications[nid]; !ok {
		return ErrNotFound
	}
	a.UpdatedAt = time.Now()
	stored := *a
	stored.Job = nil
	stored.Freelancer = nil
	s.db.applications[nid] = stored
	return nil
}

func (s *memApplicationStore) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	nid, err := normalizeNumericID(jobID)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	apps := make([]models.Application, 0)
	for _, a := range s.db.applications {
		if a.JobID != nid {
			continue
		}
		if u, ok := s.db.users[a.FreelancerID]; ok {
			fl := u
			a.Freelancer = &fl
		}
		apps = append(apps, a)
	}
	sortByCreatedDesc(apps, func(a models.Application) time.Time { return a.CreatedAt })
	return apps, nil
}

func (s *memApplicationStore) ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Application, error) {
	nid, err := normalizeNumericID(freelancerID)
	if err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	apps := make([]models.Application, 0)
	for _, a := range s.db.applications {
		if a.FreelancerID != nid {
			continue
		}
		if j, ok := s.db.jobs[a.JobID]; ok {
			job := j
			a.Job = &job
		}
		apps = append(apps, a)
	}
	sortByCreatedDesc(apps, func(a models.Application) time.Time { return a.CreatedAt })
	return apps, nil
}

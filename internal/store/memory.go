package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adityarahman/gighub_be/internal/models"
)

// memoryDB backs the in-memory implementation. Unlike the database-backed
// stores (UUID scheme) it hands out sequential numeric IDs rendered as
// decimal strings, the way the map-based store always has. Each
// implementation rejects the other's scheme with ErrInvalidID.
type memoryDB struct {
	mu  sync.RWMutex
	seq uint64

	users        map[string]models.User
	services     map[string]models.Service
	jobs         map[string]models.Job
	applications map[string]models.Application
	orders       map[string]models.Order
	reviews      map[string]models.Review
	wallet       []models.WalletTransaction
}

// NewMemoryStores builds the map-based store bundle. It is used by tests and
// as a dev backend (STORE_DRIVER=memory) that needs no running database.
func NewMemoryStores() Stores {
	db := &memoryDB{
		users:        make(map[string]models.User),
		services:     make(map[string]models.Service),
		jobs:         make(map[string]models.Job),
		applications: make(map[string]models.Application),
		orders:       make(map[string]models.Order),
		reviews:      make(map[string]models.Review),
	}
	return Stores{
		Users:        &memUserStore{db: db},
		Services:     &memServiceStore{db: db},
		Jobs:         &memJobStore{db: db},
		Applications: &memApplicationStore{db: db},
		Orders:       &memOrderStore{db: db},
		Reviews:      &memReviewStore{db: db},
		Wallet:       &memWalletStore{db: db},
	}
}

// nextID must be called with db.mu held.
func (db *memoryDB) nextID() string {
	db.seq++
	return strconv.FormatUint(db.seq, 10)
}

func normalizeNumericID(id string) (string, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return "", ErrInvalidID
	}
	return strconv.FormatUint(n, 10), nil
}

func matchQuery(title, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

func sortByCreatedDesc[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

func pageSlice[T any](items []T, page, limit int) []T {
	_, limit, offset := normalizePage(page, limit)
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

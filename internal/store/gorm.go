package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewGormStores wires every entity store to the database. IDs in this
// implementation are UUID strings; anything else is rejected up front so a
// malformed path param never reaches the database.
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Users:        &gormUserStore{db: db},
		Services:     &gormServiceStore{db: db},
		Jobs:         &gormJobStore{db: db},
		Applications: &gormApplicationStore{db: db},
		Orders:       &gormOrderStore{db: db},
		Reviews:      &gormReviewStore{db: db},
		Wallet:       &gormWalletStore{db: db},
	}
}

func newUUID() string {
	return uuid.NewString()
}

func normalizeUUID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}

func translateGormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

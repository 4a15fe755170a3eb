package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jwhwang/atmbank/pkg/domain"
)

// mapGormError converts GORM errors to domain errors so database concerns
// stay inside the infrastructure layer. GORM wraps driver errors, so the
// whole chain is checked. notFound is the domain error to use for a missing
// row, which differs per query (unknown card vs unknown account).
func mapGormError(err, notFound error) error {
	if err == nil {
		return nil
	}
	current := err
	for current != nil {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrHistoryIntegrity
		case errors.Is(current, gorm.ErrRecordNotFound):
			return notFound
		}
		current = errors.Unwrap(current)
	}
	return err
}

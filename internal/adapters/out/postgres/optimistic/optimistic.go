// Package optimistic implements the version-stamp check shared by the order and visit
// repositories: a row is written only while its updated_at still holds the value the
// writer observed.
package optimistic

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// Update runs UPDATE ... SET values WHERE id = ? AND updated_at = ? on model's table.
// Zero affected rows means the stamp moved (or the row is gone) and yields
// errs.ConcurrencyConflictError. The caller's transaction decides what to roll back.
func Update(
	ctx context.Context,
	db *gorm.DB,
	model any,
	entity string,
	id int64,
	version time.Time,
	values map[string]any,
) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND updated_at = ?", id, version).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("update %s %d: %w", entity, id, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError(entity, id, version)
	}

	return nil
}

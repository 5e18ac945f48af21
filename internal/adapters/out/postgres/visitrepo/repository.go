package visitrepo

import (
	"context"
	"errors"
	"fmt"

	"fieldservice/internal/adapters/out/postgres/optimistic"
	"fieldservice/internal/core/domain/model/visit"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVisitRepository implements ports.VisitRepository using GORM.
type GormVisitRepository struct {
	db *gorm.DB
}

func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

func (r *GormVisitRepository) Add(ctx context.Context, aggregate *visit.Visit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}

	return aggregate.BindID(dto.ID)
}

func (r *GormVisitRepository) Update(ctx context.Context, aggregate *visit.Visit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return optimistic.Update(ctx, r.db, &VisitDTO{}, "visit", dto.ID, aggregate.Version(), map[string]any{
		"start_at":    dto.StartAt,
		"end_at":      dto.EndAt,
		"is_reviewed": dto.IsReviewed,
		"evaluation":  dto.Evaluation,
		"updated_at":  dto.UpdatedAt,
		"updated_by":  dto.UpdatedBy,
		"deleted_at":  dto.DeletedAt,
	})
}

func (r *GormVisitRepository) Get(ctx context.Context, id int64) (*visit.Visit, error) {
	var dto VisitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("visitID", id)
		}
		return nil, fmt.Errorf("get visit %d: %w", id, err)
	}

	return toDomain(dto)
}

func (r *GormVisitRepository) CountActive(ctx context.Context, orderID int64) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&VisitDTO{}).
		Where("order_id = ? AND deleted_at IS NULL", orderID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count visits of order %d: %w", orderID, err)
	}
	return int(count), nil
}

package technicianrepo

import (
	"context"
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormTechnicianRepository implements ports.TechnicianRepository using GORM.
type GormTechnicianRepository struct {
	db *gorm.DB
}

func NewGormTechnicianRepository(db *gorm.DB) *GormTechnicianRepository {
	return &GormTechnicianRepository{db: db}
}

func (r *GormTechnicianRepository) Add(ctx context.Context, aggregate *technician.Technician) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("dni",
				fmt.Errorf("technician with dni %q already exists", aggregate.DNI()))
		}
		return fmt.Errorf("insert technician: %w", err)
	}

	if err := aggregate.BindID(dto.ID); err != nil {
		return err
	}

	return r.insertAvailabilities(ctx, aggregate)
}

func (r *GormTechnicianRepository) Update(ctx context.Context, aggregate *technician.Technician) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TechnicianDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":       dto.Name,
		"status":     dto.Status,
		"deleted_at": dto.DeletedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("update technician %d: %w", dto.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("technicianID", dto.ID)
	}

	return r.insertAvailabilities(ctx, aggregate)
}

func (r *GormTechnicianRepository) Get(ctx context.Context, id int64) (*technician.Technician, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormTechnicianRepository) GetForUpdate(ctx context.Context, id int64) (*technician.Technician, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTechnicianRepository) GetAllSchedulable(ctx context.Context) ([]*technician.Technician, error) {
	var dtos []TechnicianDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND deleted_at IS NULL", technician.StatusActive).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	if len(dtos) == 0 {
		return []*technician.Technician{}, nil
	}

	ids := make([]int64, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	var availabilityDTOs []AvailabilityDTO
	if err := r.db.WithContext(ctx).
		Where("technician_id IN ?", ids).
		Order("technician_id, start_at").
		Find(&availabilityDTOs).Error; err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}

	byTechnician := make(map[int64][]AvailabilityDTO, len(dtos))
	for _, a := range availabilityDTOs {
		byTechnician[a.TechnicianID] = append(byTechnician[a.TechnicianID], a)
	}

	technicians := make([]*technician.Technician, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto, byTechnician[dto.ID])
		if err != nil {
			return nil, err
		}
		technicians = append(technicians, t)
	}

	return technicians, nil
}

func (r *GormTechnicianRepository) get(ctx context.Context, query *gorm.DB, id int64) (*technician.Technician, error) {
	var dto TechnicianDTO
	if err := query.First(&dto, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("technicianID", id)
		}
		return nil, fmt.Errorf("get technician %d: %w", id, err)
	}

	var availabilities []AvailabilityDTO
	if err := r.db.WithContext(ctx).
		Where("technician_id = ?", id).
		Order("start_at").
		Find(&availabilities).Error; err != nil {
		return nil, fmt.Errorf("get availabilities of technician %d: %w", id, err)
	}

	return toDomain(dto, availabilities)
}

// insertAvailabilities writes the availabilities that have no id yet.
func (r *GormTechnicianRepository) insertAvailabilities(ctx context.Context, aggregate *technician.Technician) error {
	var (
		pending []*technician.Availability
		fresh   []AvailabilityDTO
	)
	for _, a := range aggregate.Availabilities() {
		if a.ID() == 0 {
			pending = append(pending, a)
			fresh = append(fresh, availabilityFromDomain(aggregate.ID(), a))
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&fresh).Error; err != nil {
		return fmt.Errorf("insert availabilities of technician %d: %w", aggregate.ID(), err)
	}

	for i, a := range pending {
		a.BindID(fresh[i].ID)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

package commission

import (
	"context"
	"time"

	"gorm.io/gorm"

	"travel-agency-api/internal/utils"
)

type CommissionRepository interface {
	Create(ctx context.Context, record *Commission) error
	FindAllByUser(ctx context.Context, userID string) ([]Commission, error)
	FindAllRowsByUser(ctx context.Context, userID string) ([]map[string]any, error)
	FindByID(ctx context.Context, id uint64, userID string) (*Commission, error)
	Update(ctx context.Context, id uint64, userID string, fields map[string]any) (*Commission, error)
	Delete(ctx context.Context, id uint64, userID string) error
}

type CommissionRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *CommissionRepositoryImpl {
	return &CommissionRepositoryImpl{db: db}
}

func (r *CommissionRepositoryImpl) Create(ctx context.Context, record *Commission) error {
	record.DateCreated = time.Now().Unix()
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *CommissionRepositoryImpl) FindAllByUser(ctx context.Context, userID string) ([]Commission, error) {
	var commissions []Commission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_created DESC").
		Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	return commissions, nil
}

// FindAllRowsByUser returns the raw column maps, used by the report
// export where rows are translated back to camelCase at the boundary.
func (r *CommissionRepositoryImpl) FindAllRowsByUser(ctx context.Context, userID string) ([]map[string]any, error) {
	var rows []map[string]any
	err := r.db.WithContext(ctx).
		Model(&Commission{}).
		Where("user_id = ?", userID).
		Order("date_created DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CommissionRepositoryImpl) FindByID(ctx context.Context, id uint64, userID string) (*Commission, error) {
	var record Commission
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// columns a partial update may never touch: identity plus the creation
// time snapshot of client and booking details
var protectedColumns = []string{
	"id", "user_id", "date_created",
	"booking_id", "client_id", "client_name", "supplier",
	"booking_travel_date", "confirmation_number", "final_payment_date",
}

func (r *CommissionRepositoryImpl) Update(ctx context.Context, id uint64, userID string, fields map[string]any) (*Commission, error) {
	columns := utils.CamelToSnakeMap(fields)
	for _, col := range protectedColumns {
		delete(columns, col)
	}
	if len(columns) > 0 {
		result := r.db.WithContext(ctx).
			Model(&Commission{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(columns)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id, userID)
}

func (r *CommissionRepositoryImpl) Delete(ctx context.Context, id uint64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Commission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

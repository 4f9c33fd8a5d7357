package client

import (
	"context"
	"time"

	"gorm.io/gorm"

	"travel-agency-api/internal/utils"
)

type ClientRepository interface {
	Create(ctx context.Context, record *Client) error
	FindAllByUser(ctx context.Context, userID string) ([]Client, error)
	FindByID(ctx context.Context, id uint64, userID string) (*Client, error)
	Update(ctx context.Context, id uint64, userID string, fields map[string]any) (*Client, error)
	Delete(ctx context.Context, id uint64, userID string) error
}

type ClientRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *ClientRepositoryImpl {
	return &ClientRepositoryImpl{db: db}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, record *Client) error {
	record.DateCreated = time.Now().Unix()
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ClientRepositoryImpl) FindAllByUser(ctx context.Context, userID string) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_created DESC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepositoryImpl) FindByID(ctx context.Context, id uint64, userID string) (*Client, error) {
	var record Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// immutable columns stripped from every partial update
var protectedColumns = []string{"id", "user_id", "date_created"}

// Update applies a partial update. Field names arrive in camelCase from
// the API payload and are converted to column names before the write.
func (r *ClientRepositoryImpl) Update(ctx context.Context, id uint64, userID string, fields map[string]any) (*Client, error) {
	columns := utils.CamelToSnakeMap(fields)
	for _, col := range protectedColumns {
		delete(columns, col)
	}
	if len(columns) > 0 {
		result := r.db.WithContext(ctx).
			Model(&Client{}).
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

func (r *ClientRepositoryImpl) Delete(ctx context.Context, id uint64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

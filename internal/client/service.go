package client

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/utils"
)

type Service interface {
	CreateClient(ctx context.Context, record *Client) error
	ListClients(ctx context.Context, userID string) ([]Client, error)
	GetClient(ctx context.Context, id uint64, userID string) (*Client, error)
	UpdateClient(ctx context.Context, id uint64, userID string, fields map[string]any) (*Client, error)
	DeleteClient(ctx context.Context, id uint64, userID string) error
}

type DefaultService struct {
	repository ClientRepository
}

func NewService(repository ClientRepository) *DefaultService {
	return &DefaultService{repository: repository}
}

func (s *DefaultService) CreateClient(ctx context.Context, record *Client) error {
	if record.UserID == "" {
		return apperrors.Unauthorized("Missing user", nil)
	}
	if err := s.repository.Create(ctx, record); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ListClients degrades to an empty list when the store fails, so the
// dashboard keeps rendering. The failure is still logged.
func (s *DefaultService) ListClients(ctx context.Context, userID string) ([]Client, error) {
	clients, err := s.repository.FindAllByUser(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] listing clients for user %s: %v", userID, err)
		return []Client{}, nil
	}
	if clients == nil {
		clients = []Client{}
	}
	return clients, nil
}

func (s *DefaultService) GetClient(ctx context.Context, id uint64, userID string) (*Client, error) {
	record, err := s.repository.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Client not found", err)
		}
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

// date fields that may arrive as date strings on partial updates
var dateFields = []string{"paymentDate", "finalPaymentDate"}

func (s *DefaultService) UpdateClient(ctx context.Context, id uint64, userID string, fields map[string]any) (*Client, error) {
	for _, key := range dateFields {
		if raw, ok := fields[key]; ok {
			if ts, ok := utils.ToUnixTimestamp(raw); ok {
				fields[key] = ts
			}
		}
	}
	record, err := s.repository.Update(ctx, id, userID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Client not found", err)
		}
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

func (s *DefaultService) DeleteClient(ctx context.Context, id uint64, userID string) error {
	if err := s.repository.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Client not found", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

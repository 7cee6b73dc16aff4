package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pricing-backend/internal/model"
	"pricing-backend/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username,omitempty"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name,omitempty"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	ListLogs(ctx context.Context, action string, page, limit int) ([]AuditLogResponse, int64, error)
	Write(ctx context.Context, userID, action, entityID, entityName string, details interface{})
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListLogs(ctx context.Context, action string, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, action, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		entry := AuditLogResponse{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		}
		if l.User != nil {
			entry.Username = l.User.Username
		}
		res = append(res, entry)
	}

	return res, total, nil
}

// Write records an audit entry. Best-effort: a failed write never fails the
// operation being audited.
func (s *auditService) Write(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	log := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}

	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err == nil {
			log.UserID = &parsed
		}
	}

	_ = s.repo.Create(ctx, &log)
}

// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"

	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// DashboardStats feeds the admin dashboard cards.
type DashboardStats struct {
	TotalSessions int                       `json:"total_sessions"`
	TotalUnread   int                       `json:"total_unread"`
	CatalogCounts map[model.CatalogKind]int `json:"catalog_counts"`
}

type StatsUseCase interface {
	Totals(ctx context.Context) (*DashboardStats, error)
}

type statsUC struct {
	sessions repository.ChatSessionRepository
	catalog  repository.CatalogRepository
}

func NewStatsUseCase(sessions repository.ChatSessionRepository, catalog repository.CatalogRepository) *statsUC {
	return &statsUC{sessions: sessions, catalog: catalog}
}

func (s *statsUC) Totals(ctx context.Context) (*DashboardStats, error) {
	total, err := s.sessions.CountSessions(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.sessions.SumUnread(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.catalog.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{TotalSessions: total, TotalUnread: unread, CatalogCounts: counts}, nil
}

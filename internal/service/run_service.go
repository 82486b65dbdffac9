// Package service holds the thin business-logic layer between handlers and
// repositories — a pass-through today, the seam where run-triggering policy
// (queueing, concurrency limits) would grow without reshaping the handler.
package service

import (
	"fmt"

	"github.com/nerevar/traclusdl/internal/models"
	"github.com/nerevar/traclusdl/internal/repository"
)

// RunService exposes the run store to handlers without leaking sql.DB.
type RunService struct {
	repo *repository.RunRepository
}

// NewRunService wraps a RunRepository.
func NewRunService(repo *repository.RunRepository) *RunService {
	return &RunService{repo: repo}
}

// Get returns a run by id.
func (s *RunService) Get(id string) (models.Run, error) {
	return s.repo.GetByID(id)
}

// Corridors returns the corridors belonging to a run.
func (s *RunService) Corridors(id string) ([]models.Corridor, error) {
	run, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if run.Status != models.RunStatusCompleted {
		return nil, fmt.Errorf("run %s is %s, not completed", id, run.Status)
	}
	return s.repo.ListCorridors(id)
}

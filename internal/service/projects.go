package service

import (
	"context"
	"fmt"
	"time"

	"github.com/flowspace/flowspace/internal/domain"
)

// ProjectService owns the project lifecycle.
type ProjectService struct {
	projects domain.ProjectRepository

	now func() time.Time
}

func NewProjectService(projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		now:      time.Now,
	}
}

// Create validates and persists a new project. The store assigns the ID.
func (s *ProjectService) Create(ctx context.Context, name, color string) (*domain.Project, error) {
	p, err := domain.NewProject(name, color, s.now())
	if err != nil {
		return nil, fmt.Errorf("service.ProjectService.Create: %w", err)
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("service.ProjectService.Create: %w", err)
	}

	return p, nil
}

// ProjectPatch is a field-wise merge onto an existing project.
type ProjectPatch struct {
	Name  *string
	Color *string
}

// Update merges a patch onto the stored project.
func (s *ProjectService) Update(ctx context.Context, id int64, patch ProjectPatch) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ProjectService.Update: %w", err)
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("service.ProjectService.Update: %w: name is required", domain.ErrValidation)
		}
		p.Name = *patch.Name
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("service.ProjectService.Update: %w", err)
	}

	return p, nil
}

// Delete removes the project. Tasks referencing it are left in place; the
// board and dashboard simply stop resolving the project for them.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ProjectService.Delete: %w", err)
	}
	return nil
}

// Get returns a single project by ID.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ProjectService.Get: %w", err)
	}
	return p, nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ProjectService.List: %w", err)
	}
	return projects, nil
}

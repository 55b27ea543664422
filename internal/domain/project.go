package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	// TaskCount and CompletedCount are denormalized counters maintained
	// best-effort via UpdateTaskCounts. The source of truth for counts is
	// always a fresh aggregation over the task collection.
	TaskCount      int `json:"taskCount"`
	CompletedCount int `json:"completedCount"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewProject builds an unpersisted Project with validated required fields.
// The store assigns the ID on Create.
func NewProject(name, color string, now time.Time) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if color == "" {
		color = "#6B7280"
	}
	return &Project{
		Name:      name,
		Color:     color,
		CreatedAt: now,
	}, nil
}

type ProjectRepository interface {
	GetAll(ctx context.Context) ([]*Project, error)
	GetByID(ctx context.Context, id int64) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id int64) error
	UpdateTaskCounts(ctx context.Context, id int64, taskCount, completedCount int) error
}

// Package memory implements the entity store as mutex-guarded in-process
// slices. It backs tests and the zero-dependency local mode; it is
// interchangeable with the postgres store.
package memory

import "github.com/flowspace/flowspace/internal/domain"

type Store struct {
	tasks    *TaskRepo
	projects *ProjectRepo
}

func New() *Store {
	return &Store{
		tasks:    NewTaskRepo(),
		projects: NewProjectRepo(),
	}
}

func (s *Store) Tasks() domain.TaskRepository       { return s.tasks }
func (s *Store) Projects() domain.ProjectRepository { return s.projects }

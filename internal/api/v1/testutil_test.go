package v1_test

import (
	"context"
	"sync"

	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/service"
)

// ---------------------------------------------------------------------------
// Mock TaskOperations
// ---------------------------------------------------------------------------

type mockTaskOps struct {
	createFunc        func(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)
	createSubtaskFunc func(ctx context.Context, parentTaskID int64, in domain.CreateTaskInput) (*domain.Task, error)
	updateFunc        func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	updateStatusFunc  func(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)
	advanceStatusFunc func(ctx context.Context, id int64) (*domain.Task, error)
	deleteFunc        func(ctx context.Context, id int64) error
	getFunc           func(ctx context.Context, id int64) (*domain.Task, error)
	listFunc          func(ctx context.Context) ([]*domain.Task, error)
	listByProjectFunc func(ctx context.Context, projectID int64) ([]*domain.Task, error)
	searchFunc        func(ctx context.Context, query string) ([]*domain.Task, error)
	withSubtasksFunc  func(ctx context.Context, id int64) (*service.TaskWithSubtasks, error)
	subtasksFunc      func(ctx context.Context, parentTaskID int64) ([]*domain.Task, error)
}

func (m *mockTaskOps) Create(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	return m.createFunc(ctx, in)
}

func (m *mockTaskOps) CreateSubtask(ctx context.Context, parentTaskID int64, in domain.CreateTaskInput) (*domain.Task, error) {
	return m.createSubtaskFunc(ctx, parentTaskID, in)
}

func (m *mockTaskOps) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	return m.updateFunc(ctx, id, patch)
}

func (m *mockTaskOps) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockTaskOps) AdvanceStatus(ctx context.Context, id int64) (*domain.Task, error) {
	return m.advanceStatusFunc(ctx, id)
}

func (m *mockTaskOps) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockTaskOps) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return m.getFunc(ctx, id)
}

func (m *mockTaskOps) List(ctx context.Context) ([]*domain.Task, error) {
	return m.listFunc(ctx)
}

func (m *mockTaskOps) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockTaskOps) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	return m.searchFunc(ctx, query)
}

func (m *mockTaskOps) WithSubtasks(ctx context.Context, id int64) (*service.TaskWithSubtasks, error) {
	return m.withSubtasksFunc(ctx, id)
}

func (m *mockTaskOps) Subtasks(ctx context.Context, parentTaskID int64) ([]*domain.Task, error) {
	return m.subtasksFunc(ctx, parentTaskID)
}

// ---------------------------------------------------------------------------
// Mock ProjectOperations
// ---------------------------------------------------------------------------

type mockProjectOps struct {
	createFunc func(ctx context.Context, name, color string) (*domain.Project, error)
	updateFunc func(ctx context.Context, id int64, patch service.ProjectPatch) (*domain.Project, error)
	deleteFunc func(ctx context.Context, id int64) error
	getFunc    func(ctx context.Context, id int64) (*domain.Project, error)
	listFunc   func(ctx context.Context) ([]*domain.Project, error)
}

func (m *mockProjectOps) Create(ctx context.Context, name, color string) (*domain.Project, error) {
	return m.createFunc(ctx, name, color)
}

func (m *mockProjectOps) Update(ctx context.Context, id int64, patch service.ProjectPatch) (*domain.Project, error) {
	return m.updateFunc(ctx, id, patch)
}

func (m *mockProjectOps) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockProjectOps) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return m.getFunc(ctx, id)
}

func (m *mockProjectOps) List(ctx context.Context) ([]*domain.Project, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock EventPublisher
// ---------------------------------------------------------------------------

type mockPublisher struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
}

func (m *mockPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, channel)
	m.payloads = append(m.payloads, payload)
	return nil
}

func (m *mockPublisher) published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.channels...)
}

// Package board implements the kanban drag-and-drop transition controller.
package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/flowspace/flowspace/internal/domain"
)

// StatusUpdater abstracts the status-only task update for controller
// testing. *service.TaskService satisfies this interface.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)
}

// DragController tracks the single in-flight drag gesture and translates a
// drop into a status update. At most one task is "being dragged" and at most
// one column is the "drag target" at any time; both are presentation-only
// markers and are cleared unconditionally when the drag ends, whatever the
// outcome. Starting a new drag replaces the previous drag token.
type DragController struct {
	updater StatusUpdater

	mu      sync.Mutex
	token   uuid.UUID
	dragged *domain.Task
	target  domain.TaskStatus
}

func NewDragController(updater StatusUpdater) *DragController {
	return &DragController{updater: updater}
}

// Begin starts dragging a task and returns the drag token. Any previous
// drag is implicitly replaced.
func (c *DragController) Begin(t *domain.Task) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = uuid.New()
	c.dragged = t
	c.target = ""
	return c.token
}

// Over marks a column as the current drag target.
func (c *DragController) Over(column domain.TaskStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dragged != nil {
		c.target = column
	}
}

// Leave clears the drag target without ending the drag.
func (c *DragController) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.target = ""
}

// Dragging returns the task currently being dragged, or nil.
func (c *DragController) Dragging() *domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dragged
}

// Target returns the column currently marked as drag target, or "".
func (c *DragController) Target() domain.TaskStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.target
}

// Drop ends the drag on the given column. A drop onto the column matching
// the task's current status is a no-op and issues no store update. The drag
// state is cleared before the store round-trip, so a failed update leaves no
// stale drag marker; the error is returned for the caller to surface.
func (c *DragController) Drop(ctx context.Context, column domain.TaskStatus) (*domain.Task, error) {
	c.mu.Lock()
	dragged := c.dragged
	c.dragged = nil
	c.target = ""
	c.mu.Unlock()

	if dragged == nil || dragged.Status == column {
		return nil, nil
	}

	t, err := c.updater.UpdateStatus(ctx, dragged.ID, column)
	if err != nil {
		return nil, fmt.Errorf("board.Drop: %w", err)
	}
	return t, nil
}

// Cancel ends the drag without a drop.
func (c *DragController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dragged = nil
	c.target = ""
}

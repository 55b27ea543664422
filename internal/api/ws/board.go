package ws

// BoardEvent represents a real-time kanban board update.
type BoardEvent struct {
	Type      string `json:"type"` // "task_created", "task_updated", "task_moved", "task_deleted"
	TaskID    int64  `json:"taskId"`
	ProjectID int64  `json:"projectId"`
	Data      any    `json:"data,omitempty"`
}

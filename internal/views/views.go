// Package views computes derived views over task and project snapshots.
// Every function is pure: deterministic given its inputs, never mutates the
// collections it is handed, and degrades to empty results on empty input.
package views

import (
	"math"
	"sort"
	"time"

	"github.com/flowspace/flowspace/internal/domain"
)

// upcomingWindow is the look-ahead horizon for "upcoming" deadlines.
const upcomingWindow = 7 * 24 * time.Hour

// DefaultDeadlineLimit caps the upcoming-deadlines list on the dashboard.
const DefaultDeadlineLimit = 5

// StatusGroups holds the kanban columns in their fixed order. Only main
// tasks appear; subtasks are excluded from every column.
type StatusGroups struct {
	Todo       []*domain.Task `json:"todo"`
	InProgress []*domain.Task `json:"in-progress"`
	Done       []*domain.Task `json:"done"`
}

// GroupByStatus buckets main tasks by status, preserving their relative
// order within each column.
func GroupByStatus(tasks []*domain.Task) StatusGroups {
	groups := StatusGroups{
		Todo:       make([]*domain.Task, 0),
		InProgress: make([]*domain.Task, 0),
		Done:       make([]*domain.Task, 0),
	}

	for _, t := range tasks {
		if t.IsSubtask() {
			continue
		}
		switch t.Status {
		case domain.TaskStatusTodo:
			groups.Todo = append(groups.Todo, t)
		case domain.TaskStatusInProgress:
			groups.InProgress = append(groups.InProgress, t)
		case domain.TaskStatusDone:
			groups.Done = append(groups.Done, t)
		}
	}

	return groups
}

// GroupByDueDate buckets tasks by the calendar date (YYYY-MM-DD, in the due
// date's own location) they are due. Unscheduled tasks are excluded.
func GroupByDueDate(tasks []*domain.Task) map[string][]*domain.Task {
	grouped := make(map[string][]*domain.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := t.DueDate.Format("2006-01-02")
		grouped[key] = append(grouped[key], t)
	}
	return grouped
}

// Stats is the dashboard aggregate over the full task collection.
type Stats struct {
	TodayCount     int `json:"todayCount"`
	CompletedCount int `json:"completedCount"`
	UpcomingCount  int `json:"upcomingCount"`
	TotalTasks     int `json:"totalTasks"`
}

// DashboardStats computes the dashboard counters for the given wall-clock
// "now". A task due on the current calendar day counts as today regardless
// of status; a task due exactly now is today, not upcoming.
func DashboardStats(tasks []*domain.Task, now time.Time) Stats {
	s := Stats{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.IsDone() {
			s.CompletedCount++
		}
		if t.DueDate == nil {
			continue
		}
		if sameDay(*t.DueDate, now) {
			s.TodayCount++
		}
		if isUpcoming(*t.DueDate, now) {
			s.UpcomingCount++
		}
	}
	return s
}

// DueToday returns the tasks due on the current calendar day, any status.
func DueToday(tasks []*domain.Task, now time.Time) []*domain.Task {
	out := make([]*domain.Task, 0)
	for _, t := range tasks {
		if t.DueDate != nil && sameDay(*t.DueDate, now) {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingDeadlines returns unfinished tasks due strictly within the next
// seven days, soonest first, truncated to limit. A limit <= 0 uses
// DefaultDeadlineLimit.
func UpcomingDeadlines(tasks []*domain.Task, now time.Time, limit int) []*domain.Task {
	if limit <= 0 {
		limit = DefaultDeadlineLimit
	}

	out := make([]*domain.Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil || t.IsDone() {
			continue
		}
		if isUpcoming(*t.DueDate, now) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(*out[j].DueDate)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ProjectSummary is a project decorated with live counts and a completion
// percentage over its main tasks.
type ProjectSummary struct {
	*domain.Project
	LiveTaskCount      int `json:"taskCount"`
	LiveCompletedCount int `json:"completedCount"`
	Progress           int `json:"progress"`
}

// ProjectProgress computes per-project completion over main tasks. Counts
// are aggregated fresh from the task collection; the denormalized counters
// on Project are ignored. A project with no tasks reports zero progress.
func ProjectProgress(projects []*domain.Project, tasks []*domain.Task) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		var total, done int
		for _, t := range tasks {
			if t.IsSubtask() || t.ProjectID != p.ID {
				continue
			}
			total++
			if t.IsDone() {
				done++
			}
		}

		progress := 0
		if total > 0 {
			progress = int(math.Round(float64(done) / float64(total) * 100))
		}

		out = append(out, ProjectSummary{
			Project:            p,
			LiveTaskCount:      total,
			LiveCompletedCount: done,
			Progress:           progress,
		})
	}
	return out
}

// MainTasks returns the tasks with no parent, preserving order.
func MainTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsSubtask() {
			out = append(out, t)
		}
	}
	return out
}

// SubtasksOf returns the subtasks of the given parent, preserving order.
func SubtasksOf(tasks []*domain.Task, parentTaskID int64) []*domain.Task {
	out := make([]*domain.Task, 0)
	for _, t := range tasks {
		if t.ParentTaskID != nil && *t.ParentTaskID == parentTaskID {
			out = append(out, t)
		}
	}
	return out
}

// SubtaskRing is the fractional progress indicator rendered on a main
// task's card.
type SubtaskRing struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// SubtaskProgress summarizes subtask completion for a parent's progress ring.
func SubtaskProgress(subtasks []*domain.Task) SubtaskRing {
	ring := SubtaskRing{Total: len(subtasks)}
	for _, t := range subtasks {
		if t.IsDone() {
			ring.Done++
		}
	}
	if ring.Total > 0 {
		ring.Percent = int(math.Round(float64(ring.Done) / float64(ring.Total) * 100))
	}
	return ring
}

// Filter narrows tasks to those matching a free-text query over
// title/description and, when projectID is non-zero, a project. Used by the
// kanban board's search bar and project selector.
func Filter(tasks []*domain.Task, query string, projectID int64) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.MatchesQuery(query) {
			continue
		}
		if projectID != 0 && t.ProjectID != projectID {
			continue
		}
		out = append(out, t)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isUpcoming(due, now time.Time) bool {
	return due.After(now) && due.Before(now.Add(upcomingWindow))
}

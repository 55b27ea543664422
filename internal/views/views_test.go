package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/views"
)

func task(id int64, status domain.TaskStatus, opts ...func(*domain.Task)) *domain.Task {
	t := &domain.Task{
		ID:        id,
		Title:     "task",
		Status:    status,
		Priority:  domain.TaskPriorityMedium,
		ProjectID: 1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func withDue(due time.Time) func(*domain.Task) {
	return func(t *domain.Task) { t.DueDate = &due }
}

func withParent(parentID int64) func(*domain.Task) {
	return func(t *domain.Task) { t.ParentTaskID = &parentID }
}

func withProject(projectID int64) func(*domain.Task) {
	return func(t *domain.Task) { t.ProjectID = projectID }
}

// ---------------------------------------------------------------------------
// GroupByStatus — kanban grouping exhaustiveness.
// ---------------------------------------------------------------------------

func TestGroupByStatus(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		task(1, domain.TaskStatusTodo),
		task(2, domain.TaskStatusDone),
		task(3, domain.TaskStatusInProgress),
		task(4, domain.TaskStatusTodo),
		task(5, domain.TaskStatusDone, withParent(2)), // subtask, excluded
	}

	groups := views.GroupByStatus(tasks)

	// Every main task appears exactly once; subtasks never appear.
	assert.Len(t, groups.Todo, 2)
	assert.Len(t, groups.InProgress, 1)
	assert.Len(t, groups.Done, 1)
	assert.Equal(t, 4, len(groups.Todo)+len(groups.InProgress)+len(groups.Done))

	// Relative order within a column is preserved.
	assert.Equal(t, int64(1), groups.Todo[0].ID)
	assert.Equal(t, int64(4), groups.Todo[1].ID)
}

func TestGroupByStatus_Empty(t *testing.T) {
	t.Parallel()

	groups := views.GroupByStatus(nil)
	assert.Empty(t, groups.Todo)
	assert.Empty(t, groups.InProgress)
	assert.Empty(t, groups.Done)
}

// ---------------------------------------------------------------------------
// GroupByDueDate — date bucketing exactness across midnight.
// ---------------------------------------------------------------------------

func TestGroupByDueDate(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		task(1, domain.TaskStatusTodo, withDue(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))),
		task(2, domain.TaskStatusTodo, withDue(time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC))),
		task(3, domain.TaskStatusTodo, withDue(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))),
		task(4, domain.TaskStatusTodo), // unscheduled, excluded
	}

	grouped := views.GroupByDueDate(tasks)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["2024-06-01"], 2)
	require.Len(t, grouped["2024-06-02"], 1)
	assert.Equal(t, int64(1), grouped["2024-06-01"][0].ID)
	assert.Equal(t, int64(2), grouped["2024-06-01"][1].ID)
	assert.Equal(t, int64(3), grouped["2024-06-02"][0].ID)
}

// ---------------------------------------------------------------------------
// DashboardStats — today/upcoming boundaries.
// ---------------------------------------------------------------------------

func TestDashboardStats(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tasks := []*domain.Task{
		task(1, domain.TaskStatusTodo, withDue(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))),   // today (earlier than now)
		task(2, domain.TaskStatusDone, withDue(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))),  // today and done
		task(3, domain.TaskStatusTodo, withDue(time.Date(2024, 6, 8, 11, 59, 0, 0, time.UTC))), // upcoming (inside window)
		task(4, domain.TaskStatusTodo, withDue(time.Date(2024, 6, 8, 12, 1, 0, 0, time.UTC))),  // outside window
		task(5, domain.TaskStatusTodo),                                                          // unscheduled
	}

	stats := views.DashboardStats(tasks, now)

	assert.Equal(t, 2, stats.TodayCount, "today counts regardless of status")
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 2, stats.UpcomingCount, "today's later task is also inside the 7-day window")
	assert.Equal(t, 5, stats.TotalTasks)
}

func TestDashboardStats_DueExactlyNowIsTodayNotUpcoming(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tasks := []*domain.Task{task(1, domain.TaskStatusTodo, withDue(now))}

	stats := views.DashboardStats(tasks, now)

	assert.Equal(t, 1, stats.TodayCount)
	assert.Equal(t, 0, stats.UpcomingCount)
}

func TestDashboardStats_Empty(t *testing.T) {
	t.Parallel()

	stats := views.DashboardStats(nil, time.Now())
	assert.Zero(t, stats.TodayCount)
	assert.Zero(t, stats.CompletedCount)
	assert.Zero(t, stats.UpcomingCount)
	assert.Zero(t, stats.TotalTasks)
}

// ---------------------------------------------------------------------------
// UpcomingDeadlines — window, sort, limit, done exclusion.
// ---------------------------------------------------------------------------

func TestUpcomingDeadlines(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tasks := []*domain.Task{
		task(1, domain.TaskStatusTodo, withDue(now.Add(72*time.Hour))),
		task(2, domain.TaskStatusTodo, withDue(now.Add(24*time.Hour))),
		task(3, domain.TaskStatusDone, withDue(now.Add(48*time.Hour))), // done, excluded
		task(4, domain.TaskStatusTodo, withDue(now.Add(8*24*time.Hour))), // outside window
		task(5, domain.TaskStatusTodo, withDue(now.Add(-time.Hour))),     // past
	}

	deadlines := views.UpcomingDeadlines(tasks, now, 5)

	require.Len(t, deadlines, 2)
	assert.Equal(t, int64(2), deadlines[0].ID, "soonest first")
	assert.Equal(t, int64(1), deadlines[1].ID)
}

func TestUpcomingDeadlines_Limit(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tasks := make([]*domain.Task, 0, 8)
	for i := range 8 {
		tasks = append(tasks, task(int64(i+1), domain.TaskStatusTodo, withDue(now.Add(time.Duration(i+1)*time.Hour))))
	}

	assert.Len(t, views.UpcomingDeadlines(tasks, now, 3), 3)
	assert.Len(t, views.UpcomingDeadlines(tasks, now, 0), views.DefaultDeadlineLimit)
}

// ---------------------------------------------------------------------------
// ProjectProgress — rounding and the zero-task guard.
// ---------------------------------------------------------------------------

func TestProjectProgress(t *testing.T) {
	t.Parallel()

	projects := []*domain.Project{
		{ID: 1, Name: "One third"},
		{ID: 2, Name: "Empty"},
	}
	tasks := []*domain.Task{
		task(1, domain.TaskStatusDone, withProject(1)),
		task(2, domain.TaskStatusTodo, withProject(1)),
		task(3, domain.TaskStatusInProgress, withProject(1)),
		task(4, domain.TaskStatusDone, withProject(1), withParent(1)), // subtask, not counted
	}

	progress := views.ProjectProgress(projects, tasks)
	require.Len(t, progress, 2)

	assert.Equal(t, 33, progress[0].Progress, "round(33.33) == 33")
	assert.Equal(t, 3, progress[0].LiveTaskCount)
	assert.Equal(t, 1, progress[0].LiveCompletedCount)

	assert.Equal(t, 0, progress[1].Progress, "no division by zero")
	assert.Equal(t, 0, progress[1].LiveTaskCount)
}

func TestProjectProgress_IgnoresStaleDenormalizedCounters(t *testing.T) {
	t.Parallel()

	projects := []*domain.Project{{ID: 1, Name: "Stale", TaskCount: 99, CompletedCount: 42}}
	tasks := []*domain.Task{
		task(1, domain.TaskStatusDone, withProject(1)),
		task(2, domain.TaskStatusDone, withProject(1)),
	}

	progress := views.ProjectProgress(projects, tasks)
	require.Len(t, progress, 1)
	assert.Equal(t, 100, progress[0].Progress)
	assert.Equal(t, 2, progress[0].LiveTaskCount)
	assert.Equal(t, 2, progress[0].LiveCompletedCount)
}

// ---------------------------------------------------------------------------
// MainTasks / SubtasksOf — partition completeness.
// ---------------------------------------------------------------------------

func TestPartition(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		task(1, domain.TaskStatusTodo),
		task(2, domain.TaskStatusTodo, withParent(1)),
		task(3, domain.TaskStatusTodo),
		task(4, domain.TaskStatusDone, withParent(1)),
		task(5, domain.TaskStatusDone, withParent(3)),
	}

	main := views.MainTasks(tasks)
	require.Len(t, main, 2)

	// Union of main tasks and all subtask groups covers the collection and
	// the parts are disjoint.
	seen := make(map[int64]int)
	for _, m := range main {
		seen[m.ID]++
	}
	for _, m := range main {
		for _, sub := range views.SubtasksOf(tasks, m.ID) {
			seen[sub.ID]++
		}
	}

	assert.Len(t, seen, len(tasks))
	for id, count := range seen {
		assert.Equal(t, 1, count, "task %d appears exactly once", id)
	}
}

func TestSubtasksOf_UnknownParent(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{task(1, domain.TaskStatusTodo)}
	assert.Empty(t, views.SubtasksOf(tasks, 999))
}

// ---------------------------------------------------------------------------
// SubtaskProgress — the card progress ring.
// ---------------------------------------------------------------------------

func TestSubtaskProgress(t *testing.T) {
	t.Parallel()

	subtasks := []*domain.Task{
		task(1, domain.TaskStatusDone, withParent(9)),
		task(2, domain.TaskStatusTodo, withParent(9)),
		task(3, domain.TaskStatusDone, withParent(9)),
	}

	ring := views.SubtaskProgress(subtasks)
	assert.Equal(t, 2, ring.Done)
	assert.Equal(t, 3, ring.Total)
	assert.Equal(t, 67, ring.Percent)

	empty := views.SubtaskProgress(nil)
	assert.Zero(t, empty.Percent)
}

// ---------------------------------------------------------------------------
// Filter — board search and project selector.
// ---------------------------------------------------------------------------

func TestFilter(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		{ID: 1, Title: "Design homepage", Description: "", ProjectID: 1},
		{ID: 2, Title: "Fix login", Description: "broken redesign of session flow", ProjectID: 2},
		{ID: 3, Title: "Ship release", Description: "", ProjectID: 1},
	}

	byQuery := views.Filter(tasks, "design", 0)
	require.Len(t, byQuery, 2, "matches title or description")

	byProject := views.Filter(tasks, "", 1)
	require.Len(t, byProject, 2)

	both := views.Filter(tasks, "design", 1)
	require.Len(t, both, 1)
	assert.Equal(t, int64(1), both[0].ID)

	assert.Len(t, views.Filter(tasks, "", 0), 3, "no filters returns everything")
}

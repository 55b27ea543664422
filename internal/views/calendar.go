package views

import (
	"time"

	"github.com/flowspace/flowspace/internal/domain"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    string         `json:"date"` // YYYY-MM-DD
	InMonth bool           `json:"inMonth"`
	IsToday bool           `json:"isToday"`
	Tasks   []*domain.Task `json:"tasks"`
}

// MonthGrid returns the calendar cells for a month view: every day from the
// Sunday on or before the 1st through the Saturday on or after the last day,
// so the grid is always whole weeks. Each cell carries the tasks due that
// day, bucketed by local date.
func MonthGrid(year int, month time.Month, tasks []*domain.Task, now time.Time) []CalendarDay {
	loc := now.Location()
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := startOfWeek(monthStart)
	gridEnd := endOfWeek(monthEnd)

	byDate := GroupByDueDate(tasks)

	days := make([]CalendarDay, 0, 42)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		cell := CalendarDay{
			Date:    key,
			InMonth: d.Month() == month,
			IsToday: sameDay(d, now),
			Tasks:   byDate[key],
		}
		if cell.Tasks == nil {
			cell.Tasks = make([]*domain.Task, 0)
		}
		days = append(days, cell)
	}
	return days
}

// startOfWeek returns the Sunday on or before t, at midnight.
func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// endOfWeek returns the Saturday on or after t, at midnight.
func endOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, int(time.Saturday-t.Weekday()))
}

// Package views composes read-only projections of a task collection: the
// searched list, the three-lane board and the analytics summary. Everything
// here is a pure function of its inputs.
package views

import (
	"strings"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
)

// Filter keeps the tasks whose title or description contains term, ignoring
// case. An empty term returns the input unchanged.
func Filter(tasks []entities.Task, term string) []entities.Task {
	if term == "" {
		return tasks
	}

	needle := strings.ToLower(term)
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Board holds the three status lanes.
type Board struct {
	Todo       []entities.Task `json:"todo"`
	InProgress []entities.Task `json:"inProgress"`
	Completed  []entities.Task `json:"completed"`
}

// GroupByStatus partitions tasks into the three lanes, keeping source order
// within each lane. A task with an unrecognised status lands in Todo so that
// every task sits in exactly one lane.
func GroupByStatus(tasks []entities.Task) Board {
	board := Board{
		Todo:       []entities.Task{},
		InProgress: []entities.Task{},
		Completed:  []entities.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case entities.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, t)
		case entities.TaskStatusCompleted:
			board.Completed = append(board.Completed, t)
		default:
			board.Todo = append(board.Todo, t)
		}
	}
	return board
}

// Lane returns the tasks of one lane.
func (b Board) Lane(status entities.TaskStatus) []entities.Task {
	switch status {
	case entities.TaskStatusInProgress:
		return b.InProgress
	case entities.TaskStatusCompleted:
		return b.Completed
	default:
		return b.Todo
	}
}

func (b Board) Len() int {
	return len(b.Todo) + len(b.InProgress) + len(b.Completed)
}

// Analytics summarises a task collection. Each of the three breakdowns sums
// to Total.
type Analytics struct {
	Total      int                         `json:"total"`
	Completed  int                         `json:"completed"`
	InProgress int                         `json:"inProgress"`
	// Todo matches the Todo lane of GroupByStatus, so it also counts tasks
	// whose status is not one of the known three.
	Todo       int                         `json:"todo"`
	Overdue    int                         `json:"overdue"`
	ByStatus   map[entities.TaskStatus]int `json:"byStatus"`
	ByPriority map[entities.Priority]int   `json:"byPriority"`
	ByCategory map[entities.Category]int   `json:"byCategory"`

	// CompletionRate and StatusShare are percentages, 0 for an empty collection.
	CompletionRate float64                         `json:"completionRate"`
	StatusShare    map[entities.TaskStatus]float64 `json:"statusShare"`
}

// Summarize counts tasks by status, priority and category. now decides which
// tasks are overdue.
func Summarize(tasks []entities.Task, now time.Time) Analytics {
	a := Analytics{
		Total:       len(tasks),
		ByStatus:    make(map[entities.TaskStatus]int, len(entities.TaskStatuses)),
		ByPriority:  make(map[entities.Priority]int, len(entities.Priorities)),
		ByCategory:  make(map[entities.Category]int, len(entities.Categories)),
		StatusShare: make(map[entities.TaskStatus]float64, len(entities.TaskStatuses)),
	}
	for _, s := range entities.TaskStatuses {
		a.ByStatus[s] = 0
	}
	for _, p := range entities.Priorities {
		a.ByPriority[p] = 0
	}
	for _, c := range entities.Categories {
		a.ByCategory[c] = 0
	}

	for i := range tasks {
		t := &tasks[i]
		a.ByStatus[t.Status]++
		a.ByPriority[t.Priority]++
		a.ByCategory[t.Category]++
		if t.IsOverdue(now) {
			a.Overdue++
		}
	}

	a.Completed = a.ByStatus[entities.TaskStatusCompleted]
	a.InProgress = a.ByStatus[entities.TaskStatusInProgress]
	a.Todo = a.Total - a.Completed - a.InProgress

	for status, n := range a.ByStatus {
		a.StatusShare[status] = percent(n, a.Total)
	}
	a.CompletionRate = percent(a.Completed, a.Total)
	return a
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

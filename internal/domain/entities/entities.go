package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
	ErrInvalidTimeSpent  = errors.New("time spent cannot be negative")
	ErrEmptyTitle        = errors.New("title is required")
	ErrInvalidDeadline   = errors.New("invalid deadline")
	ErrEmptyURL          = errors.New("url is required")
	ErrUnauthenticated   = errors.New("no authenticated user")
)

// DateLayout is the plain-date form accepted for deadlines.
const DateLayout = "2006-01-02"

// Enums and types
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the board lanes in display order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

type Category string

const (
	CategoryDesign    Category = "design"
	CategoryResearch  Category = "research"
	CategoryDocuments Category = "documents"
)

var Categories = []Category{CategoryDesign, CategoryResearch, CategoryDocuments}

// Task is a trackable unit of work owned by exactly one user. ID, CreatedAt
// and UpdatedAt are assigned by the store of record.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Category    Category   `json:"category"`
	Status      TaskStatus `json:"status"`
	Deadline    time.Time  `json:"deadline"`
	Progress    int        `json:"progress"`
	TimeSpent   int        `json:"timeSpent"`
	Attachments []string   `json:"attachments"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskDraft carries the client-settable fields of a new task.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Category    Category   `json:"category"`
	Status      TaskStatus `json:"status"`
	Deadline    time.Time  `json:"deadline"`
	Progress    int        `json:"progress"`
	TimeSpent   int        `json:"timeSpent"`
	Attachments []string   `json:"attachments"`
}

// TaskPatch is a sparse update: nil fields are left untouched.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	Category    *Category   `json:"category,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Progress    *int        `json:"progress,omitempty"`
	TimeSpent   *int        `json:"timeSpent,omitempty"`
	Attachments *[]string   `json:"attachments,omitempty"`
}

// NewTaskDraft returns a draft holding the client-side defaults, with the
// deadline set to UTC midnight of now's calendar date.
func NewTaskDraft(now time.Time) TaskDraft {
	return TaskDraft{
		Priority:    PriorityMedium,
		Category:    CategoryDocuments,
		Status:      TaskStatusTodo,
		Deadline:    MidnightUTC(now),
		Attachments: []string{},
	}
}

// MidnightUTC keeps the calendar date of t and drops the clock.
func MidnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDeadline turns a plain date into UTC midnight of that date. Full
// RFC 3339 timestamps are accepted and truncated the same way.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, value)
	}
	return MidnightUTC(t.UTC()), nil
}

// Business logic methods for Task

func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline.Before(now) && t.Status != TaskStatusCompleted
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	t.Attachments = cloneStrings(t.Attachments)
	return t
}

// Draft returns the client-settable part of t.
func (t *Task) Draft() TaskDraft {
	return TaskDraft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    t.Category,
		Status:      t.Status,
		Deadline:    t.Deadline,
		Progress:    t.Progress,
		TimeSpent:   t.TimeSpent,
		Attachments: cloneStrings(t.Attachments),
	}
}

func (d *TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return validateFields(d.Priority, d.Category, d.Status, d.Progress, d.TimeSpent)
}

// Diff returns the patch that turns original into d. Only differing fields
// are set.
func (d *TaskDraft) Diff(original Task) TaskPatch {
	var p TaskPatch
	if d.Title != original.Title {
		p.Title = ptr(d.Title)
	}
	if d.Description != original.Description {
		p.Description = ptr(d.Description)
	}
	if d.Priority != original.Priority {
		p.Priority = ptr(d.Priority)
	}
	if d.Category != original.Category {
		p.Category = ptr(d.Category)
	}
	if d.Status != original.Status {
		p.Status = ptr(d.Status)
	}
	if !d.Deadline.Equal(original.Deadline) {
		p.Deadline = ptr(d.Deadline)
	}
	if d.Progress != original.Progress {
		p.Progress = ptr(d.Progress)
	}
	if d.TimeSpent != original.TimeSpent {
		p.TimeSpent = ptr(d.TimeSpent)
	}
	if !equalStrings(d.Attachments, original.Attachments) {
		a := cloneStrings(d.Attachments)
		p.Attachments = &a
	}
	return p
}

// StatusPatch is the single-field patch issued by a board move.
func StatusPatch(status TaskStatus) TaskPatch {
	return TaskPatch{Status: &status}
}

func (p *TaskPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields names the columns the patch touches, in a fixed order.
func (p *TaskPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Priority != nil {
		fields = append(fields, "priority")
	}
	if p.Category != nil {
		fields = append(fields, "category")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Deadline != nil {
		fields = append(fields, "deadline")
	}
	if p.Progress != nil {
		fields = append(fields, "progress")
	}
	if p.TimeSpent != nil {
		fields = append(fields, "time_spent")
	}
	if p.Attachments != nil {
		fields = append(fields, "attachments")
	}
	return fields
}

func (p *TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	if p.Category != nil && !p.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *p.Category)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return ErrInvalidProgress
	}
	if p.TimeSpent != nil && *p.TimeSpent < 0 {
		return ErrInvalidTimeSpent
	}
	return nil
}

// Apply returns t with the patch applied. Identity and timestamps are not
// touched; the store of record refreshes them.
func (p *TaskPatch) Apply(t Task) Task {
	t = t.Clone()
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.TimeSpent != nil {
		t.TimeSpent = *p.TimeSpent
	}
	if p.Attachments != nil {
		t.Attachments = cloneStrings(*p.Attachments)
	}
	return t
}

// Utility methods
func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDesign, CategoryResearch, CategoryDocuments:
		return true
	default:
		return false
	}
}

func validateFields(priority Priority, category Category, status TaskStatus, progress, timeSpent int) error {
	if !priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	if timeSpent < 0 {
		return ErrInvalidTimeSpent
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

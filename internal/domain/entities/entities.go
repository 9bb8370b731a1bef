package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrBoardNotFound    = errors.New("board not found")
	ErrFolderNotFound   = errors.New("folder not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrEditLimitReached = errors.New("task edit limit reached")
)

// MaxTaskEdits is the number of field edits a task accepts over its
// lifetime. Status changes and deletion are not counted against it.
const MaxTaskEdits = 3

// ValidationError rejects an operation without changing state. Rule
// identifies the violated constraint, Message is safe to show to users.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for a named rule.
func NewValidationError(rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a gateway failure. It is never fatal: the
// in-memory mutation it follows stays applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Enums and types
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// User identifies which persisted store to load and save. The
// directory of users is fixed and seeded at startup.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	JoinDate    time.Time `json:"join_date"`
}

// Store is the root of one user's board tree. Sibling order is
// insertion order; nothing here re-sorts.
type Store struct {
	Boards []*Board `json:"boards"`
}

// NewStore returns an empty store with an initialized board list.
func NewStore() *Store {
	return &Store{Boards: []*Board{}}
}

// Board is the top-level grouping entity.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Folders   []*Folder `json:"folders"`
}

// Folder groups tasks within a board.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Tasks     []*Task   `json:"tasks"`
}

// Task is the leaf work item.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     Priority   `json:"priority"`
	Status       Status     `json:"status"`
	StartAt      time.Time  `json:"start_at"`
	DueAt        time.Time  `json:"due_at"`
	CreatedAt    time.Time  `json:"created_at"`
	EditCount    int        `json:"edit_count"`
	LastEditedAt *time.Time `json:"last_edited_at"`
}

// NewID generates a fresh globally unique entity id.
func NewID() string {
	return uuid.New().String()
}

// NameEqual compares entity names the way sibling-uniqueness does.
func NameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Store lookups. Each returns the entity together with its direct
// ancestors so callers never walk the tree themselves.

// FindBoard returns the board with the given id.
func (s *Store) FindBoard(boardID string) (*Board, error) {
	for _, b := range s.Boards {
		if b.ID == boardID {
			return b, nil
		}
	}
	return nil, ErrBoardNotFound
}

// FindFolder returns the folder with the given id and its board.
func (s *Store) FindFolder(folderID string) (*Folder, *Board, error) {
	for _, b := range s.Boards {
		for _, f := range b.Folders {
			if f.ID == folderID {
				return f, b, nil
			}
		}
	}
	return nil, nil, ErrFolderNotFound
}

// FindTask scans the full tree for the task with the given id and
// returns it with its folder and board.
func (s *Store) FindTask(taskID string) (*Task, *Folder, *Board, error) {
	for _, b := range s.Boards {
		for _, f := range b.Folders {
			for _, t := range f.Tasks {
				if t.ID == taskID {
					return t, f, b, nil
				}
			}
		}
	}
	return nil, nil, nil, ErrTaskNotFound
}

// HasBoardNamed reports whether a board already uses the name.
func (s *Store) HasBoardNamed(name string) bool {
	for _, b := range s.Boards {
		if NameEqual(b.Name, name) {
			return true
		}
	}
	return false
}

// HasFolderNamed reports whether the board already has a folder with
// the name.
func (b *Board) HasFolderNamed(name string) bool {
	for _, f := range b.Folders {
		if NameEqual(f.Name, name) {
			return true
		}
	}
	return false
}

// HasTaskTitled reports whether the folder already has a task with the
// title, ignoring the task with excludeID so a task may keep its own
// title across an edit.
func (f *Folder) HasTaskTitled(title, excludeID string) bool {
	for _, t := range f.Tasks {
		if t.ID == excludeID {
			continue
		}
		if NameEqual(t.Title, title) {
			return true
		}
	}
	return false
}

// Business logic methods for Task

// CanEdit reports whether the task still accepts field edits. Status
// changes and deletion remain allowed once the limit is reached.
func (t *Task) CanEdit() bool {
	return t.EditCount < MaxTaskEdits
}

// EditsRemaining returns how many field edits the task has left.
func (t *Task) EditsRemaining() int {
	if t.EditCount >= MaxTaskEdits {
		return 0
	}
	return MaxTaskEdits - t.EditCount
}

// IsOverdue reports whether the task's due moment has passed.
func (t *Task) IsOverdue(now time.Time) bool {
	return !now.Before(t.DueAt) && t.Status != StatusCompleted
}

// SortTasksByPriority orders tasks by priority rank descending,
// keeping store order on ties. It sorts a copy; sibling collections in
// the store itself always keep insertion order.
func SortTasksByPriority(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

// Utility methods

// Rank maps a priority to its sort weight: urgent=4 down to low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

package ports

import (
	"context"

	"github.com/taskboard/core/internal/domain/countdown"
	"github.com/taskboard/core/internal/domain/entities"
)

// SearchScope restricts matching to one entity kind, or "all".
type SearchScope string

const (
	ScopeAll     SearchScope = "all"
	ScopeBoards  SearchScope = "boards"
	ScopeFolders SearchScope = "folders"
	ScopeTasks   SearchScope = "tasks"
)

func (s SearchScope) IsValid() bool {
	switch s {
	case ScopeAll, ScopeBoards, ScopeFolders, ScopeTasks:
		return true
	default:
		return false
	}
}

// SessionService owns the login/logout lifecycle. A session binds one
// user to one loaded store; logging the same user in again supersedes
// the previous session.
type SessionService interface {
	Login(ctx context.Context, req LoginRequest) (*SessionInfo, error)
	Logout(ctx context.Context, sessionID string) error
	Resolve(sessionID string) (*SessionInfo, error)
}

// StoreService is the full mutation and lookup surface over a
// session's board tree. Every mutation persists the store afterward
// and is the only permitted way to change entities.
type StoreService interface {
	Tree(sessionID string) (*entities.Store, error)
	AddBoard(ctx context.Context, sessionID string, req CreateBoardRequest) (*entities.Board, error)
	DeleteBoard(ctx context.Context, sessionID, boardID string) error
	AddFolder(ctx context.Context, sessionID, boardID string, req CreateFolderRequest) (*entities.Folder, error)
	DeleteFolder(ctx context.Context, sessionID, boardID, folderID string) error
	AddTask(ctx context.Context, sessionID, boardID, folderID string, req TaskFields) (*entities.Task, error)
	EditTask(ctx context.Context, sessionID, taskID string, req TaskFields) (*entities.Task, error)
	DeleteTask(ctx context.Context, sessionID, taskID string) error
	SetTaskStatus(ctx context.Context, sessionID, taskID string, status entities.Status) (*entities.Task, error)
	FindBoard(sessionID, boardID string) (*entities.Board, error)
	FindFolder(sessionID, folderID string) (*FolderLocation, error)
	FindTask(sessionID, taskID string) (*TaskLocation, error)
	TaskCountdown(sessionID, taskID string) (*TaskCountdown, error)
}

// SearchService filters a session's tree and annotates match text.
type SearchService interface {
	Search(sessionID string, req SearchRequest) (*SearchResult, error)
	Highlight(text, query string) string
}

// SessionInfo is the caller-visible view of an active session.
type SessionInfo struct {
	ID   string         `json:"id"`
	User *entities.User `json:"user"`
}

// FolderLocation is a folder together with its owning board.
type FolderLocation struct {
	Folder *entities.Folder `json:"folder"`
	Board  *entities.Board  `json:"board"`
}

// TaskLocation is a task together with its direct ancestors.
type TaskLocation struct {
	Task   *entities.Task   `json:"task"`
	Folder *entities.Folder `json:"folder"`
	Board  *entities.Board  `json:"board"`
}

// TaskCountdown pairs a task with its current remaining time.
type TaskCountdown struct {
	Task      *entities.Task      `json:"task"`
	Countdown countdown.Countdown `json:"countdown"`
}

// SearchResult is a filtered copy of the tree plus the ids of the
// ancestor entities the presentation layer must show expanded for the
// matches to be visible. The slices are de-duplicated and sorted.
type SearchResult struct {
	Store         *entities.Store `json:"store"`
	ExpandBoards  []string        `json:"expand_boards"`
	ExpandFolders []string        `json:"expand_folders"`
}

// Request types

// LoginRequest identifies a directory user by display name,
// case-insensitively.
type LoginRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}

// CreateBoardRequest carries the fields for a new board.
type CreateBoardRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateFolderRequest carries the fields for a new folder.
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

// TaskFields carries the editable fields of a task. Dates and times
// arrive as separate values ("2006-01-02" and "15:04") and are
// combined during validation. The same shape serves create and edit.
type TaskFields struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	StartDate   string `json:"start_date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`
	DueTime     string `json:"due_time" validate:"required"`
}

// SetStatusRequest changes a task's status. Status changes are a
// separate channel from field edits and never consume an edit.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SearchRequest filters the tree by a case-insensitive substring.
type SearchRequest struct {
	Query string      `json:"query"`
	Scope SearchScope `json:"scope"`
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/taskboard/core/internal/domain/countdown"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

const dateTimeLayout = "2006-01-02 15:04"

// StoreService is the only mutation path into a session's board tree.
// Every mutation validates, applies, persists and then notifies the
// session's change stream. A failed save is reported as a warning
// event and logged; the in-memory mutation stands.
type StoreService struct {
	sessions *SessionService
	gateway  ports.StoreGateway
	logger   *logger.Logger
}

// NewStoreService creates a new store service
func NewStoreService(sessions *SessionService, gateway ports.StoreGateway, logger *logger.Logger) *StoreService {
	return &StoreService{
		sessions: sessions,
		gateway:  gateway,
		logger:   logger,
	}
}

// Tree returns the session's full board tree.
func (s *StoreService) Tree(sessionID string) (*entities.Store, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.Store, nil
}

// AddBoard appends a new board to the end of the board sequence.
func (s *StoreService) AddBoard(ctx context.Context, sessionID string, req ports.CreateBoardRequest) (*entities.Board, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entities.NewValidationError("board.name_required", "board name is required")
	}
	if sess.Store.HasBoardNamed(name) {
		return nil, entities.NewValidationError("board.name_taken", "a board named %q already exists", name)
	}

	board := &entities.Board{
		ID:        entities.NewID(),
		Name:      name,
		CreatedAt: time.Now(),
		Folders:   []*entities.Folder{},
	}
	sess.Store.Boards = append(sess.Store.Boards, board)

	s.commit(ctx, sess, "add_board", board.ID)
	return board, nil
}

// DeleteBoard removes a board and all of its folders and tasks.
func (s *StoreService) DeleteBoard(ctx context.Context, sessionID, boardID string) error {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i, b := range sess.Store.Boards {
		if b.ID == boardID {
			sess.Store.Boards = append(sess.Store.Boards[:i], sess.Store.Boards[i+1:]...)
			s.commit(ctx, sess, "delete_board", boardID)
			return nil
		}
	}
	return entities.ErrBoardNotFound
}

// AddFolder appends a new folder to a board.
func (s *StoreService) AddFolder(ctx context.Context, sessionID, boardID string, req ports.CreateFolderRequest) (*entities.Folder, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	board, err := sess.Store.FindBoard(boardID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entities.NewValidationError("folder.name_required", "folder name is required")
	}
	if board.HasFolderNamed(name) {
		return nil, entities.NewValidationError("folder.name_taken", "a folder named %q already exists on this board", name)
	}

	folder := &entities.Folder{
		ID:        entities.NewID(),
		Name:      name,
		CreatedAt: time.Now(),
		Tasks:     []*entities.Task{},
	}
	board.Folders = append(board.Folders, folder)

	s.commit(ctx, sess, "add_folder", folder.ID)
	return folder, nil
}

// DeleteFolder removes a folder and its tasks from a board.
func (s *StoreService) DeleteFolder(ctx context.Context, sessionID, boardID, folderID string) error {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	board, err := sess.Store.FindBoard(boardID)
	if err != nil {
		return err
	}

	for i, f := range board.Folders {
		if f.ID == folderID {
			board.Folders = append(board.Folders[:i], board.Folders[i+1:]...)
			s.commit(ctx, sess, "delete_folder", folderID)
			return nil
		}
	}
	return entities.ErrFolderNotFound
}

// AddTask creates a task in a folder with status pending and a fresh
// edit budget.
func (s *StoreService) AddTask(ctx context.Context, sessionID, boardID, folderID string, req ports.TaskFields) (*entities.Task, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	board, err := sess.Store.FindBoard(boardID)
	if err != nil {
		return nil, err
	}
	folder, _, err := sess.Store.FindFolder(folderID)
	if err != nil {
		return nil, err
	}
	if !boardOwnsFolder(board, folder) {
		return nil, entities.ErrFolderNotFound
	}

	fields, err := validateTaskFields(folder, req, "")
	if err != nil {
		return nil, err
	}

	task := &entities.Task{
		ID:          entities.NewID(),
		Title:       fields.title,
		Description: fields.description,
		Priority:    fields.priority,
		Status:      entities.StatusPending,
		StartAt:     fields.startAt,
		DueAt:       fields.dueAt,
		CreatedAt:   time.Now(),
		EditCount:   0,
	}
	folder.Tasks = append(folder.Tasks, task)

	s.commit(ctx, sess, "add_task", task.ID)
	return task, nil
}

// EditTask overwrites a task's fields, consuming one of its three
// edits. The proposed values are validated in full before anything is
// committed, so a rejected edit leaves the task untouched.
func (s *StoreService) EditTask(ctx context.Context, sessionID, taskID string, req ports.TaskFields) (*entities.Task, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	task, folder, _, err := sess.Store.FindTask(taskID)
	if err != nil {
		return nil, err
	}
	if !task.CanEdit() {
		return nil, entities.ErrEditLimitReached
	}

	fields, err := validateTaskFields(folder, req, task.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Title = fields.title
	task.Description = fields.description
	task.Priority = fields.priority
	task.StartAt = fields.startAt
	task.DueAt = fields.dueAt
	task.EditCount++
	task.LastEditedAt = &now

	s.commit(ctx, sess, "edit_task", task.ID)
	return task, nil
}

// DeleteTask removes a task, located by a full tree scan.
func (s *StoreService) DeleteTask(ctx context.Context, sessionID, taskID string) error {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, b := range sess.Store.Boards {
		for _, f := range b.Folders {
			for i, t := range f.Tasks {
				if t.ID == taskID {
					f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
					s.commit(ctx, sess, "delete_task", taskID)
					return nil
				}
			}
		}
	}
	return entities.ErrTaskNotFound
}

// SetTaskStatus changes a task's status. This channel is never limited
// by the edit count.
func (s *StoreService) SetTaskStatus(ctx context.Context, sessionID, taskID string, status entities.Status) (*entities.Task, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !status.IsValid() {
		return nil, entities.NewValidationError("task.status_invalid", "unknown status %q", status)
	}

	task, _, _, err := sess.Store.FindTask(taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status

	s.commit(ctx, sess, "set_task_status", task.ID)
	return task, nil
}

// FindBoard returns a board by id.
func (s *StoreService) FindBoard(sessionID, boardID string) (*entities.Board, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.Store.FindBoard(boardID)
}

// FindFolder returns a folder and its owning board.
func (s *StoreService) FindFolder(sessionID, folderID string) (*ports.FolderLocation, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	folder, board, err := sess.Store.FindFolder(folderID)
	if err != nil {
		return nil, err
	}
	return &ports.FolderLocation{Folder: folder, Board: board}, nil
}

// FindTask returns a task and its direct ancestors.
func (s *StoreService) FindTask(sessionID, taskID string) (*ports.TaskLocation, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	task, folder, board, err := sess.Store.FindTask(taskID)
	if err != nil {
		return nil, err
	}
	return &ports.TaskLocation{Task: task, Folder: folder, Board: board}, nil
}

// TaskCountdown returns the task with its current remaining time.
func (s *StoreService) TaskCountdown(sessionID, taskID string) (*ports.TaskCountdown, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	task, _, _, err := sess.Store.FindTask(taskID)
	if err != nil {
		return nil, err
	}
	return &ports.TaskCountdown{
		Task:      task,
		Countdown: countdown.Until(task.DueAt, time.Now()),
	}, nil
}

// commit persists the mutated store and schedules the coalesced
// change notification. The session lock is held by the caller. A save
// failure is non-fatal: the mutation stays applied in memory, the
// user is warned through the event stream.
func (s *StoreService) commit(ctx context.Context, sess *Session, op, entityID string) {
	if err := s.gateway.Save(ctx, sess.User.ID, sess.Store); err != nil {
		perr := &entities.PersistenceError{Op: op, Err: err}
		s.logger.LogPersistenceFailure(sess.User.ID, op, err)
		sess.emitLocked(Event{Type: EventPersistenceWarning, Message: perr.Error()})
	} else {
		s.logger.LogStoreMutation(sess.User.ID, op, entityID)
	}
	sess.NotifyChanged()
}

func boardOwnsFolder(board *entities.Board, folder *entities.Folder) bool {
	for _, f := range board.Folders {
		if f.ID == folder.ID {
			return true
		}
	}
	return false
}

// taskFields is the validated, parsed form of ports.TaskFields.
type taskFields struct {
	title       string
	description string
	priority    entities.Priority
	startAt     time.Time
	dueAt       time.Time
}

// validateTaskFields checks the constraints shared by create and edit
// against the proposed values: required fields, parseable date/time
// pairs, start not after due, and a title unused by any sibling other
// than the task itself.
func validateTaskFields(folder *entities.Folder, req ports.TaskFields, excludeTaskID string) (*taskFields, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entities.NewValidationError("task.title_required", "task title is required")
	}
	if folder.HasTaskTitled(title, excludeTaskID) {
		return nil, entities.NewValidationError("task.title_taken", "a task titled %q already exists in this folder", title)
	}

	required := []struct{ rule, value string }{
		{"task.start_date_required", req.StartDate},
		{"task.start_time_required", req.StartTime},
		{"task.due_date_required", req.DueDate},
		{"task.due_time_required", req.DueTime},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, entities.NewValidationError(r.rule, "start and due date/time are required")
		}
	}

	startAt, err := parseDateTime(req.StartDate, req.StartTime)
	if err != nil {
		return nil, entities.NewValidationError("task.start_invalid", "invalid start date/time: %v", err)
	}
	dueAt, err := parseDateTime(req.DueDate, req.DueTime)
	if err != nil {
		return nil, entities.NewValidationError("task.due_invalid", "invalid due date/time: %v", err)
	}
	if startAt.After(dueAt) {
		return nil, entities.NewValidationError("task.start_after_due", "start date/time must not be after due date/time")
	}

	priority := entities.PriorityMedium
	if p := strings.TrimSpace(req.Priority); p != "" {
		priority = entities.Priority(strings.ToLower(p))
		if !priority.IsValid() {
			return nil, entities.NewValidationError("task.priority_invalid", "unknown priority %q", req.Priority)
		}
	}

	return &taskFields{
		title:       title,
		description: strings.TrimSpace(req.Description),
		priority:    priority,
		startAt:     startAt,
		dueAt:       dueAt,
	}, nil
}

func parseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), time.Local)
}

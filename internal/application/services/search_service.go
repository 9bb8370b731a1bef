package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// Highlight markers wrapped around every match in annotated text.
const (
	highlightOpen  = "<mark>"
	highlightClose = "</mark>"
)

// SearchService filters a session's tree by case-insensitive
// substring and reports which ancestors must be shown expanded for
// the matches to be visible.
type SearchService struct {
	sessions *SessionService
	logger   *logger.Logger
}

// NewSearchService creates a new search service
func NewSearchService(sessions *SessionService, logger *logger.Logger) *SearchService {
	return &SearchService{
		sessions: sessions,
		logger:   logger,
	}
}

// Search filters the session's tree. An empty or whitespace query
// returns the full tree with empty expansion sets.
//
// A board matching by name carries its entire subtree unfiltered and
// is not force-expanded. A folder matching by name carries all of its
// tasks and force-expands itself and its board. A task match is only
// evaluated when its folder did not match by name; it includes the
// task, marks the folder matched and force-expands folder and board.
func (s *SearchService) Search(sessionID string, req ports.SearchRequest) (*ports.SearchResult, error) {
	sess, err := s.sessions.session(sessionID)
	if err != nil {
		return nil, err
	}

	scope := req.Scope
	if scope == "" {
		scope = ports.ScopeAll
	}
	if !scope.IsValid() {
		return nil, entities.NewValidationError("search.scope_invalid", "unknown search scope %q", req.Scope)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(req.Query))
	if query == "" {
		return &ports.SearchResult{
			Store:         sess.Store,
			ExpandBoards:  []string{},
			ExpandFolders: []string{},
		}, nil
	}

	result := entities.NewStore()
	expandBoards := map[string]struct{}{}
	expandFolders := map[string]struct{}{}

	for _, board := range sess.Store.Boards {
		boardMatches := (scope == ports.ScopeAll || scope == ports.ScopeBoards) &&
			containsFold(board.Name, query)
		if boardMatches {
			// A name-matched board is included with its subtree
			// unfiltered and is not auto-expanded.
			result.Boards = append(result.Boards, board)
			continue
		}
		if scope == ports.ScopeBoards {
			continue
		}

		filtered := &entities.Board{
			ID:        board.ID,
			Name:      board.Name,
			CreatedAt: board.CreatedAt,
			Folders:   []*entities.Folder{},
		}

		for _, folder := range board.Folders {
			folderMatches := (scope == ports.ScopeAll || scope == ports.ScopeFolders) &&
				containsFold(folder.Name, query)
			if folderMatches {
				// A name-matched folder keeps all of its tasks.
				filtered.Folders = append(filtered.Folders, folder)
				expandBoards[board.ID] = struct{}{}
				expandFolders[folder.ID] = struct{}{}
				continue
			}
			if scope == ports.ScopeFolders {
				continue
			}

			matched := matchingTasks(folder.Tasks, query)
			if len(matched) == 0 {
				continue
			}
			filtered.Folders = append(filtered.Folders, &entities.Folder{
				ID:        folder.ID,
				Name:      folder.Name,
				CreatedAt: folder.CreatedAt,
				Tasks:     matched,
			})
			expandBoards[board.ID] = struct{}{}
			expandFolders[folder.ID] = struct{}{}
		}

		if len(filtered.Folders) > 0 {
			result.Boards = append(result.Boards, filtered)
		}
	}

	return &ports.SearchResult{
		Store:         result,
		ExpandBoards:  sortedKeys(expandBoards),
		ExpandFolders: sortedKeys(expandFolders),
	}, nil
}

// Highlight wraps every case-insensitive occurrence of query in text
// with the highlight markers. The query is escaped before being used
// as a pattern, so characters with regexp meaning match literally.
func (s *SearchService) Highlight(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return text
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return highlightOpen + m + highlightClose
	})
}

// matchingTasks returns the tasks whose title, description, priority
// or status contains the query.
func matchingTasks(tasks []*entities.Task, query string) []*entities.Task {
	var matched []*entities.Task
	for _, t := range tasks {
		if containsFold(t.Title, query) ||
			containsFold(t.Description, query) ||
			containsFold(string(t.Priority), query) ||
			containsFold(string(t.Status), query) {
			matched = append(matched, t)
		}
	}
	return matched
}

// containsFold reports whether text contains the already-lowercased
// query, case-insensitively.
func containsFold(text, query string) bool {
	return strings.Contains(strings.ToLower(text), query)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

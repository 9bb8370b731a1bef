package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// searchFixture builds a two-board tree:
//
//	Work
//	  Sprint: "Fix login bug" (urgent), "Write report" (low)
//	  Backlog: "Refactor search" (medium)
//	Home
//	  Chores: "Buy milk" (low)
func searchFixture(t *testing.T) (*SearchService, *StoreService, string, map[string]string) {
	t.Helper()

	sessions, store, _, sid := newTestStack(t)
	search := NewSearchService(sessions, logger.Nop())
	ctx := context.Background()
	ids := map[string]string{}

	work, err := store.AddBoard(ctx, sid, ports.CreateBoardRequest{Name: "Work"})
	require.NoError(t, err)
	ids["work"] = work.ID

	sprint, err := store.AddFolder(ctx, sid, work.ID, ports.CreateFolderRequest{Name: "Sprint"})
	require.NoError(t, err)
	ids["sprint"] = sprint.ID

	backlog, err := store.AddFolder(ctx, sid, work.ID, ports.CreateFolderRequest{Name: "Backlog"})
	require.NoError(t, err)
	ids["backlog"] = backlog.ID

	home, err := store.AddBoard(ctx, sid, ports.CreateBoardRequest{Name: "Home"})
	require.NoError(t, err)
	ids["home"] = home.ID

	chores, err := store.AddFolder(ctx, sid, home.ID, ports.CreateFolderRequest{Name: "Chores"})
	require.NoError(t, err)
	ids["chores"] = chores.ID

	add := func(boardID, folderID, title, priority string) {
		fields := validTask(title)
		fields.Priority = priority
		_, err := store.AddTask(ctx, sid, boardID, folderID, fields)
		require.NoError(t, err)
	}
	add(work.ID, sprint.ID, "Fix login bug", "urgent")
	add(work.ID, sprint.ID, "Write report", "low")
	add(work.ID, backlog.ID, "Refactor search", "medium")
	add(home.ID, chores.ID, "Buy milk", "low")

	return search, store, sid, ids
}

func TestSearchEmptyQueryReturnsFullTree(t *testing.T) {
	search, _, sid, _ := searchFixture(t)

	result, err := search.Search(sid, ports.SearchRequest{Query: "   "})
	require.NoError(t, err)

	assert.Len(t, result.Store.Boards, 2)
	assert.Empty(t, result.ExpandBoards)
	assert.Empty(t, result.ExpandFolders)
}

func TestSearchTaskMatchExpandsAncestors(t *testing.T) {
	search, _, sid, ids := searchFixture(t)

	result, err := search.Search(sid, ports.SearchRequest{Query: "LOGIN"})
	require.NoError(t, err)

	require.Len(t, result.Store.Boards, 1)
	board := result.Store.Boards[0]
	assert.Equal(t, ids["work"], board.ID)
	require.Len(t, board.Folders, 1)
	folder := board.Folders[0]
	assert.Equal(t, ids["sprint"], folder.ID)
	require.Len(t, folder.Tasks, 1)
	assert.Equal(t, "Fix login bug", folder.Tasks[0].Title)

	assert.Equal(t, []string{ids["work"]}, result.ExpandBoards)
	assert.Equal(t, []string{ids["sprint"]}, result.ExpandFolders)
}

func TestSearchMatchesPriorityAndStatus(t *testing.T) {
	search, _, sid, ids := searchFixture(t)

	result, err := search.Search(sid, ports.SearchRequest{Query: "urgent"})
	require.NoError(t, err)
	require.Len(t, result.Store.Boards, 1)
	require.Len(t, result.Store.Boards[0].Folders, 1)
	require.Len(t, result.Store.Boards[0].Folders[0].Tasks, 1)
	assert.Equal(t, "Fix login bug", result.Store.Boards[0].Folders[0].Tasks[0].Title)

	// All tasks start pending, so a status query matches every folder.
	result, err = search.Search(sid, ports.SearchRequest{Query: "pending"})
	require.NoError(t, err)
	assert.Len(t, result.Store.Boards, 2)
	assert.ElementsMatch(t, []string{ids["home"], ids["work"]}, result.ExpandBoards)
}

func TestSearchBoardMatchKeepsSubtreeUnfiltered(t *testing.T) {
	search, _, sid, ids := searchFixture(t)

	result, err := search.Search(sid, ports.SearchRequest{Query: "work"})
	require.NoError(t, err)

	require.Len(t, result.Store.Boards, 1)
	board := result.Store.Boards[0]
	assert.Equal(t, ids["work"], board.ID)
	assert.Len(t, board.Folders, 2, "a name-matched board carries all folders")
	assert.Len(t, board.Folders[0].Tasks, 2, "its tasks are not filtered")

	// Matching by board name does not force expansion.
	assert.Empty(t, result.ExpandBoards)
	assert.Empty(t, result.ExpandFolders)
}

func TestSearchFolderMatchKeepsAllTasks(t *testing.T) {
	search, _, sid, ids := searchFixture(t)

	result, err := search.Search(sid, ports.SearchRequest{Query: "sprint"})
	require.NoError(t, err)

	require.Len(t, result.Store.Boards, 1)
	require.Len(t, result.Store.Boards[0].Folders, 1)
	folder := result.Store.Boards[0].Folders[0]
	assert.Equal(t, ids["sprint"], folder.ID)
	assert.Len(t, folder.Tasks, 2, "a name-matched folder keeps every task")

	assert.Equal(t, []string{ids["work"]}, result.ExpandBoards)
	assert.Equal(t, []string{ids["sprint"]}, result.ExpandFolders)
}

func TestSearchScopes(t *testing.T) {
	search, _, sid, ids := searchFixture(t)

	// "or" appears in the board "Work", the folder "Chores" and the
	// tasks "Write report" and "Refactor search". Scopes narrow which
	// of those levels may match.
	result, err := search.Search(sid, ports.SearchRequest{Query: "or", Scope: ports.ScopeBoards})
	require.NoError(t, err)
	require.Len(t, result.Store.Boards, 1)
	assert.Equal(t, ids["work"], result.Store.Boards[0].ID)

	result, err = search.Search(sid, ports.SearchRequest{Query: "or", Scope: ports.ScopeFolders})
	require.NoError(t, err)
	require.Len(t, result.Store.Boards, 1)
	assert.Equal(t, ids["home"], result.Store.Boards[0].ID)
	require.Len(t, result.Store.Boards[0].Folders, 1)
	assert.Equal(t, ids["chores"], result.Store.Boards[0].Folders[0].ID)

	result, err = search.Search(sid, ports.SearchRequest{Query: "or", Scope: ports.ScopeTasks})
	require.NoError(t, err)
	require.Len(t, result.Store.Boards, 1)
	assert.Equal(t, ids["work"], result.Store.Boards[0].ID)
	assert.Len(t, result.Store.Boards[0].Folders, 2)

	_, err = search.Search(sid, ports.SearchRequest{Query: "or", Scope: ports.SearchScope("everything")})
	assert.Error(t, err)
}

func TestSearchNoMatches(t *testing.T) {
	search, _, sid, _ := searchFixture(t)

	result, err := search.Search(sid, ports.SearchRequest{Query: "zzz-nothing"})
	require.NoError(t, err)
	assert.Empty(t, result.Store.Boards)
	assert.Empty(t, result.ExpandBoards)
	assert.Empty(t, result.ExpandFolders)
}

func TestHighlight(t *testing.T) {
	search := NewSearchService(nil, logger.Nop())

	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"case-insensitive", "Buy milk", "MILK", "Buy <mark>milk</mark>"},
		{"multiple matches", "milk and more milk", "milk", "<mark>milk</mark> and more <mark>milk</mark>"},
		{"keeps original casing", "Fix Login bug", "login", "Fix <mark>Login</mark> bug"},
		{"empty query unchanged", "Buy milk", "", "Buy milk"},
		{"no match unchanged", "Buy milk", "bread", "Buy milk"},
		{"regexp metacharacters are literal", "cost (a+b)", "(a+b)", "cost <mark>(a+b)</mark>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Highlight(tt.text, tt.query))
		})
	}
}

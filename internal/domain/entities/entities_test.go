package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 4, PriorityUrgent.Rank())
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("bogus").Rank())
}

func TestSortTasksByPriority(t *testing.T) {
	tasks := []*Task{
		{ID: "a", Priority: PriorityLow},
		{ID: "b", Priority: PriorityUrgent},
		{ID: "c", Priority: PriorityMedium},
		{ID: "d", Priority: PriorityUrgent},
	}

	sorted := SortTasksByPriority(tasks)

	// Descending by rank, stable on ties: b before d.
	ids := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)

	// Store order untouched.
	assert.Equal(t, "a", tasks[0].ID)
}

func TestTaskCanEdit(t *testing.T) {
	task := &Task{}
	for i := 0; i < MaxTaskEdits; i++ {
		assert.True(t, task.CanEdit())
		task.EditCount++
	}
	assert.False(t, task.CanEdit())
	assert.Equal(t, 0, task.EditsRemaining())
}

func TestNameEqual(t *testing.T) {
	assert.True(t, NameEqual("Work", "work"))
	assert.True(t, NameEqual("  Work ", "WORK"))
	assert.False(t, NameEqual("Work", "Works"))
}

func TestStoreLookups(t *testing.T) {
	task := &Task{ID: "t1", Title: "Buy milk"}
	folder := &Folder{ID: "f1", Name: "Errands", Tasks: []*Task{task}}
	board := &Board{ID: "b1", Name: "Home", Folders: []*Folder{folder}}
	store := &Store{Boards: []*Board{board}}

	gotBoard, err := store.FindBoard("b1")
	require.NoError(t, err)
	assert.Equal(t, board, gotBoard)

	gotFolder, gotParent, err := store.FindFolder("f1")
	require.NoError(t, err)
	assert.Equal(t, folder, gotFolder)
	assert.Equal(t, board, gotParent)

	gotTask, gotFolder, gotBoard, err := store.FindTask("t1")
	require.NoError(t, err)
	assert.Equal(t, task, gotTask)
	assert.Equal(t, folder, gotFolder)
	assert.Equal(t, board, gotBoard)

	_, err = store.FindBoard("nope")
	assert.ErrorIs(t, err, ErrBoardNotFound)
	_, _, err = store.FindFolder("nope")
	assert.ErrorIs(t, err, ErrFolderNotFound)
	_, _, _, err = store.FindTask("nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestHasTaskTitledExcludesSelf(t *testing.T) {
	folder := &Folder{Tasks: []*Task{
		{ID: "t1", Title: "Buy milk"},
		{ID: "t2", Title: "Walk dog"},
	}}

	assert.True(t, folder.HasTaskTitled("buy MILK", ""))
	// A task renaming to its own title is not a duplicate.
	assert.False(t, folder.HasTaskTitled("Buy milk", "t1"))
	assert.True(t, folder.HasTaskTitled("Buy milk", "t2"))
}

func TestStoreJSONRoundTrip(t *testing.T) {
	edited := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := &Store{Boards: []*Board{
		{
			ID:        "b1",
			Name:      "Home",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Folders: []*Folder{
				{
					ID:        "f1",
					Name:      "Errands",
					CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
					Tasks: []*Task{
						{
							ID:           "t1",
							Title:        "Buy milk",
							Priority:     PriorityHigh,
							Status:       StatusActive,
							StartAt:      time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
							DueAt:        time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
							CreatedAt:    time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
							EditCount:    2,
							LastEditedAt: &edited,
						},
						{ID: "t2", Title: "Walk dog", Priority: PriorityLow, Status: StatusPending},
					},
				},
			},
		},
		{ID: "b2", Name: "Work", Folders: []*Folder{}},
	}}

	raw, err := json.Marshal(store)
	require.NoError(t, err)

	var decoded Store
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, store, &decoded)
}

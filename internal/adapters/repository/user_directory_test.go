package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
)

func TestStaticUserDirectory(t *testing.T) {
	dir, err := NewStaticUserDirectory([]config.SeedUser{
		{ID: "u-ariana", DisplayName: "Ariana", JoinDate: "2023-03-15"},
		{ID: "u-parsa", DisplayName: "Parsa", JoinDate: "2023-06-01"},
	})
	require.NoError(t, err)

	user, err := dir.FindByDisplayName("ariana")
	require.NoError(t, err)
	assert.Equal(t, "u-ariana", user.ID)
	assert.Equal(t, 2023, user.JoinDate.Year())

	user, err = dir.FindByDisplayName("  Parsa  ")
	require.NoError(t, err)
	assert.Equal(t, "u-parsa", user.ID)

	_, err = dir.FindByDisplayName("Nobody")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	assert.Len(t, dir.List(), 2)
}

func TestStaticUserDirectoryRejectsBadSeeds(t *testing.T) {
	_, err := NewStaticUserDirectory([]config.SeedUser{
		{ID: "", DisplayName: "Ariana", JoinDate: "2023-03-15"},
	})
	assert.Error(t, err)

	_, err = NewStaticUserDirectory([]config.SeedUser{
		{ID: "u-ariana", DisplayName: "Ariana", JoinDate: "15/03/2023"},
	})
	assert.Error(t, err)
}

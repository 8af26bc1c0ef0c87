package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"besfit/internal/database"
	"besfit/internal/models"
	"besfit/internal/tracker"
)

func newRepo(t *testing.T) (*SnapshotRepository, uint) {
	t.Helper()
	db := database.OpenForTest(t)
	u := models.User{FirstName: "Ada", LastName: "L", Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return NewSnapshotRepository(db), u.ID
}

func TestLoadMissingSnapshot(t *testing.T) {
	repo, id := newRepo(t)
	_, _, err := repo.LoadSnapshot(context.Background(), id)
	assert.ErrorIs(t, err, tracker.ErrSnapshotNotFound)
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	repo, id := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, id, []byte(`{"waterCount":1}`), 1))
	require.NoError(t, repo.SaveSnapshot(ctx, id, []byte(`{"waterCount":2}`), 2))

	data, version, err := repo.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"waterCount":2}`, string(data))
	assert.Equal(t, uint64(2), version)

	var count int64
	require.NoError(t, repo.DB.Model(&models.DaySnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveSnapshotSkipsStaleVersion(t *testing.T) {
	repo, id := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, id, []byte(`{"waterCount":5}`), 5))
	require.NoError(t, repo.SaveSnapshot(ctx, id, []byte(`{"waterCount":3}`), 3))

	data, version, err := repo.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"waterCount":5}`, string(data))
	assert.Equal(t, uint64(5), version)
}

func TestSessionRoundTripThroughRepository(t *testing.T) {
	repo, id := newRepo(t)
	ctx := context.Background()

	m := tracker.NewManager(repo, tracker.DefaultProfile(), tracker.BodyLimits{}, nil)
	s, err := m.Session(ctx, id)
	require.NoError(t, err)
	require.NoError(t, s.SetWater(6))
	m.Flush()
	require.NoError(t, s.LastPersistError())

	reloaded, err := tracker.NewManager(repo, tracker.DefaultProfile(), tracker.BodyLimits{}, nil).Session(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.Summary().WaterCount)
}

package manifest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveAndLoad(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	m := sampleManifest("run-1", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	require.NoError(t, store.SaveRun(ctx, m))

	loaded, err := store.LoadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.RunID)
	assert.Equal(t, "Datas", loaded.DataRoot)
	assert.True(t, m.GeneratedAt.Equal(loaded.GeneratedAt))
	assert.Equal(t, m.Tables, loaded.Tables)
}

func TestStoreSaveDuplicateRun(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	m := sampleManifest("run-1", time.Now().UTC())

	require.NoError(t, store.SaveRun(ctx, m))
	assert.ErrorContains(t, store.SaveRun(ctx, m), "failed to save run run-1")
}

func TestStoreLatestRuns(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, sampleManifest("run-old", base)))
	require.NoError(t, store.SaveRun(ctx, sampleManifest("run-new", base.Add(2*time.Hour))))
	require.NoError(t, store.SaveRun(ctx, sampleManifest("run-mid", base.Add(time.Hour))))

	runs, err := store.LatestRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-mid", runs[1].ID)
	assert.Equal(t, 2, runs[0].TableCount)

	runs, err = store.LatestRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestStoreLoadMissingRun(t *testing.T) {
	store := setupStore(t)

	_, err := store.LoadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreEmptyRun(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, New("Datas", nil)))
	runs, err := store.LatestRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	loaded, err := store.LoadRun(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Tables)
	assert.Empty(t, loaded.Tables)
}

func TestStoreQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT (.+) FROM `import_runs`").WillReturnError(errors.New("connection lost"))

	_, err := store.LatestRuns(context.Background(), 5)
	assert.ErrorContains(t, err, "failed to list runs")
	assert.ErrorContains(t, err, "connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLoadRunQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT (.+) FROM `import_runs`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.LoadRun(context.Background(), "run-1")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Persistence {
	t.Helper()

	disk, err := Load(Settings{Path: t.TempDir(), Store: DriverDiskv})
	require.NoError(t, err)

	db, err := OpenSQLite(context.Background(), Settings{Path: t.TempDir(), Store: DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Persistence{
		DriverDiskv:  disk,
		DriverSQLite: db,
	}
}

func TestPersistenceLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first, err := p.Create(ctx, Fields{Title: "  buy milk ", Month: "1", Year: "2024"})
			require.NoError(t, err)
			assert.Equal(t, "buy milk", first.Title)
			assert.False(t, first.Completed)
			assert.True(t, first.Saved())

			second, err := p.Create(ctx, Fields{Title: "file taxes"})
			require.NoError(t, err)
			assert.Greater(t, second.ID, first.ID)

			all, err := p.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, first.ID, all[0].ID)
			assert.Equal(t, "1/2024", all[0].DueDate())

			toggled, err := p.ToggleCompleted(ctx, first.ID)
			require.NoError(t, err)
			assert.True(t, toggled.Completed)

			updated, err := p.Update(ctx, first.ID, Fields{Title: "buy oat milk", Month: "2", Year: "2024"})
			require.NoError(t, err)
			assert.Equal(t, "buy oat milk", updated.Title)
			assert.Equal(t, "2/2024", updated.DueDate())
			assert.True(t, updated.Completed, "update keeps the completed flag")

			read, err := p.Read(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, read)

			require.NoError(t, p.Delete(ctx, second.ID))
			_, err = p.Read(ctx, second.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			third, err := p.Create(ctx, Fields{Title: "call mom"})
			require.NoError(t, err)
			assert.Greater(t, third.ID, second.ID, "ids are never reused")
		})
	}
}

func TestPersistenceMissing(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Read(ctx, 42)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = p.Update(ctx, 42, Fields{Title: "x"})
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = p.ToggleCompleted(ctx, 42)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, p.Delete(ctx, 42), ErrNotFound)
		})
	}
}

func TestPersistenceRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Create(ctx, Fields{Title: "   "})
			assert.ErrorIs(t, err, ErrInvalid)
			_, err = p.Create(ctx, Fields{Title: "x", Month: "13", Year: "2024"})
			assert.ErrorIs(t, err, ErrInvalid)

			all, err := p.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestPersistenceNormalizesMonth(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			padded, err := p.Create(ctx, Fields{Title: "pay rent", Month: "01", Year: "2024"})
			require.NoError(t, err)
			plain, err := p.Create(ctx, Fields{Title: "buy milk", Month: "1", Year: "2024"})
			require.NoError(t, err)
			assert.Equal(t, "1/2024", padded.DueDate())
			assert.Equal(t, plain.DueDate(), padded.DueDate())

			updated, err := p.Update(ctx, plain.ID, Fields{Title: "buy milk", Month: "007", Year: "2024"})
			require.NoError(t, err)
			assert.Equal(t, "7", updated.Month)

			_, err = p.Create(ctx, Fields{Title: "x", Month: "00", Year: "2024"})
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestFieldsValidate(t *testing.T) {
	tests := map[string]struct {
		fields Fields
		ok     bool
	}{
		"title only":       {Fields{Title: "a"}, true},
		"month and year":   {Fields{Title: "a", Month: "12", Year: "24"}, true},
		"month only":       {Fields{Title: "a", Month: "3"}, true},
		"blank title":      {Fields{Title: " "}, false},
		"month zero":       {Fields{Title: "a", Month: "0", Year: "2024"}, false},
		"non numeric year": {Fields{Title: "a", Month: "1", Year: "soon"}, false},
		"oversized year":   {Fields{Title: "a", Month: "1", Year: "800000000000000000"}, false},
		"padded month":     {Fields{Title: "a", Month: "01", Year: "2024"}, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.fields.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	p, err := Open(ctx, Settings{Path: t.TempDir(), Store: DriverDiskv})
	require.NoError(t, err)
	assert.IsType(t, &persistence{}, p)

	p, err = Open(ctx, Settings{Path: t.TempDir(), Store: DriverSQLite})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, p)
	require.NoError(t, p.(*SQLite).Close())

	_, err = Open(ctx, Settings{Path: t.TempDir(), Store: DriverHTTP})
	assert.Error(t, err)
}

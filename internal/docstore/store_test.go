package docstore_test

import (
	"context"
	"testing"

	"github.com/mauv0809/cricscore/internal/database"
	"github.com/mauv0809/cricscore/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns every Store implementation that can run without network
// access.
func backends(t *testing.T) map[string]docstore.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return map[string]docstore.Store{
		"memory": docstore.NewMemory(),
		"sql":    docstore.NewSQL(db),
	}
}

func TestStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Set(ctx, "coach_data/c1/players/Raj", map[string]any{
				"role":       "Batsman",
				"efficiency": 0,
				"matches": map[string]any{
					"m1": map[string]any{"runs": 12},
				},
			})
			require.NoError(t, err)

			got, err := store.Get(ctx, "coach_data/c1/players/Raj")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{
				"role":       "Batsman",
				"efficiency": 0.0,
				"matches": map[string]any{
					"m1": map[string]any{"runs": 12.0},
				},
			}, got)

			leaf, err := store.Get(ctx, "coach_data/c1/players/Raj/role")
			require.NoError(t, err)
			assert.Equal(t, "Batsman", leaf)

			collection, err := store.Get(ctx, "coach_data/c1/players")
			require.NoError(t, err)
			assert.Contains(t, collection, "Raj")
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Get(ctx, "coach_data/nobody/players")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, store.Set(ctx, "a/b", "leaf"))
			got, err = store.Get(ctx, "a/b/c")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_SetReplacesSubtree(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "p/m1", map[string]any{"runs": 1, "fours": 2}))
			require.NoError(t, store.Set(ctx, "p/m1", map[string]any{"runs": 5}))

			got, err := store.Get(ctx, "p/m1")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"runs": 5.0}, got)
		})
	}
}

func TestStore_UpdateMerges(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "p", map[string]any{
				"role":       "Bowler",
				"total_runs": 0,
				"matches":    map[string]any{"m1": map[string]any{"runs": 3}},
			}))
			require.NoError(t, store.Update(ctx, "p", map[string]any{
				"total_runs": 3,
				"efficiency": 1.25,
			}))

			got, err := store.Get(ctx, "p")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{
				"role":       "Bowler",
				"total_runs": 3.0,
				"efficiency": 1.25,
				"matches":    map[string]any{"m1": map[string]any{"runs": 3.0}},
			}, got)

			require.NoError(t, store.Update(ctx, "p", map[string]any{"role": nil}))
			got, err = store.Get(ctx, "p/role")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_RemovePrunesEmptyParents(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "p/matches/m1", map[string]any{"runs": 1}))
			require.NoError(t, store.Set(ctx, "p/role", "Batsman"))

			require.NoError(t, store.Remove(ctx, "p/matches/m1"))
			matches, err := store.Get(ctx, "p/matches")
			require.NoError(t, err)
			assert.Nil(t, matches)

			role, err := store.Get(ctx, "p/role")
			require.NoError(t, err)
			assert.Equal(t, "Batsman", role)

			// Removing something that is not there is fine.
			require.NoError(t, store.Remove(ctx, "p/matches/m1"))

			require.NoError(t, store.Remove(ctx, "p"))
			got, err := store.Get(ctx, "p")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_NonASCIIKeys(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "coach_data/c1/players/Rāj", map[string]any{
				"role":    "Batsman",
				"matches": map[string]any{"Überseeklub": map[string]any{"runs": 7}},
			}))
			require.NoError(t, store.Set(ctx, "coach_data/c1/players/Rājesh", map[string]any{"role": "Bowler"}))

			got, err := store.Get(ctx, "coach_data/c1/players/Rāj")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{
				"role":    "Batsman",
				"matches": map[string]any{"Überseeklub": map[string]any{"runs": 7.0}},
			}, got)

			require.NoError(t, store.Set(ctx, "coach_data/c1/players/Rāj", map[string]any{"role": "Bowler"}))
			got, err = store.Get(ctx, "coach_data/c1/players/Rāj")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"role": "Bowler"}, got)

			require.NoError(t, store.Remove(ctx, "coach_data/c1/players/Rāj"))
			got, err = store.Get(ctx, "coach_data/c1/players/Rāj")
			require.NoError(t, err)
			assert.Nil(t, got)

			sibling, err := store.Get(ctx, "coach_data/c1/players/Rājesh/role")
			require.NoError(t, err)
			assert.Equal(t, "Bowler", sibling)
		})
	}
}

func TestStore_EmptyValueRemoves(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "p/m1", map[string]any{"runs": 1}))
			require.NoError(t, store.Set(ctx, "p/m1", map[string]any{}))

			got, err := store.Get(ctx, "p")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_ListsAndStringsAreKept(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "p/matches", []any{nil, map[string]any{"runs": 4}}))
			require.NoError(t, store.Set(ctx, "q/matches/m1", "{'runs': 2}"))

			list, err := store.Get(ctx, "p/matches")
			require.NoError(t, err)
			assert.Equal(t, []any{nil, map[string]any{"runs": 4.0}}, list)

			str, err := store.Get(ctx, "q/matches/m1")
			require.NoError(t, err)
			assert.Equal(t, "{'runs': 2}", str)
		})
	}
}

func TestValidateKey(t *testing.T) {
	require.NoError(t, docstore.ValidateKey("Raj Kumar"))
	require.NoError(t, docstore.ValidateKey("match-2024-05-01"))

	for _, bad := range []string{"", "  ", "a/b", "a.b", "a#b", "$x", "[0]"} {
		err := docstore.ValidateKey(bad)
		assert.ErrorIs(t, err, docstore.ErrInvalidKey, "key %q", bad)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "coach_data/c1/players/Raj", docstore.Join("coach_data", "c1", "players", "Raj"))
}

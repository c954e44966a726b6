package testutil

import (
	"sync"
	"testing"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRoundPersistenceSuite exercises an IRoundPersistence implementation.
// newStore must return an empty store; the suite closes it.
func RunRoundPersistenceSuite(t *testing.T, newStore func(t *testing.T) persistence.IRoundPersistence) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		record := NewTestRoundRecord(t, 1, 5)
		require.NoError(t, store.SaveRound(record))

		loaded, err := store.LoadRound(1)
		require.NoError(t, err)
		require.NotNil(t, loaded)

		assert.Equal(t, record, loaded)
		assert.NoError(t, loaded.Artifact.Verify())
	})

	t.Run("LoadMissing", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		loaded, err := store.LoadRound(424242)
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run("SaveNil", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		require.Error(t, store.SaveRound(nil))
	})

	t.Run("Overwrite", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		first := NewTestRoundRecord(t, 2, 3)
		second := NewTestRoundRecord(t, 2, 4)
		require.NoError(t, store.SaveRound(first))
		require.NoError(t, store.SaveRound(second))

		loaded, err := store.LoadRound(2)
		require.NoError(t, err)
		assert.Equal(t, second.RunId, loaded.RunId)
		assert.Equal(t, second.Root(), loaded.Root())
	})

	t.Run("ListSorted", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		for _, id := range []uint64{300, 5, 1 << 40, 42} {
			require.NoError(t, store.SaveRound(NewTestRoundRecord(t, id, 2)))
		}

		rounds, err := store.ListRounds()
		require.NoError(t, err)
		require.Len(t, rounds, 4)

		ids := make([]uint64, len(rounds))
		for i, r := range rounds {
			ids[i] = r.RoundId
		}
		assert.Equal(t, []uint64{5, 42, 300, 1 << 40}, ids)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		rounds, err := store.ListRounds()
		require.NoError(t, err)
		assert.Empty(t, rounds)
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.SaveRound(NewTestRoundRecord(t, 9, 2)))
		require.NoError(t, store.DeleteRound(9))

		loaded, err := store.LoadRound(9)
		require.NoError(t, err)
		assert.Nil(t, loaded)

		// Idempotent
		require.NoError(t, store.DeleteRound(9))

		rounds, err := store.ListRounds()
		require.NoError(t, err)
		assert.Empty(t, rounds)
	})

	t.Run("ReturnedRecordsAreCopies", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		record := NewTestRoundRecord(t, 11, 3)
		require.NoError(t, store.SaveRound(record))
		root := record.Root()
		record.Artifact.Root = "0x00"

		loaded, err := store.LoadRound(11)
		require.NoError(t, err)
		loaded.Artifact.Root = "0x01"

		again, err := store.LoadRound(11)
		require.NoError(t, err)
		assert.Equal(t, root, again.Root())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(id uint64) {
				defer wg.Done()
				record := NewTestRoundRecord(t, id, 2)
				assert.NoError(t, store.SaveRound(record))
				_, err := store.LoadRound(id)
				assert.NoError(t, err)
			}(uint64(100 + i))
		}
		wg.Wait()

		rounds, err := store.ListRounds()
		require.NoError(t, err)
		assert.Len(t, rounds, 10)
	})

	t.Run("HealthCheckAndClose", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.HealthCheck())
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())

		require.ErrorIs(t, store.HealthCheck(), persistence.ErrClosed)
		require.ErrorIs(t, store.SaveRound(NewTestRoundRecord(t, 1, 1)), persistence.ErrClosed)
		_, err := store.LoadRound(1)
		require.ErrorIs(t, err, persistence.ErrClosed)
		_, err = store.ListRounds()
		require.ErrorIs(t, err, persistence.ErrClosed)
		require.ErrorIs(t, store.DeleteRound(1), persistence.ErrClosed)
	})
}

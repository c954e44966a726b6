package memory

import (
	"testing"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPersistence(t *testing.T) {
	testutil.RunRoundPersistenceSuite(t, func(t *testing.T) persistence.IRoundPersistence {
		return NewMemoryPersistence()
	})
}

func TestMemoryPersistence_SaveCopiesInput(t *testing.T) {
	m := NewMemoryPersistence()
	defer func() { _ = m.Close() }()

	record := testutil.NewTestRoundRecord(t, 3, 4)
	expectedProof := append([]string(nil), record.Artifact.Entries[0].Proof...)
	require.NoError(t, m.SaveRound(record))

	record.Artifact.Entries[0].Proof[0] = "0xdeadbeef"

	loaded, err := m.LoadRound(3)
	require.NoError(t, err)
	assert.Equal(t, expectedProof, loaded.Artifact.Entries[0].Proof)
}

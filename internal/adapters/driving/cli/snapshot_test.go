package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCmd_NoService(t *testing.T) {
	_, _, err := execute(t, "", "snapshot")
	assert.ErrorIs(t, err, errSnapshotNotConfigured)
}

func TestSnapshotCmd_Stdout(t *testing.T) {
	setupTestServices(t)

	out, errOut, err := execute(t, "", "snapshot", "--concurrency", "1")
	require.NoError(t, err)

	var snap snapshotJSON
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Documents, 2)
	assert.Equal(t, "a.txt", snap.Documents[0].FileName)
	assert.Len(t, snap.Documents[0].Chunks, 2)
	assert.Equal(t, "b.txt", snap.Documents[1].FileName)
	assert.Equal(t, "7", snap.Documents[1].Chunks[0].PointID)
	assert.Contains(t, errOut, "Snapshot of 2 documents, 3 chunks")
}

func TestSnapshotCmd_OutFile(t *testing.T) {
	setupTestServices(t)
	path := filepath.Join(t.TempDir(), "snap.json")

	out, _, err := execute(t, "", "snapshot", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap snapshotJSON
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Documents, 2)
}

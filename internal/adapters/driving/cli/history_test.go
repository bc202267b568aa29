package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

func TestHistoryCmd_NoService(t *testing.T) {
	_, _, err := execute(t, "", "history")
	assert.ErrorIs(t, err, errHistoryNotConfigured)
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No edits recorded.")
}

func TestHistoryCmd_ListsRecords(t *testing.T) {
	env := setupTestServices(t)
	for _, id := range []domain.PointID{"p1", "p2", "7"} {
		require.NoError(t, env.history.Append(t.Context(), domain.EditRecord{
			PointID:     id,
			FileName:    "a.txt",
			Action:      domain.ActionOverwrite,
			Outcome:     domain.OutcomeSuccess,
			Message:     "Updated " + id.String(),
			SubmittedAt: time.Now(),
		}))
	}

	out, _, err := execute(t, "", "history", "--limit", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "Updated 7")
	assert.Contains(t, out, "Updated p2")
	assert.NotContains(t, out, "Updated p1")
}

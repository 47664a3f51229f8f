package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/norka/internal/adapters/driving/tui"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/messages"
)

func TestTUICmd_Structure(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.NotEmpty(t, tuiCmd.Short)
	assert.Contains(t, tuiCmd.Long, "Find by title")
}

func TestNewTUIApp(t *testing.T) {
	setupTestServices(t)
	tuiCmd.SetContext(context.Background())

	app, err := newTUIApp(tuiCmd)

	require.NoError(t, err)
	assert.Equal(t, messages.ViewNotes, app.CurrentView())
}

func TestNewTUIApp_RequiresDocumentService(t *testing.T) {
	documentService = nil

	_, err := newTUIApp(tuiCmd)

	assert.ErrorIs(t, err, tui.ErrMissingDocumentService)
}

func TestTUICmd_FailsWithoutService(t *testing.T) {
	documentService = nil

	_, err := executeCommand(t, "tui")

	assert.ErrorIs(t, err, tui.ErrMissingDocumentService)
}

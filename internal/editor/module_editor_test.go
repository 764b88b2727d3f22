package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

func TestModuleEditorDraft(t *testing.T) {
	fc := newFakeClient()
	ed := NewModuleEditor(fc, nil, "slice-9", "lab-1", 3)

	m := ed.Module()
	assert.True(t, models.IsDraftID(m.ID))
	assert.Equal(t, 3, m.Order)
	assert.Equal(t, 60, m.TotalDuration)
	assert.Equal(t, "lab-1", m.LabID)
}

func TestModuleEditorValidation(t *testing.T) {
	t.Run("empty title blocks the network call", func(t *testing.T) {
		fc := newFakeClient()
		ed := NewModuleEditor(fc, nil, "slice-9", "", 1)

		_, err := ed.Submit(context.Background())
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Zero(t, fc.totalCalls())
		assert.Equal(t, "Module title is required", ed.Err())
	})

	t.Run("whitespace title is still empty", func(t *testing.T) {
		fc := newFakeClient()
		ed := NewModuleEditor(fc, nil, "slice-9", "", 1)
		ed.SetTitle("   ")

		_, err := ed.Submit(context.Background())
		assert.True(t, IsValidation(err))
		assert.Zero(t, fc.totalCalls())
	})

	t.Run("order and duration floors", func(t *testing.T) {
		fc := newFakeClient()
		ed := NewModuleEditor(fc, nil, "slice-9", "", 1)
		ed.SetTitle("Networking")
		ed.SetOrder(0)
		assert.Error(t, ed.Validate())

		ed.SetOrder(1)
		ed.SetTotalDuration(0)
		assert.Error(t, ed.Validate())

		ed.SetTotalDuration(45)
		assert.NoError(t, ed.Validate())
	})
}

func TestModuleEditorCreate(t *testing.T) {
	fc := newFakeClient()
	fc.nextID = "srv-m1"
	ed := NewModuleEditor(fc, nil, "slice-9", "lab-1", 2)
	ed.SetTitle("Networking")
	ed.SetDescription("Subnets and routing")

	saved, err := ed.Submit(context.Background())
	require.NoError(t, err)

	// the saved record carries the server id, not the draft placeholder
	assert.Equal(t, "srv-m1", saved.ID)
	assert.False(t, models.IsDraftID(saved.ID))
	assert.Equal(t, "Module created successfully", ed.Success())

	assert.Equal(t, 1, fc.calls["CreateModule"])
	assert.Equal(t, "slice-9", fc.lastModuleInput.SliceID)
	assert.Equal(t, "Networking", fc.lastModuleInput.Title)
	assert.Equal(t, 2, fc.lastModuleInput.Order)
}

func TestModuleEditorUpdate(t *testing.T) {
	existing := &models.Module{ID: "m1", Title: "Old title", Order: 1, TotalDuration: 60}

	t.Run("sends the full record", func(t *testing.T) {
		fc := newFakeClient()
		ed := NewModuleEditor(fc, existing, "slice-9", "", 0)
		ed.SetTitle("New title")

		saved, err := ed.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "m1", saved.ID)
		assert.Equal(t, 1, fc.calls["UpdateModule"])
		assert.Equal(t, "New title", fc.lastModuleUpdate.Title)
		assert.Equal(t, 1, fc.lastModuleUpdate.Order)
	})

	t.Run("rejection keeps the staged edits", func(t *testing.T) {
		fc := newFakeClient()
		fc.err = &remote.RejectedError{Message: "Title already in use"}
		ed := NewModuleEditor(fc, existing, "slice-9", "", 0)
		ed.SetTitle("Duplicate")

		_, err := ed.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Title already in use", ed.APIErr())
		assert.Equal(t, "Duplicate", ed.Module().Title, "edits survive for a retry")
		assert.False(t, ed.Submitting())
	})

	t.Run("transport failure shows the generic message", func(t *testing.T) {
		fc := newFakeClient()
		fc.err = context.DeadlineExceeded
		ed := NewModuleEditor(fc, existing, "slice-9", "", 0)
		ed.SetTitle("whatever")

		_, err := ed.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, remote.GenericFailureMessage, ed.APIErr())
	})

	t.Run("editing a copy never touches the source", func(t *testing.T) {
		fc := newFakeClient()
		ed := NewModuleEditor(fc, existing, "slice-9", "", 0)
		ed.SetTitle("changed in editor")
		assert.Equal(t, "Old title", existing.Title)
	})
}

package editor

import (
	"context"
	"strings"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// ExerciseEditor stages an exercise's metadata (title, description,
// order, duration). The type is picked once at draft time and never
// changes afterwards - lab and quiz content have their own editors.
type ExerciseEditor struct {
	submitState

	client   remote.Client
	moduleID string
	form     models.Exercise
	isNew    bool
}

// NewExerciseEditor opens an editor over an existing exercise, or a
// fresh draft of the given type when existing is nil
func NewExerciseEditor(client remote.Client, existing *models.Exercise, moduleID string, exType models.ExerciseType, order int) *ExerciseEditor {
	ed := &ExerciseEditor{client: client, moduleID: moduleID}

	if existing != nil {
		ed.form = *existing
		return ed
	}

	ed.isNew = true
	ed.form = models.Exercise{
		ID:       models.NewDraftID(models.DraftExercisePrefix),
		Type:     exType,
		Order:    order,
		Duration: 30,
	}
	return ed
}

// Exercise returns a copy of the staged form
func (ed *ExerciseEditor) Exercise() models.Exercise {
	return ed.form
}

func (ed *ExerciseEditor) SetTitle(title string)      { ed.form.Title = title }
func (ed *ExerciseEditor) SetDescription(desc string) { ed.form.Description = desc }
func (ed *ExerciseEditor) SetOrder(order int)         { ed.form.Order = order }
func (ed *ExerciseEditor) SetDuration(mins int)       { ed.form.Duration = mins }

// Validate runs the local rules before any network call
func (ed *ExerciseEditor) Validate() error {
	if strings.TrimSpace(ed.form.Title) == "" {
		return &ValidationError{Message: "Exercise title is required"}
	}
	if !ed.form.Type.Valid() {
		return &ValidationError{Message: "Exercise type must be lab or questions"}
	}
	if ed.form.Order < 1 {
		return &ValidationError{Message: "Exercise order must be at least 1"}
	}
	if ed.form.Duration < 1 {
		return &ValidationError{Message: "Exercise duration must be at least 1 minute"}
	}
	return nil
}

// Submit saves the staged exercise and returns the confirmed record
func (ed *ExerciseEditor) Submit(ctx context.Context) (*models.Exercise, error) {
	if err := ed.begin(); err != nil {
		return nil, err
	}
	defer ed.end()

	if err := ed.Validate(); err != nil {
		ed.setLocalErr(err.Error())
		return nil, err
	}

	if ed.isNew {
		id, err := ed.client.CreateExercise(ctx, models.CreateExerciseInput{
			ModuleID:    ed.moduleID,
			Title:       ed.form.Title,
			Description: ed.form.Description,
			Type:        ed.form.Type,
			Order:       ed.form.Order,
			Duration:    ed.form.Duration,
		})
		if err != nil {
			ed.setAPIErr(remote.UserMessage(err))
			return nil, err
		}

		saved := ed.form
		saved.ID = id
		ed.setSuccess("Exercise created successfully")
		return &saved, nil
	}

	if err := ed.client.UpdateExercise(ctx, ed.moduleID, ed.form); err != nil {
		ed.setAPIErr(remote.UserMessage(err))
		return nil, err
	}

	saved := ed.form
	ed.setSuccess("Exercise updated successfully")
	return &saved, nil
}

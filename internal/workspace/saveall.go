package workspace

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/golabz/cloudslice-editor/internal/editor"
	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// SaveAll persists every draft left in the tree. When nothing was ever
// saved it goes out as one bulk create, otherwise module by module so
// already-confirmed records keep their ids. Validation covers the
// whole tree before the first network call goes out.
func (w *Workspace) SaveAll(ctx context.Context) error {
	modules := w.store.Modules()
	if len(modules) == 0 {
		err := &editor.ValidationError{Message: "Add at least one module before saving"}
		w.notifier.Error(err.Message)
		return err
	}

	if err := w.validateTree(modules); err != nil {
		w.notifier.Error(err.Error())
		return err
	}

	if allDraft(modules) {
		return w.saveAllBulk(ctx, modules)
	}
	return w.saveAllIncremental(ctx, modules)
}

func allDraft(modules []*models.Module) bool {
	for _, m := range modules {
		if !models.IsDraftID(m.ID) {
			return false
		}
		for _, ex := range m.Exercises {
			if !models.IsDraftID(ex.ID) {
				return false
			}
		}
	}
	return true
}

// validateTree applies the same local rules the editors enforce, so a
// half-filled draft can't reach the API
func (w *Workspace) validateTree(modules []*models.Module) error {
	for i, m := range modules {
		at := fmt.Sprintf("module %d", i+1)
		if strings.TrimSpace(m.Title) == "" {
			return &editor.ValidationError{Message: at + ": title is required"}
		}
		for j, ex := range m.Exercises {
			at := fmt.Sprintf("%s, exercise %d", at, j+1)
			if strings.TrimSpace(ex.Title) == "" {
				return &editor.ValidationError{Message: at + ": title is required"}
			}
			if !ex.Type.Valid() {
				return &editor.ValidationError{Message: at + ": unknown exercise type"}
			}
			if !models.IsDraftID(ex.ID) {
				continue
			}
			switch ex.Type {
			case models.ExerciseTypeLab:
				if lab, ok := w.store.LabExercise(ex.ID); ok {
					if strings.TrimSpace(lab.Instructions) == "" {
						return &editor.ValidationError{Message: at + ": lab instructions are required"}
					}
					if lab.CleanupPolicy != nil {
						if err := lab.CleanupPolicy.Validate(); err != nil {
							return &editor.ValidationError{Message: at + ": " + err.Error()}
						}
					}
				}
			case models.ExerciseTypeQuestions:
				if quiz, ok := w.store.QuizExercise(ex.ID); ok {
					if err := validateQuiz(at, quiz); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func validateQuiz(at string, quiz *models.QuizExercise) error {
	if len(quiz.Questions) == 0 {
		return &editor.ValidationError{Message: at + ": add at least one question"}
	}
	for k, q := range quiz.Questions {
		at := fmt.Sprintf("%s, question %d", at, k+1)
		if strings.TrimSpace(q.Text) == "" {
			return &editor.ValidationError{Message: at + ": question text is required"}
		}
		if len(q.Options) < 2 {
			return &editor.ValidationError{Message: at + ": at least two options are required"}
		}
		for _, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				return &editor.ValidationError{Message: at + ": every option needs text"}
			}
		}
		if q.CorrectOption() < 0 {
			return &editor.ValidationError{Message: at + ": mark one option as correct"}
		}
	}
	return nil
}

// saveAllBulk ships the whole drafted tree in one request, then
// reloads so the store picks up the server-assigned ids
func (w *Workspace) saveAllBulk(ctx context.Context, modules []*models.Module) error {
	in := remote.BulkCreateInput{
		LabConfig: map[string]interface{}{"labId": w.labID, "sliceId": w.sliceID},
	}
	if w.session != nil {
		if p, ok := w.session.Current(); ok {
			in.CreatedBy = p.UserID
		}
	}

	for _, m := range modules {
		bm := remote.BulkModule{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Order:       m.Order,
		}
		for _, ex := range m.Exercises {
			be := remote.BulkExercise{
				ID:       ex.ID,
				Title:    ex.Title,
				Type:     ex.Type,
				Order:    ex.Order,
				Duration: ex.Duration,
			}
			switch ex.Type {
			case models.ExerciseTypeLab:
				if lab, ok := w.store.LabExercise(ex.ID); ok {
					be.Lab = lab
				}
			case models.ExerciseTypeQuestions:
				if quiz, ok := w.store.QuizExercise(ex.ID); ok {
					be.Questions = quiz.Questions
				}
			}
			bm.Exercises = append(bm.Exercises, be)
		}
		in.Modules = append(in.Modules, bm)
	}

	if err := w.client.CreateLabModules(ctx, in); err != nil {
		w.notifier.Error(remote.UserMessage(err))
		return err
	}

	// the bulk endpoint answers with no id mapping, a reload swaps the
	// draft ids out
	if err := w.LoadModules(ctx); err != nil {
		return err
	}
	w.notifier.Success("Modules created successfully")
	return nil
}

// saveAllIncremental walks the tree and creates each remaining draft
// one call at a time. Confirmed records are skipped. A failed content
// attach deletes the exercise row it just created so the server never
// keeps a half-made exercise, and the local draft stays for a retry.
func (w *Workspace) saveAllIncremental(ctx context.Context, modules []*models.Module) error {
	for _, m := range modules {
		moduleID := m.ID
		if models.IsDraftID(m.ID) {
			id, err := w.client.CreateModule(ctx, models.CreateModuleInput{
				SliceID:       w.sliceID,
				Title:         m.Title,
				Description:   m.Description,
				Order:         m.Order,
				TotalDuration: m.TotalDuration,
			})
			if err != nil {
				w.notifier.Error(remote.UserMessage(err))
				return err
			}
			w.store.ReplaceModuleID(m.ID, id)
			moduleID = id
		}

		for _, ex := range m.Exercises {
			if !models.IsDraftID(ex.ID) {
				continue
			}
			if err := w.saveDraftExercise(ctx, moduleID, ex); err != nil {
				w.notifier.Error(remote.UserMessage(err))
				return err
			}
		}
	}

	w.notifier.Success("Modules saved successfully")
	return nil
}

func (w *Workspace) saveDraftExercise(ctx context.Context, moduleID string, ex *models.Exercise) error {
	id, err := w.client.CreateExercise(ctx, models.CreateExerciseInput{
		ModuleID:    moduleID,
		Title:       ex.Title,
		Type:        ex.Type,
		Description: ex.Description,
		Order:       ex.Order,
		Duration:    ex.Duration,
	})
	if err != nil {
		return err
	}

	if err := w.attachContent(ctx, id, ex); err != nil {
		// roll the row back, otherwise the server keeps an exercise
		// with no content and the local draft would double up on retry
		if delErr := w.client.DeleteExercise(ctx, id); delErr != nil {
			w.log.Warn("rollback of half-created exercise failed",
				zap.String("exerciseId", id), zap.Error(delErr))
		}
		return err
	}

	w.store.ReplaceExerciseID(ex.ID, id)
	return nil
}

// attachContent sends the draft's staged lab or quiz content under the
// freshly confirmed exercise id
func (w *Workspace) attachContent(ctx context.Context, serverID string, ex *models.Exercise) error {
	switch ex.Type {
	case models.ExerciseTypeLab:
		lab, ok := w.store.LabExercise(ex.ID)
		if !ok {
			return nil
		}
		content := *lab
		content.ID = ""
		content.ExerciseID = serverID
		_, err := w.client.UpdateLabExercise(ctx, models.UpdateLabExerciseInput{
			ExerciseID: serverID,
			Lab:        content,
		})
		return err
	case models.ExerciseTypeQuestions:
		quiz, ok := w.store.QuizExercise(ex.ID)
		if !ok {
			return nil
		}
		content := quiz.Clone()
		content.ID = ""
		content.ExerciseID = serverID
		return w.client.UpdateQuizExercise(ctx, *content)
	}
	return nil
}

// Package workspace is the page-level orchestrator of the module tree
// editor. It owns every store mutation entry point: editors stage and
// submit, the workspace merges confirmed records into the tree and
// drives the notification banner.
package workspace

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/golabz/cloudslice-editor/internal/catalog"
	"github.com/golabz/cloudslice-editor/internal/editor"
	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/notify"
	"github.com/golabz/cloudslice-editor/internal/remote"
	"github.com/golabz/cloudslice-editor/internal/store"
	"github.com/golabz/cloudslice-editor/pkg/session"
)

// Workspace wires the sync client, tree store, selection state and
// notifier together for one cloud slice's module tree
type Workspace struct {
	client   remote.Client
	store    *store.TreeStore
	notifier *notify.Notifier
	session  *session.Store
	sel      Selection

	sliceID string
	labID   string
	log     *zap.Logger
}

// New creates a workspace for one slice. sessions may be nil when no
// principal is available (the bulk save then goes out without a
// createdBy).
func New(client remote.Client, notifier *notify.Notifier, sessions *session.Store, sliceID, labID string, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.New(0)
	}
	return &Workspace{
		client:   client,
		store:    store.New(log),
		notifier: notifier,
		session:  sessions,
		sliceID:  sliceID,
		labID:    labID,
		log:      log.With(zap.String("component", "Workspace"), zap.String("sliceId", sliceID)),
	}
}

// Store exposes the session's module tree
func (w *Workspace) Store() *store.TreeStore {
	return w.store
}

// Selection exposes the expand/collapse state
func (w *Workspace) Selection() *Selection {
	return &w.sel
}

// Notifier exposes the banner state
func (w *Workspace) Notifier() *notify.Notifier {
	return w.notifier
}

// LoadModules fetches the slice's tree and replaces the store contents
func (w *Workspace) LoadModules(ctx context.Context) error {
	mods, err := w.client.ListModules(ctx, w.sliceID)
	if err != nil {
		w.log.Warn("loading modules failed", zap.Error(err))
		w.notifier.Error(remote.UserMessage(err))
		return err
	}
	w.store.SetModules(mods)
	return nil
}

// LoadCatalog fetches the AWS service catalog the lab editor's service
// picker reads from. A fetch failure is logged and comes back as an
// empty catalog - the picker degrades, the editor stays usable.
func (w *Workspace) LoadCatalog(ctx context.Context) *catalog.Catalog {
	c, err := catalog.Fetch(ctx, w.client, w.log)
	if err != nil {
		w.log.Warn("loading service catalog failed", zap.Error(err))
		return &catalog.Catalog{}
	}
	return c
}

// NewModuleEditor opens an editor for a fresh module at the end of the
// tree
func (w *Workspace) NewModuleEditor() *editor.ModuleEditor {
	return editor.NewModuleEditor(w.client, nil, w.sliceID, w.labID, w.store.Len()+1)
}

// EditModule opens an editor over an existing module
func (w *Workspace) EditModule(moduleID string) (*editor.ModuleEditor, error) {
	m, ok := w.store.Module(moduleID)
	if !ok {
		return nil, fmt.Errorf("module not found: %s", moduleID)
	}
	return editor.NewModuleEditor(w.client, m, w.sliceID, w.labID, 0), nil
}

// SaveModule submits a module editor and merges the confirmed record.
// On any failure the store is untouched and the editor keeps its
// staged edits.
func (w *Workspace) SaveModule(ctx context.Context, ed *editor.ModuleEditor) (*models.Module, error) {
	saved, err := ed.Submit(ctx)
	if err != nil {
		w.notifyFailure(err)
		return nil, err
	}
	w.store.UpsertModule(saved)
	w.notifier.Success(ed.Success())
	return saved, nil
}

// DeleteModule removes a module remotely, then locally. A failed
// remote delete leaves the local tree alone.
func (w *Workspace) DeleteModule(ctx context.Context, moduleID string) error {
	if err := w.client.DeleteModule(ctx, moduleID); err != nil {
		w.notifyFailure(err)
		return err
	}
	w.store.RemoveModule(moduleID)
	if w.sel.ActiveModule() == moduleID {
		w.sel.Reset()
	}
	w.notifier.Success("Module deleted")
	return nil
}

// NewExerciseEditor opens an editor for a fresh exercise at the end of
// the module's list
func (w *Workspace) NewExerciseEditor(moduleID string, exType models.ExerciseType) (*editor.ExerciseEditor, error) {
	m, ok := w.store.Module(moduleID)
	if !ok {
		return nil, fmt.Errorf("module not found: %s", moduleID)
	}
	return editor.NewExerciseEditor(w.client, nil, moduleID, exType, len(m.Exercises)+1), nil
}

// EditExercise opens an editor over an existing exercise
func (w *Workspace) EditExercise(moduleID, exerciseID string) (*editor.ExerciseEditor, error) {
	m, ok := w.store.Module(moduleID)
	if !ok {
		return nil, fmt.Errorf("module not found: %s", moduleID)
	}
	ex, ok := m.FindExercise(exerciseID)
	if !ok {
		return nil, fmt.Errorf("exercise not found: %s", exerciseID)
	}
	return editor.NewExerciseEditor(w.client, ex, moduleID, ex.Type, 0), nil
}

// SaveExercise submits an exercise editor and merges the confirmed
// record into its module
func (w *Workspace) SaveExercise(ctx context.Context, moduleID string, ed *editor.ExerciseEditor) (*models.Exercise, error) {
	saved, err := ed.Submit(ctx)
	if err != nil {
		w.notifyFailure(err)
		return nil, err
	}
	w.store.UpsertExercise(moduleID, saved)
	w.notifier.Success(ed.Success())
	return saved, nil
}

// DeleteExercise removes an exercise remotely, then locally together
// with its side-map content
func (w *Workspace) DeleteExercise(ctx context.Context, moduleID, exerciseID string) error {
	if err := w.client.DeleteExercise(ctx, exerciseID); err != nil {
		w.notifyFailure(err)
		return err
	}
	w.store.RemoveExercise(moduleID, exerciseID)
	w.notifier.Success("Exercise deleted")
	return nil
}

// NewLabEditor opens a lab editor: over the stored content when the
// exercise already has some, as a draft otherwise
func (w *Workspace) NewLabEditor(moduleID, exerciseID string) *editor.LabExerciseEditor {
	existing, ok := w.store.LabExercise(exerciseID)
	if !ok {
		order := 1
		if m, found := w.store.Module(moduleID); found {
			order = len(m.Exercises) + 1
		}
		return editor.NewLabExerciseEditor(w.client, nil, moduleID, exerciseID, order)
	}
	return editor.NewLabExerciseEditor(w.client, existing, moduleID, exerciseID, 0)
}

// SaveLabExercise submits a lab editor and merges the results: the new
// exercise row on create, the lab content either way
func (w *Workspace) SaveLabExercise(ctx context.Context, moduleID string, ed *editor.LabExerciseEditor) (*editor.LabSaveResult, error) {
	result, err := ed.Submit(ctx)
	if err != nil {
		w.notifyFailure(err)
		return nil, err
	}
	if result.Exercise != nil {
		w.store.UpsertExercise(moduleID, result.Exercise)
	}
	w.store.UpsertLabExercise(result.ExerciseID, result.Lab)
	w.notifier.Success(ed.Success())
	return result, nil
}

// NewQuizEditor opens a quiz editor: over the stored content when the
// exercise already has some, as a draft otherwise
func (w *Workspace) NewQuizEditor(moduleID, exerciseID string) *editor.QuizExerciseEditor {
	existing, ok := w.store.QuizExercise(exerciseID)
	if !ok {
		order := 1
		if m, found := w.store.Module(moduleID); found {
			order = len(m.Exercises) + 1
		}
		return editor.NewQuizExerciseEditor(w.client, nil, moduleID, exerciseID, order)
	}
	return editor.NewQuizExerciseEditor(w.client, existing, moduleID, exerciseID, 0)
}

// SaveQuizExercise submits a quiz editor and merges the results
func (w *Workspace) SaveQuizExercise(ctx context.Context, moduleID string, ed *editor.QuizExerciseEditor) (*editor.QuizSaveResult, error) {
	result, err := ed.Submit(ctx)
	if err != nil {
		w.notifyFailure(err)
		return nil, err
	}
	if result.Exercise != nil {
		w.store.UpsertExercise(moduleID, result.Exercise)
	}
	w.store.UpsertQuizExercise(result.ExerciseID, result.Quiz)
	w.notifier.Success(ed.Success())
	return result, nil
}

// notifyFailure routes an error into the banner: validation messages
// as-is, sync errors through the rejection/generic mapping. A refused
// double-submit gets no banner - the first submit still owns the UI.
func (w *Workspace) notifyFailure(err error) {
	if err == editor.ErrSubmitting {
		return
	}
	if editor.IsValidation(err) {
		w.notifier.Error(err.Error())
		return
	}
	w.notifier.Error(remote.UserMessage(err))
}

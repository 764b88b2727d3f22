package workspace

import (
	"context"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// fakeClient scripts the sync surface for workspace tests. Per-method
// error hooks let one call fail mid-saga while the rest succeed.
type fakeClient struct {
	calls map[string]int

	tree       []*models.Module
	listErr    error
	nextIDs    []string // consumed by each create, last one repeats
	createErr  error
	updateErr  error
	deleteErr  error
	attachErr  error // UpdateLabExercise / UpdateQuizExercise
	bulkErr    error
	deletedIDs []string

	lastBulk       remote.BulkCreateInput
	lastModuleIn   models.CreateModuleInput
	lastExerciseIn models.CreateExerciseInput
	lastLabAttach  models.UpdateLabExerciseInput
	lastQuizAttach models.QuizExercise
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}, nextIDs: []string{"srv-1"}}
}

func (f *fakeClient) nextID() string {
	id := f.nextIDs[0]
	if len(f.nextIDs) > 1 {
		f.nextIDs = f.nextIDs[1:]
	}
	return id
}

func (f *fakeClient) ListModules(ctx context.Context, sliceID string) ([]*models.Module, error) {
	f.calls["ListModules"]++
	return f.tree, f.listErr
}

func (f *fakeClient) CreateModule(ctx context.Context, in models.CreateModuleInput) (string, error) {
	f.calls["CreateModule"]++
	f.lastModuleIn = in
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextID(), nil
}

func (f *fakeClient) UpdateModule(ctx context.Context, m models.Module) error {
	f.calls["UpdateModule"]++
	return f.updateErr
}

func (f *fakeClient) DeleteModule(ctx context.Context, moduleID string) error {
	f.calls["DeleteModule"]++
	f.deletedIDs = append(f.deletedIDs, moduleID)
	return f.deleteErr
}

func (f *fakeClient) CreateExercise(ctx context.Context, in models.CreateExerciseInput) (string, error) {
	f.calls["CreateExercise"]++
	f.lastExerciseIn = in
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextID(), nil
}

func (f *fakeClient) UpdateExercise(ctx context.Context, moduleID string, ex models.Exercise) error {
	f.calls["UpdateExercise"]++
	return f.updateErr
}

func (f *fakeClient) DeleteExercise(ctx context.Context, exerciseID string) error {
	f.calls["DeleteExercise"]++
	f.deletedIDs = append(f.deletedIDs, exerciseID)
	return f.deleteErr
}

func (f *fakeClient) CreateLabExercise(ctx context.Context, in models.CreateLabExerciseInput) (*models.LabExerciseResult, error) {
	f.calls["CreateLabExercise"]++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.LabExerciseResult{ID: f.nextID(), LabID: "srv-lab"}, nil
}

func (f *fakeClient) UpdateLabExercise(ctx context.Context, in models.UpdateLabExerciseInput) (*models.LabExerciseResult, error) {
	f.calls["UpdateLabExercise"]++
	f.lastLabAttach = in
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	return &models.LabExerciseResult{ID: in.ExerciseID, LabID: in.Lab.ID}, nil
}

func (f *fakeClient) CreateQuizExercise(ctx context.Context, in models.CreateQuizExerciseInput) (string, error) {
	f.calls["CreateQuizExercise"]++
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextID(), nil
}

func (f *fakeClient) UpdateQuizExercise(ctx context.Context, quiz models.QuizExercise) error {
	f.calls["UpdateQuizExercise"]++
	f.lastQuizAttach = quiz
	return f.attachErr
}

func (f *fakeClient) CreateLabModules(ctx context.Context, in remote.BulkCreateInput) error {
	f.calls["CreateLabModules"]++
	f.lastBulk = in
	return f.bulkErr
}

func (f *fakeClient) GetAwsServices(ctx context.Context) ([]models.RawService, error) {
	f.calls["GetAwsServices"]++
	return nil, nil
}

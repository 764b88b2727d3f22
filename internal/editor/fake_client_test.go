package editor

import (
	"context"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// fakeClient records every sync call so tests can assert both what
// went out and that validation failures send nothing at all
type fakeClient struct {
	calls map[string]int
	err   error // returned from every call when set

	nextID    string
	labResult *models.LabExerciseResult

	lastModuleInput   models.CreateModuleInput
	lastModuleUpdate  models.Module
	lastExercise      models.CreateExerciseInput
	lastLabCreate     models.CreateLabExerciseInput
	lastLabUpdate     models.UpdateLabExerciseInput
	lastQuizCreate    models.CreateQuizExerciseInput
	lastQuizUpdate    models.QuizExercise
	lastBulk          remote.BulkCreateInput
	lastDeletedID     string
	exerciseDeleteErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}, nextID: "srv-1"}
}

func (f *fakeClient) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeClient) ListModules(ctx context.Context, sliceID string) ([]*models.Module, error) {
	f.calls["ListModules"]++
	return nil, f.err
}

func (f *fakeClient) CreateModule(ctx context.Context, in models.CreateModuleInput) (string, error) {
	f.calls["CreateModule"]++
	f.lastModuleInput = in
	return f.nextID, f.err
}

func (f *fakeClient) UpdateModule(ctx context.Context, m models.Module) error {
	f.calls["UpdateModule"]++
	f.lastModuleUpdate = m
	return f.err
}

func (f *fakeClient) DeleteModule(ctx context.Context, moduleID string) error {
	f.calls["DeleteModule"]++
	f.lastDeletedID = moduleID
	return f.err
}

func (f *fakeClient) CreateExercise(ctx context.Context, in models.CreateExerciseInput) (string, error) {
	f.calls["CreateExercise"]++
	f.lastExercise = in
	return f.nextID, f.err
}

func (f *fakeClient) UpdateExercise(ctx context.Context, moduleID string, ex models.Exercise) error {
	f.calls["UpdateExercise"]++
	return f.err
}

func (f *fakeClient) DeleteExercise(ctx context.Context, exerciseID string) error {
	f.calls["DeleteExercise"]++
	f.lastDeletedID = exerciseID
	if f.exerciseDeleteErr != nil {
		return f.exerciseDeleteErr
	}
	return nil
}

func (f *fakeClient) CreateLabExercise(ctx context.Context, in models.CreateLabExerciseInput) (*models.LabExerciseResult, error) {
	f.calls["CreateLabExercise"]++
	f.lastLabCreate = in
	if f.err != nil {
		return nil, f.err
	}
	if f.labResult != nil {
		return f.labResult, nil
	}
	return &models.LabExerciseResult{ID: f.nextID, LabID: "srv-lab-1"}, nil
}

func (f *fakeClient) UpdateLabExercise(ctx context.Context, in models.UpdateLabExerciseInput) (*models.LabExerciseResult, error) {
	f.calls["UpdateLabExercise"]++
	f.lastLabUpdate = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.LabExerciseResult{ID: in.ExerciseID, LabID: in.Lab.ID}, nil
}

func (f *fakeClient) CreateQuizExercise(ctx context.Context, in models.CreateQuizExerciseInput) (string, error) {
	f.calls["CreateQuizExercise"]++
	f.lastQuizCreate = in
	return f.nextID, f.err
}

func (f *fakeClient) UpdateQuizExercise(ctx context.Context, quiz models.QuizExercise) error {
	f.calls["UpdateQuizExercise"]++
	f.lastQuizUpdate = quiz
	return f.err
}

func (f *fakeClient) CreateLabModules(ctx context.Context, in remote.BulkCreateInput) error {
	f.calls["CreateLabModules"]++
	f.lastBulk = in
	return f.err
}

func (f *fakeClient) GetAwsServices(ctx context.Context) ([]models.RawService, error) {
	f.calls["GetAwsServices"]++
	return nil, f.err
}

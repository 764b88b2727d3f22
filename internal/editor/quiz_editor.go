package editor

import (
	"context"
	"strings"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// QuizSaveResult is what a quiz editor submit hands back to the page
// layer. Exercise is only set on create.
type QuizSaveResult struct {
	ExerciseID string
	Exercise   *models.Exercise
	Quiz       *models.QuizExercise
}

// QuizExerciseEditor stages the quiz content attached to a
// questions-type exercise. Duration is owned at the exercise level -
// there is deliberately no per-question duration here.
type QuizExerciseEditor struct {
	submitState

	client   remote.Client
	moduleID string
	form     models.QuizExercise
	isNew    bool

	// draft-only exercise metadata
	title string
	order int
}

func newDraftQuestion() *models.Question {
	return &models.Question{
		ID:    models.NewDraftID(models.DraftQuestionPrefix),
		Marks: 1,
		Options: []*models.Option{
			{OptionID: models.NewDraftID(models.DraftOptionPrefix)},
			{OptionID: models.NewDraftID(models.DraftOptionPrefix)},
		},
	}
}

// NewQuizExerciseEditor opens an editor over existing quiz content, or
// a fresh one-question draft when existing is nil
func NewQuizExerciseEditor(client remote.Client, existing *models.QuizExercise, moduleID, exerciseID string, order int) *QuizExerciseEditor {
	ed := &QuizExerciseEditor{client: client, moduleID: moduleID}

	if existing != nil {
		ed.form = *existing.Clone()
		return ed
	}

	ed.isNew = true
	ed.order = order
	ed.form = models.QuizExercise{
		ID:         models.NewDraftID(models.DraftQuizPrefix),
		ExerciseID: exerciseID,
		Duration:   15,
		Questions:  []*models.Question{newDraftQuestion()},
	}
	return ed
}

// Quiz returns a copy of the staged quiz
func (ed *QuizExerciseEditor) Quiz() models.QuizExercise {
	return *ed.form.Clone()
}

func (ed *QuizExerciseEditor) SetDuration(mins int)          { ed.form.Duration = mins }
func (ed *QuizExerciseEditor) SetExerciseTitle(title string) { ed.title = title }

// AddQuestion appends a blank question with the minimum two options
func (ed *QuizExerciseEditor) AddQuestion() {
	ed.form.Questions = append(ed.form.Questions, newDraftQuestion())
}

// RemoveQuestion drops a question, refusing to go below one
func (ed *QuizExerciseEditor) RemoveQuestion(qIdx int) {
	if len(ed.form.Questions) <= 1 || qIdx < 0 || qIdx >= len(ed.form.Questions) {
		return
	}
	ed.form.Questions = append(ed.form.Questions[:qIdx], ed.form.Questions[qIdx+1:]...)
}

func (ed *QuizExerciseEditor) question(qIdx int) *models.Question {
	if qIdx < 0 || qIdx >= len(ed.form.Questions) {
		return nil
	}
	return ed.form.Questions[qIdx]
}

func (ed *QuizExerciseEditor) SetQuestionText(qIdx int, text string) {
	if q := ed.question(qIdx); q != nil {
		q.Text = text
	}
}

func (ed *QuizExerciseEditor) SetQuestionDescription(qIdx int, desc string) {
	if q := ed.question(qIdx); q != nil {
		q.Description = desc
	}
}

func (ed *QuizExerciseEditor) SetQuestionMarks(qIdx, marks int) {
	if q := ed.question(qIdx); q != nil {
		q.Marks = marks
	}
}

// AddOption appends a blank option to a question
func (ed *QuizExerciseEditor) AddOption(qIdx int) {
	if q := ed.question(qIdx); q != nil {
		q.Options = append(q.Options, &models.Option{
			OptionID: models.NewDraftID(models.DraftOptionPrefix),
		})
	}
}

// RemoveOption drops an option, refusing to go below two. Removing the
// correct option leaves the question with no correct answer - the user
// must pick a new one before the quiz validates.
func (ed *QuizExerciseEditor) RemoveOption(qIdx, optIdx int) {
	q := ed.question(qIdx)
	if q == nil || len(q.Options) <= 2 || optIdx < 0 || optIdx >= len(q.Options) {
		return
	}
	q.Options = append(q.Options[:optIdx], q.Options[optIdx+1:]...)
}

func (ed *QuizExerciseEditor) SetOptionText(qIdx, optIdx int, text string) {
	q := ed.question(qIdx)
	if q == nil || optIdx < 0 || optIdx >= len(q.Options) {
		return
	}
	q.Options[optIdx].Text = text
}

// SetCorrectOption marks one option correct and resets every sibling,
// keeping exactly one correct answer per question
func (ed *QuizExerciseEditor) SetCorrectOption(qIdx, optIdx int) {
	q := ed.question(qIdx)
	if q == nil || optIdx < 0 || optIdx >= len(q.Options) {
		return
	}
	for i, o := range q.Options {
		o.IsCorrect = i == optIdx
	}
}

// Validate runs the local rules before any network call
func (ed *QuizExerciseEditor) Validate() error {
	if ed.isNew && strings.TrimSpace(ed.title) == "" {
		return &ValidationError{Message: "Exercise title is required"}
	}
	if ed.form.Duration < 1 {
		return &ValidationError{Message: "Duration must be greater than 0"}
	}
	if len(ed.form.Questions) == 0 {
		return &ValidationError{Message: "A quiz needs at least one question"}
	}
	for _, q := range ed.form.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return &ValidationError{Message: "All questions must have text"}
		}
		if len(q.Options) < 2 {
			return &ValidationError{Message: "All questions must have at least 2 options"}
		}
		for _, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				return &ValidationError{Message: "All options must have text"}
			}
		}
		if q.CorrectOption() < 0 {
			return &ValidationError{Message: "Each question must have a correct answer selected"}
		}
	}
	return nil
}

// Submit saves the staged quiz. Create goes through the combined
// endpoint so exercise and quiz land together; update resends the full
// record.
func (ed *QuizExerciseEditor) Submit(ctx context.Context) (*QuizSaveResult, error) {
	if err := ed.begin(); err != nil {
		return nil, err
	}
	defer ed.end()

	if err := ed.Validate(); err != nil {
		ed.setLocalErr(err.Error())
		return nil, err
	}

	if ed.isNew {
		id, err := ed.client.CreateQuizExercise(ctx, models.CreateQuizExerciseInput{
			ModuleID: ed.moduleID,
			Title:    ed.title,
			Type:     models.ExerciseTypeQuestions,
			Order:    ed.order,
			Duration: ed.form.Duration,
			QuizData: *ed.form.Clone(),
		})
		if err != nil {
			ed.setAPIErr(remote.UserMessage(err))
			return nil, err
		}

		saved := ed.form.Clone()
		saved.ExerciseID = id
		ed.setSuccess("Quiz created successfully")
		return &QuizSaveResult{
			ExerciseID: id,
			Exercise: &models.Exercise{
				ID:       id,
				Title:    ed.title,
				Type:     models.ExerciseTypeQuestions,
				Order:    ed.order,
				Duration: ed.form.Duration,
			},
			Quiz: saved,
		}, nil
	}

	if err := ed.client.UpdateQuizExercise(ctx, ed.form); err != nil {
		ed.setAPIErr(remote.UserMessage(err))
		return nil, err
	}

	ed.setSuccess("Quiz updated successfully")
	return &QuizSaveResult{ExerciseID: ed.form.ExerciseID, Quiz: ed.form.Clone()}, nil
}

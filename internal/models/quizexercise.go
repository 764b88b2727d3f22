package models

// Option is one answer choice within a question
type Option struct {
	OptionID  string `json:"option_id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a single quiz question with its answer options
type Question struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Description string    `json:"description,omitempty"` // extra context shown under the question
	Marks       int       `json:"marks,omitempty"`       // score weight
	Options     []*Option `json:"options"`
}

// CorrectOption returns the index of the correct option, or -1
func (q *Question) CorrectOption() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// QuizExercise is the quiz content attached to a questions-type
// exercise. Duration lives here, at the exercise level - the per
// question duration the old UI sometimes wrote is gone.
type QuizExercise struct {
	ID         string      `json:"id"`
	ExerciseID string      `json:"exerciseId"`
	Duration   int         `json:"duration"` // minutes for the whole quiz
	Questions  []*Question `json:"questions"`
}

// Clone deep-copies the quiz so staged edits can't leak into the store
func (z *QuizExercise) Clone() *QuizExercise {
	if z == nil {
		return nil
	}
	out := *z
	out.Questions = make([]*Question, len(z.Questions))
	for i, q := range z.Questions {
		qc := *q
		qc.Options = make([]*Option, len(q.Options))
		for j, o := range q.Options {
			oc := *o
			qc.Options[j] = &oc
		}
		out.Questions[i] = &qc
	}
	return &out
}

// CreateQuizExerciseInput creates the exercise and its quiz content in
// a single request
type CreateQuizExerciseInput struct {
	ModuleID string       `json:"moduleId"`
	Title    string       `json:"title"`
	Type     ExerciseType `json:"type"`
	Order    int          `json:"order,omitempty"`
	Duration int          `json:"duration"`
	QuizData QuizExercise `json:"quizData"`
}

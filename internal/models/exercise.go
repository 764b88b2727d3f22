package models

// ExerciseType tells which kind of content an exercise carries
type ExerciseType string

const (
	ExerciseTypeLab       ExerciseType = "lab"       // hands-on lab with provisioned services
	ExerciseTypeQuestions ExerciseType = "questions" // timed quiz
)

// Valid reports whether the type is one the platform knows about
func (t ExerciseType) Valid() bool {
	return t == ExerciseTypeLab || t == ExerciseTypeQuestions
}

// Exercise is a single activity within a module. The type is fixed at
// creation - editors special-case on it but never change it.
type Exercise struct {
	ID          string       `json:"id"`                    // unique within the parent module
	Title       string       `json:"title"`                 // exercise name
	Type        ExerciseType `json:"type"`                  // lab or questions
	Description string       `json:"description,omitempty"` // what the exercise is about
	Order       int          `json:"order,omitempty"`       // position in module
	Duration    int          `json:"duration,omitempty"`    // estimated minutes
}

// CreateExerciseInput is what we send when creating a new exercise
type CreateExerciseInput struct {
	ModuleID    string       `json:"moduleId"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        ExerciseType `json:"type"`
	Order       int          `json:"order,omitempty"`
	Duration    int          `json:"duration,omitempty"`
}

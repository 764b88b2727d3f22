package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionCorrectOption(t *testing.T) {
	t.Run("returns the index of the correct option", func(t *testing.T) {
		q := &Question{Options: []*Option{
			{Text: "a"},
			{Text: "b", IsCorrect: true},
			{Text: "c"},
		}}
		assert.Equal(t, 1, q.CorrectOption())
	})

	t.Run("returns -1 when nothing is marked", func(t *testing.T) {
		q := &Question{Options: []*Option{{Text: "a"}, {Text: "b"}}}
		assert.Equal(t, -1, q.CorrectOption())
	})
}

func TestQuizExerciseClone(t *testing.T) {
	quiz := &QuizExercise{
		ID:         "quiz-1",
		ExerciseID: "ex-1",
		Duration:   15,
		Questions: []*Question{{
			ID:      "q-1",
			Text:    "Which service stores objects?",
			Options: []*Option{{Text: "S3", IsCorrect: true}, {Text: "EC2"}},
		}},
	}

	clone := quiz.Clone()
	clone.Questions[0].Text = "changed"
	clone.Questions[0].Options[0].IsCorrect = false

	assert.Equal(t, "Which service stores objects?", quiz.Questions[0].Text)
	assert.True(t, quiz.Questions[0].Options[0].IsCorrect)

	var nilQuiz *QuizExercise
	assert.Nil(t, nilQuiz.Clone())
}

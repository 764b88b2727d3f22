package models

import (
	"strings"

	"github.com/google/uuid"
)

// Draft id prefixes, one per entity kind. A draft id marks an entity
// the server hasn't confirmed yet - it gets swapped for the
// server-assigned id on a successful create.
const (
	DraftModulePrefix   = "module"
	DraftExercisePrefix = "exercise"
	DraftLabPrefix      = "lab"
	DraftQuizPrefix     = "quiz"
	DraftQuestionPrefix = "question"
	DraftOptionPrefix   = "option"
)

var draftPrefixes = []string{
	DraftModulePrefix,
	DraftExercisePrefix,
	DraftLabPrefix,
	DraftQuizPrefix,
	DraftQuestionPrefix,
	DraftOptionPrefix,
}

// NewDraftID makes a client-side placeholder id for a new entity
func NewDraftID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// IsDraftID reports whether an id is a client placeholder rather than
// a server-assigned one
func IsDraftID(id string) bool {
	for _, p := range draftPrefixes {
		if strings.HasPrefix(id, p+"-") {
			return true
		}
	}
	return false
}

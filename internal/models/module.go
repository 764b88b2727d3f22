package models

// Module represents a named unit of a learning path within a cloud slice
type Module struct {
	ID            string      `json:"id"`                      // unique within the tree
	Title         string      `json:"title"`                   // module name
	Description   string      `json:"description,omitempty"`   // what this module covers
	Order         int         `json:"order,omitempty"`         // display position in the tree
	TotalDuration int         `json:"totalDuration,omitempty"` // minutes across all exercises
	Exercises     []*Exercise `json:"exercises,omitempty"`     // ordered by display order
	LabID         string      `json:"labId,omitempty"`         // owning cloud slice lab
}

// CreateModuleInput is what we send when creating a new module
type CreateModuleInput struct {
	SliceID       string `json:"sliceId"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Order         int    `json:"order,omitempty"`
	TotalDuration int    `json:"totalDuration,omitempty"`
}

// UniqueExercises returns the module's exercises with duplicate ids
// collapsed to the first occurrence. The module listing endpoint has
// been seen returning the same exercise twice, so anything rendering
// the list should go through this instead of reading Exercises directly.
func (m *Module) UniqueExercises() []*Exercise {
	seen := make(map[string]bool, len(m.Exercises))
	unique := make([]*Exercise, 0, len(m.Exercises))
	for _, ex := range m.Exercises {
		if seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true
		unique = append(unique, ex)
	}
	return unique
}

// FindExercise looks up an exercise by id within the module
func (m *Module) FindExercise(exerciseID string) (*Exercise, bool) {
	for _, ex := range m.Exercises {
		if ex.ID == exerciseID {
			return ex, true
		}
	}
	return nil, false
}

// Clone makes a deep copy so callers can't mutate store-held state
func (m *Module) Clone() *Module {
	if m == nil {
		return nil
	}
	out := *m
	if m.Exercises != nil {
		out.Exercises = make([]*Exercise, len(m.Exercises))
		for i, ex := range m.Exercises {
			clone := *ex
			out.Exercises[i] = &clone
		}
	}
	return &out
}

package workspace

// Selection tracks which module and exercise are expanded for display.
// Pure UI state - nothing here touches persistence or the sync client.
type Selection struct {
	activeModuleID   string
	activeExerciseID string
}

// ToggleModule expands or collapses a module. Switching to a different
// module always collapses whatever exercise was open.
func (s *Selection) ToggleModule(moduleID string) {
	if s.activeModuleID == moduleID {
		s.activeModuleID = ""
		s.activeExerciseID = ""
		return
	}
	s.activeModuleID = moduleID
	s.activeExerciseID = ""
}

// ToggleExercise expands or collapses an exercise independent of
// module state
func (s *Selection) ToggleExercise(exerciseID string) {
	if s.activeExerciseID == exerciseID {
		s.activeExerciseID = ""
		return
	}
	s.activeExerciseID = exerciseID
}

// ActiveModule returns the expanded module id, empty when none
func (s *Selection) ActiveModule() string {
	return s.activeModuleID
}

// ActiveExercise returns the expanded exercise id, empty when none
func (s *Selection) ActiveExercise() string {
	return s.activeExerciseID
}

// Reset collapses everything
func (s *Selection) Reset() {
	s.activeModuleID = ""
	s.activeExerciseID = ""
}

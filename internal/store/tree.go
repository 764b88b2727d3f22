package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/golabz/cloudslice-editor/internal/models"
)

// TreeStore holds the session's authoritative copy of the module tree:
// the ordered module list plus two side maps carrying lab and quiz
// content keyed by exercise id. Pure in-memory state, mutated
// synchronously - callers own re-render and remote sync.
type TreeStore struct {
	mu      sync.RWMutex // for thread safety
	modules []*models.Module
	labs    map[string]*models.LabExercise  // by exercise id
	quizzes map[string]*models.QuizExercise // by exercise id

	log *zap.Logger
}

// New creates an empty tree store
func New(log *zap.Logger) *TreeStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TreeStore{
		labs:    make(map[string]*models.LabExercise),
		quizzes: make(map[string]*models.QuizExercise),
		log:     log.With(zap.String("component", "TreeStore")),
	}
}

// SetModules fully replaces the module list, used after the initial
// fetch and after structural edits. Duplicate exercise ids coming from
// the server are a data error - we keep the first occurrence, drop the
// rest and log, instead of letting duplicates leak into the session.
func (s *TreeStore) SetModules(modules []*models.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modules = make([]*models.Module, 0, len(modules))
	for _, m := range modules {
		clean := m.Clone()
		dropped := len(clean.Exercises)
		clean.Exercises = clean.UniqueExercises()
		if dropped > len(clean.Exercises) {
			s.log.Warn("dropped duplicate exercise ids from server response",
				zap.String("moduleId", clean.ID),
				zap.Int("dropped", dropped-len(clean.Exercises)))
		}
		s.modules = append(s.modules, clean)
	}
}

// Modules returns a deep copy of the current tree
func (s *TreeStore) Modules() []*models.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Module, len(s.modules))
	for i, m := range s.modules {
		out[i] = m.Clone()
	}
	return out
}

// Module returns a copy of one module by id
func (s *TreeStore) Module(moduleID string) (*models.Module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.modules {
		if m.ID == moduleID {
			return m.Clone(), true
		}
	}
	return nil, false
}

// Len reports how many modules the tree holds
func (s *TreeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}

// UpsertModule replaces a module by id, or appends it when new
func (s *TreeStore) UpsertModule(module *models.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clean := module.Clone()
	if clean.Exercises != nil {
		clean.Exercises = clean.UniqueExercises()
	}
	for i, m := range s.modules {
		if m.ID == clean.ID {
			// keep the existing exercise list when the caller didn't
			// send one - module metadata edits don't carry children
			if clean.Exercises == nil {
				clean.Exercises = m.Exercises
			}
			s.modules[i] = clean
			return
		}
	}
	s.modules = append(s.modules, clean)
}

// RemoveModule drops a module and the side-map content of every
// exercise it held
func (s *TreeStore) RemoveModule(moduleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.modules {
		if m.ID != moduleID {
			continue
		}
		for _, ex := range m.Exercises {
			delete(s.labs, ex.ID)
			delete(s.quizzes, ex.ID)
		}
		s.modules = append(s.modules[:i], s.modules[i+1:]...)
		return true
	}
	return false
}

// UpsertExercise replaces or appends an exercise within its module.
// Returns false when the module doesn't exist.
func (s *TreeStore) UpsertExercise(moduleID string, ex *models.Exercise) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.modules {
		if m.ID != moduleID {
			continue
		}
		clone := *ex
		for i, existing := range m.Exercises {
			if existing.ID == clone.ID {
				m.Exercises[i] = &clone
				return true
			}
		}
		m.Exercises = append(m.Exercises, &clone)
		return true
	}
	return false
}

// RemoveExercise drops an exercise from its module and cascades into
// the lab/quiz side maps so no orphaned content lingers
func (s *TreeStore) RemoveExercise(moduleID, exerciseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.modules {
		if m.ID != moduleID {
			continue
		}
		for i, ex := range m.Exercises {
			if ex.ID == exerciseID {
				m.Exercises = append(m.Exercises[:i], m.Exercises[i+1:]...)
				delete(s.labs, exerciseID)
				delete(s.quizzes, exerciseID)
				return true
			}
		}
	}
	return false
}

// ReplaceModuleID swaps a draft module id for the server-confirmed one
func (s *TreeStore) ReplaceModuleID(oldID, newID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.modules {
		if m.ID == oldID {
			m.ID = newID
			return true
		}
	}
	return false
}

// ReplaceExerciseID swaps a draft placeholder id for the
// server-confirmed one, in the tree and in both side maps. After this
// the entity is addressable only by the new id.
func (s *TreeStore) ReplaceExerciseID(oldID, newID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for _, m := range s.modules {
		for _, ex := range m.Exercises {
			if ex.ID == oldID {
				ex.ID = newID
				replaced = true
			}
		}
	}

	if lab, ok := s.labs[oldID]; ok {
		delete(s.labs, oldID)
		lab.ExerciseID = newID
		s.labs[newID] = lab
		replaced = true
	}
	if quiz, ok := s.quizzes[oldID]; ok {
		delete(s.quizzes, oldID)
		quiz.ExerciseID = newID
		s.quizzes[newID] = quiz
		replaced = true
	}
	return replaced
}

// UpsertLabExercise stores lab content under its exercise id
func (s *TreeStore) UpsertLabExercise(exerciseID string, lab *models.LabExercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := lab.Clone()
	clone.ExerciseID = exerciseID
	s.labs[exerciseID] = clone
}

// LabExercise fetches lab content for an exercise, if any
func (s *TreeStore) LabExercise(exerciseID string) (*models.LabExercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lab, ok := s.labs[exerciseID]
	if !ok {
		return nil, false
	}
	return lab.Clone(), true
}

// UpsertQuizExercise stores quiz content under its exercise id
func (s *TreeStore) UpsertQuizExercise(exerciseID string, quiz *models.QuizExercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := quiz.Clone()
	clone.ExerciseID = exerciseID
	s.quizzes[exerciseID] = clone
}

// QuizExercise fetches quiz content for an exercise, if any
func (s *TreeStore) QuizExercise(exerciseID string) (*models.QuizExercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quiz, ok := s.quizzes[exerciseID]
	if !ok {
		return nil, false
	}
	return quiz.Clone(), true
}

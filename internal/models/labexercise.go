package models

import (
	"errors"
	"fmt"
)

// CleanupType selects how provisioned lab resources get reclaimed
type CleanupType string

const (
	CleanupAuto       CleanupType = "auto"       // after a fixed duration
	CleanupScheduled  CleanupType = "scheduled"  // at a wall-clock time
	CleanupInactivity CleanupType = "inactivity" // after idle timeout
	CleanupManual     CleanupType = "manual"     // operator-driven
)

// Default type-specific values applied when a policy is enabled without them
const (
	DefaultCleanupDuration       = 60 // minutes
	DefaultInactivityTimeout     = 30 // minutes
	DefaultCleanupDurationUnit   = "minutes"
	DefaultInactivityTimeoutUnit = "minutes"
)

// CleanupPolicy is a tagged variant - only the field group selected by
// Type is meaningful, the rest stay zero.
type CleanupPolicy struct {
	Enabled               bool        `json:"enabled"`
	Type                  CleanupType `json:"type,omitempty"`
	Duration              int         `json:"duration,omitempty"`              // auto
	DurationUnit          string      `json:"durationUnit,omitempty"`          // auto: seconds|minutes|hours
	ScheduledTime         string      `json:"scheduledTime,omitempty"`         // scheduled
	InactivityTimeout     int         `json:"inactivityTimeout,omitempty"`     // inactivity
	InactivityTimeoutUnit string      `json:"inactivityTimeoutUnit,omitempty"` // inactivity: minutes|hours
}

// Normalize fills the defaults for the selected type and zeroes every
// field group the type doesn't own, so exactly one group survives.
func (p *CleanupPolicy) Normalize() {
	if !p.Enabled {
		return
	}
	if p.Type == "" {
		p.Type = CleanupAuto
	}

	switch p.Type {
	case CleanupAuto:
		if p.Duration <= 0 {
			p.Duration = DefaultCleanupDuration
		}
		if p.DurationUnit == "" {
			p.DurationUnit = DefaultCleanupDurationUnit
		}
		p.ScheduledTime = ""
		p.InactivityTimeout = 0
		p.InactivityTimeoutUnit = ""
	case CleanupScheduled:
		p.Duration = 0
		p.DurationUnit = ""
		p.InactivityTimeout = 0
		p.InactivityTimeoutUnit = ""
	case CleanupInactivity:
		if p.InactivityTimeout <= 0 {
			p.InactivityTimeout = DefaultInactivityTimeout
		}
		if p.InactivityTimeoutUnit == "" {
			p.InactivityTimeoutUnit = DefaultInactivityTimeoutUnit
		}
		p.Duration = 0
		p.DurationUnit = ""
		p.ScheduledTime = ""
	case CleanupManual:
		p.Duration = 0
		p.DurationUnit = ""
		p.ScheduledTime = ""
		p.InactivityTimeout = 0
		p.InactivityTimeoutUnit = ""
	}
}

// Validate checks the tagged-union invariant for an enabled policy
func (p *CleanupPolicy) Validate() error {
	if !p.Enabled {
		return nil
	}
	switch p.Type {
	case CleanupAuto:
		if p.Duration <= 0 {
			return errors.New("auto cleanup requires a positive duration")
		}
	case CleanupScheduled:
		if p.ScheduledTime == "" {
			return errors.New("scheduled cleanup requires a scheduled time")
		}
	case CleanupInactivity:
		if p.InactivityTimeout <= 0 {
			return errors.New("inactivity cleanup requires a positive timeout")
		}
	case CleanupManual:
		// nothing to check
	default:
		return fmt.Errorf("unknown cleanup policy type: %s", p.Type)
	}
	return nil
}

// Credentials are the login details handed to students inside the lab
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LabExercise is the lab-specific content attached to a lab-type
// exercise. ExerciseID is a back-reference only - the lab does not own
// its exercise.
type LabExercise struct {
	ID            string         `json:"id"`
	ExerciseID    string         `json:"exercise_id"`
	Instructions  string         `json:"instructions"`
	Files         []string       `json:"files,omitempty"`    // stored file names/urls
	Services      []string       `json:"services,omitempty"` // selected catalog service names
	Credentials   Credentials    `json:"credentials"`
	CleanupPolicy *CleanupPolicy `json:"cleanupPolicy,omitempty"`
}

// Clone deep-copies the lab so staged edits can't leak into the store
func (l *LabExercise) Clone() *LabExercise {
	if l == nil {
		return nil
	}
	out := *l
	out.Files = append([]string(nil), l.Files...)
	out.Services = append([]string(nil), l.Services...)
	if l.CleanupPolicy != nil {
		policy := *l.CleanupPolicy
		out.CleanupPolicy = &policy
	}
	return &out
}

// FileUpload is a file staged for a multipart create/update request
type FileUpload struct {
	Name    string
	Content []byte
}

// CreateLabExerciseInput creates the exercise and its lab content in a
// single request. The endpoint is multipart, so the nested lab fields
// travel as individually JSON-encoded form values.
type CreateLabExerciseInput struct {
	ModuleID    string
	Title       string
	Description string
	Order       int
	Duration    int
	Lab         LabExercise
	Uploads     []FileUpload
}

// UpdateLabExerciseInput resends the full lab record for an existing
// exercise, plus any newly staged files.
type UpdateLabExerciseInput struct {
	ExerciseID string
	Lab        LabExercise
	Uploads    []FileUpload
}

// LabExerciseResult is what the combined create endpoint hands back
type LabExerciseResult struct {
	ID    string   `json:"id"`    // server-assigned exercise id
	LabID string   `json:"labId"` // server-assigned lab content id
	Files []string `json:"files"` // stored file list after upload
}

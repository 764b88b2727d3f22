package editor

import (
	"context"
	"strings"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// LabSaveResult is what a lab editor submit hands back to the page
// layer. Exercise is only set on create, where the combined endpoint
// makes the exercise row too.
type LabSaveResult struct {
	ExerciseID string
	Exercise   *models.Exercise
	Lab        *models.LabExercise
}

// LabExerciseEditor stages the lab content attached to a lab-type
// exercise. For drafts it also stages the exercise metadata, because
// creation goes through the combined endpoint that makes both records
// in one request - no orphaned exercise if the lab half fails.
type LabExerciseEditor struct {
	submitState

	client     remote.Client
	moduleID   string
	exerciseID string
	form       models.LabExercise
	uploads    []models.FileUpload
	isNew      bool

	// draft-only exercise metadata
	title       string
	description string
	duration    int
	order       int
}

// NewLabExerciseEditor opens an editor over existing lab content, or a
// fresh draft when existing is nil. moduleID routes the combined
// create; exerciseID is the owning exercise for updates.
func NewLabExerciseEditor(client remote.Client, existing *models.LabExercise, moduleID, exerciseID string, order int) *LabExerciseEditor {
	ed := &LabExerciseEditor{
		client:     client,
		moduleID:   moduleID,
		exerciseID: exerciseID,
	}

	if existing != nil {
		ed.form = *existing.Clone()
		return ed
	}

	ed.isNew = true
	ed.duration = 30
	ed.order = order
	ed.form = models.LabExercise{
		ID:         models.NewDraftID(models.DraftLabPrefix),
		ExerciseID: exerciseID,
		CleanupPolicy: &models.CleanupPolicy{
			Enabled:      false,
			Type:         models.CleanupAuto,
			Duration:     models.DefaultCleanupDuration,
			DurationUnit: models.DefaultCleanupDurationUnit,
		},
	}
	return ed
}

// Lab returns a copy of the staged lab content
func (ed *LabExerciseEditor) Lab() models.LabExercise {
	return *ed.form.Clone()
}

func (ed *LabExerciseEditor) SetInstructions(text string) { ed.form.Instructions = text }

// draft-only exercise metadata setters
func (ed *LabExerciseEditor) SetExerciseTitle(title string)      { ed.title = title }
func (ed *LabExerciseEditor) SetExerciseDescription(desc string) { ed.description = desc }
func (ed *LabExerciseEditor) SetExerciseDuration(mins int)       { ed.duration = mins }

func (ed *LabExerciseEditor) SetCredentials(username, password string) {
	ed.form.Credentials = models.Credentials{Username: username, Password: password}
}

// AddFile stages a stored-file reference (name or url)
func (ed *LabExerciseEditor) AddFile(name string) {
	ed.form.Files = append(ed.form.Files, name)
}

func (ed *LabExerciseEditor) RemoveFile(index int) {
	if index < 0 || index >= len(ed.form.Files) {
		return
	}
	ed.form.Files = append(ed.form.Files[:index], ed.form.Files[index+1:]...)
}

// AddUpload stages file content for the next multipart submit
func (ed *LabExerciseEditor) AddUpload(name string, content []byte) {
	ed.uploads = append(ed.uploads, models.FileUpload{Name: name, Content: content})
}

// ToggleService adds the service when absent, removes it when present
func (ed *LabExerciseEditor) ToggleService(name string) {
	for i, svc := range ed.form.Services {
		if svc == name {
			ed.form.Services = append(ed.form.Services[:i], ed.form.Services[i+1:]...)
			return
		}
	}
	ed.form.Services = append(ed.form.Services, name)
}

// HasService reports whether a service is currently selected
func (ed *LabExerciseEditor) HasService(name string) bool {
	for _, svc := range ed.form.Services {
		if svc == name {
			return true
		}
	}
	return false
}

func (ed *LabExerciseEditor) policy() *models.CleanupPolicy {
	if ed.form.CleanupPolicy == nil {
		ed.form.CleanupPolicy = &models.CleanupPolicy{}
	}
	return ed.form.CleanupPolicy
}

// SetCleanupEnabled flips the policy on or off, normalizing defaults
// in when it turns on
func (ed *LabExerciseEditor) SetCleanupEnabled(enabled bool) {
	p := ed.policy()
	p.Enabled = enabled
	p.Normalize()
}

// SetCleanupType switches the variant; the fields of the old variant
// are zeroed and the new variant's defaults come in
func (ed *LabExerciseEditor) SetCleanupType(t models.CleanupType) {
	p := ed.policy()
	p.Type = t
	p.Normalize()
}

func (ed *LabExerciseEditor) SetCleanupDuration(n int, unit string) {
	p := ed.policy()
	p.Duration = n
	p.DurationUnit = unit
	p.Normalize()
}

func (ed *LabExerciseEditor) SetScheduledTime(ts string) {
	p := ed.policy()
	p.ScheduledTime = ts
	p.Normalize()
}

func (ed *LabExerciseEditor) SetInactivityTimeout(n int, unit string) {
	p := ed.policy()
	p.InactivityTimeout = n
	p.InactivityTimeoutUnit = unit
	p.Normalize()
}

// Validate runs the local rules before any network call
func (ed *LabExerciseEditor) Validate() error {
	if strings.TrimSpace(ed.form.Instructions) == "" {
		return &ValidationError{Message: "Instructions are required"}
	}
	if ed.isNew {
		if strings.TrimSpace(ed.title) == "" {
			return &ValidationError{Message: "Exercise title is required"}
		}
		if ed.duration < 1 {
			return &ValidationError{Message: "Exercise duration must be at least 1 minute"}
		}
	}
	if ed.form.CleanupPolicy != nil {
		if err := ed.form.CleanupPolicy.Validate(); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}

// staged returns the lab record ready for the wire: empty file entries
// filtered out, policy normalized
func (ed *LabExerciseEditor) staged() models.LabExercise {
	out := ed.Lab()
	files := out.Files[:0]
	for _, f := range out.Files {
		if strings.TrimSpace(f) != "" {
			files = append(files, f)
		}
	}
	out.Files = files
	if out.CleanupPolicy != nil {
		out.CleanupPolicy.Normalize()
	}
	return out
}

// Submit saves the staged lab. Create goes through the combined
// endpoint and the result carries both server ids plus the stored file
// list; update resends the full record.
func (ed *LabExerciseEditor) Submit(ctx context.Context) (*LabSaveResult, error) {
	if err := ed.begin(); err != nil {
		return nil, err
	}
	defer ed.end()

	if err := ed.Validate(); err != nil {
		ed.setLocalErr(err.Error())
		return nil, err
	}

	lab := ed.staged()

	if ed.isNew {
		result, err := ed.client.CreateLabExercise(ctx, models.CreateLabExerciseInput{
			ModuleID:    ed.moduleID,
			Title:       ed.title,
			Description: ed.description,
			Order:       ed.order,
			Duration:    ed.duration,
			Lab:         lab,
			Uploads:     ed.uploads,
		})
		if err != nil {
			ed.setAPIErr(remote.UserMessage(err))
			return nil, err
		}

		saved := lab
		saved.ID = result.LabID
		saved.ExerciseID = result.ID
		if len(result.Files) > 0 {
			saved.Files = result.Files
		}
		ed.setSuccess("Lab exercise created successfully")
		return &LabSaveResult{
			ExerciseID: result.ID,
			Exercise: &models.Exercise{
				ID:          result.ID,
				Title:       ed.title,
				Type:        models.ExerciseTypeLab,
				Description: ed.description,
				Order:       ed.order,
				Duration:    ed.duration,
			},
			Lab: &saved,
		}, nil
	}

	result, err := ed.client.UpdateLabExercise(ctx, models.UpdateLabExerciseInput{
		ExerciseID: ed.exerciseID,
		Lab:        lab,
		Uploads:    ed.uploads,
	})
	if err != nil {
		ed.setAPIErr(remote.UserMessage(err))
		return nil, err
	}

	saved := lab
	if len(result.Files) > 0 {
		saved.Files = result.Files
	}
	ed.setSuccess("Lab exercise updated successfully")
	return &LabSaveResult{ExerciseID: ed.exerciseID, Lab: &saved}, nil
}

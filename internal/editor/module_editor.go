package editor

import (
	"context"
	"strings"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// ModuleEditor stages one module's metadata. Pass nil for a brand new
// module.
type ModuleEditor struct {
	submitState

	client  remote.Client
	sliceID string
	form    models.Module
	isNew   bool
}

// NewModuleEditor opens an editor over an existing module, or a fresh
// draft when existing is nil. order is only used for drafts and should
// be the next free position in the tree.
func NewModuleEditor(client remote.Client, existing *models.Module, sliceID, labID string, order int) *ModuleEditor {
	ed := &ModuleEditor{client: client, sliceID: sliceID}

	if existing != nil {
		ed.form = *existing.Clone()
		return ed
	}

	ed.isNew = true
	ed.form = models.Module{
		ID:            models.NewDraftID(models.DraftModulePrefix),
		Order:         order,
		TotalDuration: 60,
		LabID:         labID,
	}
	return ed
}

// Module returns a copy of the staged form
func (ed *ModuleEditor) Module() models.Module {
	return *ed.form.Clone()
}

func (ed *ModuleEditor) SetTitle(title string)      { ed.form.Title = title }
func (ed *ModuleEditor) SetDescription(desc string) { ed.form.Description = desc }
func (ed *ModuleEditor) SetOrder(order int)         { ed.form.Order = order }
func (ed *ModuleEditor) SetTotalDuration(mins int)  { ed.form.TotalDuration = mins }

// Validate runs the local rules. A failure here must block the network
// call entirely.
func (ed *ModuleEditor) Validate() error {
	if strings.TrimSpace(ed.form.Title) == "" {
		return &ValidationError{Message: "Module title is required"}
	}
	if ed.form.Order < 1 {
		return &ValidationError{Message: "Module order must be at least 1"}
	}
	if ed.form.TotalDuration < 1 {
		return &ValidationError{Message: "Module duration must be at least 1 minute"}
	}
	return nil
}

// Submit saves the staged module: create for drafts, full-record
// update otherwise. On success the returned module carries the
// server-confirmed id; on rejection the staged edits stay put so the
// user can correct and resubmit.
func (ed *ModuleEditor) Submit(ctx context.Context) (*models.Module, error) {
	if err := ed.begin(); err != nil {
		return nil, err
	}
	defer ed.end()

	if err := ed.Validate(); err != nil {
		ed.setLocalErr(err.Error())
		return nil, err
	}

	if ed.isNew {
		id, err := ed.client.CreateModule(ctx, models.CreateModuleInput{
			SliceID:       ed.sliceID,
			Title:         ed.form.Title,
			Description:   ed.form.Description,
			Order:         ed.form.Order,
			TotalDuration: ed.form.TotalDuration,
		})
		if err != nil {
			ed.setAPIErr(remote.UserMessage(err))
			return nil, err
		}

		saved := ed.form.Clone()
		saved.ID = id
		ed.setSuccess("Module created successfully")
		return saved, nil
	}

	if err := ed.client.UpdateModule(ctx, ed.form); err != nil {
		ed.setAPIErr(remote.UserMessage(err))
		return nil, err
	}

	ed.setSuccess("Module updated successfully")
	return ed.form.Clone(), nil
}

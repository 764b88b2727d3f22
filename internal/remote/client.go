package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/golabz/cloudslice-editor/internal/models"
)

// Client issues exactly one HTTP call per staged entity against the
// cloud_slice_ms service. No retries, no queueing - each submit is one
// attempt whose outcome the caller surfaces directly.
type Client interface {
	ListModules(ctx context.Context, sliceID string) ([]*models.Module, error)
	CreateModule(ctx context.Context, in models.CreateModuleInput) (string, error)
	UpdateModule(ctx context.Context, m models.Module) error
	DeleteModule(ctx context.Context, moduleID string) error

	CreateExercise(ctx context.Context, in models.CreateExerciseInput) (string, error)
	UpdateExercise(ctx context.Context, moduleID string, ex models.Exercise) error
	DeleteExercise(ctx context.Context, exerciseID string) error

	CreateLabExercise(ctx context.Context, in models.CreateLabExerciseInput) (*models.LabExerciseResult, error)
	UpdateLabExercise(ctx context.Context, in models.UpdateLabExerciseInput) (*models.LabExerciseResult, error)

	CreateQuizExercise(ctx context.Context, in models.CreateQuizExerciseInput) (string, error)
	UpdateQuizExercise(ctx context.Context, quiz models.QuizExercise) error

	CreateLabModules(ctx context.Context, in BulkCreateInput) error

	GetAwsServices(ctx context.Context) ([]models.RawService, error)
}

// BulkExercise is one exercise inside the whole-tree save payload,
// with its lab or quiz content inlined
type BulkExercise struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Type      models.ExerciseType `json:"type"`
	Order     int                 `json:"order,omitempty"`
	Duration  int                 `json:"duration,omitempty"`
	Lab       *models.LabExercise `json:"labExercise,omitempty"`
	Questions []*models.Question  `json:"questions,omitempty"`
}

// BulkModule is one module inside the whole-tree save payload
type BulkModule struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Order       int            `json:"order,omitempty"`
	Exercises   []BulkExercise `json:"exercises"`
}

// BulkCreateInput saves a freshly drafted module tree in one request
type BulkCreateInput struct {
	LabConfig map[string]interface{} `json:"labConfig,omitempty"`
	Modules   []BulkModule           `json:"modules"`
	CreatedBy string                 `json:"createdBy,omitempty"`
}

// Config carries the connection settings, normally filled from env by
// the config package
type Config struct {
	BaseURL string        // e.g. http://localhost:3000/api/v1
	Token   string        // bearer token, optional
	Timeout time.Duration // per-request; zero means the default
}

const defaultTimeout = 30 * time.Second

type client struct {
	log        *zap.Logger
	cfg        Config
	httpClient *http.Client
}

// New builds a sync client. The base URL must point at the API root
// that the cloud_slice_ms paths hang off.
func New(log *zap.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing API base URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &client{
		log:        log.With(zap.String("client", "CloudSliceClient")),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *client) url(path string) string {
	return c.cfg.BaseURL + "/cloud_slice_ms/" + path
}

// do sends the request and decodes the standard envelope. Transport
// failures and non-envelope responses come back wrapped under the
// generic user-facing message.
func (c *client) do(ctx context.Context, req *http.Request) (json.RawMessage, error) {
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", GenericFailureMessage, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GenericFailureMessage, err)
	}

	c.log.Debug("request done",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	data, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *client) doJSON(ctx context.Context, method, path string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(ctx, req)
}

// ListModules fetches the full module tree for a cloud slice
func (c *client) ListModules(ctx context.Context, sliceID string) ([]*models.Module, error) {
	data, err := c.doJSON(ctx, http.MethodGet, "getModules/"+sliceID, nil)
	if err != nil {
		return nil, err
	}

	var mods []*models.Module
	if len(data) > 0 {
		if err := json.Unmarshal(data, &mods); err != nil {
			return nil, fmt.Errorf("decoding modules: %w", err)
		}
	}
	return mods, nil
}

// idPayload is the data shape create endpoints answer with
type idPayload struct {
	ID string `json:"id"`
}

func decodeID(data json.RawMessage) (string, error) {
	var p idPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("decoding created id: %w", err)
	}
	if p.ID == "" {
		return "", fmt.Errorf("server returned no id for created record")
	}
	return p.ID, nil
}

// CreateModule sends the staged module fields and returns the
// server-assigned id
func (c *client) CreateModule(ctx context.Context, in models.CreateModuleInput) (string, error) {
	data, err := c.doJSON(ctx, http.MethodPost, "createModule", in)
	if err != nil {
		return "", err
	}
	return decodeID(data)
}

// UpdateModule resends the complete record - there is no partial PATCH
// anywhere on this API
func (c *client) UpdateModule(ctx context.Context, m models.Module) error {
	_, err := c.doJSON(ctx, http.MethodPut, "updateModule", m)
	return err
}

func (c *client) DeleteModule(ctx context.Context, moduleID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "deleteModule/"+moduleID, nil)
	return err
}

func (c *client) CreateExercise(ctx context.Context, in models.CreateExerciseInput) (string, error) {
	data, err := c.doJSON(ctx, http.MethodPost, "createExercise", in)
	if err != nil {
		return "", err
	}
	return decodeID(data)
}

func (c *client) UpdateExercise(ctx context.Context, moduleID string, ex models.Exercise) error {
	payload := struct {
		models.Exercise
		ModuleID string `json:"moduleId"`
	}{Exercise: ex, ModuleID: moduleID}

	_, err := c.doJSON(ctx, http.MethodPut, "updateExercise", payload)
	return err
}

func (c *client) DeleteExercise(ctx context.Context, exerciseID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "deleteExercise/"+exerciseID, nil)
	return err
}

// labFormFields writes the lab record into a flat multipart form. The
// transport can't nest, so services, credentials and the cleanup
// policy each go in as one JSON-encoded value.
func labFormFields(w *multipart.Writer, lab models.LabExercise) error {
	if err := w.WriteField("instructions", lab.Instructions); err != nil {
		return err
	}

	services, err := json.Marshal(lab.Services)
	if err != nil {
		return err
	}
	if err := w.WriteField("services", string(services)); err != nil {
		return err
	}

	creds, err := json.Marshal(lab.Credentials)
	if err != nil {
		return err
	}
	if err := w.WriteField("credentials", string(creds)); err != nil {
		return err
	}

	if lab.CleanupPolicy != nil {
		policy, err := json.Marshal(lab.CleanupPolicy)
		if err != nil {
			return err
		}
		if err := w.WriteField("cleanupPolicy", string(policy)); err != nil {
			return err
		}
	}

	if len(lab.Files) > 0 {
		files, err := json.Marshal(lab.Files)
		if err != nil {
			return err
		}
		if err := w.WriteField("files", string(files)); err != nil {
			return err
		}
	}
	return nil
}

func writeUploads(w *multipart.Writer, uploads []models.FileUpload) error {
	for _, up := range uploads {
		part, err := w.CreateFormFile("files", up.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(up.Content); err != nil {
			return err
		}
	}
	return nil
}

func (c *client) doMultipart(ctx context.Context, method, path string, build func(*multipart.Writer) error) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(ctx, req)
}

// CreateLabExercise hits the combined endpoint that creates the
// exercise row and its lab content in one shot
func (c *client) CreateLabExercise(ctx context.Context, in models.CreateLabExerciseInput) (*models.LabExerciseResult, error) {
	data, err := c.doMultipart(ctx, http.MethodPost, "createLabExercise", func(w *multipart.Writer) error {
		if err := w.WriteField("title", in.Title); err != nil {
			return err
		}
		if err := w.WriteField("description", in.Description); err != nil {
			return err
		}
		if err := w.WriteField("type", string(models.ExerciseTypeLab)); err != nil {
			return err
		}
		if err := w.WriteField("order", strconv.Itoa(in.Order)); err != nil {
			return err
		}
		if err := w.WriteField("duration", strconv.Itoa(in.Duration)); err != nil {
			return err
		}
		if err := w.WriteField("moduleId", in.ModuleID); err != nil {
			return err
		}
		if err := labFormFields(w, in.Lab); err != nil {
			return err
		}
		return writeUploads(w, in.Uploads)
	})
	if err != nil {
		return nil, err
	}

	var result models.LabExerciseResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding lab exercise result: %w", err)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("server returned no id for created lab exercise")
	}
	return &result, nil
}

// UpdateLabExercise resends the full lab record plus any new files
func (c *client) UpdateLabExercise(ctx context.Context, in models.UpdateLabExerciseInput) (*models.LabExerciseResult, error) {
	data, err := c.doMultipart(ctx, http.MethodPut, "updateLabExercise", func(w *multipart.Writer) error {
		if err := w.WriteField("exerciseId", in.ExerciseID); err != nil {
			return err
		}
		if err := w.WriteField("id", in.Lab.ID); err != nil {
			return err
		}
		if err := labFormFields(w, in.Lab); err != nil {
			return err
		}
		return writeUploads(w, in.Uploads)
	})
	if err != nil {
		return nil, err
	}

	result := &models.LabExerciseResult{ID: in.ExerciseID, LabID: in.Lab.ID}
	if len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return nil, fmt.Errorf("decoding lab exercise result: %w", err)
		}
	}
	return result, nil
}

// CreateQuizExercise hits the combined endpoint for a questions-type
// exercise and its quiz content
func (c *client) CreateQuizExercise(ctx context.Context, in models.CreateQuizExerciseInput) (string, error) {
	in.Type = models.ExerciseTypeQuestions
	data, err := c.doJSON(ctx, http.MethodPost, "createQuizExercise", in)
	if err != nil {
		return "", err
	}
	return decodeID(data)
}

func (c *client) UpdateQuizExercise(ctx context.Context, quiz models.QuizExercise) error {
	_, err := c.doJSON(ctx, http.MethodPut, "updateQuizExercise", quiz)
	return err
}

// CreateLabModules saves a whole drafted tree in a single request
func (c *client) CreateLabModules(ctx context.Context, in BulkCreateInput) error {
	_, err := c.doJSON(ctx, http.MethodPost, "createLabModules", in)
	return err
}

// GetAwsServices fetches the raw service catalog rows
func (c *client) GetAwsServices(ctx context.Context) ([]models.RawService, error) {
	data, err := c.doJSON(ctx, http.MethodGet, "getAwsServices", nil)
	if err != nil {
		return nil, err
	}

	var raw []models.RawService
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decoding service catalog: %w", err)
		}
	}
	return raw, nil
}

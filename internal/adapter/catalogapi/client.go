// Package catalogapi is the HTTP client of the catalog API. It is the
// gateway the ingestion pipeline, the navigation tree and catalogctl use.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/pkg/envelope"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client talks to the catalog API. Requests are never retried.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client from the client configuration.
func New(cfg config.ClientConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "catalogapi"),
	}
}

// APIError is a non-2xx or unsuccessful envelope returned by the server.
type APIError struct {
	Status  int
	Code    string
	Field   string
	Message string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("catalog api: %d %s (%s): %s", e.Status, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("catalog api: %d %s: %s", e.Status, e.Code, e.Message)
}

// ServerMessage returns the error text sent by the server.
func (e *APIError) ServerMessage() string { return e.Message }

// Unwrap exposes the domain error matching the response code, so callers
// can use errors.Is and errors.As against the domain taxonomy.
func (e *APIError) Unwrap() error {
	code := e.Code
	if code == "" {
		code = codeForStatus(e.Status)
	}
	switch code {
	case envelope.CodeValidation:
		if e.Field != "" {
			return domain.NewValidationError(e.Field, e.Message)
		}
	case envelope.CodeJSONParse:
		return &domain.JSONParseError{Message: e.Message}
	}
	return envelope.Sentinel(code)
}

// codeForStatus covers responses that carry no envelope, such as a proxy error page.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return envelope.CodeValidation
	case http.StatusUnauthorized:
		return envelope.CodeUnauthenticated
	case http.StatusForbidden:
		return envelope.CodeForbidden
	case http.StatusNotFound:
		return envelope.CodeNotFound
	case http.StatusConflict:
		return envelope.CodeAlreadyExists
	case http.StatusBadGateway:
		return envelope.CodeUpstream
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

// FetchDictionary asks the server to look word up. It returns nil, nil when
// the dictionary does not know the word.
func (c *Client) FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error) {
	var out domain.PartialRecord
	err := c.do(ctx, http.MethodPost, "/vocabulary/fetch", map[string]string{"word": word}, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// CreateRecord submits a new record and returns its id.
func (c *Client) CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/"+kind.ResourceType()+"/create", payload, &out); err != nil {
		return uuid.Nil, err
	}
	return out.ID, nil
}

// UpdateRecord replaces the record id.
func (c *Client) UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error {
	return c.do(ctx, http.MethodPut, "/"+kind.ResourceType()+"/"+id.String(), payload, nil)
}

// DeleteRecord removes the record id together with its board memberships.
func (c *Client) DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/"+kind.ResourceType()+"/delete/"+id.String(), nil, nil)
}

// GetRecord reads one record back.
func (c *Client) GetRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error) {
	var out domain.LexicalRecord
	if err := c.do(ctx, http.MethodGet, "/"+kind.ResourceType()+"/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRecords pages through the records of one kind.
func (c *Client) ListRecords(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if offset > 0 {
		q.Set("offset", fmt.Sprint(offset))
	}
	path := "/" + kind.ResourceType()
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	out := []domain.LexicalRecord{}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Boards and lessons
// ---------------------------------------------------------------------------

// LinkToBoard adds itemID to boardID. Linking an existing member is a no-op.
func (c *Client) LinkToBoard(ctx context.Context, boardID, itemID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/boards/"+boardID.String()+"/items", map[string]uuid.UUID{"itemId": itemID}, nil)
}

// ListBoards returns the boards of one catalog type.
func (c *Client) ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error) {
	out := []domain.Board{}
	path := "/boards?" + url.Values{"type": {string(boardType)}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLessons returns the lessons of a board.
func (c *Client) ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	out := []domain.Lesson{}
	path := "/lessons?" + url.Values{"boardId": {boardID.String()}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBoardItems returns the ids of the records on a board.
func (c *Client) ListBoardItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID.String()+"/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBoard adds a board.
func (c *Client) CreateBoard(ctx context.Context, name string, boardType domain.BoardType, order int) (*domain.Board, error) {
	body := struct {
		Name  string           `json:"name"`
		Type  domain.BoardType `json:"type"`
		Order int              `json:"order"`
	}{name, boardType, order}

	var out domain.Board
	if err := c.do(ctx, http.MethodPost, "/boards", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLesson adds a lesson to a board.
func (c *Client) CreateLesson(ctx context.Context, boardID uuid.UUID, title string, order int) (*domain.Lesson, error) {
	body := struct {
		Title string `json:"title"`
		Order int    `json:"order"`
	}{title, order}

	var out domain.Lesson
	if err := c.do(ctx, http.MethodPost, "/boards/"+boardID.String()+"/lessons", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBoard removes a board with its lessons and memberships.
func (c *Client) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+boardID.String(), nil, nil)
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// do sends one request and decodes the envelope. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("catalog api: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("catalog api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.DebugContext(ctx, "catalog api request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("catalog api: read response: %w", err)
	}

	var env envelope.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("catalog api: decode envelope: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    env.Code,
			Field:   env.Field,
			Message: env.Error,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("catalog api: decode data: %w", err)
		}
	}
	return nil
}

package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/service/catalog"
	"github.com/heartmarshall/myenglish-catalog/pkg/envelope"
)

// catalogService is the subset of catalog.Service used by the handlers.
type catalogService interface {
	FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error)
	CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error)
	UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error
	DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
	GetRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error)
	ListRecords(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error)

	ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)
	CreateBoard(ctx context.Context, input catalog.CreateBoardInput) (*domain.Board, error)
	DeleteBoard(ctx context.Context, id uuid.UUID) error
	LinkItem(ctx context.Context, boardID, recordID uuid.UUID) error
	ListBoardItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
	ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)
	CreateLesson(ctx context.Context, input catalog.CreateLessonInput) (*domain.Lesson, error)
}

// CatalogHandler serves the catalog REST endpoints.
type CatalogHandler struct {
	svc          catalogService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger, maxBodyBytes int64) *CatalogHandler {
	return &CatalogHandler{
		svc:          svc,
		log:          logger.With("handler", "catalog"),
		maxBodyBytes: maxBodyBytes,
	}
}

type kindCtxKey struct{}

// resolveKind maps the {resourceType} segment onto a record kind. Unknown
// resources are answered with 404.
func (h *CatalogHandler) resolveKind(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, ok := domain.RecordKindFromResource(chi.URLParam(r, "resourceType"))
		if !ok {
			envelope.WriteError(w, envelope.CodeNotFound, "unknown resource type", "resourceType")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), kindCtxKey{}, kind)))
	})
}

func kindFrom(r *http.Request) domain.RecordKind {
	kind, _ := r.Context().Value(kindCtxKey{}).(domain.RecordKind)
	return kind
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

type fetchRequest struct {
	Word string `json:"word"`
}

type idResponse struct {
	ID uuid.UUID `json:"id"`
}

// FetchDictionary looks a word up in the upstream dictionary.
// POST /vocabulary/fetch
func (h *CatalogHandler) FetchDictionary(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(r.Context(), h.log, w, err)
		return
	}

	partial, err := h.svc.FetchDictionary(r.Context(), req.Word)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, partial)
}

// CreateRecord stores a new record.
// POST /{resourceType}/create
func (h *CatalogHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var payload domain.RecordPayload
	if err := decodeBody(w, r, h.maxBodyBytes, &payload); err != nil {
		writeDecodeError(r.Context(), h.log, w, err)
		return
	}

	id, err := h.svc.CreateRecord(r.Context(), kindFrom(r), payload)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusCreated, idResponse{ID: id})
}

// UpdateRecord replaces a record.
// PUT /{resourceType}/{id}
func (h *CatalogHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	var payload domain.RecordPayload
	if err := decodeBody(w, r, h.maxBodyBytes, &payload); err != nil {
		writeDecodeError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.UpdateRecord(r.Context(), kindFrom(r), id, payload); err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// DeleteRecord removes a record and its board memberships.
// DELETE /{resourceType}/delete/{id}
func (h *CatalogHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteRecord(r.Context(), kindFrom(r), id); err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// GetRecord returns one record.
// GET /{resourceType}/{id}
func (h *CatalogHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}
	rec, err := h.svc.GetRecord(r.Context(), kindFrom(r), id)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, rec)
}

// ListRecords pages through records of one kind.
// GET /{resourceType}?limit=&offset=
func (h *CatalogHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.intQuery(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := h.intQuery(w, r, "offset")
	if !ok {
		return
	}

	recs, err := h.svc.ListRecords(r.Context(), kindFrom(r), limit, offset)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, recs)
}

// ---------------------------------------------------------------------------
// Boards and lessons
// ---------------------------------------------------------------------------

type linkRequest struct {
	ItemID uuid.UUID `json:"itemId"`
}

// ListBoards returns the boards of a type.
// GET /boards?type=
func (h *CatalogHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.ListBoards(r.Context(), domain.BoardType(r.URL.Query().Get("type")))
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, boards)
}

// CreateBoard adds a board.
// POST /boards
func (h *CatalogHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var input catalog.CreateBoardInput
	if err := decodeBody(w, r, h.maxBodyBytes, &input); err != nil {
		writeDecodeError(r.Context(), h.log, w, err)
		return
	}

	b, err := h.svc.CreateBoard(r.Context(), input)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusCreated, b)
}

// DeleteBoard removes a board with its lessons and memberships.
// DELETE /boards/{boardId}
func (h *CatalogHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "boardId")
	if !ok {
		return
	}
	if err := h.svc.DeleteBoard(r.Context(), id); err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// LinkItem adds a record to a board.
// POST /boards/{boardId}/items
func (h *CatalogHandler) LinkItem(w http.ResponseWriter, r *http.Request) {
	boardID, ok := h.uuidParam(w, r, "boardId")
	if !ok {
		return
	}

	var req linkRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		writeDecodeError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.LinkItem(r.Context(), boardID, req.ItemID); err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// ListBoardItems returns the ids of records on a board.
// GET /boards/{boardId}/items
func (h *CatalogHandler) ListBoardItems(w http.ResponseWriter, r *http.Request) {
	boardID, ok := h.uuidParam(w, r, "boardId")
	if !ok {
		return
	}
	ids, err := h.svc.ListBoardItems(r.Context(), boardID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, ids)
}

// CreateLesson adds a lesson to a board.
// POST /boards/{boardId}/lessons
func (h *CatalogHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	boardID, ok := h.uuidParam(w, r, "boardId")
	if !ok {
		return
	}

	var input catalog.CreateLessonInput
	if err := decodeBody(w, r, h.maxBodyBytes, &input); err != nil {
		writeDecodeError(r.Context(), h.log, w, err)
		return
	}
	input.BoardID = boardID

	l, err := h.svc.CreateLesson(r.Context(), input)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusCreated, l)
}

// ListLessons returns the lessons of a board.
// GET /lessons?boardId=
func (h *CatalogHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("boardId")
	boardID, err := uuid.Parse(raw)
	if err != nil {
		envelope.WriteError(w, envelope.CodeValidation, "must be a valid id", "boardId")
		return
	}

	lessons, err := h.svc.ListLessons(r.Context(), boardID)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, http.StatusOK, lessons)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *CatalogHandler) uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		envelope.WriteError(w, envelope.CodeValidation, "must be a valid id", name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *CatalogHandler) intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		envelope.WriteError(w, envelope.CodeValidation, "must be an integer", name)
		return 0, false
	}
	return n, true
}

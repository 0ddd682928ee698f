package ingest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type boardLinker interface {
	LinkToBoard(ctx context.Context, boardID, itemID uuid.UUID) error
}

// Associator links freshly created records to a board. Linking is best-effort:
// a failure is logged and swallowed, and the created record is kept.
type Associator struct {
	linker boardLinker
	log    *slog.Logger
}

// NewAssociator creates an Associator.
func NewAssociator(logger *slog.Logger, linker boardLinker) *Associator {
	return &Associator{
		linker: linker,
		log:    logger.With("service", "board_associator"),
	}
}

// Associate links itemID to boardID when a board was chosen. It reports
// whether the link was made; it never returns an error.
func (a *Associator) Associate(ctx context.Context, boardID *uuid.UUID, itemID uuid.UUID) bool {
	if boardID == nil || *boardID == uuid.Nil || a.linker == nil {
		return false
	}

	if err := a.linker.LinkToBoard(ctx, *boardID, itemID); err != nil {
		a.log.WarnContext(ctx, "board association failed",
			slog.String("board_id", boardID.String()),
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}

	a.log.DebugContext(ctx, "record linked to board",
		slog.String("board_id", boardID.String()),
		slog.String("item_id", itemID.String()),
	)
	return true
}

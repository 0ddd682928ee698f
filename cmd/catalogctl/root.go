package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-catalog/internal/adapter/catalogapi"
	"github.com/heartmarshall/myenglish-catalog/internal/app"
	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/errclass"
	"github.com/heartmarshall/myenglish-catalog/internal/ingest"
)

// gateway is the part of the catalog API catalogctl drives.
type gateway interface {
	FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error)
	CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error)
	UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error
	DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
	GetRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error)
	LinkToBoard(ctx context.Context, boardID, itemID uuid.UUID) error
	ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)
	ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)
}

// env is what a command needs from the outside world.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	gateway gateway
}

// envLoader builds the env lazily so --help works without configuration.
type envLoader func() (*env, error)

func defaultEnv() (*env, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)
	return &env{
		cfg:     cfg,
		logger:  logger,
		gateway: catalogapi.New(cfg.Client, logger),
	}, nil
}

func (e *env) pipeline() *ingest.Pipeline {
	return ingest.NewPipeline(
		e.logger,
		ingest.NewNormalizer(e.gateway),
		e.gateway,
		ingest.NewAssociator(e.logger, e.gateway),
	)
}

func (e *env) classifier() *errclass.Classifier {
	return errclass.New(e.cfg.Client.Locale)
}

func newRootCmd(load envLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Author lexical records and browse catalog boards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(load),
		newFetchCmd(load),
		newImportCmd(load),
		newEditCmd(load),
		newDeleteCmd(load),
		newTreeCmd(load),
		newTokenCmd(load),
	)
	return root
}

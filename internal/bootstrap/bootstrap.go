// Package bootstrap wires configuration, adapters and use cases into
// a runnable application shared by the api, worker and mcp binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/legalaid/docgate/internal/config"
	"github.com/legalaid/docgate/internal/core/domain"
	"github.com/legalaid/docgate/internal/core/ports"
	"github.com/legalaid/docgate/internal/core/usecase"
	"github.com/legalaid/docgate/internal/infrastructure/classifier/zeroshot"
	"github.com/legalaid/docgate/internal/infrastructure/extractor"
	"github.com/legalaid/docgate/internal/infrastructure/llm/ollama"
	"github.com/legalaid/docgate/internal/infrastructure/queue/nats"
	"github.com/legalaid/docgate/internal/infrastructure/repository/postgres"
	"github.com/legalaid/docgate/internal/infrastructure/resilience"
	"github.com/legalaid/docgate/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	GateUC     ports.DocumentGate
	SubmitUC   ports.DocumentSubmitter
	ScreenUC   ports.DocumentScreener
	FeedbackUC ports.FeedbackRecorder

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	feedbackRepo := postgres.NewFeedbackRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	gateUC, err := buildGate(cfg, executor)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, err
	}

	docExtractor := extractor.New(storage)

	submitUC := usecase.NewSubmitDocumentUseCase(repo, storage, queue)
	screenUC := usecase.NewScreenDocumentUseCase(repo, docExtractor, gateUC)
	feedbackUC := usecase.NewRecordFeedbackUseCase(repo, feedbackRepo)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		GateUC:     gateUC,
		SubmitUC:   submitUC,
		ScreenUC:   screenUC,
		FeedbackUC: feedbackUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// NewGate builds the decision engine alone, without postgres or nats.
// The mcp binary uses it to serve synchronous evaluations.
func NewGate(cfg config.Config) (ports.DocumentGate, error) {
	return buildGate(cfg, resilience.NewExecutor(resilience.DefaultConfig()))
}

// buildGate assembles the decision engine: lexical scanner, zero-shot
// classifier, judge and threshold parameters, with optional overrides
// from the rules file.
func buildGate(cfg config.Config, executor *resilience.Executor) (*usecase.EvaluateUseCase, error) {
	rules, err := config.LoadGateRules(cfg.GateRulesPath)
	if err != nil {
		return nil, fmt.Errorf("load gate rules: %w", err)
	}

	taxonomy := domain.DefaultTaxonomy()
	if rules.HasTaxonomy() {
		taxonomy = domain.Taxonomy{
			Accept: rules.Taxonomy.Accept,
			Reject: rules.Taxonomy.Reject,
		}
	}

	scanner, err := usecase.NewLexicalScanner(rules.PositivePatterns, rules.NegativePatterns)
	if err != nil {
		return nil, fmt.Errorf("compile lexical rules: %w", err)
	}

	classifier := zeroshot.New(
		cfg.ClassifierURL,
		cfg.ClassifierModel,
		zeroshot.WithResilienceExecutor(executor),
	)
	judge := ollama.NewJudge(
		ollama.New(cfg.OllamaURL, cfg.OllamaJudgeModel, ollama.WithResilienceExecutor(executor)),
		taxonomy,
	)

	params := usecase.GateParams{
		Taxonomy:           taxonomy,
		ConfidenceWeight:   cfg.ConfidenceWeight,
		HighAccept:         cfg.HighAccept,
		HighReject:         cfg.HighReject,
		LowReject:          cfg.LowReject,
		ExcerptBudget:      cfg.ExcerptBudget,
		JudgeExcerptBudget: cfg.JudgeExcerptBudget,
	}
	return usecase.NewEvaluateUseCase(scanner, classifier, judge, params), nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

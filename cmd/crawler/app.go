package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"manuaisprj/internal/cache"
	"manuaisprj/internal/classifier"
	"manuaisprj/internal/comparison"
	"manuaisprj/internal/config"
	"manuaisprj/internal/db"
	"manuaisprj/internal/dedup"
	"manuaisprj/internal/fallback"
	"manuaisprj/internal/layout"
	"manuaisprj/internal/model"
	"manuaisprj/internal/observability"
	"manuaisprj/internal/output"
	"manuaisprj/internal/pipeline"
	"manuaisprj/internal/reconcile"
	"manuaisprj/internal/render"
	"manuaisprj/internal/repository"
)

// trimStore is what the commands need from a repository.
type trimStore interface {
	dedup.Store
	Save(ctx context.Context, rec model.TrimRecord) (string, error)
	CreateSchema(ctx context.Context) error
}

type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	metrics *observability.Metrics
	store   trimStore
	closers []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	log := observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "crawler",
	}).With().Str("execucao", uuid.New().String()).Logger()

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrUnknownDriver) {
			return nil, err
		}
		log.Warn().Err(err).Msg("configuração com valores inválidos")
	}

	a := &app{cfg: cfg, log: log, metrics: observability.NewMetrics()}

	if _, err := observability.Start(cfg.MetricsPort, a.metrics, log); err != nil {
		return nil, fmt.Errorf("erro ao iniciar métricas: %w", err)
	}

	if cfg.DedupEnabled() {
		st, closer, err := openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.store = st
		a.closers = append(a.closers, closer)
	}
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (trimStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPgx:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao conectar no Postgres (pgxpool): %w", err)
		}
		return &repository.PoolRepository{DB: pool}, pool.Close, nil
	default:
		conn, err := db.New(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao abrir banco %s: %w", cfg.StoreDriver, err)
		}
		repo := &repository.TrimRepository{DB: conn, Driver: cfg.StoreDriver}
		if cfg.StoreDriver == config.DriverSQLite {
			if err := repo.CreateSchema(ctx); err != nil {
				_ = conn.Close()
				return nil, nil, err
			}
		}
		return repo, func() { _ = conn.Close() }, nil
	}
}

// dedupStore is the store the gate queries, cached in redis when configured.
// It is nil when no database is configured.
func (a *app) dedupStore() dedup.Store {
	if a.store == nil {
		return nil
	}
	if a.cfg.RedisURL == "" {
		return a.store
	}
	client := redis.NewClient(&redis.Options{Addr: a.cfg.RedisURL})
	a.closers = append(a.closers, func() { _ = client.Close() })
	return cache.New(client, a.store, a.cfg.CacheTTL, a.log)
}

func (a *app) pipeline(r render.Renderer, b render.Browser) *pipeline.Pipeline {
	c := classifier.New(classifier.NewRules())
	return &pipeline.Pipeline{
		Brand:       a.cfg.Brand,
		Renderer:    r,
		Layouts:     layout.NewDispatcher(a.cfg.Brand, a.log, layout.Default(c, b, a.cfg.AuxTimeout, a.log)...),
		Comparisons: comparison.NewDispatcher(a.log, comparison.Default(c, a.log)...),
		Gate:        dedup.NewGate(a.dedupStore(), a.log),
		Reconciler:  reconcile.New(fallback.Citroen(), a.log),
		Metrics:     a.metrics,
		Log:         a.log,
	}
}

// run executes the pass and writes its output. With save, the records are
// also stored.
func (a *app) run(ctx context.Context, w io.Writer, p *pipeline.Pipeline, models []model.Model, outFile string, save bool) error {
	records, results := p.Run(ctx, models)

	if err := output.WriteFile(outFile, records); err != nil {
		a.log.Error().Err(err).Msg("erro ao salvar o arquivo JSON. Resultado no stdout")
		if err := output.WriteJSON(w, records); err != nil {
			return err
		}
	} else {
		a.log.Info().Str("arquivo", outFile).Int("versoes", len(records)).Msg("dados salvos com sucesso")
	}

	if !save {
		return nil
	}
	if a.store == nil {
		return errors.New("--save exige DATABASE_URL")
	}
	saved := 0
	for _, res := range results {
		for _, rec := range res.Records {
			id, err := a.store.Save(ctx, rec)
			if err != nil {
				a.log.Error().Err(err).Str("modelo", rec.Model).Str("versao", rec.Name).Msg("erro ao salvar versão")
				continue
			}
			saved++
			a.log.Debug().Str("id", id).Str("versao", rec.Name).Msg("versão salva")
		}
	}
	a.log.Info().Int("salvas", saved).Msg("versões gravadas no banco")
	return nil
}

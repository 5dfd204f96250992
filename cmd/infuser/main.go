package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/avior/infuser/config"
	HTTPAdapter "github.com/avior/infuser/internal/adapter/http"
	"github.com/avior/infuser/internal/adapter/storage/jsonfile"
	"github.com/avior/infuser/internal/adapter/storage/redisstore"
	sqlitestore "github.com/avior/infuser/internal/adapter/storage/sqlite"
	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/infrastructure/logger"
	"github.com/avior/infuser/internal/infrastructure/metrics"
	"github.com/avior/infuser/internal/port"
	"github.com/avior/infuser/internal/scheduler"
	"github.com/avior/infuser/internal/service"
)

const usage = `usage:
  infuser <path> <name> <subtitle> [key=value ...]
  infuser serve
  infuser import-workers <file>
  infuser hash-token <token>

configuration is read from $INFUSER_CONFIG`

type store interface {
	port.WorkerRegistry
	port.WorkerAdmin
	port.JobStore
	Close() error
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	if args[0] == "hash-token" {
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		hash, err := HTTPAdapter.HashToken(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash token: %v\n", err)
			return 1
		}
		fmt.Println(hash)
		return 0
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Error().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open store")
		return 1
	}
	defer func() { _ = st.Close() }()

	switch args[0] {
	case "serve":
		return serve(cfg, st)
	case "import-workers":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		return importWorkers(ctx, st, args[1])
	default:
		req, err := parseSubmitArgs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
			return 2
		}
		return submit(ctx, cfg, st, req)
	}
}

// parseSubmitArgs reads path, name and subtitle followed by optional
// key=value custom parameters.
func parseSubmitArgs(args []string) (domain.SubmitRequest, error) {
	if len(args) < 3 {
		return domain.SubmitRequest{}, errors.New("need exactly path, name and subtitle")
	}
	req := domain.SubmitRequest{Path: args[0], Name: args[1], Subtitle: args[2]}
	for _, kv := range args[3:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return domain.SubmitRequest{}, fmt.Errorf("custom parameter %q is not key=value", kv)
		}
		req.CustomParameters = append(req.CustomParameters, domain.CustomParameter{Key: key, Value: value})
	}
	return req, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return redisstore.NewStore(ctx, cfg.Store.RedisURL)
	case config.BackendJSONFile:
		if err := os.MkdirAll(cfg.Store.Path, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		s, err := jsonfile.NewStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		return nopCloser{s}, nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		return sqlitestore.NewStore(cfg.Store.Path)
	}
}

type nopCloser struct {
	*jsonfile.Store
}

func (nopCloser) Close() error { return nil }

func newSubmissionService(cfg *config.Config, st store, opts ...service.Option) (*service.SubmissionService, error) {
	rules := make([]service.ParameterRule, len(cfg.ParameterRules))
	for i, r := range cfg.ParameterRules {
		rules[i] = service.ParameterRule{Match: r.Match, Parameters: r.Parameters}
	}
	paramRules, err := service.NewParameterRules(rules)
	if err != nil {
		return nil, err
	}

	journal, err := jsonfile.NewJournal(cfg.JournalPath)
	if err != nil {
		return nil, err
	}

	opts = append([]service.Option{
		service.WithParameterRules(paramRules),
		service.WithJournal(journal),
	}, opts...)
	selector := scheduler.NewSelector(cfg.SelectorTieBreak())
	return service.NewSubmissionService(st, st, selector, cfg.DefaultWorker, opts...), nil
}

func submit(ctx context.Context, cfg *config.Config, st store, req domain.SubmitRequest) int {
	svc, err := newSubmissionService(cfg, st)
	if err != nil {
		logger.Log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	out, err := svc.Submit(ctx, req)
	_ = json.NewEncoder(os.Stdout).Encode(out)
	if err != nil {
		return 1
	}
	return 0
}

func importWorkers(ctx context.Context, admin port.WorkerAdmin, path string) int {
	workers, err := config.LoadRoster(path)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to read roster")
		return 1
	}
	for i := range workers {
		w := &workers[i]
		if w.ID == "" {
			logger.Log.Warn().Str("worker", w.Name).Msg("worker has no id, submissions reaching its tier will fail")
		}
		if err := admin.SaveWorker(ctx, w); err != nil {
			logger.Log.Error().Err(err).Str("worker", w.Name).Msg("failed to save worker")
			return 1
		}
	}
	logger.Log.Info().Int("count", len(workers)).Str("file", path).Msg("workers imported")
	return 0
}

func serve(cfg *config.Config, st store) int {
	metrics.Register(prometheus.DefaultRegisterer)

	eventBus := service.NewEventBus()
	svc, err := newSubmissionService(cfg, st, service.WithEventPublisher(eventBus))
	if err != nil {
		logger.Log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	if cfg.APITokenHash == "" {
		logger.Log.Warn().Msg("api_token_hash not set, job API is open")
	}

	server := HTTPAdapter.NewServer(svc, st, eventBus, HTTPAdapter.ServerConfig{
		DefaultWorker: cfg.DefaultWorker,
		TieBreak:      string(cfg.SelectorTieBreak()),
		APITokenHash:  cfg.APITokenHash,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     server,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Log.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error().Err(err).Msg("http shutdown error")
		}
	}()

	logger.Log.Info().
		Str("addr", addr).
		Str("store", cfg.Store.Backend).
		Str("default_worker", cfg.DefaultWorker).
		Str("tie_break", string(cfg.SelectorTieBreak())).
		Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Error().Err(err).Msg("server failed")
		return 1
	}
	return 0
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vigia-edu/vigia/internal/adapters/http/api"
	"github.com/vigia-edu/vigia/internal/adapters/ingest"
	"github.com/vigia-edu/vigia/internal/adapters/repository"
	app "github.com/vigia-edu/vigia/internal/app"
	"github.com/vigia-edu/vigia/internal/config"
	"github.com/vigia-edu/vigia/internal/domain/risk"
	"github.com/vigia-edu/vigia/internal/domain/sentiment"
	"github.com/vigia-edu/vigia/pkg/logger"
	"github.com/vigia-edu/vigia/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout        = 10 * time.Second
	writeTimeout       = 10 * time.Second
	idleTimeout        = 60 * time.Second
	readHeaderTimeout  = 5 * time.Second
	shutdownTimeout    = 30 * time.Second
	reevaluateInterval = 5 * time.Minute
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		return
	}

	if cfg.DatasetsDir != "" {
		if err := bootstrap(ctx, log, store, cfg); err != nil {
			log.Error(ctx, "dataset bootstrap failed", logger.Error(err))
			return
		}
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithEstimator(buildEstimator(ctx, log, cfg)),
		app.WithRiskVariant(risk.Variant(strings.ToUpper(cfg.RiskPreset))),
		app.WithHighRiskThreshold(cfg.HighRiskThreshold),
		app.WithAtRiskGradeThreshold(cfg.AtRiskGradeThreshold),
		app.WithMaxRankingLimit(cfg.MaxRankingLimit),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop(ctx)

	// Periodic batch re-evaluation keeps the ranking and gauges fresh.
	go startReevaluator(ctx, log, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if strings.ToLower(cfg.Store) == "sqlite" {
		return repository.OpenSQL(ctx, cfg.SQLiteDSN)
	}
	return repository.NewMemStore(), nil
}

// buildEstimator returns the configured sentiment estimator. Training
// failures fall back to the heuristic so the service still comes up.
func buildEstimator(ctx context.Context, log logger.Logger, cfg *config.Config) sentiment.Estimator {
	if strings.ToLower(cfg.Sentiment) != "model" {
		return sentiment.NewHeuristic()
	}
	samples, rowErrs, err := ingest.CorpusFile(cfg.CorpusPath)
	if err != nil {
		metrics.RecordSentimentError()
		log.Warn(ctx, "corpus load failed; using heuristic estimator",
			logger.String("path", cfg.CorpusPath), logger.Error(err))
		return sentiment.NewHeuristic()
	}
	for _, re := range rowErrs {
		log.Warn(ctx, "skipped corpus row", logger.Int("line", re.Line), logger.Error(re.Err))
	}
	clf, err := sentiment.Train(samples)
	if err != nil {
		metrics.RecordSentimentError()
		log.Warn(ctx, "classifier training failed; using heuristic estimator", logger.Error(err))
		return sentiment.NewHeuristic()
	}
	log.Info(ctx, "sentiment classifier trained", logger.Int("samples", len(samples)))
	return clf
}

// bootstrap loads the CSV datasets found in cfg.DatasetsDir. Missing
// files are skipped; malformed rows are logged and skipped.
func bootstrap(ctx context.Context, log logger.Logger, store repository.Store, cfg *config.Config) error {
	logRowErrs := func(name string, rowErrs []ingest.RowError) {
		for _, re := range rowErrs {
			log.Warn(ctx, "skipped csv row", logger.String("file", name),
				logger.Int("line", re.Line), logger.Error(re.Err))
		}
	}

	if studentsPath, ok := datasetPath(cfg.DatasetsDir, "estudiantes.csv"); ok {
		students, rowErrs, err := ingest.StudentsFile(studentsPath)
		if err != nil {
			return err
		}
		logRowErrs(studentsPath, rowErrs)
		for _, st := range students {
			if err := store.UpsertStudent(ctx, st); err != nil {
				return err
			}
		}
		log.Info(ctx, "students loaded", logger.Int("count", len(students)))
	}

	if recordsPath, ok := datasetPath(cfg.DatasetsDir, "rendimiento.csv", "notas.csv"); ok {
		records, rowErrs, err := ingest.AcademicRecordsFile(recordsPath, cfg.GradeScaleCutoff)
		if err != nil {
			return err
		}
		logRowErrs(recordsPath, rowErrs)
		if err := store.ReplaceAcademicRecords(ctx, records); err != nil {
			return err
		}
		log.Info(ctx, "academic records loaded", logger.Int("count", len(records)))
	}

	if obsPath, ok := datasetPath(cfg.DatasetsDir, "observaciones.csv"); ok {
		observations, rowErrs, err := ingest.ObservationsFile(obsPath)
		if err != nil {
			return err
		}
		logRowErrs(obsPath, rowErrs)
		loaded := 0
		for _, o := range observations {
			if _, err := store.AppendObservation(ctx, o); err != nil {
				log.Warn(ctx, "skipped observation",
					logger.String("student_id", o.StudentID), logger.Error(err))
				continue
			}
			loaded++
		}
		log.Info(ctx, "observations loaded", logger.Int("count", loaded))
	}

	return nil
}

// datasetPath returns the first existing file among the accepted names
// for one dataset. Name aliases keep older dataset exports loadable.
func datasetPath(dir string, names ...string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// startReevaluator refreshes the cached ranking and cohort stats on a
// fixed interval.
func startReevaluator(ctx context.Context, log logger.Logger, svc *app.Service) {
	ticker := time.NewTicker(reevaluateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.EvaluateAll(ctx); err != nil {
				log.Warn(ctx, "periodic evaluation failed", logger.Error(err))
			}
		}
	}
}

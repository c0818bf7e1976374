package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/afex/hystrix-go/hystrix"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/internal/config"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/internal/metrics"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource/testing/mem"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/rest"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/storage/sqlite"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/tracker"
)

// apiPrefix is the path the REST API is served under.
const apiPrefix = "/api"

// newLogger creates the root logger and plugs it into the resource logger
// hook.
func newLogger(c config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	if level < zerolog.DebugLevel {
		resource.LoggerLevel = resource.LogLevelDebug
	} else {
		resource.LoggerLevel = resource.LogLevel(level)
	}
	resource.Logger = func(ctx context.Context, level resource.LogLevel, msg string, fields map[string]interface{}) {
		zerolog.Ctx(ctx).WithLevel(zerolog.Level(level)).Fields(fields).Msg(msg)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// openStorage creates the storers of the catalog resources, seeded with the
// configured dataset if any. The returned function releases the storage.
func openStorage(ctx context.Context, cfg *config.Config) (map[string]resource.Storer, func(), error) {
	storers := map[string]resource.Storer{}
	closeFn := func() {}
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		closeFn = func() { db.Close() }
		if err := createTables(ctx, db, storers); err != nil {
			db.Close()
			return nil, nil, err
		}
	default:
		for _, name := range tracker.Names {
			storers[name] = mem.NewHandler()
		}
	}
	if cfg.Storage.Dataset != "" {
		if err := seed(ctx, cfg.Storage.Dataset, storers); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	if cfg.Circuit.Enabled {
		for name, s := range storers {
			resource.ConfigureHystrix(name, resource.HystrixConf{
				Timeout:               int(cfg.Circuit.Timeout / time.Millisecond),
				MaxConcurrentRequests: cfg.Circuit.MaxConcurrent,
				ErrorPercentThreshold: cfg.Circuit.ErrorPercent,
			})
			storers[name] = resource.WrapHystrix(name, s)
		}
	}
	return storers, closeFn, nil
}

func createTables(ctx context.Context, db *sql.DB, storers map[string]resource.Storer) error {
	for _, name := range tracker.Names {
		h := sqlite.NewHandler(db, tracker.Schema(name))
		if err := h.CreateTable(ctx); err != nil {
			return err
		}
		storers[name] = h
	}
	return nil
}

func seed(ctx context.Context, path string, storers map[string]resource.Storer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	d, err := tracker.LoadDataset(f)
	if err != nil {
		return err
	}
	return tracker.Seed(ctx, storers, d)
}

// newHandler builds the HTTP handler: the REST API under apiPrefix behind the
// logging, CORS and metrics middlewares, the health check, the Prometheus
// metrics and the hystrix stream.
func newHandler(cfg *config.Config, storers map[string]resource.Storer) (http.Handler, error) {
	query.DefaultPageSize = cfg.Pagination.DefaultSize
	query.MaxPageSize = cfg.Pagination.MaxSize

	index := resource.NewIndex()
	tracker.Register(index, storers, resource.Conf{
		AllowedModes: resource.ReadOnly,
		MaxDepth:     cfg.Projection.MaxDepth,
	})
	api, err := rest.NewHandler(index)
	if err != nil {
		return nil, err
	}
	api.RequestTimeout = cfg.Server.RequestTimeout
	if err := metrics.Instrument(index); err != nil {
		return nil, err
	}

	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
	}))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("ua"))
	c = c.Append(hlog.RefererHandler("ref"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(metrics.Middleware(apiPrefix, tracker.Names))
	// Passthrough lets the REST handler answer OPTIONS requests.
	c = c.Append(cors.New(cors.Options{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		AllowedMethods:     []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		OptionsPassthrough: true,
	}).Handler)

	mux := http.NewServeMux()
	mux.Handle(apiPrefix+"/", c.Then(http.StripPrefix(apiPrefix, api)))
	mux.Handle("/healthz", healthHandler(index))
	mux.Handle("/metrics", promhttp.Handler())
	stream := hystrix.NewStreamHandler()
	stream.Start()
	mux.Handle("/hystrix.stream", stream)
	return mux, nil
}

package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/OmatthewY/explore-with-me/core/cache"
	"github.com/OmatthewY/explore-with-me/core/config"
	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/core/queue"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/modules/category"
	"github.com/OmatthewY/explore-with-me/modules/compilation"
	"github.com/OmatthewY/explore-with-me/modules/event"
	"github.com/OmatthewY/explore-with-me/modules/rating"
	"github.com/OmatthewY/explore-with-me/modules/request"
	"github.com/OmatthewY/explore-with-me/modules/user"
	"github.com/OmatthewY/explore-with-me/stats/client"
	"github.com/OmatthewY/explore-with-me/stats/recorder"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewEcho builds the main service router with every module mounted.
func NewEcho(db *database.Database, mw *middleware.Middleware, deps event.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.EchoValidator{}
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if writeErr := controller.WriteError(c, err); writeErr != nil {
			logger.Error("Server:HTTPErrorHandler", "error", writeErr)
		}
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())

	user.Init(e, db, mw)
	category.Init(e, db, mw)
	events := event.Init(e, db, mw, deps)
	request.Init(e, db, mw)
	rating.Init(e, db, mw)
	compilation.Init(e, db, mw, events.Enricher())
	return e
}

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(); err != nil {
			return err
		}
	}

	statsClient := client.New(cfg.Stats.URL, cfg.Stats.Timeout)
	var views client.StatsGetter = statsClient

	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisCache.Close()

		if cfg.Stats.CacheTTL > 0 {
			views = client.NewCachedClient(statsClient, redisCache, cfg.Stats.CacheTTL)
			logger.Info("Server:Run:ViewsCacheEnabled", "ttl", cfg.Stats.CacheTTL.String())
		}
	}

	var hits recorder.HitRecorder = recorder.NewDirect(statsClient)
	if cfg.Stats.AsyncHits && cfg.Redis.Enabled() {
		queueClient := queue.NewClient(cfg.Redis)
		defer queueClient.Close()

		worker := queue.NewWorker(cfg.Redis, constants.HitWorkerCount)
		worker.Handle(constants.TaskTypeRecordHit, recorder.HitHandler(statsClient))
		if err := worker.Start(); err != nil {
			return err
		}
		defer worker.Shutdown()

		hits = recorder.NewQueued(queueClient)
		logger.Info("Server:Run:AsyncHitsEnabled")
	}

	mw := middleware.NewMiddleware(cfg.Auth.AdminSecret)
	e := NewEcho(db, mw, event.Deps{Stats: views, Hits: hits, App: cfg.Stats.App})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Run:ShuttingDown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

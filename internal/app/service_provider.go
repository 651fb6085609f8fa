package app

import (
	"context"
	"net/http"
	"time"
	authAPI "wheel_backend/internal/api/auth"
	wheelAPI "wheel_backend/internal/api/wheel"
	"wheel_backend/internal/config"
	"wheel_backend/internal/config/env"
	"wheel_backend/internal/middleware"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/repository/auth_repo"
	"wheel_backend/internal/repository/user_repo"
	"wheel_backend/internal/repository/wheel_repo"
	"wheel_backend/internal/repository/wheel_stats_repo"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/auth"
	"wheel_backend/internal/service/wheel"
	"wheel_backend/pkg/logger"
	"wheel_backend/pkg/resp"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const wheelConfigPath = "config.yaml"

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	log    *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Wheel bits
	wheelCfg       config.WheelConfig
	wheelRepo      repository.WheelRepository
	wheelStatsRepo repository.WheelStatsRepository
	wheelServ      service.WheelService
	wheelHand      *wheelAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		cfg := sp.LogCfg()
		sp.log = logger.New(logger.Config{
			Level: cfg.Level(),
			App:   cfg.App(),
			Dir:   cfg.Dir(),
			File:  cfg.File(),
		})
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg(), sp.Logger())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:            sp.AuthService(ctx),
			Log:             sp.Logger(),
			RefreshDuration: sp.JWTCfg().RefreshTokenDuration(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(wheelConfigPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) WheelRepository(ctx context.Context) repository.WheelRepository {
	if sp.wheelRepo == nil {
		sp.wheelRepo = wheel_repo.NewWheelRepository(sp.DBClient(ctx))
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) WheelStatsRepository() repository.WheelStatsRepository {
	if sp.wheelStatsRepo == nil {
		sp.wheelStatsRepo = wheel_stats_repo.NewWheelStatsRepository(sp.WheelCfg().StatsWindow())
	}
	return sp.wheelStatsRepo
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		s, err := wheel.NewWheelService(
			sp.WheelCfg(),
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.WheelRepository(ctx),
			sp.WheelStatsRepository(),
			sp.Logger(),
		)
		if err != nil {
			panic("failed to create wheel service: " + err.Error())
		}
		sp.wheelServ = s
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{
			Serv: sp.WheelService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)
		r.Use(middleware.Logging(sp.Logger()))

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", sp.health(ctx))
		r.Handle("/metrics", promhttp.Handler())

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Wheel endpoints
		wheelHandler := sp.WheelHandler(ctx)
		r.Route("/wheel", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey(), sp.Logger()))
			rr.Get("/", wheelHandler.State)
			rr.Put("/segments", wheelHandler.Segments)
			rr.Post("/fling", wheelHandler.Fling)
			rr.Get("/frames", wheelHandler.Frames)
			rr.Get("/history", wheelHandler.History)
			rr.Get("/stats", wheelHandler.Stats)
		})

		sp.router = r
	}

	return sp.router
}

func (sp *ServiceProvider) health(ctx context.Context) http.HandlerFunc {
	db := sp.DBClient(ctx)
	return func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(pingCtx); err != nil {
			resp.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Close освобождает ресурсы в обратном порядке создания
func (sp *ServiceProvider) Close() {
	if sp.wheelServ != nil {
		sp.wheelServ.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}

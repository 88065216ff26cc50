package api

import (
	"net/http"
	"time"

	"invest/src/api/controllers"
	"invest/src/api/handlers"
	"invest/src/config"
	"invest/src/database"
	"invest/src/monitoring"
	"invest/src/utils"
	redis_utils "invest/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Logger  *logrus.Logger
	Config  *config.Config
	DB      *pgxpool.Pool
}

func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var cache *redis_utils.RedisHandler
	if cfg.Databases.Redis.Enabled {
		cache, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
	}

	logLevel, err := logrus.ParseLevel(cfg.Service.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger := utils.NewLogger(logLevel, false, "")

	metrics := monitoring.NewMetrics("invest")
	controller := controllers.NewController(db, cache, cfg, metrics)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller),
		Logger:  logger,
		Config:  cfg,
		DB:      db,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), s.Logger)
	s.Router.ServeHTTP(w, r.WithContext(ctx))
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Handle("/metrics", promhttp.Handler())

	s.Router.Route("/api", func(r chi.Router) {
		r.Route("/risk-assessment", func(r chi.Router) {
			r.Post("/", s.Handler.SubmitRiskAssessment)
			r.Get("/", s.Handler.GetRiskAssessment)
		})

		r.Route("/funds", func(r chi.Router) {
			r.Get("/", s.Handler.ListFunds)
			r.Get("/{id}", s.Handler.GetFund)
		})

		r.Route("/portfolios", func(r chi.Router) {
			r.Post("/", s.Handler.CreatePortfolio)
			r.Get("/", s.Handler.GetUserPortfolios)
			r.Get("/{id}", s.Handler.GetPortfolio)
			r.Put("/{id}/allocation", s.Handler.UpdatePortfolioAllocation)
			r.Delete("/{id}", s.Handler.DeletePortfolio)
			r.Post("/{id}/invest", s.Handler.Invest)
			r.Post("/{id}/redeem", s.Handler.Redeem)
		})

		r.Get("/transactions", s.Handler.GetUserTransactions)

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/", s.Handler.GenerateRecommendation)
			r.Get("/", s.Handler.GetActiveRecommendation)
		})
	})
}

func NewHTTPServer(server *Server) *http.Server {
	port := server.Config.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}

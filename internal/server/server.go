package server

import (
	"fmt"
	"net/http"
	"time"

	"atelier-storefront/internal/cart"
	"atelier-storefront/internal/catalog"
	"atelier-storefront/internal/config"
	"atelier-storefront/internal/gateway"
	custommiddleware "atelier-storefront/internal/middleware"
	"atelier-storefront/internal/orders"
	"atelier-storefront/internal/pricing"
	"atelier-storefront/internal/session"
	"atelier-storefront/internal/storage"
	"atelier-storefront/internal/transport"
	"atelier-storefront/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize the store and the external service client
	store := storage.NewRedisStore(redisClient)
	client := gateway.NewClient(cfg.Catalog, logger)

	// Initialize services
	cartService := cart.NewService(store)
	wishlistService := wishlist.NewService(store)
	catalogService := catalog.NewService(client, logger)
	sessionService := session.NewService(store, client, cfg.Session)
	ledger := orders.NewLedger(store, client, logger)
	calculator := pricing.NewCalculator(cfg.Shipping)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	wishlistHandler := transport.NewWishlistHandler(wishlistService, logger)
	checkoutHandler := transport.NewCheckoutHandler(cartService, ledger, sessionService, client, calculator, logger)
	sessionHandler := transport.NewSessionHandler(sessionService, logger)
	adminHandler := transport.NewAdminHandler(client, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.Session.Secret, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, authMiddleware)
	wishlistHandler.RegisterRoutes(router, authMiddleware)
	checkoutHandler.RegisterRoutes(router, authMiddleware)
	sessionHandler.RegisterRoutes(router, authMiddleware)
	adminHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close Redis connection
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

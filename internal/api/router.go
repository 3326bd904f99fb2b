package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	boatHttp "github.com/nekogravitycat/boat-rental-backend/internal/boat/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/boat-rental-backend/internal/booking/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/cart"
	cartHttp "github.com/nekogravitycat/boat-rental-backend/internal/cart/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/events"
	eventsHttp "github.com/nekogravitycat/boat-rental-backend/internal/events/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/file"
	fileHttp "github.com/nekogravitycat/boat-rental-backend/internal/file/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
	"github.com/nekogravitycat/boat-rental-backend/internal/stats"
	statsHttp "github.com/nekogravitycat/boat-rental-backend/internal/stats/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/user"
	userHttp "github.com/nekogravitycat/boat-rental-backend/internal/user/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	RateLimitRPS   float64
	RateLimitBurst int
	MockLatency    time.Duration
	Logger         *zap.Logger

	UserService    user.Service
	BoatService    boat.Service
	BookingService booking.Service
	CartService    cart.Service
	StatsService   stats.Service
	FileService    file.Service
	Hub            *events.Hub
	JWTManager     *auth.JWTManager
	Revoker        *auth.Revoker
}

// devOrigins are allowed outside production: the storefront dev server and Swagger.
var devOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8081",
}

func allowedOrigins(cfg Config) []string {
	if !cfg.IsProduction {
		return devOrigins
	}
	var origins []string
	for _, o := range strings.Split(cfg.ProdOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (recovery, logging, CORS, rate limiting) and registering routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	log := cfg.Logger.Named("http")

	r := gin.New()

	// Global Middleware:
	// - Recovery: Captures panics and returns a 500 envelope.
	// - RequestLogger: One zap line per request.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		response.Abort(c, http.StatusInternalServerError, "internal server error")
	}))
	r.Use(RequestLogger(log))

	origins := allowedOrigins(cfg)
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", cartHttp.SessionHeader}
	if len(origins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	r.Use(RateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	// Mirrors the storefront's mock API delay when MOCK_LATENCY is set.
	r.Use(SimulatedLatency(cfg.MockLatency))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, cfg.Revoker)
	// optionalAuth: Identifies the caller when a token is present.
	optionalAuth := auth.OptionalAuth(cfg.JWTManager, cfg.Revoker)
	// adminMiddleware: Further checks if the authenticated user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, cfg.Revoker)
	boatHandler := boatHttp.NewHandler(cfg.BoatService, fileHandler)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	cartHandler := cartHttp.NewHandler(cfg.CartService)
	statsHandler := statsHttp.NewHandler(cfg.StatsService)
	eventsHandler := eventsHttp.NewHandler(cfg.Hub, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}, cfg.Logger)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.GET("/healthz", func(c *gin.Context) {
			response.OK(c, http.StatusOK, gin.H{"status": "ok"})
		})

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		boatHttp.RegisterRoutes(v1, boatHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, optionalAuth, authMiddleware, adminMiddleware)
		cartHttp.RegisterRoutes(v1, cartHandler, optionalAuth)
		statsHttp.RegisterRoutes(v1, statsHandler, authMiddleware, adminMiddleware)
		eventsHttp.RegisterRoutes(v1, eventsHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler)
	}

	return r
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/api"
	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/cart"
	"github.com/nekogravitycat/boat-rental-backend/internal/config"
	"github.com/nekogravitycat/boat-rental-backend/internal/db"
	"github.com/nekogravitycat/boat-rental-backend/internal/events"
	"github.com/nekogravitycat/boat-rental-backend/internal/file"
	"github.com/nekogravitycat/boat-rental-backend/internal/kvstore"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/random"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/storage"
	"github.com/nekogravitycat/boat-rental-backend/internal/scheduler"
	"github.com/nekogravitycat/boat-rental-backend/internal/stats"
	"github.com/nekogravitycat/boat-rental-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	Hub         *events.Hub
	Scheduler   *scheduler.Scheduler
	UserService user.Service

	closers []io.Closer
	pool    *pgxpool.Pool
}

type repositories struct {
	users    user.Repository
	boats    boat.Repository
	bookings booking.Repository
	files    file.Repository
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, *pgxpool.Pool, error) {
	if cfg.StorageDriver != config.DriverPostgres {
		log.Info("using in-memory storage")
		return &repositories{
			users:    user.NewMemoryRepository(),
			boats:    boat.NewMemoryRepository(boat.SeedCatalog()),
			bookings: booking.NewMemoryRepository(),
			files:    file.NewMemoryRepository(),
		}, nil, nil
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info("using postgres storage")
	return &repositories{
		users:    user.NewPgxRepository(pool),
		boats:    boat.NewPgxRepository(pool),
		bookings: booking.NewPgxRepository(pool),
		files:    file.NewPgxRepository(pool),
	}, pool, nil
}

func openCartStore(cfg *config.Config) (kvstore.Store, io.Closer, error) {
	if cfg.CartDBPath == "" {
		return kvstore.NewMemory(), nil, nil
	}
	s, err := kvstore.OpenSQLite(cfg.CartDBPath)
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}

func randomSource(seed int64) random.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return random.New(seed)
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{}

	repos, pool, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	c.pool = pool

	kv, kvCloser, err := openCartStore(cfg)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}
	if kvCloser != nil {
		c.closers = append(c.closers, kvCloser)
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to init upload storage: %w", err)
	}

	// Init Components
	passwordHasher := auth.NewBcryptHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	revoker := auth.NewRevoker()
	c.Hub = events.NewHub(log)

	// Domain Modules
	userService := user.NewService(repos.users, passwordHasher, log)
	fileService := file.NewService(repos.files, store, log)
	boatService := boat.NewService(repos.boats)
	bookingService := booking.NewService(repos.bookings, boatService, log, booking.WithPublisher(c.Hub))
	cartService := cart.NewService(kv, boatService, bookingService, log)
	statsService := stats.NewService(boatService, bookingService, randomSource(cfg.RandomSeed), nil)

	c.UserService = userService
	c.Scheduler = scheduler.New(bookingService, log)

	c.Router = api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MockLatency:    cfg.MockLatency,
		Logger:         log,
		UserService:    userService,
		BoatService:    boatService,
		BookingService: bookingService,
		CartService:    cartService,
		StatsService:   statsService,
		FileService:    fileService,
		Hub:            c.Hub,
		JWTManager:     jwtManager,
		Revoker:        revoker,
	})

	return c, nil
}

// Close releases the cart store and the database pool.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	if c.pool != nil {
		c.pool.Close()
	}
	return errors.Join(errs...)
}

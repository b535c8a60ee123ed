package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/eventease/internal/dependencies/clock"
	"github.com/mcoot/eventease/internal/dependencies/random"
	"github.com/mcoot/eventease/internal/notify"
	"github.com/mcoot/eventease/internal/qr"
	"github.com/mcoot/eventease/internal/services/attendance"
	"github.com/mcoot/eventease/internal/services/catalog"
	"github.com/mcoot/eventease/internal/services/registration"
	"github.com/mcoot/eventease/internal/services/session"
	"github.com/mcoot/eventease/internal/sse"
	"github.com/mcoot/eventease/internal/storage"
	"github.com/mcoot/eventease/internal/storage/memory"
	redisstorage "github.com/mcoot/eventease/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Notifications fan out to the log, live streams and, when configured, Kafka
	Publisher notify.Publisher

	// Services
	Registrations *registration.Service
	Attendance    *attendance.Service
	Catalog       *catalog.Service
	Sessions      *session.Service
	QR            *qr.Generator

	// Live streams
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Kafka enables streaming notifications to a Kafka topic (optional)
	Kafka *notify.KafkaConfig
	// QRSize is the width of generated QR images (optional)
	QRSize int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	var closers []io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var extra []notify.Publisher
	if cfg.Kafka != nil && len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := notify.NewKafkaPublisher(*cfg.Kafka)
		extra = append(extra, kafkaPublisher)
		closers = append(closers, kafkaPublisher)
		logger.Info("streaming notifications to kafka",
			slog.Any("brokers", cfg.Kafka.Brokers),
			slog.String("topic", cfg.Kafka.Topic))
	}

	app := newWithDependencies(store, clock.New(), random.New(), logger, cfg.QRSize, extra...)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	qrSize int,
	extra ...notify.Publisher,
) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	publishers := notify.Fanout{notify.NewLogPublisher(logger), broadcaster}
	publishers = append(publishers, extra...)

	registrations := registration.New(store, clk, rnd, publishers, logger)
	attendanceService := attendance.New(store, clk, publishers, logger)
	catalogService := catalog.New(store, registrations, attendanceService, clk, logger)
	sessions := session.New(store, clk, logger)
	sessions.Subscribe(broadcaster)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		Publisher:     publishers,
		Registrations: registrations,
		Attendance:    attendanceService,
		Catalog:       catalogService,
		Sessions:      sessions,
		QR:            qr.NewGenerator(qrSize),
		HubManager:    hubManager,
		Broadcaster:   broadcaster,
	}
}

// Close stops the live streams and releases external connections
func (a *App) Close() error {
	a.HubManager.Close()

	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

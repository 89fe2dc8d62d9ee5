package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moviedex/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewCatalogRepo,
	NewUserRepo,
	NewMetadataClient,
	NewLocker,
	NewTokenDenylist,
)

// Data encapsulates database and cache connections
type Data struct {
	db      *gorm.DB
	rdb     *redis.Client
	lockTTL time.Duration
	log     *log.Helper
}

// NewData creates Data instance with database and Redis connections
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(log.With(logger, "module", "data"))

	db, err := OpenDB(&c.Database)
	if err != nil {
		l.Errorf("failed to connect to database: %v", err)
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		l.Errorf("failed to get database instance: %v", err)
		return nil, nil, err
	}

	// Configure connection pool
	if c.Database.Driver == "sqlite" {
		// one writer at a time, or sqlite reports SQLITE_BUSY under load
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(c.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(c.Database.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(c.Database.ConnMaxLifetime)
	}

	l.Infof("database connected successfully (%s)", c.Database.Driver)

	if c.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := Migrate(ctx, db, c.Database.Driver, logger); err != nil {
			l.Errorf("failed to migrate database: %v", err)
			_ = sqlDB.Close()
			return nil, nil, err
		}
	}

	var rdb *redis.Client
	if c.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			Password:     c.Redis.Password,
			DB:           c.Redis.DB,
			ReadTimeout:  c.Redis.ReadTimeout,
			WriteTimeout: c.Redis.WriteTimeout,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			l.Warnf("failed to connect to redis: %v", err)
			// Redis is optional, locks and revoked tokens stay in process
			_ = rdb.Close()
			rdb = nil
		} else {
			l.Info("redis connected successfully")
		}
	}

	data := &Data{
		db:      db,
		rdb:     rdb,
		lockTTL: c.Redis.LockTTL,
		log:     l,
	}

	cleanup := func() {
		l.Info("closing data resources")
		if data.rdb != nil {
			if err := data.rdb.Close(); err != nil {
				l.Errorf("failed to close redis: %v", err)
			}
		}
		if err := sqlDB.Close(); err != nil {
			l.Errorf("failed to close database: %v", err)
		}
	}

	return data, cleanup, nil
}

// OpenDB opens the configured database without touching the schema.
func OpenDB(c *conf.Database) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	switch c.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(c.Source), cfg)
	case "sqlite":
		return gorm.Open(sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        sqliteDSN(c.Source),
		}, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// sqliteDSN turns on foreign keys and a busy timeout unless the source
// already sets pragmas.
func sqliteDSN(source string) string {
	if strings.Contains(source, "_pragma=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

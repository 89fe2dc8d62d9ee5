package data

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

var gooseDialects = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

// Migrate applies the embedded migrations for driver.
func Migrate(ctx context.Context, db *gorm.DB, driver string, logger log.Logger) error {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{log: log.NewHelper(log.With(logger, "module", "data/migrate"))})
	if err := goose.UpContext(ctx, sqlDB, "migrations/"+driver); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

type gooseLogger struct {
	log *log.Helper
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}

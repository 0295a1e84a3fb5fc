package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jbolinge/shift-solver-sub000/internal/config"
	"github.com/jbolinge/shift-solver-sub000/pkg/postgres"
)

// Version is the CLI version string.
const Version = "1.0.0"

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	ConfigPath string
	DBConn     string
	Verbosity  int
	Logger     *zap.Logger
	Ctx        context.Context

	cfg *config.Config
	db  *postgres.DB
}

// LoadConfig loads the configuration lazily, from --config when given and
// the default search path otherwise.
func (a *AppContext) LoadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.LoadFromPath(a.ConfigPath)
	} else {
		cfg, err = config.LoadWithEnv("")
	}
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// Database opens the PostgreSQL store lazily and runs migrations.
func (a *AppContext) Database() (*postgres.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.DBConn == "" {
		return nil, fmt.Errorf("no database connection string (use --db)")
	}
	db, err := postgres.NewDB(a.Ctx, a.DBConn)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(a.Ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	a.db = db
	return db, nil
}

// Close releases held resources.
func (a *AppContext) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

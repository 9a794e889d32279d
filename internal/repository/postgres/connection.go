package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-engine/internal/config"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var DB *sql.DB

// InitDB opens the pool, checks the connection and applies the schema.
func InitDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMin) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	DB = db
	log.Info().Str("component", "db").Msg("database connected successfully")
	return db, nil
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

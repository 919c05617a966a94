package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver PostgreSQL registrado como "postgres".
	_ "github.com/lib/pq"
)

// PoolConfig agrupa os limites do pool de conexões.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig devolve os limites usados em produção.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
	}
}

// NewPostgresDB abre o pool, aplica os limites e valida a conexão com um ping.
func NewPostgresDB(ctx context.Context, dataSourceName string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	return db, nil
}

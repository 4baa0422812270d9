package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/OmatthewY/explore-with-me/core/config"
	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// IDatabase is what repositories depend on. Every call joins the
// transaction carried by ctx, if any.
type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	Rebind(query string) string
	SQLx() *sqlx.DB
}

// Transactor runs fn inside one transaction. Nested calls reuse the outer one.
type Transactor interface {
	RunInTx(ctx context.Context, readOnly bool, fn func(ctx context.Context) error) error
}

type Database struct {
	sqlx *sqlx.DB
}

type txKey struct{}

func DSN(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = constants.DatabaseSSLMode
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

func InitDB(cfg config.DatabaseConfig) (*Database, error) {
	logger.Info("Database:InitDB:Connecting", "host", cfg.Host, "port", cfg.Port, "database", cfg.Name)

	sqlxDB, err := sqlx.Connect("postgres", DSN(cfg))
	if err != nil {
		logger.Error("Database:InitDB:ConnectFailed", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	maxOpen, maxIdle, lifetime := cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime
	if maxOpen <= 0 {
		maxOpen = constants.DatabaseMaxOpenConns
	}
	if maxIdle <= 0 {
		maxIdle = constants.DatabaseMaxIdleConns
	}
	if lifetime <= 0 {
		lifetime = constants.DatabaseConnMaxLifetime
	}
	sqlxDB.SetMaxOpenConns(maxOpen)
	sqlxDB.SetMaxIdleConns(maxIdle)
	sqlxDB.SetConnMaxLifetime(time.Duration(lifetime) * time.Minute)

	if err = sqlxDB.Ping(); err != nil {
		logger.Error("Database:InitDB:PingFailed", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database:InitDB:Ready",
		"maxOpenConns", maxOpen,
		"maxIdleConns", maxIdle,
		"connMaxLifetime", lifetime,
	)
	return &Database{sqlx: sqlxDB}, nil
}

func New(db *sqlx.DB) *Database {
	return &Database{sqlx: db}
}

func (d *Database) Close() error {
	return d.sqlx.Close()
}

func (d *Database) ext(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return d.sqlx
}

func (d *Database) RunInTx(ctx context.Context, readOnly bool, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.sqlx.BeginTxx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Database:RunInTx:RollbackFailed", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.ext(ctx).ExecContext(ctx, query, args...)
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, d.ext(ctx), dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, d.ext(ctx), dest, query, args...)
}

func (d *Database) QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row {
	return d.ext(ctx).QueryRowxContext(ctx, query, args...)
}

func (d *Database) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	return sqlx.NamedExecContext(ctx, d.ext(ctx), query, arg)
}

func (d *Database) Rebind(query string) string {
	return d.sqlx.Rebind(query)
}

func (d *Database) SQLx() *sqlx.DB {
	return d.sqlx
}

// Package mysqlkv keeps slots in a single MySQL table.
package mysqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/idilsaglam/focustasks/internal/kv"
)

const (
	DefaultTable   = "kv_slots"
	defaultTimeout = 5 * time.Second
)

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// Options configures Open.
type Options struct {
	DSN     string
	Table   string        // defaults to DefaultTable
	Timeout time.Duration // per query; defaults to 5s
}

// Store is a MySQL-backed kv.Slot.
type Store struct {
	db      *sql.DB
	table   string
	timeout time.Duration
}

// NormalizeDSN parses dsn and forces the settings the store relies on.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", errors.New("dsn: missing database name")
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// Open connects, pings and creates the slot table when missing.
func Open(opts Options) (*Store, error) {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if !tablePattern.MatchString(opts.Table) {
		return nil, fmt.Errorf("invalid table name %q", opts.Table)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	dsn, err := NormalizeDSN(opts.DSN)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	s := &Store{db: db, table: opts.Table, timeout: opts.Timeout}

	ctx, cancel := s.ctx()
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// CreateTableSQL is the migration Open runs for table. Keys are compared
// byte for byte, as file names are by the file backend.
func CreateTableSQL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
    slot_key VARBINARY(128) PRIMARY KEY,
    slot_value LONGTEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, CreateTableSQL(s.table)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, false, err
	}
	ctx, cancel := s.ctx()
	defer cancel()

	var v []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT slot_value FROM `+s.table+` WHERE slot_key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select slot: %w", err)
	}
	return v, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+s.table+` (slot_key, slot_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value)`, key, string(value))
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

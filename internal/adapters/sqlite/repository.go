package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradecoach/internal/domain"
	"tradecoach/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports trade, position and profile repositories
// using SQLite. Trade records and positions are written batch-at-a-time:
// the engine rebuilds derived data from scratch on each ingestion, so a new
// batch fully replaces the previous one.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/tradecoach.db"
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trade_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		trade_date TEXT NOT NULL,
		ticker TEXT NOT NULL,
		action TEXT NOT NULL,
		quantity REAL NOT NULL,
		price REAL NOT NULL,
		total REAL NOT NULL,
		sector TEXT NOT NULL DEFAULT '',
		account TEXT NOT NULL DEFAULT '',
		instrument TEXT NOT NULL DEFAULT 'equity'
	);

	CREATE TABLE IF NOT EXISTS positions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		ticker TEXT NOT NULL,
		sector TEXT NOT NULL DEFAULT '',
		instrument TEXT NOT NULL DEFAULT 'equity',
		shares REAL NOT NULL,
		avg_cost REAL NOT NULL,
		realized_pnl REAL NOT NULL,
		realized_pnl_percent REAL NOT NULL,
		trade_count INTEGER NOT NULL,
		wins INTEGER NOT NULL,
		avg_hold_days INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		total_value REAL NOT NULL,
		total_pnl REAL NOT NULL,
		win_rate REAL NOT NULL,
		sharpe REAL NOT NULL,
		avg_hold_days REAL NOT NULL,
		traits TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trade_records_user ON trade_records (user_id, ticker);
	CREATE INDEX IF NOT EXISTS idx_positions_user ON positions (user_id, ticker);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- TradeRepository Implementation ---

// ReplaceTrades deletes a user's stored records and saves the new batch in
// one transaction.
func (r *Repository) ReplaceTrades(ctx context.Context, userID string, records []domain.TradeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin trade replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trade_records WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear trade records for user %s: %w", userID, err)
	}

	const insert = `
	INSERT INTO trade_records (user_id, trade_date, ticker, action, quantity, price, total, sector, account, instrument)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, insert,
			userID, rec.Date, rec.Ticker, rec.Action, rec.Quantity, rec.Price, rec.Total, rec.Sector, rec.Account, rec.Instrument); err != nil {
			return fmt.Errorf("failed to insert trade record for %s: %w", rec.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade replace: %w", err)
	}
	r.logger.Debug(ctx, "Trade records replaced", map[string]interface{}{"userID": userID, "count": len(records)})
	return nil
}

// FindTrades retrieves all stored records for a user, in insertion order.
func (r *Repository) FindTrades(ctx context.Context, userID string) ([]domain.TradeRecord, error) {
	const query = `
	SELECT trade_date, ticker, action, quantity, price, total, sector, account, instrument
	FROM trade_records
	WHERE user_id = ?
	ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade records for user %s: %w", userID, err)
	}
	defer rows.Close()

	records := make([]domain.TradeRecord, 0)
	for rows.Next() {
		var rec domain.TradeRecord
		if err := rows.Scan(&rec.Date, &rec.Ticker, &rec.Action, &rec.Quantity, &rec.Price, &rec.Total, &rec.Sector, &rec.Account, &rec.Instrument); err != nil {
			return nil, fmt.Errorf("failed to scan trade record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade record rows: %w", err)
	}
	return records, nil
}

// CountTrades returns the number of stored records for a user.
func (r *Repository) CountTrades(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trade_records WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trade records for user %s: %w", userID, err)
	}
	return count, nil
}

// --- PositionRepository Implementation ---

// ReplacePositions deletes a user's stored positions and saves the new set.
func (r *Repository) ReplacePositions(ctx context.Context, userID string, positions []domain.Position) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin position replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear positions for user %s: %w", userID, err)
	}

	const insert = `
	INSERT INTO positions (user_id, ticker, sector, instrument, shares, avg_cost, realized_pnl, realized_pnl_percent, trade_count, wins, avg_hold_days)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, pos := range positions {
		if _, err := tx.ExecContext(ctx, insert,
			userID, pos.Ticker, pos.Sector, pos.Instrument, pos.Shares, pos.AvgCost, pos.RealizedPNL, pos.RealizedPNLPercent, pos.TradeCount, pos.Wins, pos.AvgHoldDays); err != nil {
			return fmt.Errorf("failed to insert position for %s: %w", pos.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit position replace: %w", err)
	}
	r.logger.Debug(ctx, "Positions replaced", map[string]interface{}{"userID": userID, "count": len(positions)})
	return nil
}

// FindPositions retrieves all stored positions for a user.
func (r *Repository) FindPositions(ctx context.Context, userID string) ([]domain.Position, error) {
	const query = `
	SELECT ticker, sector, instrument, shares, avg_cost, realized_pnl, realized_pnl_percent, trade_count, wins, avg_hold_days
	FROM positions
	WHERE user_id = ?
	ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions for user %s: %w", userID, err)
	}
	defer rows.Close()

	positions := make([]domain.Position, 0)
	for rows.Next() {
		var pos domain.Position
		if err := rows.Scan(&pos.Ticker, &pos.Sector, &pos.Instrument, &pos.Shares, &pos.AvgCost, &pos.RealizedPNL, &pos.RealizedPNLPercent, &pos.TradeCount, &pos.Wins, &pos.AvgHoldDays); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position rows: %w", err)
	}
	return positions, nil
}

// --- ProfileRepository Implementation ---

// SaveProfile upserts the user's portfolio summary. Trait scores are stored
// as JSON; the positions travel through the positions table instead.
func (r *Repository) SaveProfile(ctx context.Context, userID string, summary *domain.PortfolioSummary) error {
	traits, err := json.Marshal(summary.Traits)
	if err != nil {
		return fmt.Errorf("failed to marshal traits for user %s: %w", userID, err)
	}

	const query = `
	INSERT INTO profiles (user_id, total_value, total_pnl, win_rate, sharpe, avg_hold_days, traits, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		total_value = excluded.total_value,
		total_pnl = excluded.total_pnl,
		win_rate = excluded.win_rate,
		sharpe = excluded.sharpe,
		avg_hold_days = excluded.avg_hold_days,
		traits = excluded.traits,
		updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		userID, summary.TotalValue, summary.TotalPNL, summary.WinRate, summary.Sharpe, summary.AvgHoldDays, string(traits), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert profile for user %s: %w", userID, err)
	}
	r.logger.Debug(ctx, "Profile saved", map[string]interface{}{"userID": userID})
	return nil
}

// FindProfile retrieves the stored profile for a user, with positions
// attached from the positions table. Returns nil, nil when no profile
// exists.
func (r *Repository) FindProfile(ctx context.Context, userID string) (*domain.PortfolioSummary, error) {
	const query = `
	SELECT total_value, total_pnl, win_rate, sharpe, avg_hold_days, traits
	FROM profiles
	WHERE user_id = ?`

	var summary domain.PortfolioSummary
	var traitsJSON string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&summary.TotalValue, &summary.TotalPNL, &summary.WinRate, &summary.Sharpe, &summary.AvgHoldDays, &traitsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query profile for user %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(traitsJSON), &summary.Traits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal traits for user %s: %w", userID, err)
	}

	positions, err := r.FindPositions(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.Positions = positions
	return &summary, nil
}

package ledger

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

// RecordStore holds the append-only transaction log and performance series
// in an in-memory DuckDB database. Records are inserted once and never
// updated or deleted; reads return them in append order.
type RecordStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewRecordStore opens an in-memory database for the session.
func NewRecordStore(log *logger.Logger) (*RecordStore, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &RecordStore{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the tables for transactions and performance samples.
func (s *RecordStore) Initialize() error {
	_, err := s.db.Exec(`CREATE SEQUENCE IF NOT EXISTS seq_no`)
	if err != nil {
		return fmt.Errorf("failed to create sequence: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			seq INTEGER DEFAULT nextval('seq_no'),
			tx_id TEXT PRIMARY KEY,
			ticker TEXT,
			side TEXT,
			quantity BIGINT,
			price DOUBLE,
			total DOUBLE,
			executed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transactions table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS performance_samples (
			seq INTEGER DEFAULT nextval('seq_no'),
			sample_id TEXT PRIMARY KEY,
			total_value DOUBLE,
			sampled_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create performance_samples table: %w", err)
	}

	return nil
}

// Record appends one transaction and its performance sample in a single
// database transaction. Either both records become visible or neither does.
func (s *RecordStore) Record(txn types.Transaction, sample types.PerformanceSample) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	total, _ := txn.Total.Float64()

	insertTxn := s.sq.
		Insert("transactions").
		Columns("tx_id", "ticker", "side", "quantity", "price", "total", "executed_at").
		Values(txn.ID, txn.Ticker, txn.Side, txn.Quantity, txn.Price, total, txn.ExecutedAt).
		RunWith(tx)

	if _, err := insertTxn.Exec(); err != nil {
		tx.Rollback()

		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	totalValue, _ := sample.TotalValue.Float64()

	insertSample := s.sq.
		Insert("performance_samples").
		Columns("sample_id", "total_value", "sampled_at").
		Values(sample.ID, totalValue, sample.SampledAt).
		RunWith(tx)

	if _, err := insertSample.Exec(); err != nil {
		tx.Rollback()

		return fmt.Errorf("failed to insert performance sample: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}

	return nil
}

// Transactions returns all executed trades in append order.
func (s *RecordStore) Transactions() ([]types.Transaction, error) {
	query := s.sq.
		Select("tx_id", "ticker", "side", "quantity", "price", "total", "executed_at").
		From("transactions").
		OrderBy("seq ASC").
		RunWith(s.db)

	rows, err := query.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]types.Transaction, 0)

	for rows.Next() {
		var txn types.Transaction

		var total float64

		err := rows.Scan(&txn.ID, &txn.Ticker, &txn.Side, &txn.Quantity, &txn.Price, &total, &txn.ExecutedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.Total = decimal.NewFromFloat(total)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}

// Samples returns the performance time series in append order.
func (s *RecordStore) Samples() ([]types.PerformanceSample, error) {
	query := s.sq.
		Select("sample_id", "total_value", "sampled_at").
		From("performance_samples").
		OrderBy("seq ASC").
		RunWith(s.db)

	rows, err := query.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query performance samples: %w", err)
	}
	defer rows.Close()

	samples := make([]types.PerformanceSample, 0)

	for rows.Next() {
		var sample types.PerformanceSample

		var totalValue float64

		err := rows.Scan(&sample.ID, &totalValue, &sample.SampledAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance sample: %w", err)
		}

		sample.TotalValue = decimal.NewFromFloat(totalValue)
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read performance samples: %w", err)
	}

	return samples, nil
}

// NetTraded returns the cash spent on buys minus the cash recovered on
// sells. When no wallet top-up has occurred this reconciles with
// initial balance minus current cash balance.
func (s *RecordStore) NetTraded() (decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN side = ? THEN total ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN side = ? THEN total ELSE 0 END), 0)
		FROM transactions
	`

	var net float64
	if err := s.db.QueryRow(query, types.SideBuy, types.SideSell).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute net traded cash: %w", err)
	}

	return decimal.NewFromFloat(net), nil
}

// Cleanup drops all record tables. Used between test runs.
func (s *RecordStore) Cleanup() error {
	for _, table := range []string{"transactions", "performance_samples"} {
		if _, err := s.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	if _, err := s.db.Exec("DROP SEQUENCE IF EXISTS seq_no"); err != nil {
		return fmt.Errorf("failed to drop sequence: %w", err)
	}

	return nil
}

// Close releases the underlying database.
func (s *RecordStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close record store", zap.Error(err))

		return err
	}

	return nil
}

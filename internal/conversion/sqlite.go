package conversion

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/conversion/migrations"
	"github.com/dmitrijs2005/passkeylab/internal/dbx"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// SQLiteStore keeps the history in SQLite. The history is cleared when the
// store is opened, so nothing carries over from a previous run.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens dsn, applies the embedded migrations and clears any
// previously recorded metrics.
func OpenSQLite(ctx context.Context, dsn string, logger logging.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open conversion store: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate conversion store: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.Reset(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, l: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Append(ctx context.Context, m Metric) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversion_metrics (flow, started_at, finished_at, duration_ns)
		VALUES (?, ?, ?, ?)`,
		string(m.Flow), m.StartedAt.UnixNano(), m.FinishedAt.UnixNano(), int64(m.Duration))
	if err != nil {
		return fmt.Errorf("failed to insert conversion metric: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Average(ctx context.Context, flow Flow) (time.Duration, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(duration_ns) FROM conversion_metrics WHERE flow = ?`, string(flow)).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average conversion metrics[%s]: %w", flow, err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return time.Duration(math.Round(avg.Float64)), nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Metric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT flow, started_at, finished_at, duration_ns
		FROM conversion_metrics
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversion metrics: %w", err)
	}
	defer rows.Close()

	var result []Metric
	for rows.Next() {
		var (
			flow                string
			started, finished   int64
			durationNanoseconds int64
		)
		if err := rows.Scan(&flow, &started, &finished, &durationNanoseconds); err != nil {
			return nil, fmt.Errorf("failed to scan conversion metric row: %w", err)
		}
		result = append(result, Metric{
			Flow:       Flow(flow),
			StartedAt:  time.Unix(0, started),
			FinishedAt: time.Unix(0, finished),
			Duration:   time.Duration(durationNanoseconds),
			Completed:  true,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversion metric rows: %w", err)
	}
	return result, nil
}

// Reset removes all recorded metrics and restarts row numbering.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM conversion_metrics`); err != nil {
			return fmt.Errorf("failed to clear conversion metrics: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'conversion_metrics'`); err != nil {
			return fmt.Errorf("failed to reset conversion metric ids: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// gooseLogger routes goose output into the application logger at debug level.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

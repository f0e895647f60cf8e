package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS classification_records (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	captured_at      DATETIME NOT NULL,
	material         TEXT NOT NULL,
	corrosion_status TEXT NOT NULL,
	severity         TEXT NOT NULL,
	rust_ratio       REAL,
	edge_density     REAL,
	created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_records_captured_at ON classification_records(captured_at);
`

// SQLiteResultSink локальный журнал записей в SQLite
type SQLiteResultSink struct {
	db *sql.DB
}

// OpenSQLiteResultSink открывает базу и создаёт таблицу, если её нет.
func OpenSQLiteResultSink(path string) (*SQLiteResultSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(recordsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteResultSink{db: db}, nil
}

// Append добавляет строку; отсутствующие проценты пишутся как NULL.
func (s *SQLiteResultSink) Append(ctx context.Context, result entity.ClassificationResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classification_records (captured_at, material, corrosion_status, severity, rust_ratio, edge_density)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.Timestamp.UTC(),
		string(result.Material),
		string(result.CorrosionStatus),
		string(result.Severity),
		nullPercent(result.RustRatioPercent),
		nullPercent(result.EdgeDensityPercent),
	)
	if err != nil {
		return fmt.Errorf("%w: sqlite insert: %w", entity.ErrSinkUnavailable, err)
	}
	return nil
}

// Records читает все записи в порядке добавления
func (s *SQLiteResultSink) Records(ctx context.Context) ([]entity.ClassificationResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT captured_at, material, corrosion_status, severity, rust_ratio, edge_density
		 FROM classification_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.ClassificationResult
	for rows.Next() {
		var (
			r           entity.ClassificationResult
			material    string
			status      string
			severity    string
			rust, edges sql.NullFloat64
		)
		if err := rows.Scan(&r.Timestamp, &material, &status, &severity, &rust, &edges); err != nil {
			return nil, err
		}
		r.Material = entity.Material(material)
		r.CorrosionStatus = entity.CorrosionStatus(status)
		r.Severity = entity.Severity(severity)
		r.RustRatioPercent = entity.Percent{Value: rust.Float64, Valid: rust.Valid}
		r.EdgeDensityPercent = entity.Percent{Value: edges.Float64, Valid: edges.Valid}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close закрывает базу
func (s *SQLiteResultSink) Close() error {
	return s.db.Close()
}

func nullPercent(p entity.Percent) sql.NullFloat64 {
	return sql.NullFloat64{Float64: p.Value, Valid: p.Valid}
}

var _ port.ResultSink = (*SQLiteResultSink)(nil)

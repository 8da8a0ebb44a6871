package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/repository"
)

const statusChecksTable = "status_checks"

var statusCheckSchema = map[string]string{
	DriverMySQL: `CREATE TABLE IF NOT EXISTS status_checks (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		client_name VARCHAR(255) NOT NULL,
		checked_at DATETIME(6) NOT NULL,
		INDEX idx_status_checks_checked_at (checked_at)
	)`,
	DriverPostgres: `CREATE TABLE IF NOT EXISTS status_checks (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		client_name VARCHAR(255) NOT NULL,
		checked_at TIMESTAMPTZ NOT NULL
	)`,
}

type statusCheckRepository struct {
	db     *sql.DB
	driver string
}

func NewStatusCheckRepository(db *sql.DB, driver string) repository.StatusCheckRepository {
	return &statusCheckRepository{db: db, driver: driver}
}

func (r *statusCheckRepository) EnsureSchema(ctx context.Context) error {
	ddl, ok := statusCheckSchema[r.driver]
	if !ok {
		ddl = statusCheckSchema[DriverMySQL]
	}
	logger.DatabaseCall("CREATE TABLE", statusChecksTable, "driver", r.driver)
	_, err := r.db.ExecContext(ctx, ddl)
	logger.DatabaseResult("CREATE TABLE", 0, err)
	return err
}

func (r *statusCheckRepository) Create(ctx context.Context, c *domain.StatusCheck) error {
	query := rebind(r.driver, `INSERT INTO status_checks (id, client_name, checked_at) VALUES (?, ?, ?)`)
	logger.DatabaseCall("INSERT", statusChecksTable, "id", c.ID, "clientName", c.ClientName)

	res, err := r.db.ExecContext(ctx, query, c.ID, c.ClientName, c.Timestamp.UTC())
	var affected int64
	if err == nil {
		affected, _ = res.RowsAffected()
	}
	logger.DatabaseResult("INSERT", affected, err, "id", c.ID)
	return err
}

func (r *statusCheckRepository) List(ctx context.Context, limit int) ([]domain.StatusCheck, error) {
	query := rebind(r.driver, `SELECT id, client_name, checked_at FROM status_checks ORDER BY checked_at DESC LIMIT ?`)
	logger.DatabaseCall("SELECT", statusChecksTable, "limit", limit)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	checks := []domain.StatusCheck{}
	for rows.Next() {
		var c domain.StatusCheck
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			return nil, err
		}
		c.Timestamp = c.Timestamp.UTC()
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(checks)), nil)
	return checks, nil
}

func (r *statusCheckRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := rebind(r.driver, `DELETE FROM status_checks WHERE checked_at < ?`)
	logger.DatabaseCall("DELETE", statusChecksTable, "cutoff", cutoff)

	res, err := r.db.ExecContext(ctx, query, cutoff.UTC())
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DELETE", n, err)
	return n, err
}

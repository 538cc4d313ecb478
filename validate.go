package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationReport is the outcome of a syntax pre-check.
type ValidationReport struct {
	Valid         bool
	Message       string // parser error text when invalid
	Position      int    // 1-based byte position of the error, 0 when unknown
	ElapsedMillis int64
}

// StatementValidator checks statement syntax against a live engine
// before conversion. Implementations prepare the statement and never
// execute it.
type StatementValidator interface {
	Validate(ctx context.Context, sqlText string, d Dialect) (ValidationReport, error)
}

// newStatementValidator returns a validator backed by the given
// dialect's engine. Oracle sources have no in-repo validator.
func newStatementValidator(d Dialect, dsn string) (StatementValidator, error) {
	switch d {
	case PostgreSQL:
		return &postgresValidator{dsn: dsn}, nil
	case MySQL:
		dsn, err := mysqlValidatorDSN(dsn)
		if err != nil {
			return nil, err
		}
		return &mysqlValidator{dsn: dsn}, nil
	default:
		return nil, fmt.Errorf("no statement validator available for %s", d)
	}
}

// postgresValidator prepares the statement over a short-lived pgx
// connection. PREPARE parses and plans without executing.
type postgresValidator struct {
	dsn string
}

func (v *postgresValidator) Validate(ctx context.Context, sqlText string, _ Dialect) (ValidationReport, error) {
	start := time.Now()

	conn, err := pgx.Connect(ctx, v.dsn)
	if err != nil {
		return ValidationReport{}, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	_, err = conn.Prepare(ctx, "sqlferry_check", sqlText)
	report := ValidationReport{Valid: err == nil, ElapsedMillis: time.Since(start).Milliseconds()}
	if err != nil {
		report.Message = err.Error()
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			report.Message = pgErr.Message
			report.Position = int(pgErr.Position)
		}
	}
	return report, nil
}

// mysqlValidator prepares the statement through database/sql. MySQL's
// PREPARE parses server-side without executing.
type mysqlValidator struct {
	dsn string
}

func (v *mysqlValidator) Validate(ctx context.Context, sqlText string, _ Dialect) (ValidationReport, error) {
	start := time.Now()

	db, err := sql.Open("mysql", v.dsn)
	if err != nil {
		return ValidationReport{}, fmt.Errorf("open mysql: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return ValidationReport{}, fmt.Errorf("ping mysql: %w", err)
	}

	stmt, err := db.PrepareContext(ctx, sqlText)
	report := ValidationReport{Valid: err == nil, ElapsedMillis: time.Since(start).Milliseconds()}
	if err != nil {
		report.Message = err.Error()
	} else {
		stmt.Close()
	}
	return report, nil
}

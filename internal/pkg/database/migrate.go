package database

import (
	"context"
	"fmt"
	"log/slog"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

// Every step is idempotent so Migrate can run on each start.
var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: employees.",
		Query: `
		CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY,
			employee_code VARCHAR(50) NOT NULL UNIQUE,
			full_name VARCHAR(255) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       2,
		Description: "Create table: leave_types.",
		Query: `
		CREATE TABLE IF NOT EXISTS leave_types (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			total_days INTEGER NOT NULL CHECK (total_days >= 0),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       3,
		Description: "Create table: attendance.",
		Query: `
		CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY,
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			attendance_date DATE NOT NULL,
			clock_in TIMESTAMPTZ,
			clock_out TIMESTAMPTZ,
			status VARCHAR(20) NOT NULL DEFAULT 'PRESENT',
			remarks TEXT,
			working_hours NUMERIC(5,2),
			is_late BOOLEAN NOT NULL DEFAULT FALSE,
			late_minutes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT uq_attendance_employee_date UNIQUE (employee_id, attendance_date)
		);`,
	},
	{
		Index:       4,
		Description: "Create table: leave_balances.",
		Query: `
		CREATE TABLE IF NOT EXISTS leave_balances (
			id UUID PRIMARY KEY,
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			leave_type_id UUID NOT NULL REFERENCES leave_types(id),
			year INTEGER NOT NULL,
			total_days INTEGER NOT NULL,
			used_days INTEGER NOT NULL DEFAULT 0 CHECK (used_days >= 0),
			pending_days INTEGER NOT NULL DEFAULT 0 CHECK (pending_days >= 0),
			remaining_days INTEGER GENERATED ALWAYS AS (total_days - used_days - pending_days) STORED,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT uq_leave_balance_employee_type_year UNIQUE (employee_id, leave_type_id, year)
		);`,
	},
	{
		Index:       5,
		Description: "Create table: leaves.",
		Query: `
		CREATE TABLE IF NOT EXISTS leaves (
			id UUID PRIMARY KEY,
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			leave_type_id UUID NOT NULL REFERENCES leave_types(id),
			from_date DATE NOT NULL,
			to_date DATE NOT NULL,
			number_of_days INTEGER NOT NULL,
			reason TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			approved_by UUID,
			approval_date DATE,
			rejection_reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT chk_leave_dates CHECK (from_date <= to_date)
		);`,
	},
	{
		Index:       6,
		Description: "Create indexes.",
		Query: `
		CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (attendance_date);
		CREATE INDEX IF NOT EXISTS idx_leaves_employee_from ON leaves (employee_id, from_date);
		CREATE INDEX IF NOT EXISTS idx_leaves_status ON leaves (status);`,
	},
}

// Migrate applies the schema steps in order.
func Migrate(ctx context.Context, db *DB) error {
	for _, s := range scheme {
		slog.Debug("applying schema step", "index", s.Index, "description", s.Description)
		if _, err := db.Exec(ctx, s.Query); err != nil {
			return fmt.Errorf("schema step %d (%s): %w", s.Index, s.Description, err)
		}
	}
	slog.Info("database schema up to date", "steps", len(scheme))
	return nil
}

// Tables lists the managed tables, children first.
func Tables() []string {
	return []string{"leaves", "leave_balances", "attendance", "leave_types", "employees"}
}

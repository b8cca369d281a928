package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveTypeSelect = `
	SELECT id, name, description, total_days, is_active, created_at, updated_at
	FROM leave_types
`

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.Name, &lt.Description, &lt.TotalDays, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt)
	return lt, err
}

func (l *leaveTypeRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave types: %w", err)
	}

	return types, nil
}

// Create implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveType{}, err
	}

	query := `
		INSERT INTO leave_types (id, name, description, total_days, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id, leaveType.Name, leaveType.Description, leaveType.TotalDays, leaveType.IsActive,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	lt, err := scanLeaveType(q.QueryRow(ctx, leaveTypeSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by id: %w", err)
	}
	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	return l.list(ctx, leaveTypeSelect+` ORDER BY name`)
}

// ListActive implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	return l.list(ctx, leaveTypeSelect+` WHERE is_active = TRUE ORDER BY name`)
}

// Update implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_types
		SET name = $1, description = $2, total_days = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Name, leaveType.Description, leaveType.TotalDays, leaveType.IsActive, leaveType.ID,
	).Scan(&leaveType.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		if pgErrorCode(err) == uniqueViolation {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to update leave type: %w", err)
	}

	return leaveType, nil
}

// Delete implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return leave.ErrLeaveTypeInUse
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

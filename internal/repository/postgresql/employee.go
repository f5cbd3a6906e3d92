package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) attendance.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements attendance.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, shift_id
		FROM employees
		WHERE id = $1
	`

	var found attendance.Employee
	err := q.QueryRow(ctx, query, id).Scan(&found.ID, &found.Name, &found.ShiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Employee{}, attendance.ErrEmployeeNotFound
		}
		return attendance.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return found, nil
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripweave/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense scoped to the given trip.
	// Returns domain.ErrNotFound if no such expense exists under that trip.
	GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)

	// ListByTrip returns all expenses of a trip ordered by incurred_at ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, paid_by_id, description, amount_minor, currency, incurred_at)
		VALUES (@trip_id, @paid_by_id, @description, @amount_minor, @currency, @incurred_at)
		RETURNING id, trip_id, paid_by_id, description, amount_minor, currency, incurred_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":      e.TripID,
		"paid_by_id":   e.PaidByID,
		"description":  e.Description,
		"amount_minor": e.AmountMinor,
		"currency":     e.Currency,
		"incurred_at":  e.IncurredAt.UTC(),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	const q = `
		SELECT id, trip_id, paid_by_id, description, amount_minor, currency, incurred_at, created_at, updated_at
		FROM expenses
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT id, trip_id, paid_by_id, description, amount_minor, currency, incurred_at, created_at, updated_at
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY incurred_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: rows: %w", err)
	}
	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET description  = @description,
		    amount_minor = @amount_minor,
		    currency     = @currency,
		    incurred_at  = @incurred_at,
		    updated_at   = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING id, trip_id, paid_by_id, description, amount_minor, currency, incurred_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":           e.ID,
		"trip_id":      e.TripID,
		"description":  e.Description,
		"amount_minor": e.AmountMinor,
		"currency":     e.Currency,
		"incurred_at":  e.IncurredAt.UTC(),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e        domain.Expense
		id       pgtype.UUID
		tripID   pgtype.UUID
		paidByID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &paidByID, &e.Description, &e.AmountMinor, &e.Currency,
		&e.IncurredAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.PaidByID = uuid.UUID(paidByID.Bytes)
	e.IncurredAt = e.IncurredAt.UTC()
	return e, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/policy"
	"github.com/tripweave/backend/internal/repo"
)

// ExpenseService implements business logic for expenses and enforces the
// visibility policy on every read. Expenses are viewer-excluded: the policy
// table hides the whole type from viewers, so a viewer listing a trip's
// expenses sees an empty result and a viewer fetching one by ID gets 404.
type ExpenseService struct {
	members  repo.ParticipantRepo
	expenses repo.ExpenseRepo
	eval     *policy.Evaluator
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(members repo.ParticipantRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{
		members:  members,
		expenses: expenses,
		eval:     policy.NewEvaluator(members),
	}
}

// Create validates and persists a new expense, recording the caller as payer
// when PaidByID is unset. Viewers are read-only.
func (s *ExpenseService) Create(ctx context.Context, callerID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	if err := requireWriter(ctx, s.members, e.TripID, callerID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if e.PaidByID == (uuid.UUID{}) {
		e.PaidByID = callerID
	}
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}

	created, err := s.expenses.Create(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single expense if the caller may see it.
func (s *ExpenseService) GetByID(ctx context.Context, callerID, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, tripID, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}

	visible, err := s.eval.CanSee(ctx, tripID, callerID, domain.ResourceExpense, e.IncurredAt)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	if !visible {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", domain.ErrNotFound)
	}
	return e, nil
}

// ListByTrip returns the expenses of a trip visible to the caller,
// incurred_at ascending. Non-members get ErrNotFound.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Expense, error) {
	caller, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", domain.ErrNotFound)
	}

	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}

	visible := []domain.Expense{}
	for _, e := range expenses {
		if policy.Decide(caller.Role, caller.JoinedAt, domain.ResourceExpense, e.IncurredAt) {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// Update validates and persists changes to an existing expense. The caller
// must hold a writing role and must be able to see the current row.
func (s *ExpenseService) Update(ctx context.Context, callerID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	if err := requireWriter(ctx, s.members, e.TripID, callerID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	if _, err := s.GetByID(ctx, callerID, e.TripID, e.ID); err != nil {
		return domain.Expense{}, err
	}
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}

	updated, err := s.expenses.Update(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an expense. Same role and visibility requirements as Update.
func (s *ExpenseService) Delete(ctx context.Context, callerID, tripID, expenseID uuid.UUID) error {
	if err := requireWriter(ctx, s.members, tripID, callerID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	if _, err := s.GetByID(ctx, callerID, tripID, expenseID); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// validateExpense enforces business rules common to Create and Update.
//   - Description must be non-empty.
//   - AmountMinor must be positive.
//   - Currency must be a three-letter code.
//   - IncurredAt must be set (the policy engine needs a defining timestamp).
func validateExpense(e domain.Expense) error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if e.AmountMinor <= 0 {
		return fmt.Errorf("%w: amount_minor must be positive", domain.ErrValidation)
	}
	if len(e.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a three-letter ISO 4217 code", domain.ErrValidation)
	}
	if e.IncurredAt.IsZero() {
		return fmt.Errorf("%w: incurred_at is required", domain.ErrValidation)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
	pkgpostgres "github.com/urjitutjit/creditapprovalsystem/pkg/postgres"
)

// scannable is satisfied by pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

const loanColumns = `
	id, customer_id, amount, interest_rate, monthly_installment,
	tenure_months, emis_paid_on_time, status, start_date, end_date,
	version, created_at, updated_at`

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save upserts a loan under optimistic locking and refreshes the owning
// customer's current debt in the same transaction. A stale version yields
// model.ErrLoanVersionConflict.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO loans (` + loanColumns + `)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			ON CONFLICT (id) DO UPDATE SET
				emis_paid_on_time = EXCLUDED.emis_paid_on_time,
				status            = EXCLUDED.status,
				version           = loans.version + 1,
				updated_at        = EXCLUDED.updated_at
			WHERE loans.version = $11
		`
		tag, err := tx.Exec(ctx, query,
			loan.ID(), loan.CustomerID(), loan.Amount(), loan.InterestRate(), loan.MonthlyInstallment(),
			loan.TenureMonths(), loan.EMIsPaidOnTime(), loan.Status().String(), loan.StartDate(), loan.EndDate(),
			loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrLoanVersionConflict
		}

		if err := refreshCurrentDebt(ctx, tx, loan.CustomerID(), loan.UpdatedAt()); err != nil {
			return err
		}
		return nil
	})
}

// FindByID retrieves a loan, returning model.ErrLoanNotFound when absent.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, model.ErrLoanNotFound
	}
	return loan, err
}

// FindByCustomerID lists a customer's loans, oldest first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY start_date, created_at`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	loans := make([]model.Loan, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

func refreshCurrentDebt(ctx context.Context, q pkgpostgres.Querier, customerID string, now time.Time) error {
	query := `
		UPDATE customers SET
			current_debt = COALESCE((
				SELECT SUM(amount) FROM loans
				WHERE customer_id = $1 AND status = 'active'
			), 0),
			updated_at = $2
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, customerID, now)
	if err != nil {
		return fmt.Errorf("update current debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}
	return nil
}

// scanLoan returns pgx.ErrNoRows unwrapped so callers can map it.
func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, customerID, statusStr                string
		amount, interestRate, installment        decimal.Decimal
		tenure, emisPaid, version                int
		startDate, endDate, createdAt, updatedAt time.Time
	)
	err := s.Scan(
		&id, &customerID, &amount, &interestRate, &installment,
		&tenure, &emisPaid, &statusStr, &startDate, &endDate,
		&version, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, err
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, customerID, amount, interestRate, installment,
		tenure, emisPaid, status, startDate, endDate,
		version, createdAt, updatedAt,
	), nil
}

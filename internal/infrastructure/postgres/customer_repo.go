package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
)

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepo creates a PostgreSQL-backed customer repository.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

const uniqueViolation = "23505"

// Save inserts a customer or updates its mutable fields. A phone number
// held by another customer yields model.ErrDuplicatePhone.
func (r *CustomerRepo) Save(ctx context.Context, c model.Customer) error {
	query := `
		INSERT INTO customers (
			id, first_name, last_name, age, phone_number,
			monthly_income, approved_limit, current_debt, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			monthly_income = EXCLUDED.monthly_income,
			approved_limit = EXCLUDED.approved_limit,
			updated_at     = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID(), c.FirstName(), c.LastName(), c.Age(), c.PhoneNumber(),
		c.MonthlyIncome(), c.ApprovedLimit(), c.CurrentDebt(), c.CreatedAt(), c.UpdatedAt(),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("save customer: %w", model.ErrDuplicatePhone)
	}
	if err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}

// FindByID retrieves a customer, returning model.ErrCustomerNotFound when
// absent.
func (r *CustomerRepo) FindByID(ctx context.Context, id string) (model.Customer, error) {
	query := `
		SELECT id, first_name, last_name, age, phone_number,
		       monthly_income, approved_limit, current_debt, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func scanCustomer(s scannable) (model.Customer, error) {
	var (
		id, firstName, lastName                   string
		age                                       int
		phone                                     int64
		monthlyIncome, approvedLimit, currentDebt decimal.Decimal
		createdAt, updatedAt                      time.Time
	)
	err := s.Scan(
		&id, &firstName, &lastName, &age, &phone,
		&monthlyIncome, &approvedLimit, &currentDebt, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, model.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}

	return model.ReconstructCustomer(
		id, firstName, lastName, age, phone,
		monthlyIncome, approvedLimit, currentDebt, createdAt, updatedAt,
	), nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/port"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
)

const loanApprovedMessage = "loan approved"

// CreateLoanUseCase re-runs eligibility and books the loan on approval.
type CreateLoanUseCase struct {
	customerRepo port.CustomerRepository
	loanRepo     port.LoanRepository
	locker       port.CustomerLocker
	publisher    port.EventPublisher
	evaluator    *service.EligibilityEvaluator
	recorder     port.DecisionRecorder
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	locker port.CustomerLocker,
	publisher port.EventPublisher,
	evaluator *service.EligibilityEvaluator,
	recorder port.DecisionRecorder,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		locker:       locker,
		publisher:    publisher,
		evaluator:    evaluator,
		recorder:     recorder,
	}
}

// Execute evaluates the requested terms and, if approved, persists an active
// loan at the corrected rate. Rejections are returned as a response with
// Approved=false, not as an error.
func (uc *CreateLoanUseCase) Execute(
	ctx context.Context,
	req dto.CreateLoanRequest,
) (dto.CreateLoanResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.CreateLoanResponse{}, err
	}

	now := time.Now().UTC()

	// Evaluation and booking share one customer lock so concurrent requests
	// cannot both pass affordability against the same loan book.
	var (
		customer model.Customer
		decision service.EligibilityDecision
		loan     model.Loan
	)
	err := uc.locker.WithCustomerLock(ctx, req.CustomerID, func(ctx context.Context) error {
		var err error

		// 1. Evaluate against the current loan book.
		customer, decision, err = evaluateTerms(ctx, uc.customerRepo, uc.loanRepo, uc.evaluator, req)
		if err != nil {
			return err
		}
		uc.recorder.RecordDecision(ctx, decision.Approved, decision.Reason)
		if !decision.Approved {
			return nil
		}

		// 2. Book the loan at the corrected terms.
		loan, err = model.NewLoan(
			customer.ID(), req.LoanAmount,
			decision.CorrectedRate, decision.MonthlyInstallment,
			req.TenureMonths, now,
		)
		if err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		// 3. Persist.
		if err := uc.loanRepo.Save(ctx, loan); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.CreateLoanResponse{}, err
	}

	events := []event.DomainEvent{decisionEvent(req, decision, now)}

	if !decision.Approved {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.CreateLoanResponse{}, fmt.Errorf("publish events: %w", err)
		}
		return dto.CreateLoanResponse{
			CustomerID:         customer.ID(),
			Approved:           false,
			Message:            decision.Reason,
			MonthlyInstallment: decimal.Zero,
		}, nil
	}

	// 4. Publish domain events.
	events = append(events, loan.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.CreateLoanResponse{
		LoanID:             loan.ID(),
		CustomerID:         customer.ID(),
		Approved:           true,
		Message:            loanApprovedMessage,
		MonthlyInstallment: loan.MonthlyInstallment(),
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/port"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

// CheckEligibilityUseCase runs the eligibility engine against a customer's
// current loan book without booking anything.
type CheckEligibilityUseCase struct {
	customerRepo port.CustomerRepository
	loanRepo     port.LoanRepository
	publisher    port.EventPublisher
	evaluator    *service.EligibilityEvaluator
	recorder     port.DecisionRecorder
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	evaluator *service.EligibilityEvaluator,
	recorder port.DecisionRecorder,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		publisher:    publisher,
		evaluator:    evaluator,
		recorder:     recorder,
	}
}

// Execute evaluates the proposed loan. An unknown customer is reported as a
// rejection rather than an error.
func (uc *CheckEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.CheckEligibilityRequest,
) (dto.EligibilityResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.EligibilityResponse{}, err
	}

	_, decision, err := evaluateTerms(ctx, uc.customerRepo, uc.loanRepo, uc.evaluator, req)
	if errors.Is(err, model.ErrCustomerNotFound) {
		uc.recorder.RecordDecision(ctx, false, service.ReasonCustomerNotFound)
		return dto.EligibilityResponse{
			CustomerID:            req.CustomerID,
			CreditScore:           decision.Score.String(),
			Message:               service.ReasonCustomerNotFound,
			InterestRate:          req.InterestRate,
			CorrectedInterestRate: req.InterestRate,
			MonthlyInstallment:    decision.MonthlyInstallment,
			TenureMonths:          req.TenureMonths,
		}, nil
	}
	if err != nil {
		return dto.EligibilityResponse{}, err
	}

	uc.recorder.RecordDecision(ctx, decision.Approved, decision.Reason)

	evt := decisionEvent(req, decision, time.Now().UTC())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toEligibilityResponse(req.CustomerID, decision), nil
}

// evaluateTerms loads the customer's profile and loan history and runs the
// evaluator. When the customer does not exist it returns a zero-score
// rejection alongside model.ErrCustomerNotFound.
func evaluateTerms(
	ctx context.Context,
	customerRepo port.CustomerRepository,
	loanRepo port.LoanRepository,
	evaluator *service.EligibilityEvaluator,
	req dto.LoanTermsRequest,
) (model.Customer, service.EligibilityDecision, error) {
	rejected := service.EligibilityDecision{
		Reason:             service.ReasonCustomerNotFound,
		Score:              valueobject.ZeroCreditScore,
		RequestedRate:      req.InterestRate,
		CorrectedRate:      req.InterestRate,
		MonthlyInstallment: decimal.Zero,
		TenureMonths:       req.TenureMonths,
	}

	customer, err := customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return model.Customer{}, rejected, fmt.Errorf("find customer: %w", err)
	}

	loans, err := loanRepo.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return model.Customer{}, rejected, fmt.Errorf("find loans: %w", err)
	}

	decision := evaluator.Evaluate(
		customer.Profile(loans),
		model.Records(loans),
		req.LoanAmount, req.InterestRate, req.TenureMonths,
	)
	return customer, decision, nil
}

func decisionEvent(req dto.LoanTermsRequest, d service.EligibilityDecision, now time.Time) event.EligibilityEvaluated {
	return event.NewEligibilityEvaluated(
		req.CustomerID,
		req.LoanAmount, d.RequestedRate, d.CorrectedRate, d.MonthlyInstallment.Round(2),
		d.TenureMonths,
		d.Approved,
		d.Score.String(), d.Reason,
		now,
	)
}

package usecase

import (
	"context"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
)

// Executor is the shape shared by every use case.
type Executor[Req, Resp any] interface {
	Execute(ctx context.Context, req Req) (Resp, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

func (f ExecutorFunc[Req, Resp]) Execute(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

// Set is the application surface served by the gRPC and REST transports.
type Set struct {
	RegisterCustomer     Executor[dto.RegisterCustomerRequest, dto.CustomerResponse]
	CheckEligibility     Executor[dto.CheckEligibilityRequest, dto.EligibilityResponse]
	CreateLoan           Executor[dto.CreateLoanRequest, dto.CreateLoanResponse]
	ViewLoan             Executor[dto.GetLoanRequest, dto.LoanResponse]
	ViewCustomerLoans    Executor[dto.ListCustomerLoansRequest, dto.CustomerLoansResponse]
	GetRepaymentSchedule Executor[dto.GetLoanRequest, dto.RepaymentScheduleResponse]
	RecordRepayment      Executor[dto.GetLoanRequest, dto.LoanStatusResponse]
	MarkLoanDefaulted    Executor[dto.GetLoanRequest, dto.LoanStatusResponse]
}

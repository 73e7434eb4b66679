package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

// CreditHandler implements CreditServiceServer on top of the use cases.
type CreditHandler struct {
	UnimplementedCreditServiceServer
	uc     usecase.Set
	logger *slog.Logger
}

func NewCreditHandler(uc usecase.Set, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{uc: uc, logger: logger}
}

func (h *CreditHandler) RegisterCustomer(ctx context.Context, req *dto.RegisterCustomerRequest) (*dto.CustomerResponse, error) {
	return call(ctx, h, h.uc.RegisterCustomer, req)
}

func (h *CreditHandler) CheckEligibility(ctx context.Context, req *dto.CheckEligibilityRequest) (*dto.EligibilityResponse, error) {
	return call(ctx, h, h.uc.CheckEligibility, req)
}

func (h *CreditHandler) CreateLoan(ctx context.Context, req *dto.CreateLoanRequest) (*dto.CreateLoanResponse, error) {
	return call(ctx, h, h.uc.CreateLoan, req)
}

func (h *CreditHandler) ViewLoan(ctx context.Context, req *dto.GetLoanRequest) (*dto.LoanResponse, error) {
	return call(ctx, h, h.uc.ViewLoan, req)
}

func (h *CreditHandler) ViewCustomerLoans(ctx context.Context, req *dto.ListCustomerLoansRequest) (*dto.CustomerLoansResponse, error) {
	return call(ctx, h, h.uc.ViewCustomerLoans, req)
}

func (h *CreditHandler) GetRepaymentSchedule(ctx context.Context, req *dto.GetLoanRequest) (*dto.RepaymentScheduleResponse, error) {
	return call(ctx, h, h.uc.GetRepaymentSchedule, req)
}

func (h *CreditHandler) RecordRepayment(ctx context.Context, req *dto.GetLoanRequest) (*dto.LoanStatusResponse, error) {
	return call(ctx, h, h.uc.RecordRepayment, req)
}

func (h *CreditHandler) MarkLoanDefaulted(ctx context.Context, req *dto.GetLoanRequest) (*dto.LoanStatusResponse, error) {
	return call(ctx, h, h.uc.MarkLoanDefaulted, req)
}

func call[Req, Resp any](ctx context.Context, h *CreditHandler, uc usecase.Executor[Req, Resp], req *Req) (*Resp, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	resp, err := uc.Execute(ctx, *req)
	if err != nil {
		st := toStatus(err)
		if st.Code() == codes.Internal {
			h.logger.ErrorContext(ctx, "request failed", "error", err)
		}
		return nil, st.Err()
	}
	return &resp, nil
}

// toStatus maps application and domain errors onto gRPC codes. Internal
// errors are not echoed to the caller.
func toStatus(err error) *status.Status {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrCustomerNotFound), errors.Is(err, model.ErrLoanNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrDuplicatePhone):
		return status.New(codes.AlreadyExists, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.New(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrLoanVersionConflict):
		return status.New(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	default:
		return status.New(codes.Internal, "internal error")
	}
}

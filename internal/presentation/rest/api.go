package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
	"github.com/urjitutjit/creditapprovalsystem/pkg/auth"
)

const maxBodyBytes = 1 << 20

// API serves the credit use cases as JSON over HTTP.
type API struct {
	uc     usecase.Set
	logger *slog.Logger
}

func NewAPI(uc usecase.Set, logger *slog.Logger) *API {
	return &API{uc: uc, logger: logger}
}

// Handler returns the API routes behind logging, rate limiting and
// authentication. limiter may be nil.
func (a *API) Handler(jwtService *auth.JWTService, limiter *rate.Limiter) http.Handler {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return Chain(mux,
		Logging(a.logger),
		RateLimit(limiter),
		Authenticate(jwtService),
	)
}

// RegisterRoutes attaches the API routes to mux. Callers must install
// Authenticate in front of mux.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	anyRole := RequireRoles()

	mux.Handle("POST /register", RequireRoles(auth.RoleLoanOfficer)(
		handle(a, a.uc.RegisterCustomer, decodeBody[dto.RegisterCustomerRequest], always(http.StatusCreated))))
	mux.Handle("POST /check-eligibility", anyRole(
		handle(a, a.uc.CheckEligibility, decodeBody[dto.CheckEligibilityRequest], always(http.StatusOK))))
	mux.Handle("POST /create-loan", RequireRoles(auth.RoleLoanOfficer, auth.RoleUnderwriter)(
		handle(a, a.uc.CreateLoan, decodeBody[dto.CreateLoanRequest], createLoanStatus)))
	mux.Handle("GET /view-loan/{loan_id}", anyRole(
		handle(a, a.uc.ViewLoan, loanFromPath, always(http.StatusOK))))
	mux.Handle("GET /view-loans/{customer_id}", anyRole(
		handle(a, a.uc.ViewCustomerLoans, customerFromPath, always(http.StatusOK))))
	mux.Handle("GET /loans/{loan_id}/schedule", anyRole(
		handle(a, a.uc.GetRepaymentSchedule, loanFromPath, always(http.StatusOK))))
	mux.Handle("POST /loans/{loan_id}/repayments", RequireRoles(auth.RoleServicing)(
		handle(a, a.uc.RecordRepayment, loanFromPath, always(http.StatusOK))))
	mux.Handle("POST /loans/{loan_id}/default", RequireRoles(auth.RoleServicing)(
		handle(a, a.uc.MarkLoanDefaulted, loanFromPath, always(http.StatusOK))))
}

// handle binds the request, runs uc and writes its response as JSON.
func handle[Req, Resp any](
	a *API,
	uc usecase.Executor[Req, Resp],
	bind func(*http.Request) (Req, error),
	statusOf func(Resp) int,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := bind(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := uc.Execute(r.Context(), req)
		if err != nil {
			code := httpStatus(err)
			msg := err.Error()
			if code == http.StatusInternalServerError {
				a.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
				msg = "internal error"
			}
			writeError(w, code, msg)
			return
		}
		writeJSON(w, statusOf(resp), resp)
	})
}

func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("malformed request body: %w", err)
	}
	return v, nil
}

func loanFromPath(r *http.Request) (dto.GetLoanRequest, error) {
	return dto.GetLoanRequest{LoanID: r.PathValue("loan_id")}, nil
}

func customerFromPath(r *http.Request) (dto.ListCustomerLoansRequest, error) {
	return dto.ListCustomerLoansRequest{CustomerID: r.PathValue("customer_id")}, nil
}

func always[Resp any](code int) func(Resp) int {
	return func(Resp) int { return code }
}

// createLoanStatus answers 201 for a booked loan and 400 for a rejection.
func createLoanStatus(resp dto.CreateLoanResponse) int {
	if resp.Approved {
		return http.StatusCreated
	}
	return http.StatusBadRequest
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCustomerNotFound), errors.Is(err, model.ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicatePhone),
		errors.Is(err, valueobject.ErrInvalidStatusTransition),
		errors.Is(err, model.ErrLoanVersionConflict):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

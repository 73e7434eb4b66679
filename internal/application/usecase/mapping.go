package usecase

import (
	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
)

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID(),
		Name:          c.Name(),
		Age:           c.Age(),
		MonthlyIncome: c.MonthlyIncome(),
		ApprovedLimit: c.ApprovedLimit(),
		PhoneNumber:   c.PhoneNumber(),
		CreatedAt:     c.CreatedAt(),
	}
}

func toEligibilityResponse(customerID string, d service.EligibilityDecision) dto.EligibilityResponse {
	return dto.EligibilityResponse{
		CustomerID:            customerID,
		CreditScore:           d.Score.String(),
		Message:               d.Reason,
		InterestRate:          d.RequestedRate,
		CorrectedInterestRate: d.CorrectedRate,
		MonthlyInstallment:    d.MonthlyInstallment.Round(2),
		TenureMonths:          d.TenureMonths,
		Approved:              d.Approved,
	}
}

func toLoanResponse(l model.Loan, c model.Customer) dto.LoanResponse {
	return dto.LoanResponse{
		ID: l.ID(),
		Customer: dto.CustomerSummary{
			ID:          c.ID(),
			FirstName:   c.FirstName(),
			LastName:    c.LastName(),
			PhoneNumber: c.PhoneNumber(),
			Age:         c.Age(),
		},
		LoanAmount:         l.Amount(),
		InterestRate:       l.InterestRate(),
		MonthlyInstallment: l.MonthlyInstallment(),
		TenureMonths:       l.TenureMonths(),
		EMIsPaidOnTime:     l.EMIsPaidOnTime(),
		RepaymentsLeft:     l.RepaymentsLeft(),
		Status:             l.Status().String(),
		StartDate:          l.StartDate(),
		EndDate:            l.EndDate(),
	}
}

func toLoanSummary(l model.Loan) dto.LoanSummary {
	return dto.LoanSummary{
		ID:                 l.ID(),
		LoanAmount:         l.Amount(),
		InterestRate:       l.InterestRate(),
		MonthlyInstallment: l.MonthlyInstallment(),
		RepaymentsLeft:     l.RepaymentsLeft(),
		Status:             l.Status().String(),
	}
}

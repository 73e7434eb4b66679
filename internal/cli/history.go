package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

// historyFile is the on-disk shape of a loan history:
//
//	loans:
//	  - amount: 500000
//	    interest_rate: 10.5
//	    tenure: 12
//	    emis_paid_on_time: 12
//	    start_date: 2024-01-15
//	    status: completed
type historyFile struct {
	Loans []historyLoan `yaml:"loans"`
}

type historyLoan struct {
	Amount         yamlDecimal `yaml:"amount"`
	InterestRate   yamlDecimal `yaml:"interest_rate"`
	StartDate      yamlDate    `yaml:"start_date"`
	EndDate        yamlDate    `yaml:"end_date"`
	Status         string      `yaml:"status"`
	TenureMonths   int         `yaml:"tenure"`
	EMIsPaidOnTime int         `yaml:"emis_paid_on_time"`
}

type yamlDecimal struct{ decimal.Decimal }

func (d *yamlDecimal) UnmarshalYAML(node *yaml.Node) error {
	v, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a number", node.Line, node.Value)
	}
	d.Decimal = v
	return nil
}

type yamlDate struct{ time.Time }

func (d *yamlDate) UnmarshalYAML(node *yaml.Node) error {
	t, err := time.Parse(dateLayout, node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a YYYY-MM-DD date", node.Line, node.Value)
	}
	d.Time = t
	return nil
}

func loadHistory(path string) ([]model.LoanRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return parseHistory(b)
}

// parseHistory decodes a history document. A missing status defaults to
// completed when every installment was paid, active otherwise. A missing end
// date is derived from the tenure.
func parseHistory(b []byte) ([]model.LoanRecord, error) {
	var f historyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}

	records := make([]model.LoanRecord, 0, len(f.Loans))
	for i, l := range f.Loans {
		if l.TenureMonths < 1 {
			return nil, fmt.Errorf("loan %d: tenure must be at least 1", i+1)
		}
		if l.EMIsPaidOnTime < 0 || l.EMIsPaidOnTime > l.TenureMonths {
			return nil, fmt.Errorf("loan %d: emis_paid_on_time must be between 0 and tenure", i+1)
		}
		if l.StartDate.IsZero() {
			return nil, fmt.Errorf("loan %d: start_date is required", i+1)
		}

		status := valueobject.LoanStatusActive
		switch {
		case l.Status != "":
			s, err := valueobject.NewLoanStatus(l.Status)
			if err != nil {
				return nil, fmt.Errorf("loan %d: %w", i+1, err)
			}
			status = s
		case l.EMIsPaidOnTime == l.TenureMonths:
			status = valueobject.LoanStatusCompleted
		}

		end := l.EndDate.Time
		if end.IsZero() {
			end = l.StartDate.AddDate(0, l.TenureMonths, 0)
		}

		records = append(records, model.LoanRecord{
			StartDate:      l.StartDate.Time,
			EndDate:        end,
			Amount:         l.Amount.Decimal,
			InterestRate:   l.InterestRate.Decimal,
			Status:         status,
			TenureMonths:   l.TenureMonths,
			EMIsPaidOnTime: l.EMIsPaidOnTime,
		})
	}
	return records, nil
}

// activeInstallments sums the monthly installments of active loans.
func activeInstallments(history []model.LoanRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range history {
		if r.Status.IsActive() {
			total = total.Add(model.MonthlyInstallment(r.Amount, r.InterestRate, r.TenureMonths))
		}
	}
	return total.Round(2)
}

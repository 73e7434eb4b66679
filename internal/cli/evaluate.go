package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
)

type evaluateOptions struct {
	historyPath  string
	income       string
	installments string
	limit        string
	amount       string
	rate         string
	asOf         string
	output       string
	tenure       int
}

// evaluateReport is the YAML form of an evaluation.
type evaluateReport struct {
	Approved              bool           `yaml:"approved"`
	Reason                string         `yaml:"reason"`
	CreditScore           string         `yaml:"credit_score"`
	InterestRate          string         `yaml:"interest_rate"`
	CorrectedInterestRate string         `yaml:"corrected_interest_rate"`
	MonthlyInstallment    string         `yaml:"monthly_installment"`
	Tenure                int            `yaml:"tenure"`
	Factors               []reportFactor `yaml:"factors,omitempty"`
}

type reportFactor struct {
	Name     string `yaml:"name"`
	Raw      string `yaml:"raw"`
	Weighted string `yaml:"weighted"`
}

func evaluateCmd() *cobra.Command {
	var opts evaluateOptions

	c := &cobra.Command{
		Use:   "evaluate",
		Short: "Run an eligibility decision against a loan history file (no database)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd.OutOrStdout(), opts)
		},
	}

	c.Flags().StringVar(&opts.historyPath, "history", "", "YAML loan history file (required)")
	c.Flags().StringVar(&opts.income, "income", "", "Monthly income (required)")
	c.Flags().StringVar(&opts.installments, "installments", "", "Current monthly installments (default: derived from active loans)")
	c.Flags().StringVar(&opts.limit, "limit", "", "Approved limit (default: derived from income)")
	c.Flags().StringVar(&opts.amount, "amount", "", "Requested loan amount (required)")
	c.Flags().StringVar(&opts.rate, "rate", "", "Requested annual interest rate in percent (required)")
	c.Flags().IntVar(&opts.tenure, "tenure", 0, "Tenure in months (required)")
	c.Flags().StringVar(&opts.asOf, "as-of", "", "Evaluation date YYYY-MM-DD (default: today)")
	c.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or yaml")

	for _, name := range []string{"history", "income", "amount", "rate", "tenure"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

func runEvaluate(w io.Writer, opts evaluateOptions) error {
	history, err := loadHistory(opts.historyPath)
	if err != nil {
		return err
	}

	income, err := parseDecimal("income", opts.income)
	if err != nil {
		return err
	}
	amount, err := parseDecimal("amount", opts.amount)
	if err != nil {
		return err
	}
	rate, err := parseDecimal("rate", opts.rate)
	if err != nil {
		return err
	}
	if !income.IsPositive() || !amount.IsPositive() || rate.IsNegative() {
		return fmt.Errorf("income and amount must be positive and rate must not be negative")
	}
	if opts.tenure < 1 || opts.tenure > 120 {
		return fmt.Errorf("tenure must be between 1 and 120 months")
	}

	profile := model.CustomerProfile{
		MonthlyIncome:       income,
		CurrentInstallments: activeInstallments(history),
		ActiveLoanTotal:     model.ActiveLoanTotal(history),
		ApprovedLimit:       model.ApprovedLimitFor(income),
	}
	if opts.installments != "" {
		if profile.CurrentInstallments, err = parseDecimal("installments", opts.installments); err != nil {
			return err
		}
	}
	if opts.limit != "" {
		if profile.ApprovedLimit, err = parseDecimal("limit", opts.limit); err != nil {
			return err
		}
	}

	now := time.Now
	if opts.asOf != "" {
		asOf, perr := time.Parse(dateLayout, opts.asOf)
		if perr != nil {
			return fmt.Errorf("as-of: %w", perr)
		}
		now = func() time.Time { return asOf }
	}

	calc := service.NewScoreCalculator(now)
	decision := service.NewEligibilityEvaluator(calc).Evaluate(profile, history, amount, rate, opts.tenure)
	breakdown := calc.Explain(history, profile.ActiveLoanTotal, profile.ApprovedLimit)

	report := evaluateReport{
		Approved:              decision.Approved,
		Reason:                decision.Reason,
		CreditScore:           decision.Score.String(),
		InterestRate:          decision.RequestedRate.String(),
		CorrectedInterestRate: decision.CorrectedRate.String(),
		MonthlyInstallment:    decision.MonthlyInstallment.StringFixed(2),
		Tenure:                decision.TenureMonths,
	}
	if !decision.Score.IsZero() {
		for _, f := range breakdown.Factors {
			report.Factors = append(report.Factors, reportFactor{
				Name:     f.Name,
				Raw:      f.Raw.String(),
				Weighted: f.Weighted.StringFixed(2),
			})
		}
	}

	switch strings.ToLower(opts.output) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		printReport(w, report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}

func printReport(w io.Writer, r evaluateReport) {
	verdict := "REJECTED"
	if r.Approved {
		verdict = "APPROVED"
	}
	fmt.Fprintf(w, "decision:            %s (%s)\n", verdict, r.Reason)
	fmt.Fprintf(w, "credit score:        %s\n", r.CreditScore)
	for _, f := range r.Factors {
		fmt.Fprintf(w, "  %-20s raw %-6s weighted %s\n", f.Name, f.Raw, f.Weighted)
	}
	fmt.Fprintf(w, "requested rate:      %s%%\n", r.InterestRate)
	fmt.Fprintf(w, "corrected rate:      %s%%\n", r.CorrectedInterestRate)
	fmt.Fprintf(w, "monthly installment: %s over %d months\n", r.MonthlyInstallment, r.Tenure)
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return d, nil
}

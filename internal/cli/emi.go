package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
)

func emiCmd() *cobra.Command {
	var amount, rate, start string
	var tenure int
	var schedule bool

	c := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly installment for a loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEMI(cmd.OutOrStdout(), amount, rate, tenure, start, schedule)
		},
	}

	c.Flags().StringVar(&amount, "amount", "", "Loan amount (required)")
	c.Flags().StringVar(&rate, "rate", "", "Annual interest rate in percent (required)")
	c.Flags().IntVar(&tenure, "tenure", 0, "Tenure in months (required)")
	c.Flags().BoolVar(&schedule, "schedule", false, "Print the full repayment schedule")
	c.Flags().StringVar(&start, "start", "", "Disbursement date YYYY-MM-DD for the schedule (default: today)")

	for _, name := range []string{"amount", "rate", "tenure"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

func runEMI(w io.Writer, rawAmount, rawRate string, tenure int, rawStart string, withSchedule bool) error {
	amount, err := parseDecimal("amount", rawAmount)
	if err != nil {
		return err
	}
	rate, err := parseDecimal("rate", rawRate)
	if err != nil {
		return err
	}
	if !amount.IsPositive() || rate.IsNegative() || tenure < 1 {
		return fmt.Errorf("amount and tenure must be positive and rate must not be negative")
	}

	fmt.Fprintf(w, "monthly installment: %s\n", model.MonthlyInstallment(amount, rate, tenure).StringFixed(2))
	if !withSchedule {
		return nil
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if rawStart != "" {
		if start, err = time.Parse(dateLayout, rawStart); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}

	fmt.Fprintf(w, "%-6s %-10s %12s %12s %12s %14s\n", "period", "due", "principal", "interest", "total", "balance")
	for _, e := range model.GenerateRepaymentSchedule(amount, rate, tenure, start) {
		fmt.Fprintf(w, "%-6d %-10s %12s %12s %12s %14s\n",
			e.Period, e.DueDate.Format(dateLayout),
			e.Principal.StringFixed(2), e.Interest.StringFixed(2),
			e.Total.StringFixed(2), e.RemainingBalance.StringFixed(2))
	}
	return nil
}

package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobinsights/internal/models"
)

const notAvailable = "Not Available"

// FormatAmount formats a salary amount with comma separators and a dollar sign
func FormatAmount(amount int) string {
	return fmt.Sprintf("$%s", humanize.Comma(int64(amount)))
}

// FormatSalary formats a salary column, keeping the source text when it is not numeric
func FormatSalary(s models.Salary) string {
	switch {
	case !s.Set || s.Raw == "":
		return notAvailable
	case !s.Valid:
		return s.Raw
	}
	return FormatAmount(s.Amount)
}

// FormatRange formats the min-max salary range of a job
func FormatRange(job models.Record) string {
	if !job.MinSalary.Valid && !job.MaxSalary.Valid {
		return notAvailable
	}
	return FormatSalary(job.MinSalary) + " - " + FormatSalary(job.MaxSalary)
}

// ColorizeSalary applies color formatting to a salary column
func ColorizeSalary(s models.Salary) string {
	formatted := FormatSalary(s)
	if !s.Valid {
		return pterm.Red(formatted)
	}

	switch {
	case s.Amount >= 150000:
		return pterm.Green(formatted)
	case s.Amount >= 100000:
		return pterm.LightGreen(formatted)
	case s.Amount >= 50000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}

package ui

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobinsights/internal/models"
)

var tableHeader = []string{"Job Title", "Company", "Location", "Job Type", "Industry", "Min Salary", "Max Salary"}

// TableData builds the rows of the job listing table, header first
func TableData(jobs []models.Record) pterm.TableData {
	data := pterm.TableData{tableHeader}
	for _, job := range jobs {
		data = append(data, []string{
			truncateString(job.JobTitle, 40),
			truncateString(job.Company, 24),
			location(job),
			job.JobType,
			job.Industry,
			ColorizeSalary(job.MinSalary),
			ColorizeSalary(job.MaxSalary),
		})
	}
	return data
}

// PrintTable renders jobs as a table followed by a count line
func PrintTable(w io.Writer, jobs []models.Record) error {
	err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithWriter(w).
		WithData(TableData(jobs)).
		Render()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nShowing %d jobs\n", len(jobs))
	return err
}

// jobJSON is the shape of a job in JSON output
type jobJSON struct {
	JobTitle    string            `json:"job_title"`
	Company     string            `json:"company"`
	State       string            `json:"state"`
	City        string            `json:"city"`
	JobType     string            `json:"job_type"`
	Industry    string            `json:"industry"`
	MinSalary   *int              `json:"min_salary"`
	MaxSalary   *int              `json:"max_salary"`
	SalaryRange string            `json:"salary_range"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes jobs as an indented JSON array. Non-numeric salaries are null.
func WriteJSON(w io.Writer, jobs []models.Record) error {
	out := make([]jobJSON, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, jobJSON{
			JobTitle:    job.JobTitle,
			Company:     job.Company,
			State:       job.State,
			City:        job.City,
			JobType:     job.JobType,
			Industry:    job.Industry,
			MinSalary:   amount(job.MinSalary),
			MaxSalary:   amount(job.MaxSalary),
			SalaryRange: FormatRange(job),
			Fields:      job.Fields,
		})
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func amount(s models.Salary) *int {
	if !s.Valid {
		return nil
	}
	v := s.Amount
	return &v
}

func location(job models.Record) string {
	parts := []string{}
	for _, p := range []string{job.City, job.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// truncateString truncates a string to the specified number of runes and adds "..." if necessary
func truncateString(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

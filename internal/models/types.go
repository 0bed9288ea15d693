package models

import (
	"strconv"
	"strings"
)

// Column names recognised in job listing sources
const (
	FieldJobTitle  = "job_title"
	FieldCompany   = "company"
	FieldState     = "state"
	FieldCity      = "city"
	FieldJobType   = "job_type"
	FieldIndustry  = "industry"
	FieldMinSalary = "min_salary"
	FieldMaxSalary = "max_salary"
)

// Salary holds one salary column of a job listing.
// Amount is only meaningful when Valid is true.
type Salary struct {
	Raw    string `json:"raw"`
	Amount int    `json:"amount"`
	Set    bool   `json:"set"`
	Valid  bool   `json:"valid"`
}

// Record represents a single job listing as read from a source
type Record struct {
	JobTitle  string            `json:"job_title"`
	Company   string            `json:"company"`
	State     string            `json:"state"`
	City      string            `json:"city"`
	JobType   string            `json:"job_type"`
	Industry  string            `json:"industry"`
	MinSalary Salary            `json:"min_salary"`
	MaxSalary Salary            `json:"max_salary"`
	Fields    map[string]string `json:"fields"`
}

// NewRecord converts the raw columns of a row into a Record.
// Salary columns are parsed here once; a column that is absent leaves Set false.
func NewRecord(fields map[string]string) Record {
	clean := make(map[string]string, len(fields))
	for k, v := range fields {
		clean[strings.TrimSpace(k)] = v
	}

	rec := Record{
		JobTitle: clean[FieldJobTitle],
		Company:  clean[FieldCompany],
		State:    clean[FieldState],
		City:     clean[FieldCity],
		JobType:  clean[FieldJobType],
		Industry: clean[FieldIndustry],
		Fields:   clean,
	}
	if raw, ok := clean[FieldMinSalary]; ok {
		rec.MinSalary = ParseSalary(raw)
	}
	if raw, ok := clean[FieldMaxSalary]; ok {
		rec.MaxSalary = ParseSalary(raw)
	}
	return rec
}

// ParseSalary parses a salary column that is present in the source
func ParseSalary(raw string) Salary {
	s := Salary{Raw: raw, Set: true}
	if !IsNumeric(raw) {
		return s
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// too large for int
		return s
	}
	s.Amount = n
	s.Valid = true
	return s
}

// IsNumeric reports whether s is a non-empty run of decimal digits
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

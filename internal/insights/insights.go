// Package insights answers questions about a collection of job listings:
// which job types and industries exist, which listings belong to one of them,
// and how salaries are distributed.
//
// Every function is a single pass over its input and never modifies the records
// it is given.
package insights

import (
	"context"
	"errors"

	"github.com/fr4nk3nst1ner/jobinsights/internal/models"
)

// Loader reads the job listings behind a source identifier.
type Loader interface {
	Load(ctx context.Context, source string) ([]models.Record, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, source string) ([]models.Record, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, source string) ([]models.Record, error) {
	return f(ctx, source)
}

// UniqueJobTypes returns every job type of the source once, in first-seen order.
func UniqueJobTypes(ctx context.Context, loader Loader, source string) ([]string, error) {
	jobs, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	jobTypes := []string{}
	for _, job := range jobs {
		if _, ok := seen[job.JobType]; ok {
			continue
		}
		seen[job.JobType] = struct{}{}
		jobTypes = append(jobTypes, job.JobType)
	}
	return jobTypes, nil
}

// FilterByJobType returns the jobs whose job type equals jobType exactly
func FilterByJobType(jobs []models.Record, jobType string) []models.Record {
	filtered := []models.Record{}
	for _, job := range jobs {
		if job.JobType == jobType {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

// UniqueIndustries returns every industry of the source once, in first-seen
// order. Jobs without an industry are ignored.
func UniqueIndustries(ctx context.Context, loader Loader, source string) ([]string, error) {
	jobs, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	industries := []string{}
	for _, job := range jobs {
		if job.Industry == "" {
			continue
		}
		if _, ok := seen[job.Industry]; ok {
			continue
		}
		seen[job.Industry] = struct{}{}
		industries = append(industries, job.Industry)
	}
	return industries, nil
}

// FilterByIndustry returns the jobs whose industry equals industry exactly
func FilterByIndustry(jobs []models.Record, industry string) []models.Record {
	filtered := []models.Record{}
	for _, job := range jobs {
		if job.Industry == industry {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

// MaxSalary returns the highest numeric max_salary of the source, or 0 when
// there is none. Non-numeric values are skipped.
func MaxSalary(ctx context.Context, loader Loader, source string) (int, error) {
	jobs, err := loader.Load(ctx, source)
	if err != nil {
		return 0, err
	}

	maxSalary := 0
	for _, job := range jobs {
		if job.MaxSalary.Valid && job.MaxSalary.Amount > maxSalary {
			maxSalary = job.MaxSalary.Amount
		}
	}
	return maxSalary, nil
}

// MinSalary returns the lowest numeric min_salary of the source.
//
// The search starts from MaxSalary of the same source, so a source without any
// numeric min_salary yields its MaxSalary rather than a sentinel.
func MinSalary(ctx context.Context, loader Loader, source string) (int, error) {
	minSalary, err := MaxSalary(ctx, loader, source)
	if err != nil {
		return 0, err
	}

	jobs, err := loader.Load(ctx, source)
	if err != nil {
		return 0, err
	}

	for _, job := range jobs {
		if job.MinSalary.Valid && job.MinSalary.Amount < minSalary {
			minSalary = job.MinSalary.Amount
		}
	}
	return minSalary, nil
}

// MatchesSalaryRange reports whether salary lies within the job's
// [min_salary, max_salary] range, bounds included.
//
// It returns a *RangeError (matching ErrInvalidRange) when either bound is
// absent or non-numeric, or when max_salary is lower than min_salary.
func MatchesSalaryRange(job models.Record, salary int) (bool, error) {
	if err := checkSalary(models.FieldMinSalary, job.MinSalary); err != nil {
		return false, err
	}
	if err := checkSalary(models.FieldMaxSalary, job.MaxSalary); err != nil {
		return false, err
	}
	if job.MaxSalary.Amount < job.MinSalary.Amount {
		return false, &RangeError{Reason: ReasonInverted}
	}
	return job.MinSalary.Amount <= salary && salary <= job.MaxSalary.Amount, nil
}

func checkSalary(field string, s models.Salary) error {
	if !s.Set {
		return &RangeError{Field: field, Reason: ReasonMissing}
	}
	if !s.Valid {
		return &RangeError{Field: field, Reason: ReasonNotInteger}
	}
	return nil
}

// FilterBySalaryRange returns the jobs whose salary range contains salary.
// Jobs with an invalid range never match; their error is not reported.
func FilterBySalaryRange(jobs []models.Record, salary int) []models.Record {
	filtered := []models.Record{}
	for _, job := range jobs {
		ok, err := MatchesSalaryRange(job, salary)
		if errors.Is(err, ErrInvalidRange) {
			continue
		}
		if ok {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

package insights

import "github.com/fr4nk3nst1ner/jobinsights/internal/models"

// Criteria selects job listings. Zero-valued fields select everything.
type Criteria struct {
	JobType  string
	Industry string
	Salary   *int
}

// Apply narrows jobs by job type, then industry, then salary range.
func Apply(jobs []models.Record, c Criteria) []models.Record {
	filtered := make([]models.Record, len(jobs))
	copy(filtered, jobs)
	if c.JobType != "" {
		filtered = FilterByJobType(filtered, c.JobType)
	}
	if c.Industry != "" {
		filtered = FilterByIndustry(filtered, c.Industry)
	}
	if c.Salary != nil {
		filtered = FilterBySalaryRange(filtered, *c.Salary)
	}
	return filtered
}

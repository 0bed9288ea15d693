package insights_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobinsights/internal/insights"
	"github.com/fr4nk3nst1ner/jobinsights/internal/models"
)

// staticLoader serves fixed record sets by source name and counts loads.
type staticLoader struct {
	sources map[string][]models.Record
	loads   int
}

func (l *staticLoader) Load(_ context.Context, source string) ([]models.Record, error) {
	l.loads++
	records, ok := l.sources[source]
	if !ok {
		return nil, errors.New("no such source: " + source)
	}
	return records, nil
}

func record(fields map[string]string) models.Record {
	return models.NewRecord(fields)
}

func exampleRecords() []models.Record {
	return []models.Record{
		record(map[string]string{"job_type": "A", "industry": "", "min_salary": "1000", "max_salary": "2000"}),
		record(map[string]string{"job_type": "B", "industry": "Tech", "min_salary": "3000", "max_salary": "4000"}),
	}
}

func TestEndToEnd_Example(t *testing.T) {
	ctx := context.Background()
	loader := &staticLoader{sources: map[string][]models.Record{"jobs.csv": exampleRecords()}}

	jobTypes, err := insights.UniqueJobTypes(ctx, loader, "jobs.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, jobTypes)

	industries, err := insights.UniqueIndustries(ctx, loader, "jobs.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech"}, industries)

	maxSalary, err := insights.MaxSalary(ctx, loader, "jobs.csv")
	require.NoError(t, err)
	assert.Equal(t, 4000, maxSalary)

	minSalary, err := insights.MinSalary(ctx, loader, "jobs.csv")
	require.NoError(t, err)
	assert.Equal(t, 1000, minSalary)
}

func TestUniqueJobTypes(t *testing.T) {
	ctx := context.Background()
	records := []models.Record{
		record(map[string]string{"job_type": "FULL_TIME"}),
		record(map[string]string{"job_type": "PART_TIME"}),
		record(map[string]string{"job_type": "FULL_TIME"}),
		record(map[string]string{"job_type": ""}),
		record(map[string]string{"job_type": "INTERN"}),
		record(map[string]string{"job_type": ""}),
	}
	loader := &staticLoader{sources: map[string][]models.Record{"src": records}}

	jobTypes, err := insights.UniqueJobTypes(ctx, loader, "src")

	require.NoError(t, err)
	assert.Equal(t, []string{"FULL_TIME", "PART_TIME", "", "INTERN"}, jobTypes)
}

func TestUniqueJobTypes_PropagatesLoadError(t *testing.T) {
	loader := &staticLoader{sources: map[string][]models.Record{}}

	jobTypes, err := insights.UniqueJobTypes(context.Background(), loader, "missing")

	assert.Error(t, err)
	assert.Nil(t, jobTypes)
}

func TestUniqueIndustries_SkipsEmpty(t *testing.T) {
	records := []models.Record{
		record(map[string]string{"industry": ""}),
		record(map[string]string{"industry": "Finance"}),
		record(map[string]string{"industry": ""}),
		record(map[string]string{"industry": "Tech"}),
		record(map[string]string{"industry": "Finance"}),
		record(map[string]string{"job_type": "no industry column"}),
	}
	loader := &staticLoader{sources: map[string][]models.Record{"src": records}}

	industries, err := insights.UniqueIndustries(context.Background(), loader, "src")

	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Tech"}, industries)
	assert.NotContains(t, industries, "")
}

func TestFilterByJobType(t *testing.T) {
	records := []models.Record{
		record(map[string]string{"job_type": "FULL_TIME", "job_title": "one"}),
		record(map[string]string{"job_type": "full_time", "job_title": "two"}),
		record(map[string]string{"job_type": "FULL_TIME", "job_title": "three"}),
	}

	t.Run("exact_match_preserves_order", func(t *testing.T) {
		filtered := insights.FilterByJobType(records, "FULL_TIME")
		require.Len(t, filtered, 2)
		assert.Equal(t, "one", filtered[0].JobTitle)
		assert.Equal(t, "three", filtered[1].JobTitle)
	})

	t.Run("absent_job_type_gives_empty_result", func(t *testing.T) {
		filtered := insights.FilterByJobType(records, "TEMPORARY")
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})

	t.Run("input_is_untouched", func(t *testing.T) {
		_ = insights.FilterByJobType(records, "FULL_TIME")
		assert.Len(t, records, 3)
		assert.Equal(t, "two", records[1].JobTitle)
	})
}

func TestFilterByIndustry(t *testing.T) {
	records := []models.Record{
		record(map[string]string{"industry": "Tech", "job_title": "one"}),
		record(map[string]string{"industry": "", "job_title": "two"}),
		record(map[string]string{"industry": "Tech", "job_title": "three"}),
	}

	filtered := insights.FilterByIndustry(records, "Tech")
	require.Len(t, filtered, 2)
	assert.Equal(t, "one", filtered[0].JobTitle)
	assert.Equal(t, "three", filtered[1].JobTitle)

	unspecified := insights.FilterByIndustry(records, "")
	require.Len(t, unspecified, 1)
	assert.Equal(t, "two", unspecified[0].JobTitle)

	assert.Empty(t, insights.FilterByIndustry(records, "tech"))
}

func TestMaxSalary(t *testing.T) {
	tests := []struct {
		name     string
		records  []models.Record
		expected int
	}{
		{
			name:     "empty_source",
			records:  []models.Record{},
			expected: 0,
		},
		{
			name: "all_non_numeric",
			records: []models.Record{
				record(map[string]string{"max_salary": "invalid"}),
				record(map[string]string{"max_salary": ""}),
				record(map[string]string{"job_type": "no salary"}),
			},
			expected: 0,
		},
		{
			name: "skips_non_numeric",
			records: []models.Record{
				record(map[string]string{"max_salary": "1500"}),
				record(map[string]string{"max_salary": "n/a"}),
				record(map[string]string{"max_salary": "9000"}),
				record(map[string]string{"max_salary": "-10000"}),
			},
			expected: 9000,
		},
		{
			name: "all_zero",
			records: []models.Record{
				record(map[string]string{"max_salary": "0"}),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &staticLoader{sources: map[string][]models.Record{"src": tt.records}}

			got, err := insights.MaxSalary(context.Background(), loader, "src")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMinSalary(t *testing.T) {
	t.Run("lowest_numeric_min_salary", func(t *testing.T) {
		records := []models.Record{
			record(map[string]string{"min_salary": "2500", "max_salary": "5000"}),
			record(map[string]string{"min_salary": "abc", "max_salary": "3000"}),
			record(map[string]string{"min_salary": "800", "max_salary": "1200"}),
		}
		loader := &staticLoader{sources: map[string][]models.Record{"src": records}}

		got, err := insights.MinSalary(context.Background(), loader, "src")

		require.NoError(t, err)
		assert.Equal(t, 800, got)
	})

	t.Run("no_numeric_min_salary_yields_max_salary", func(t *testing.T) {
		records := []models.Record{
			record(map[string]string{"min_salary": "", "max_salary": "7000"}),
			record(map[string]string{"min_salary": "n/a", "max_salary": "4000"}),
		}
		loader := &staticLoader{sources: map[string][]models.Record{"src": records}}

		minSalary, err := insights.MinSalary(context.Background(), loader, "src")
		require.NoError(t, err)
		maxSalary, err := insights.MaxSalary(context.Background(), loader, "src")
		require.NoError(t, err)

		assert.Equal(t, maxSalary, minSalary)
		assert.Equal(t, 7000, minSalary)
	})

	t.Run("min_above_max_seed_is_ignored", func(t *testing.T) {
		records := []models.Record{
			record(map[string]string{"min_salary": "5000", "max_salary": "n/a"}),
		}
		loader := &staticLoader{sources: map[string][]models.Record{"src": records}}

		got, err := insights.MinSalary(context.Background(), loader, "src")

		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("loads_source_twice", func(t *testing.T) {
		loader := &staticLoader{sources: map[string][]models.Record{"src": exampleRecords()}}

		_, err := insights.MinSalary(context.Background(), loader, "src")

		require.NoError(t, err)
		assert.Equal(t, 2, loader.loads)
	})
}

func TestMatchesSalaryRange(t *testing.T) {
	job := record(map[string]string{"min_salary": "1000", "max_salary": "2000"})

	tests := []struct {
		salary   int
		expected bool
	}{
		{salary: 1500, expected: true},
		{salary: 500, expected: false},
		{salary: 2000, expected: true},
		{salary: 1000, expected: true},
		{salary: 2001, expected: false},
		{salary: -1500, expected: false},
	}

	for _, tt := range tests {
		got, err := insights.MatchesSalaryRange(job, tt.salary)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "salary %d", tt.salary)
	}
}

func TestMatchesSalaryRange_InvalidRange(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		field  string
		reason string
	}{
		{
			name:   "inverted_range",
			fields: map[string]string{"min_salary": "2000", "max_salary": "1000"},
			reason: insights.ReasonInverted,
		},
		{
			name:   "missing_min_salary",
			fields: map[string]string{"max_salary": "1000"},
			field:  "min_salary",
			reason: insights.ReasonMissing,
		},
		{
			name:   "missing_max_salary",
			fields: map[string]string{"min_salary": "1000"},
			field:  "max_salary",
			reason: insights.ReasonMissing,
		},
		{
			name:   "non_numeric_min_salary",
			fields: map[string]string{"min_salary": "invalid", "max_salary": "1000"},
			field:  "min_salary",
			reason: insights.ReasonNotInteger,
		},
		{
			name:   "non_numeric_max_salary",
			fields: map[string]string{"min_salary": "1000", "max_salary": ""},
			field:  "max_salary",
			reason: insights.ReasonNotInteger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := insights.MatchesSalaryRange(record(tt.fields), 1500)

			assert.False(t, ok)
			require.ErrorIs(t, err, insights.ErrInvalidRange)

			var rangeErr *insights.RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.field, rangeErr.Field)
			assert.Equal(t, tt.reason, rangeErr.Reason)
			assert.Contains(t, err.Error(), "invalid salary range")
		})
	}
}

func TestFilterBySalaryRange(t *testing.T) {
	t.Run("malformed_record_is_excluded", func(t *testing.T) {
		records := []models.Record{
			record(map[string]string{"job_title": "good", "min_salary": "1000", "max_salary": "2000"}),
			record(map[string]string{"job_title": "bad", "min_salary": "1000"}),
		}

		filtered := insights.FilterBySalaryRange(records, 1500)

		require.Len(t, filtered, 1)
		assert.Equal(t, "good", filtered[0].JobTitle)
	})

	t.Run("mixed_collection", func(t *testing.T) {
		records := []models.Record{
			record(map[string]string{"job_title": "low", "min_salary": "100", "max_salary": "900"}),
			record(map[string]string{"job_title": "first", "min_salary": "0", "max_salary": "1500"}),
			record(map[string]string{"job_title": "inverted", "min_salary": "3000", "max_salary": "1000"}),
			record(map[string]string{"job_title": "text", "min_salary": "n/a", "max_salary": "n/a"}),
			record(map[string]string{"job_title": "second", "min_salary": "1500", "max_salary": "1500"}),
		}

		filtered := insights.FilterBySalaryRange(records, 1500)

		require.Len(t, filtered, 2)
		assert.Equal(t, "first", filtered[0].JobTitle)
		assert.Equal(t, "second", filtered[1].JobTitle)
	})

	t.Run("no_match_gives_empty_result", func(t *testing.T) {
		filtered := insights.FilterBySalaryRange(exampleRecords(), 10)
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})
}

func TestApply(t *testing.T) {
	records := []models.Record{
		record(map[string]string{"job_title": "1", "job_type": "FULL_TIME", "industry": "Tech", "min_salary": "1000", "max_salary": "3000"}),
		record(map[string]string{"job_title": "2", "job_type": "FULL_TIME", "industry": "Finance", "min_salary": "1000", "max_salary": "3000"}),
		record(map[string]string{"job_title": "3", "job_type": "PART_TIME", "industry": "Tech", "min_salary": "1000", "max_salary": "3000"}),
		record(map[string]string{"job_title": "4", "job_type": "FULL_TIME", "industry": "Tech", "min_salary": "5000", "max_salary": "6000"}),
	}
	salary := 2000

	titles := func(rs []models.Record) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.JobTitle)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, titles(insights.Apply(records, insights.Criteria{})))
	assert.Equal(t, []string{"1", "2", "4"}, titles(insights.Apply(records, insights.Criteria{JobType: "FULL_TIME"})))
	assert.Equal(t, []string{"1", "4"}, titles(insights.Apply(records, insights.Criteria{JobType: "FULL_TIME", Industry: "Tech"})))
	assert.Equal(t, []string{"1"}, titles(insights.Apply(records, insights.Criteria{JobType: "FULL_TIME", Industry: "Tech", Salary: &salary})))
}

func TestLoaderFunc(t *testing.T) {
	var got string
	loader := insights.LoaderFunc(func(_ context.Context, source string) ([]models.Record, error) {
		got = source
		return exampleRecords(), nil
	})

	maxSalary, err := insights.MaxSalary(context.Background(), loader, "somewhere")

	require.NoError(t, err)
	assert.Equal(t, "somewhere", got)
	assert.Equal(t, 4000, maxSalary)
}

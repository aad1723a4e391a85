package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"parenthetical annotation", "Jane Doe (Maternity)", "jane doe "},
		{"inner annotation", "Bob (temp) Smith", "bob smith"},
		{"extra whitespace", "  Alice   Jones ", "alice jones"},
		{"case folding", "MUHAMMAD OSAMA", "muhammad osama"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, NormalizeName(tt.a), NormalizeName(tt.b))
		})
	}
}

func TestNormalizeNameDistinct(t *testing.T) {
	assert.NotEqual(t, NormalizeName("Jane Doe"), NormalizeName("Jane Dole"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Muhammad Osama", TitleCase("muhammad osama"))
	assert.Equal(t, "Jane Doe", TitleCase("JANE DOE"))
	assert.Equal(t, "", TitleCase("   "))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "STARFLEET / Catalyst", CollapseSpaces("STARFLEET  / Catalyst"))
	assert.Equal(t, "a b", CollapseSpaces(" a\t b "))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan-25", MonthLabel(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dec-24", MonthLabel(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestAcademicYear(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC), "2025-26"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AcademicYear(tt.date), tt.date.String())
	}
}

func TestMonthIndex(t *testing.T) {
	// Epoch month is index 1.
	assert.Equal(t, 1, MonthIndex(time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, MonthIndex(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, MonthIndex(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthIndexMonotonic(t *testing.T) {
	prev := MonthIndex(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))
	for d := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC); d.Year() < 2027; d = d.AddDate(0, 1, 0) {
		idx := MonthIndex(d)
		assert.Greater(t, idx, prev, d.String())
		prev = idx
	}
}

func TestMonthFolderName(t *testing.T) {
	assert.Equal(t, "5. November 24", MonthFolderName(time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "7. January 25", MonthFolderName(time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)))
}

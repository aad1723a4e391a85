package match

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"CatalystPaySaas/api/constants"
	"CatalystPaySaas/internal/config"
)

var parenthetical = regexp.MustCompile(`\s*\(.*?\)`)

// NormalizeName reduces a display name to its comparison key: parenthetical
// annotations such as "(Maternity)" are stripped, whitespace is collapsed and
// the result is case-folded. Every name comparison in the pipeline goes
// through this, whether the name came from the ledger, the roster or the
// submission form.
func NormalizeName(raw string) string {
	cleaned := parenthetical.ReplaceAllString(raw, "")
	return strings.ToLower(strings.Join(strings.Fields(cleaned), " "))
}

// TitleCase returns the display form used for employee folder names,
// e.g. "muhammad osama" -> "Muhammad Osama".
func TitleCase(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// CollapseSpaces normalizes runs of whitespace to single spaces. Category
// marker cells are compared with this applied but case preserved.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MonthLabel formats a date as the Jan-25 style token that identifies a month
// column in the ledger. No numeric month or year is ever compared directly.
func MonthLabel(t time.Time) string {
	return t.Format(constants.MonthTokenFormat)
}

// AcademicYear computes the academic-year folder segment from a date using
// the August cutoff: Aug-Dec belong to "year-year+1", Jan-Jul to "year-1-year".
func AcademicYear(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.August {
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}

// MonthIndex returns the sequential month-folder index for a date, anchored to
// the epoch month (index 1). The sequence is strictly increasing as long as
// the epoch constants are never changed.
func MonthIndex(t time.Time) int {
	return (t.Year()-config.EpochYear)*12 + (int(t.Month()) - config.EpochMonth) + 1
}

// MonthFolderName builds the human-readable month folder segment,
// e.g. "7. January 25".
func MonthFolderName(t time.Time) string {
	return fmt.Sprintf("%d. %s %s", MonthIndex(t), t.Month().String(), t.Format("06"))
}

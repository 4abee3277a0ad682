package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chattolabs/chatto/internal/api"
)

// Free-text date shapes the form accepts besides full ISO:
// 250101, 25.01.01, 25/01/01, 25-01-01, 2025.01.01, 20250101.
var (
	shortDigits = regexp.MustCompile(`^\d{6}$`)
	longDigits  = regexp.MustCompile(`^\d{8}$`)
	shortSep    = regexp.MustCompile(`^(\d{2})[./-](\d{2})[./-](\d{2})$`)
	longSep     = regexp.MustCompile(`^(\d{4})[./-](\d{2})[./-](\d{2})$`)
)

// IsDateSentinel reports whether v is one of the two quick-button values
// ("처음부터" / "지금까지") that stand in for a concrete date.
func IsDateSentinel(v string) bool {
	return v == api.DateFromStart || v == api.DateUntilNow
}

// NormalizeDate converts free-text date input to ISO YYYY-MM-DD. Sentinel
// values and blanks pass through unchanged; two-digit years are taken as
// 20YY. Invalid shapes or impossible calendar dates return an error.
func NormalizeDate(input string) (string, error) {
	v := strings.TrimSpace(input)
	if v == "" || IsDateSentinel(v) {
		return v, nil
	}

	var iso string
	switch {
	case shortDigits.MatchString(v):
		iso = fmt.Sprintf("20%s-%s-%s", v[0:2], v[2:4], v[4:6])
	case longDigits.MatchString(v):
		iso = fmt.Sprintf("%s-%s-%s", v[0:4], v[4:6], v[6:8])
	case shortSep.MatchString(v):
		m := shortSep.FindStringSubmatch(v)
		iso = fmt.Sprintf("20%s-%s-%s", m[1], m[2], m[3])
	case longSep.MatchString(v):
		m := longSep.FindStringSubmatch(v)
		iso = fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	default:
		return "", fmt.Errorf("날짜 형식이 올바르지 않습니다: %q", input)
	}

	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return "", fmt.Errorf("존재하지 않는 날짜입니다: %q", input)
	}
	return iso, nil
}

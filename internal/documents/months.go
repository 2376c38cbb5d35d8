package documents

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// parseMonth accepts a Portuguese month name or a month number.
func parseMonth(s string) (time.Month, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	fold := cases.Fold()
	want := fold.String(s)
	for i, name := range monthNames {
		if fold.String(name) == want {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

var reference = regexp.MustCompile(`\b(0[1-9]|1[0-2])/(\d{4})\b`)

// referenceMonth finds a MM/YYYY billing reference in text.
func referenceMonth(text string) (time.Month, int, bool) {
	m := reference.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return time.Month(month), year, true
}

// Package scoring converts between "MM:SS" clock text and seconds and
// applies the shucking penalty formula to produce a final time.
package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Penalty weights in seconds per recorded occurrence.
const (
	WeightMissingOyster     = 20
	WeightNotPlacedProperly = 2
	WeightBrokenShell       = 1
	WeightGritBloodOther    = 3
	WeightCutOyster         = 3
	WeightNotSevered        = 3
)

// Issues is the per-attempt breakdown of shucking faults. The raw counts
// are retained for later analysis; scoring only uses their weighted sum.
type Issues struct {
	MissingOysters    int `json:"missingOysters"`
	NotPlacedProperly int `json:"notPlacedProperly"`
	BrokenShell       int `json:"brokenShell"`
	GritBloodOther    int `json:"gritBloodOther"`
	CutOysters        int `json:"cutOysters"`
	NotSevered        int `json:"notSevered"`
}

// PenaltySeconds returns the weighted sum of all issue counts.
func (i Issues) PenaltySeconds() int {
	return i.MissingOysters*WeightMissingOyster +
		i.NotPlacedProperly*WeightNotPlacedProperly +
		i.BrokenShell*WeightBrokenShell +
		i.GritBloodOther*WeightGritBloodOther +
		i.CutOysters*WeightCutOyster +
		i.NotSevered*WeightNotSevered
}

// Valid reports whether every issue count is non-negative.
func (i Issues) Valid() bool {
	return i.MissingOysters >= 0 &&
		i.NotPlacedProperly >= 0 &&
		i.BrokenShell >= 0 &&
		i.GritBloodOther >= 0 &&
		i.CutOysters >= 0 &&
		i.NotSevered >= 0
}

// FinalTime returns rawSeconds + penalties - bonusSeconds. There is no
// clamping: a bonus larger than raw plus penalties yields a negative time.
func FinalTime(rawSeconds, bonusSeconds int, issues Issues) int {
	return rawSeconds + issues.PenaltySeconds() - bonusSeconds
}

var clockRE = regexp.MustCompile(`^\d+:\d+$`)

// ParseClock converts "MM:SS" text to seconds. Both components are parsed
// as plain numbers: minutes have no upper bound and seconds are not checked
// against 0-59, so "05:99" converts arithmetically to 399.
func ParseClock(s string) (int, error) {
	if !clockRE.MatchString(s) {
		return 0, fmt.Errorf("invalid clock %q: want MM:SS", s)
	}
	mins, secs, _ := strings.Cut(s, ":")
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	sec, err := strconv.Atoi(secs)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return m*60 + sec, nil
}

// FormatClock renders seconds as "MM:SS" with both fields zero-padded to at
// least two digits; minutes grow past two digits rather than wrap. A
// negative input keeps its magnitude and gains a leading sign, so -90
// renders as "-01:30".
func FormatClock(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/60, seconds%60)
}

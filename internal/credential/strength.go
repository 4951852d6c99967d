// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

import "unicode/utf8"

// MaxStrengthScore is the highest score ScoreStrength can return.
const MaxStrengthScore = 6

// StrengthLabel buckets a strength score.
type StrengthLabel string

// Strength labels.
const (
	StrengthWeak   StrengthLabel = "Weak"
	StrengthMedium StrengthLabel = "Medium"
	StrengthStrong StrengthLabel = "Strong"
)

// Strength is a coarse password-strength hint.
type Strength struct {
	Score int           `json:"score"`
	Label StrengthLabel `json:"label"`
}

// Percent is the width of the strength bar, 0 to 100.
func (s Strength) Percent() float64 {
	return float64(s.Score) / MaxStrengthScore * 100
}

// LabelFor maps a score to its label: 0-2 Weak, 3-4 Medium, 5+ Strong.
func LabelFor(score int) StrengthLabel {
	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// ScoreStrength scores s with the default special-character set.
func ScoreStrength(s string) Strength {
	return defaultValidator.ScoreStrength(s)
}

// ScoreStrength adds one point for each of: at least 8 runes, at least 12
// runes, both upper and lower case, a digit, a special character, at least
// 16 runes. It does not look at the deny-list.
func (v *Validator) ScoreStrength(s string) Strength {
	n := utf8.RuneCountInString(s)
	classes := v.classify(s)

	score := 0
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}
	if classes.upper && classes.lower {
		score++
	}
	if classes.digit {
		score++
	}
	if classes.special {
		score++
	}
	if n >= 16 {
		score++
	}
	return Strength{Score: score, Label: LabelFor(score)}
}

// LocalizedLabel renders the label of s in the validator's locale.
func (v *Validator) LocalizedLabel(s Strength) string {
	switch s.Label {
	case StrengthStrong:
		return v.printer.Sprintf(keyStrengthStrong)
	case StrengthMedium:
		return v.printer.Sprintf(keyStrengthMedium)
	default:
		return v.printer.Sprintf(keyStrengthWeak)
	}
}

// AngelaMos | 2026
// normalize.go

package member

import (
	"strings"
	"unicode"
)

// NormalizePhone strips every non-digit character.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var genderAliases = map[string]Gender{
	"남":      GenderMale,
	"남자":     GenderMale,
	"male":   GenderMale,
	"m":      GenderMale,
	"여":      GenderFemale,
	"여자":     GenderFemale,
	"female": GenderFemale,
	"f":      GenderFemale,
}

// ParseGender accepts English and Korean spellings and abbreviations.
func ParseGender(raw string) (Gender, bool) {
	g, ok := genderAliases[strings.ToLower(strings.TrimSpace(raw))]
	return g, ok
}

var beltAliases = map[string]Belt{
	"흰띠":   BeltWhite,
	"그레이띠": BeltGrey,
	"오렌지띠": BeltOrange,
	"초록띠":  BeltGreen,
	"파란띠":  BeltBlue,
	"보라띠":  BeltPurple,
	"갈색띠":  BeltBrown,
	"검은띠":  BeltBlack,
}

// ParseBelt accepts the canonical belt names (any case) or the Korean
// labels used on the gym floor.
func ParseBelt(raw string) (Belt, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if b, ok := beltAliases[trimmed]; ok {
		return b, true
	}

	candidate := Belt(strings.ToUpper(trimmed))
	if candidate == "GRAY" {
		candidate = BeltGrey
	}
	if candidate.Rank() >= 0 {
		return candidate, true
	}

	return "", false
}

func ValidBeltDegree(n int) bool {
	return n >= MinBeltDegree && n <= MaxBeltDegree
}

// NormalizeText trims s and reports nil for blank input.
func NormalizeText(s string) *string {
	trimmed := strings.TrimFunc(s, unicode.IsSpace)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

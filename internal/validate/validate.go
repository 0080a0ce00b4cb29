// Package validate checks user and status field values before they reach the store.
//
// A value is normalized first (separators and a few symbols are dropped, see
// Normalize), then checked against the length ceiling of its kind and finally
// required to be non-empty and purely alphanumeric.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

type Kind string

const (
	KindUserID       Kind = "user_id"
	KindUserName     Kind = "user_name"
	KindUserLastName Kind = "user_last_name"
	KindEmail        Kind = "email"
	KindStatusID     Kind = "status_id"
	KindStatusText   Kind = "status_text"
)

// Length ceilings, measured in runes on the normalized value.
const (
	MaxUserIDLen       = 30
	MaxUserNameLen     = 30
	MaxUserLastNameLen = 100
)

var kinds = map[Kind]struct{}{
	KindUserID:       {},
	KindUserName:     {},
	KindUserLastName: {},
	KindEmail:        {},
	KindStatusID:     {},
	KindStatusText:   {},
}

// ParseKind accepts a kind name in any case, with surrounding whitespace.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := kinds[k]
	return k, ok
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

var dropSeparators = strings.NewReplacer(" ", "", "-", "", "_", "")

// Normalize applies the per-kind transform used before the length and
// alphanumeric checks.
func Normalize(value string, kind Kind) string {
	s := dropSeparators.Replace(strings.TrimSpace(value))
	switch kind {
	case KindUserID, KindStatusID:
		s = strings.ReplaceAll(s, ".", "")
	case KindEmail:
		if strings.Contains(s, "@") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, "@", "")
		}
	}
	return s
}

func maxLen(kind Kind) int {
	switch kind {
	case KindUserID:
		return MaxUserIDLen
	case KindUserName:
		return MaxUserNameLen
	case KindUserLastName:
		return MaxUserLastNameLen
	}
	return 0
}

// Field reports whether value is acceptable for kind. Unknown kinds are never valid.
func Field(value string, kind Kind) bool {
	if !kind.Valid() {
		return false
	}
	s := Normalize(value, kind)
	if limit := maxLen(kind); limit > 0 && utf8.RuneCountInString(s) > limit {
		zap.L().Error("length constraint violated",
			zap.String("kind", string(kind)),
			zap.Int("max", limit),
			zap.Int("len", utf8.RuneCountInString(s)),
		)
		return false
	}
	return isAlnum(s)
}

// Fields validates values[i] against kinds[i] and is true only when every
// position passes. Empty or mismatched slices are invalid.
func Fields(values []string, kinds []Kind) bool {
	if len(values) == 0 || len(values) != len(kinds) {
		return false
	}
	ok := true
	for i := range values {
		// keep going so every length violation gets logged
		if !Field(values[i], kinds[i]) {
			ok = false
		}
	}
	return ok
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

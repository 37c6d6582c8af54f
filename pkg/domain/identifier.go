package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// FallbackIdentifier is returned when a label yields no usable identifier.
const FallbackIdentifier = "UNNAMED"

// Fixed PlantUML aliases for the instrument-level system nodes.
const (
	AliasNewInstrument = "NewInstrument"
	AliasEndInstrument = "EndInstrument"
	AliasNewTopicIn    = "NewTopicIn"
	AliasNewTopicOut   = "NewTopicOut"
)

// reservedIdentifiers are names the emitter claims for itself. Deriving one of
// them from a user label is a naming collision the validator reports.
var reservedIdentifiers = map[string]bool{
	"NEWINSTRUMENT": true,
	"ENDINSTRUMENT": true,
	"NEWTOPICIN":    true,
	"NEWTOPICOUT":   true,
	"ENDTOPIC":      true,
	"START":         true,
	"END":           true,
}

// IsReservedIdentifier reports whether the identifier collides with a name the
// emitter uses for system aliases. The check is case-insensitive because
// LabelToIdentifier upper-cases its output.
func IsReservedIdentifier(ident string) bool {
	return reservedIdentifiers[strings.ToUpper(ident)]
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s is a bare naming-convention-safe identifier
// (letters, digits, underscores, no leading digit).
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// LabelToIdentifier converts a free-text label into a collision-resistant,
// naming-convention-safe identifier:
//
//  1. trim surrounding whitespace,
//  2. strip every rune that is not a letter, digit, underscore or whitespace,
//  3. collapse internal whitespace runs to single underscores,
//  4. prefix with an underscore if the result starts with a digit,
//  5. upper-case.
//
// Labels that reduce to nothing return FallbackIdentifier. The mapping is not
// injective; the validator surfaces collisions between distinct labels.
func LabelToIdentifier(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return FallbackIdentifier
	}

	var b strings.Builder
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	ident := strings.Join(strings.Fields(b.String()), "_")
	if ident == "" {
		return FallbackIdentifier
	}
	if r := rune(ident[0]); r >= '0' && r <= '9' {
		ident = "_" + ident
	}
	return strings.ToUpper(ident)
}

package source

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// School type labels used by the overall dataset.
const (
	TypePrivate          = "Private"
	TypePublicInState    = "Public In-State"
	TypePublicOutOfState = "Public Out-of-State"
)

// typeAliases maps lower-cased, whitespace-collapsed spellings to canonical labels.
var typeAliases = map[string]string{
	"private":             TypePrivate,
	"public in-state":     TypePublicInState,
	"public instate":      TypePublicInState,
	"public in state":     TypePublicInState,
	"public out-of-state": TypePublicOutOfState,
	"public outofstate":   TypePublicOutOfState,
	"public out of state": TypePublicOutOfState,
}

// NormalizeType canonicalises a school type label. Known spellings map to
// the fixed label set; anything else is returned title-cased so lookups
// against it fail predictably.
func NormalizeType(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if canon, ok := typeAliases[strings.ToLower(collapsed)]; ok {
		return canon
	}
	return cases.Title(language.English).String(collapsed)
}

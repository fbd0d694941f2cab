package territory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Census-style suffixes that external geometry names carry but territory
// checks do not ("Travis County", "Huntington town", "Juneau borough").
var geoNameSuffixes = []string{
	" county",
	" city",
	" town",
	" village",
	" cdp",
	" borough",
}

// foldName produces the canonical join key for a county or city name:
// lowercased, trimmed, with a trailing Census place-type suffix removed.
// Matching between dataset names and geometry names always goes through this.
func foldName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, suf := range geoNameSuffixes {
		if strings.HasSuffix(n, suf) && len(n) > len(suf) {
			n = strings.TrimSpace(n[:len(n)-len(suf)])
			break
		}
	}
	return n
}

// numericOnly reports whether a name is all digits. Numeric-only "city" names
// are artifacts of bad source rows, not places, and must never be merged with
// real geometry.
func numericOnly(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var titleCaser = cases.Title(language.AmericanEnglish)

// displayName cleans up shouting legacy names ("MIAMI BEACH") for display.
// Mixed-case names pass through untouched so "McAllen" stays "McAllen".
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == strings.ToUpper(name) && len(name) > 3 {
		return titleCaser.String(strings.ToLower(name))
	}
	return name
}

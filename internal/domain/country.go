package domain

import (
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/biter777/countries"
)

// countryAliases covers upstream spellings the reference table does not
// know. The CSSE feed in particular drifted between naming conventions
// across snapshots.
var countryAliases = map[string]string{
	"mainland china":                 "CN",
	"hong kong sar":                  "HK",
	"macao sar":                      "MO",
	"taiwan*":                        "TW",
	"us":                             "US",
	"uk":                             "GB",
	"south korea":                    "KR",
	"korea, south":                   "KR",
	"republic of korea":              "KR",
	"iran (islamic republic of)":     "IR",
	"russian federation":             "RU",
	"viet nam":                       "VN",
	"czechia":                        "CZ",
	"republic of moldova":            "MD",
	"st. martin":                     "MF",
	"holy see":                       "VA",
	"occupied palestinian territory": "PS",
	"congo (kinshasa)":               "CD",
	"congo (brazzaville)":            "CG",
	"cote d'ivoire":                  "CI",
	"others":                         "",
	"cruise ship":                    "",
}

// fuzzyThreshold is the minimum Jaro-Winkler similarity accepted when no
// exact or alias lookup matches. High enough that "Thailand" never lands on
// a neighbor, low enough to absorb punctuation and suffix drift.
const fuzzyThreshold = 0.93

// ResolveCountry resolves a free-text country name to its ISO alpha-2 code,
// best-effort. The primary candidate wins whenever it is a recognized
// country name; otherwise the fallback candidate is tried (some sources put
// the province first and the country second). An empty result is a
// legitimate state, not an error; callers must represent it as an absent
// code.
func ResolveCountry(primary, fallback string) string {
	if code := resolveName(primary); code != "" {
		return code
	}
	return resolveName(fallback)
}

func resolveName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if code, ok := countryAliases[strings.ToLower(name)]; ok {
		return code
	}
	if c := countries.ByName(name); c != countries.Unknown {
		return c.Alpha2()
	}
	return fuzzyMatch(name)
}

// fuzzyMatch ranks the full reference table by Jaro-Winkler similarity and
// returns the best candidate above the acceptance threshold.
func fuzzyMatch(name string) string {
	lowered := strings.ToLower(name)
	best := ""
	bestScore := fuzzyThreshold
	for _, c := range countries.All() {
		score := matchr.JaroWinkler(lowered, strings.ToLower(c.String()), false)
		if score >= bestScore {
			best = c.Alpha2()
			bestScore = score
		}
	}
	return best
}

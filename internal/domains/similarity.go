package domains

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// indelParams prices a substitution as a deletion plus an insertion, so
// Distance returns the indel distance used by ratio.
var indelParams = levenshtein.NewParams().SubCost(2)

// Ratio returns the normalized indel similarity of a and b in [0,100].
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	d := levenshtein.Distance(a, b, indelParams)
	return 100 * float64(total-d) / float64(total)
}

// PartialRatio scores how well the shorter string fits inside the longer one,
// in [0,100]. The shorter string is compared against every same-length window
// of the longer string, plus the partial windows hanging off either end, and
// the best window wins. A prefix or substring match therefore scores 100.
// Strings of equal length are scanned both ways, so the score does not depend
// on argument order.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	best := bestWindow(short, long)
	if len(short) == len(long) && best < 100 {
		if swapped := bestWindow(long, short); swapped > best {
			best = swapped
		}
	}
	return best
}

// bestWindow slides short over long and returns the best window ratio.
// len(short) must not exceed len(long).
func bestWindow(short, long []rune) float64 {
	s := string(short)
	n, m := len(short), len(long)
	best := 0.0
	score := func(window []rune) bool {
		if r := Ratio(s, string(window)); r > best {
			best = r
		}
		return best == 100
	}

	for i := 0; i+n <= m; i++ {
		if score(long[i : i+n]) {
			return best
		}
	}
	for k := 1; k < n && k <= m; k++ {
		if score(long[:k]) || score(long[m-k:]) {
			return best
		}
	}
	return best
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanName folds accents, lower-cases, and keeps only [a-z0-9]
// ("Foncia Île-de-France" -> "fonciailedefrance").
func CleanName(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Package slug builds URL-safe identifiers from Russian display names.
package slug

import (
	"regexp"
	"strings"
)

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

var (
	reSeparators = regexp.MustCompile(`[\s_]+`)
	reInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	reHyphens    = regexp.MustCompile(`-+`)
	reValid      = regexp.MustCompile(`^[a-z0-9-]{1,255}$`)
)

// Generate transliterates text and normalises it into a slug. Unknown
// characters pass through transliteration and are then stripped unless they
// are ASCII letters, digits or hyphens. An empty result means generation
// failed and the caller must pick a fallback such as "<kind>-<unixmillis>".
func Generate(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	// Case is folded first so the table only needs lowercase letters.
	for _, r := range strings.ToLower(text) {
		if lat, ok := translit[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}
	s := strings.TrimSpace(b.String())
	s = reSeparators.ReplaceAllString(s, "-")
	s = reInvalid.ReplaceAllString(s, "")
	s = reHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Validate reports whether s is an acceptable slug: 1 to 255 characters of
// [a-z0-9-] without a leading or trailing hyphen.
func Validate(s string) bool {
	if !reValid.MatchString(s) {
		return false
	}
	return !strings.HasPrefix(s, "-") && !strings.HasSuffix(s, "-")
}

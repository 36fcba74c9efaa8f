package repair

import (
	"regexp"
	"strings"
)

var urlHashSuffixRe = regexp.MustCompile(`%20[0-9a-f]{32}`)

// Substitutions applied to a lower-cased URL part, in order.
var urlPartSubstitutions = []struct{ old, new string }{
	{"%20", " "},
	{"e%a6%fc", "e"},
	{"e%cc%81", "e"},
	{"%c3%a9", "e"},
	{"%c3%a7", "c"},
	{"%e2%80%99", "_"},
	{"&", "et"},
	{",", "_"},
}

// URLPart turns one URL or URL path segment into a slug. The result is stable:
// URLPart(URLPart(s)) == URLPart(s) for every s.
func URLPart(part string) string {
	// Removing a hash or a substitution can expose a new match, so clean until
	// nothing changes.
	for {
		next := cleanURLPart(part)
		if next == part {
			break
		}
		part = next
	}

	words := strings.Split(part, " ")
	kept := words[:0]
	for _, w := range words {
		if w == "" || w == "-" {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, "-")
}

func cleanURLPart(part string) string {
	part = urlHashSuffixRe.ReplaceAllString(part, "")
	part = asciiLower(part)
	for _, s := range urlPartSubstitutions {
		part = strings.ReplaceAll(part, s.old, s.new)
	}
	return part
}

// asciiLower lower-cases ASCII letters only; other bytes are kept as they are.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

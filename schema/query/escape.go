package query

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// LikeEscape is the escape character of like patterns.
const LikeEscape = '\\'

var (
	escapedPairs = strings.NewReplacer(`\\`, "\x00b", `\%`, "\x00p", `\,`, "\x00c", `\'`, "\x00q")
	bareChars    = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `,`, `\,`, `'`, `\'`)
	restorePairs = strings.NewReplacer("\x00b", `\\`, "\x00p", `\%`, "\x00c", `\,`, "\x00q", `\'`)
)

// EscapeLike escapes the special characters of a like pattern so only a
// leading and a trailing % act as wildcards. Characters already escaped with a
// backslash are kept as is, making the function idempotent.
func EscapeLike(pattern string) string {
	var prefix, suffix string
	if strings.HasPrefix(pattern, "%") {
		prefix, pattern = "%", pattern[1:]
	}
	if strings.HasSuffix(pattern, "%") && trailingBackslashes(pattern[:len(pattern)-1])%2 == 0 {
		suffix, pattern = "%", pattern[:len(pattern)-1]
	}
	pattern = escapedPairs.Replace(pattern)
	pattern = bareChars.Replace(pattern)
	pattern = restorePairs.Replace(pattern)
	return prefix + pattern + suffix
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// likeCacheSize bounds the number of compiled like patterns kept around.
// Patterns come from requests, older ones are evicted first.
const likeCacheSize = 256

var likeCache = newLikeCache(likeCacheSize)

func newLikeCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// likeRegexp compiles a like pattern into a regexp: % matches any run of
// characters, _ a single one and the escape character makes the next one
// literal. Case folding is limited to ASCII letters, as SQLite does.
func likeRegexp(pattern string) *regexp.Regexp {
	if re, found := likeCache.Get(pattern); found {
		return re.(*regexp.Regexp)
	}
	var b strings.Builder
	b.WriteString(`(?s)^`)
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '%':
			b.WriteString(`.*`)
		case '_':
			b.WriteString(`.`)
		case LikeEscape:
			if i+1 < len(runes) {
				i++
				writeLikeLiteral(&b, runes[i])
			}
		default:
			writeLikeLiteral(&b, c)
		}
	}
	b.WriteString(`$`)
	re := regexp.MustCompile(b.String())
	likeCache.Add(pattern, re)
	return re
}

func writeLikeLiteral(b *strings.Builder, c rune) {
	switch {
	case c >= 'a' && c <= 'z':
		b.WriteString("[" + string(c) + string(c-'a'+'A') + "]")
	case c >= 'A' && c <= 'Z':
		b.WriteString("[" + string(c-'A'+'a') + string(c) + "]")
	default:
		b.WriteString(regexp.QuoteMeta(string(c)))
	}
}

// MatchLike returns true if s matches the like pattern.
func MatchLike(pattern, s string) bool {
	return likeRegexp(pattern).MatchString(s)
}

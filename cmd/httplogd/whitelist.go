package main

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// compileWhitePatterns parses a semicolon-separated list of regular
// expressions into the compiled white pattern set. Matching is anchored:
// a path is whitelisted only when a pattern matches it in full, not as a
// substring. A pattern that fails to compile is logged and dropped so one
// bad entry never disables the rest of the list.
func compileWhitePatterns(raw string) []*regexp.Regexp {
	if raw == "" {
		return nil
	}
	var compiled []*regexp.Regexp
	for _, p := range strings.Split(raw, ";") {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`\A(?:` + p + `)\z`)
		if err != nil {
			log.Error().Err(err).Str("pattern", p).Msg("error compiling white pattern")
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

// pathInWhitelist reports whether the request path fully matches any
// configured white pattern. The compiled set is assigned once in
// initializeServer and never mutated, so concurrent calls need no locking.
func pathInWhitelist(path string) bool {
	for _, re := range whitePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

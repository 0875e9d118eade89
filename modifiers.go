package hxbind

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	modifierRegexp = regexp.MustCompile(`^([A-Za-z0-9_-]+)(?:\((.*)\))?$`)
	numberRegexp   = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)$`)
)

// ParseModifiers parses a "#name(args)#other" chain.
//
// Empty tokens are skipped, so a leading "#" or "##" is harmless. Tokens
// that are not a valid name with an optional argument group are dropped.
// Arguments are split on commas, trimmed and coerced: numbers become
// float64, true/false (any case) become bool, quoted strings are unquoted
// and everything else stays a raw string.
//
//	ParseModifiers("#debounce(300,100)#prevent")
//	// [{debounce [300 100]} {prevent []}]
func ParseModifiers(input string) []Modifier {
	var mods []Modifier
	for _, token := range strings.Split(input, "#") {
		if token == "" {
			continue
		}
		m := modifierRegexp.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		mods = append(mods, Modifier{Name: m[1], Args: parseArgs(m[2])})
	}
	return mods
}

// parseModifierMap folds a modifier chain into a map; later duplicates win.
func parseModifierMap(input string) ModifierMap {
	var mm ModifierMap
	for _, mod := range ParseModifiers(input) {
		mm.Set(mod.Name, mod.Args)
	}
	return mm
}

func parseArgs(group string) []any {
	args := []any{}
	if strings.TrimSpace(group) == "" {
		return args
	}
	for _, raw := range strings.Split(group, ",") {
		args = append(args, coerceArg(strings.TrimSpace(raw)))
	}
	return args
}

func coerceArg(s string) any {
	if numberRegexp.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

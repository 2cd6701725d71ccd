package search

import (
	"strings"
	"unicode"
)

// Arg is a key:value pair taken from a command line or query.
type Arg struct {
	Key   string // lower-cased, e.g. "name", "position"
	Value string // quotes removed, e.g. "Juan Pérez"
}

// Query is a parsed command line: key:value arguments plus the remaining
// bare words, both in input order.
type Query struct {
	Args  []Arg
	Words []string
}

// Parse splits input into key:value arguments and bare words.
// It handles:
// - quoted strings, single or double (name:"Juan Pérez", 'free text')
// - key:value pairs, split on the first colon
// - tokens with an empty key or value ("foo:", ":bar") kept as words
// - a value with an unquoted colon (clock:12:00) kept as a word
func Parse(input string) Query {
	q := Query{
		Args:  make([]Arg, 0),
		Words: make([]string, 0),
	}

	for _, token := range tokenize(input) {
		key, val, found := strings.Cut(token, ":")
		if !found || isQuoted(key) {
			q.Words = append(q.Words, removeQuotes(token))
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		if key == "" || val == "" {
			q.Words = append(q.Words, token)
			continue
		}
		if strings.Contains(val, ":") && !isQuoted(val) {
			q.Words = append(q.Words, token)
			continue
		}
		q.Args = append(q.Args, Arg{Key: key, Value: removeQuotes(val)})
	}
	return q
}

// Get returns the last value given for key.
func (q Query) Get(key string) (string, bool) {
	key = strings.ToLower(key)
	for i := len(q.Args) - 1; i >= 0; i-- {
		if q.Args[i].Key == key {
			return q.Args[i].Value, true
		}
	}
	return "", false
}

// Word returns the i-th bare word, or "" past the end.
func (q Query) Word(i int) string {
	if i < 0 || i >= len(q.Words) {
		return ""
	}
	return q.Words[i]
}

// Text joins the bare words from index i on.
func (q Query) Text(i int) string {
	if i >= len(q.Words) {
		return ""
	}
	return strings.Join(q.Words[i:], " ")
}

// tokenize splits the string by spaces, respecting quotes.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	quote := rune(0)

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		case r == '"' || r == '\'':
			quote = r
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isQuoted(s string) bool {
	return strings.HasPrefix(s, "\"") || strings.HasPrefix(s, "'")
}

func removeQuotes(s string) string {
	if len(s) >= 2 {
		first := s[0]
		last := s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

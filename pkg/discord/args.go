package discord

import (
	"strings"
	"unicode"
)

func isQuote(r rune) bool {
	return r == '"' || r == '“' || r == '”'
}

// SplitArgs splits a command line on whitespace. Text between double quotes
// (straight or curly) stays a single argument; an unterminated quote runs to the end.
func SplitArgs(s string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	flush := func() {
		if pending {
			args = append(args, cur.String())
			cur.Reset()
			pending = false
		}
	}
	for _, r := range s {
		switch {
		case isQuote(r):
			if quoted {
				quoted = false
				flush()
			} else {
				flush()
				quoted = true
				pending = true
			}
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	flush()
	return args
}

// ParseUserMention returns the user id of <@id>, <@!id> or a bare id.
func ParseUserMention(s string) (string, bool) {
	id := s
	if strings.HasPrefix(s, "<@") && strings.HasSuffix(s, ">") {
		id = strings.TrimPrefix(strings.TrimSuffix(strings.TrimPrefix(s, "<@"), ">"), "!")
	}
	if id == "" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}

func Mention(userID string) string {
	return "<@" + userID + ">"
}

package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultTitles is the honorific set stripped from the front of a free-text
// defendant name before splitting.
var defaultTitles = []string{"MR", "MR.", "MRS", "MRS.", "MS", "MS.", "MISS", "DR", "DR.", "MASTER", "REV", "REV."}

// Name is the normalized forename/surname pair submitted to offender search.
type Name struct {
	Forename string
	Surname  string
}

// FullName joins the parts for display; either side may be empty.
func (n Name) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(n.Forename) + " " + n.Surname)
}

// SplitName normalizes a free-text defendant name. A leading title token from
// the configured set is stripped; every token before the first fully-uppercase
// token is forename, the first fully-uppercase token and everything after it
// is surname. A name with no fully-uppercase token is all forename.
func SplitName(fullName string, titles []string) Name {
	if titles == nil {
		titles = defaultTitles
	}
	tokens := strings.Fields(strings.TrimSpace(fullName))
	if len(tokens) == 0 {
		return Name{}
	}

	if isTitle(tokens[0], titles) {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return Name{}
	}

	split := len(tokens)
	for i, tok := range tokens {
		if isAllUpper(tok) {
			split = i
			break
		}
	}

	return Name{
		Forename: titleCase(strings.Join(tokens[:split], " ")),
		Surname:  strings.Join(tokens[split:], " "),
	}
}

func isTitle(token string, titles []string) bool {
	upper := strings.ToUpper(token)
	for _, t := range titles {
		if upper == t {
			return true
		}
	}
	return false
}

// isAllUpper reports whether every letter in the token is uppercase. Tokens
// with no letters at all do not qualify.
func isAllUpper(token string) bool {
	hasLetter := false
	for _, r := range token {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// titleCase normalizes forenames to Title Case so search input is consistent
// regardless of feed casing. The first rune is uppercased, not the first byte;
// forenames are not ASCII-only.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

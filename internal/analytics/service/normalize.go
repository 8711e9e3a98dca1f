package service

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// хвост-описание: "Plastic Bottle (made of PET)" → "plastic bottle"
const descriptionMarker = "made of"

// what may dangle before the marker once the clause is cut off
const clauseOpeners = " \t([{-–,;:/"

// Canonicalize turns a raw material name into the key used for deduplication:
// trimmed, lowercased, cut before "made of" (with any bracket or separator
// left dangling), then title-cased token by token.
// Runs of whitespace inside the name collapse to one space. Empty input yields "".
func Canonicalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if i := strings.Index(s, descriptionMarker); i >= 0 {
		s = strings.TrimRight(s[:i], clauseOpeners)
	}
	return titleTokens(s)
}

// titleTokens capitalizes the first letter of each whitespace-delimited token.
// Input must already be lower-case.
func titleTokens(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	caser := cases.Title(language.English)
	for i, f := range fields {
		_, size := utf8.DecodeRuneInString(f)
		caser.Reset()
		fields[i] = caser.String(f[:size]) + f[size:]
	}
	return strings.Join(fields, " ")
}

// comparable form for scoring: lower-case, single spaces
func foldForCompare(s string) string {
	return collapseSpaces(strings.ToLower(s))
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

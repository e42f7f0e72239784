package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DisplayLabel returns the field's label, falling back to a humanised form of
// the last key segment ("companyName" becomes "Company Name").
func DisplayLabel(leaf Leaf) string {
	if label := strings.TrimSpace(leaf.Field.Label); label != "" {
		return label
	}
	return Humanize(LastSegment(leaf.Key))
}

// Humanize splits a field name on underscores, dashes and camelCase
// boundaries and title-cases the words.
func Humanize(name string) string {
	var words []string
	for _, chunk := range splitWordsPattern.Split(name, -1) {
		for _, word := range splitCamel(chunk) {
			words = append(words, titleCase(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	if input == "" {
		return nil
	}
	var (
		words []string
		start int
	)
	for i := 1; i < len(input); i++ {
		prev, cur := input[i-1], input[i]
		if (isLower(prev) && isUpper(cur)) || (isLetter(prev) && isDigit(cur)) || (isDigit(prev) && isLetter(cur)) {
			words = append(words, input[start:i])
			start = i
		}
	}
	return append(words, input[start:])
}

func isUpper(b byte) bool  { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool  { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return isUpper(b) || isLower(b) }

func titleCase(word string) string {
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

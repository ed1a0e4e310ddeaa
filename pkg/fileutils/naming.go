package fileutils

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeSlug normalizes a filename stem into the slug form: lowercase,
// every rune that is not alphanumeric, '-', or '_' replaced with '-', and
// leading/trailing '-' trimmed. Consecutive punctuation is intentionally not
// collapsed, so the mapping stays deterministic for a given stem.
func SanitizeSlug(stem string) string {
	lowered := strings.ToLower(stem)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, lowered)
	return strings.Trim(mapped, "-")
}

// TextbookSlug derives the stable identifier for a virtual textbook. It only
// changes when the directory id or the filename changes; notes and tags
// keyed to a renamed file are silently orphaned.
func TextbookSlug(dirID int, stem string) string {
	return fmt.Sprintf("%d_%s", dirID, SanitizeSlug(stem))
}

// TitleFromStem turns a filename stem into a display title: '-' and '_'
// become spaces, and each whitespace-separated word gets its first rune
// upcased. "intro_to-algebra" becomes "Intro To Algebra".
func TitleFromStem(stem string) string {
	spaced := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, stem)

	words := strings.Fields(spaced)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// IsPDF reports whether the filename has a .pdf extension, matched
// case-insensitively.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// EnsurePDFExt appends a .pdf extension unless the name already ends with
// one (any case).
func EnsurePDFExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}

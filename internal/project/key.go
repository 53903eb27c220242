package project

import (
	"strings"
)

// FallbackKey is used when a window title yields no usable project name.
const FallbackKey = "Unnamed_Project"

const maxKeyLen = 50

// Dash-like glyphs that commonly separate a document name from the
// application name in window titles ("Design A - Blender 4.5").
var separators = []rune{'-', '\u2013', '\u2014'}

// Key derives a stable, filesystem-safe project key from a raw window title.
//
// The same title always yields the same key; the key names the project's
// on-disk log file, so every character illegal in filenames is replaced.
// Transient decorations (unsaved-change markers, bracketed paths) are
// stripped first so that "* Design [C:\work] - Blender" and
// "Design - Blender" group under the same project.
func Key(title string) string {
	cleaned := stripBrackets(title)

	name := cleaned
	if i := indexSeparator(cleaned); i >= 0 {
		name = cleaned[:i]
	} else if len([]rune(name)) > maxKeyLen {
		name = string([]rune(name)[:maxKeyLen])
	}

	name = strings.TrimLeft(name, "* ")
	name = strings.TrimSpace(name)
	name = sanitizeFilename(name)

	if len([]rune(name)) < 2 {
		return FallbackKey
	}
	return name
}

// stripBrackets removes any [...] substrings. Editors and CAD tools put the
// open file's path there; it is not part of the project identity.
func stripBrackets(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func indexSeparator(s string) int {
	for i, r := range s {
		for _, sep := range separators {
			if r == sep {
				return i
			}
		}
	}
	return -1
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, s)
}

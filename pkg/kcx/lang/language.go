// Package lang resolves the programming language shown in a tutorial, either
// from a cheap text hint (the video title) or from a black-box model.
package lang

import "strings"

// Language is the closed set of languages the parsers understand.
// The zero value means the language is not resolved.
type Language uint8

const (
	Unknown Language = iota
	C
	Cpp
	Java
	Python
)

var languageNames = [...]string{
	Unknown: "Unknown",
	C:       "C",
	Cpp:     "Cpp",
	Java:    "Java",
	Python:  "Python",
}

func (l Language) String() string {
	if int(l) < len(languageNames) {
		return languageNames[l]
	}
	return languageNames[Unknown]
}

// Tag is the lower-case form used in exported results ("cpp", "python").
// Unresolved languages export as the empty string.
func (l Language) Tag() string {
	if l == Unknown {
		return ""
	}
	return strings.ToLower(l.String())
}

// Parse maps a tag or name back to a Language, case-insensitively.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c":
		return C, true
	case "cpp", "c++":
		return Cpp, true
	case "java":
		return Java, true
	case "python", "py":
		return Python, true
	}
	return Unknown, false
}

// ClassifyByHint matches well-known language names inside a free-text hint
// such as a video title. The checks run in a fixed order because "cpp"
// contains "c" and "javascript" contains "java".
func ClassifyByHint(hint string) (Language, bool) {
	text := strings.ToLower(hint)

	switch {
	case strings.Contains(text, "c++") || strings.Contains(text, "cpp"):
		return Cpp, true
	case strings.Contains(text, "java"):
		return Java, true
	case strings.Contains(text, "python"):
		return Python, true
	case strings.Contains(text, "c "):
		return C, true
	}
	return Unknown, false
}

// Model labels returned by the external classifier.
const (
	LabelCCpp   = "c_cpp"
	LabelJava   = "java"
	LabelPython = "python"
)

// LanguageFromLabel converts a model label into a Language. Anything other
// than the three known labels is unresolved.
func LanguageFromLabel(label string) (Language, bool) {
	switch strings.TrimSpace(label) {
	case LabelCCpp:
		return Cpp, true
	case LabelJava:
		return Java, true
	case LabelPython:
		return Python, true
	}
	return Unknown, false
}

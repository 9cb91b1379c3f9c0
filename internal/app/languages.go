package app

import (
	"fmt"
	"sort"
)

// Language pairs an execution-service language id with its human-readable
// label. The label is what the suggestion prompt shows the assistant.
type Language struct {
	ID    int
	Label string
}

var languages = map[int]string{
	50: "C (GCC 9.2.0)",
	51: "C# (Mono 6.6.0.161)",
	54: "C++ (GCC 9.2.0)",
	60: "Go (1.13.5)",
	62: "Java (OpenJDK 13.0.1)",
	63: "JavaScript (Node.js 12.14.0)",
	68: "PHP (7.4.1)",
	71: "Python (3.8.1)",
	72: "Ruby (2.7.0)",
	73: "Rust (1.40.0)",
	74: "TypeScript (3.7.4)",
}

// LanguageLabel resolves a language id to its label.
func LanguageLabel(id int) string {
	if label, ok := languages[id]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%d)", id)
}

// KnownLanguage reports whether the id is in the local catalog.
func KnownLanguage(id int) bool {
	_, ok := languages[id]
	return ok
}

// Languages lists the catalog ordered by id, for the language selector.
func Languages() []Language {
	out := make([]Language, 0, len(languages))
	for id, label := range languages {
		out = append(out, Language{ID: id, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

package search

// Aliases maps common abbreviations and spellings to the canonical skill term.
var Aliases = map[string]string{
	"golang":   "go",
	"k8s":      "kubernetes",
	"js":       "javascript",
	"ts":       "typescript",
	"py":       "python",
	"postgres": "postgresql",
	"pg":       "postgresql",
	"tf":       "terraform",
	"gcp":      "google cloud",
	"ml":       "machine learning",
	"ai":       "artificial intelligence",
	"nlp":      "natural language processing",
	"ci":       "continuous integration",
	"cd":       "continuous delivery",
	"ux":       "user experience",
	"ui":       "user interface",
	"pm":       "project management",
	"qa":       "quality assurance",
	"sre":      "site reliability engineering",
	"oop":      "object oriented programming",
}

// Canonical returns the canonical term for token, or "" when none is known.
func Canonical(token string) string {
	return Aliases[token]
}

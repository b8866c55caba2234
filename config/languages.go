package config

// Language describes one LeetCode language slug.
type Language struct {
	Slug      string
	Name      string
	Extension string
	Lexer     string // chroma lexer name
}

var languages = []Language{
	{"cpp", "C++", ".cpp", "c++"},
	{"java", "Java", ".java", "java"},
	{"python3", "Python3", ".py", "python"},
	{"python", "Python", ".py", "python"},
	{"javascript", "JavaScript", ".js", "javascript"},
	{"typescript", "TypeScript", ".ts", "typescript"},
	{"csharp", "C#", ".cs", "c#"},
	{"c", "C", ".c", "c"},
	{"golang", "Go", ".go", "go"},
	{"kotlin", "Kotlin", ".kt", "kotlin"},
	{"swift", "Swift", ".swift", "swift"},
	{"rust", "Rust", ".rs", "rust"},
	{"ruby", "Ruby", ".rb", "ruby"},
	{"php", "PHP", ".php", "php"},
	{"dart", "Dart", ".dart", "dart"},
	{"scala", "Scala", ".scala", "scala"},
	{"elixir", "Elixir", ".ex", "elixir"},
	{"erlang", "Erlang", ".erl", "erlang"},
	{"racket", "Racket", ".rkt", "racket"},
}

func LookupLanguage(slug string) (Language, bool) {
	for _, l := range languages {
		if l.Slug == slug {
			return l, true
		}
	}
	return Language{}, false
}

// Extension falls back to ".txt" for unknown slugs.
func Extension(slug string) string {
	if l, ok := LookupLanguage(slug); ok {
		return l.Extension
	}
	return ".txt"
}

func DisplayName(slug string) string {
	if l, ok := LookupLanguage(slug); ok {
		return l.Name
	}
	return slug
}

// LexerName maps a slug to the lexer used for highlighting; unknown slugs
// get plain text.
func LexerName(slug string) string {
	if l, ok := LookupLanguage(slug); ok {
		return l.Lexer
	}
	return "plaintext"
}

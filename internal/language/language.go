// Package language holds the closed enumeration of languages Agent Booster
// understands and the immutable per-language descriptor table consulted by
// the chunk extractor and the structural similarity scorer.
package language

import "strings"

// Language is the closed set of source languages the engine can reason
// about. The zero value is not a valid language; use Parse or one of the
// named constants.
type Language int

const (
	Unknown Language = iota
	JavaScript
	TypeScript
	Python
	Rust
	Go
	Java
	C
	Cpp
)

// String returns the canonical lowercase identifier for l, the same form
// accepted by Parse.
func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case Python:
		return "python"
	case Rust:
		return "rust"
	case Go:
		return "go"
	case Java:
		return "java"
	case C:
		return "c"
	case Cpp:
		return "cpp"
	default:
		return "unknown"
	}
}

var byName = map[string]Language{
	"javascript": JavaScript,
	"js":         JavaScript,
	"typescript": TypeScript,
	"ts":         TypeScript,
	"python":     Python,
	"py":         Python,
	"rust":       Rust,
	"rs":         Rust,
	"go":         Go,
	"golang":     Go,
	"java":       Java,
	"c":          C,
	"cpp":        Cpp,
	"c++":        Cpp,
}

// Parse maps a boundary identifier (case-insensitive) to a Language.
// Per spec.md §6, an unrecognized identifier is not an error: it falls
// back to JavaScript.
func Parse(id string) Language {
	if l, ok := byName[strings.ToLower(strings.TrimSpace(id))]; ok {
		return l
	}
	return JavaScript
}

// BraceStyle describes how a language delimits blocks, which the chunk
// extractor needs to know to decide between brace-depth tracking and
// indentation tracking.
type BraceStyle int

const (
	BraceDelimited BraceStyle = iota
	IndentDelimited
)

// ChunkKind classifies an extracted Chunk.
type ChunkKind int

const (
	KindFunction ChunkKind = iota
	KindClass
	KindMethod
	KindBlock
	KindStatement
)

func (k ChunkKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	case KindBlock:
		return "block"
	case KindStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// ChunkPattern pairs a chunk kind with the regular expression whose match
// marks the *header* of a chunk of that kind (e.g. a function signature).
// The extractor advances past the match to find the chunk's body.
type ChunkPattern struct {
	Kind   ChunkKind
	Header string // regexp source, anchored by the extractor per-line
}

// Descriptor is the immutable per-language record consulted by the chunk
// extractor (ChunkPatterns, BraceStyle) and the structural similarity
// scorer (Keywords, plus the brace/paren/bracket characters which are
// fixed across all languages).
type Descriptor struct {
	Language      Language
	ChunkPatterns []ChunkPattern
	Keywords      []string
	BraceStyle    BraceStyle
	LineComment   string // e.g. "//" or "#"; empty if not single-line commentable
	TreeSitter    bool   // true if an AST-backed extractor grammar is bundled
}

// Descriptors is the process-wide, read-only table. It is built once at
// package initialization from compile-time constants and never mutated
// afterwards, so it is
// safe to share across arbitrarily many concurrent ApplyEdit/Batch calls.
var Descriptors = buildDescriptors()

// Get returns the descriptor for l, falling back to the JavaScript
// descriptor for Unknown (mirrors Parse's fallback policy).
func Get(l Language) Descriptor {
	if d, ok := Descriptors[l]; ok {
		return d
	}
	return Descriptors[JavaScript]
}

func buildDescriptors() map[Language]Descriptor {
	braceKeywords := []string{
		"function", "return", "if", "else", "for", "while", "switch",
		"case", "break", "continue", "class", "new", "try", "catch",
		"throw", "const", "let", "var",
	}

	jsPatterns := []ChunkPattern{
		{Kind: KindClass, Header: `^\s*(?:export\s+)?(?:default\s+)?class\s+\w+`},
		{Kind: KindMethod, Header: `^\s*(?:async\s+)?(?:static\s+)?[A-Za-z_$][\w$]*\s*\([^)]*\)\s*\{`},
		{Kind: KindFunction, Header: `^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s+\w+\s*\(`},
		{Kind: KindFunction, Header: `^\s*(?:export\s+)?(?:const|let|var)\s+\w+\s*=\s*(?:async\s+)?(?:\([^)]*\)|\w+)\s*=>`},
	}

	return map[Language]Descriptor{
		JavaScript: {
			Language:      JavaScript,
			ChunkPatterns: jsPatterns,
			Keywords:      braceKeywords,
			BraceStyle:    BraceDelimited,
			LineComment:   "//",
		},
		TypeScript: {
			Language: TypeScript,
			ChunkPatterns: append(append([]ChunkPattern{}, jsPatterns...),
				ChunkPattern{Kind: KindFunction, Header: `^\s*(?:export\s+)?interface\s+\w+`},
			),
			Keywords:    append(append([]string{}, braceKeywords...), "interface", "type", "implements", "extends", "readonly"),
			BraceStyle:  BraceDelimited,
			LineComment: "//",
			TreeSitter:  true,
		},
		Python: {
			Language: Python,
			ChunkPatterns: []ChunkPattern{
				{Kind: KindClass, Header: `^\s*class\s+\w+`},
				{Kind: KindFunction, Header: `^\s*(?:async\s+)?def\s+\w+\s*\(`},
			},
			Keywords: []string{
				"def", "class", "return", "if", "elif", "else", "for",
				"while", "try", "except", "finally", "raise", "import",
				"from", "with", "as", "lambda", "yield", "async", "await",
			},
			BraceStyle:  IndentDelimited,
			LineComment: "#",
			TreeSitter:  true,
		},
		Rust: {
			Language: Rust,
			ChunkPatterns: []ChunkPattern{
				{Kind: KindClass, Header: `^\s*(?:pub\s+)?(?:struct|enum|trait)\s+\w+`},
				{Kind: KindMethod, Header: `^\s*impl\b`},
				{Kind: KindFunction, Header: `^\s*(?:pub\s+)?(?:async\s+)?fn\s+\w+\s*(?:<[^>]*>)?\s*\(`},
			},
			Keywords: []string{
				"fn", "struct", "enum", "trait", "impl", "pub", "let",
				"mut", "match", "if", "else", "for", "while", "loop",
				"return", "use", "mod", "async", "await",
			},
			BraceStyle:  BraceDelimited,
			LineComment: "//",
			TreeSitter:  true,
		},
		Go: {
			Language: Go,
			ChunkPatterns: []ChunkPattern{
				{Kind: KindClass, Header: `^\s*type\s+\w+\s+(?:struct|interface)\s*\{`},
				{Kind: KindMethod, Header: `^\s*func\s*\([^)]*\)\s*\w+\s*\(`},
				{Kind: KindFunction, Header: `^\s*func\s+\w+\s*(?:\[[^\]]*\])?\s*\(`},
			},
			Keywords: []string{
				"func", "type", "struct", "interface", "return", "if",
				"else", "for", "range", "switch", "case", "go", "defer",
				"chan", "select", "package", "import", "var", "const",
			},
			BraceStyle:  BraceDelimited,
			LineComment: "//",
		},
		Java: {
			Language: Java,
			ChunkPatterns: []ChunkPattern{
				{Kind: KindClass, Header: `^\s*(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?(?:class|interface|enum)\s+\w+`},
				{Kind: KindMethod, Header: `^\s*(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?[\w<>\[\],\s]+\s+\w+\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\s*\{`},
			},
			Keywords: []string{
				"class", "interface", "enum", "public", "private",
				"protected", "static", "final", "return", "if", "else",
				"for", "while", "switch", "case", "try", "catch", "throw",
				"new", "extends", "implements",
			},
			BraceStyle:  BraceDelimited,
			LineComment: "//",
			TreeSitter:  true,
		},
		C: {
			Language: C,
			ChunkPatterns: []ChunkPattern{
				{Kind: KindClass, Header: `^\s*(?:typedef\s+)?struct\s+\w*\s*\{`},
				{Kind: KindFunction, Header: `^\s*(?:static\s+)?(?:inline\s+)?[\w\*\s]+\s+\w+\s*\([^;{]*\)\s*\{`},
			},
			Keywords: []string{
				"struct", "union", "enum", "typedef", "return", "if",
				"else", "for", "while", "switch", "case", "break",
				"continue", "static", "const", "void", "sizeof",
			},
			BraceStyle:  BraceDelimited,
			LineComment: "//",
			TreeSitter:  true,
		},
		Cpp: {
			Language: Cpp,
			ChunkPatterns: []ChunkPattern{
				{Kind: KindClass, Header: `^\s*(?:template\s*<[^>]*>\s*)?class\s+\w+`},
				{Kind: KindMethod, Header: `^\s*[\w:<>,\s\*&]+::\w+\s*\([^;{]*\)\s*(?:const\s*)?\{`},
				{Kind: KindFunction, Header: `^\s*(?:static\s+)?(?:inline\s+)?[\w<>\*\s]+\s+\w+\s*\([^;{]*\)\s*\{`},
			},
			Keywords: []string{
				"class", "struct", "namespace", "template", "typename",
				"public", "private", "protected", "virtual", "override",
				"return", "if", "else", "for", "while", "switch", "case",
				"new", "delete", "const",
			},
			BraceStyle:  BraceDelimited,
			LineComment: "//",
		},
	}
}

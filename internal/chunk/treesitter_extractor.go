package chunk

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c_ts "github.com/tree-sitter/tree-sitter-c/bindings/go"
	java_ts "github.com/tree-sitter/tree-sitter-java/bindings/go"
	python_ts "github.com/tree-sitter/tree-sitter-python/bindings/go"
	rust_ts "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript_ts "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/agent-booster/internal/language"
)

// nodeKinds lists, per tree-sitter grammar, which node kinds count as a
// Function/Class/Method chunk. Grounded on the teacher's
// internal/indexer/parsers/*.go per-language walkers, which match on the
// same grammar node names.
var nodeKinds = map[language.Language]map[string]language.ChunkKind{
	language.Python: {
		"function_definition": language.KindFunction,
		"class_definition":    language.KindClass,
	},
	language.TypeScript: {
		"function_declaration":  language.KindFunction,
		"method_definition":     language.KindMethod,
		"class_declaration":     language.KindClass,
		"interface_declaration": language.KindClass,
	},
	language.Rust: {
		"function_item": language.KindFunction,
		"impl_item":     language.KindMethod,
		"struct_item":   language.KindClass,
		"enum_item":     language.KindClass,
		"trait_item":    language.KindClass,
	},
	language.Java: {
		"method_declaration":      language.KindMethod,
		"constructor_declaration": language.KindMethod,
		"class_declaration":       language.KindClass,
		"interface_declaration":   language.KindClass,
		"enum_declaration":        language.KindClass,
	},
	language.C: {
		"function_definition": language.KindFunction,
		"struct_specifier":    language.KindClass,
	},
}

var grammars = map[language.Language]func() *sitter.Language{
	language.Python:     func() *sitter.Language { return sitter.NewLanguage(python_ts.Language()) },
	language.TypeScript: func() *sitter.Language { return sitter.NewLanguage(typescript_ts.LanguageTypescript()) },
	language.Rust:       func() *sitter.Language { return sitter.NewLanguage(rust_ts.Language()) },
	language.Java:       func() *sitter.Language { return sitter.NewLanguage(java_ts.Language()) },
	language.C:          func() *sitter.Language { return sitter.NewLanguage(c_ts.Language()) },
}

// TreeSitterExtractor is the optional, AST-backed extractor spec.md §9
// allows as "a drop-in replacement behind the extract contract." It is
// available only for the languages this repository bundles a grammar for
// (Python, TypeScript, Rust, Java, C); ApplyEdit falls back to
// RegexExtractor for every other language, silently, per SPEC_FULL.md
// §4.2.1.
type TreeSitterExtractor struct{}

// Supports reports whether lang has a bundled tree-sitter grammar.
func (TreeSitterExtractor) Supports(lang language.Language) bool {
	_, ok := grammars[lang]
	return ok
}

// Extract implements Extractor. If lang has no bundled grammar, or the
// source fails to parse, it returns nil so the caller can fall back to
// RegexExtractor — this is not an error condition per spec.md §4.2's
// failure policy.
func (TreeSitterExtractor) Extract(source string, lang language.Language, maxChunks int) []Chunk {
	if maxChunks <= 0 {
		maxChunks = 100
	}
	newLang, ok := grammars[lang]
	if !ok {
		return nil
	}
	kinds := nodeKinds[lang]

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(newLang())

	src := []byte(source)
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var chunks []Chunk
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if kind, ok := kinds[n.Kind()]; ok {
			chunks = append(chunks, Chunk{
				Kind:      kind,
				StartByte: int(n.StartByte()),
				EndByte:   int(n.EndByte()),
				StartLine: int(n.StartPosition().Row) + 1,
				EndLine:   int(n.EndPosition().Row) + 1,
				Text:      string(src[n.StartByte():n.EndByte()]),
			})
			if len(chunks) >= maxChunks {
				return
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)))
			if len(chunks) >= maxChunks {
				return
			}
		}
	}
	walk(tree.RootNode())

	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks
}

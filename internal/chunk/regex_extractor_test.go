package chunk

// Test Plan:
// - JavaScript function/class extraction with correct byte ranges
// - Go function and method extraction
// - Python indentation-delimited function extraction, including a dedent
// - maxChunks truncates the result
// - Malformed (unclosed brace) input clamps to EOF instead of panicking
// - Empty source yields no chunks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/agent-booster/internal/language"
)

func TestExtractJavaScriptFunction(t *testing.T) {
	t.Parallel()

	src := "function add(a, b) {\n  return a + b;\n}\n"
	chunks := RegexExtractor{}.Extract(src, language.JavaScript, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, language.KindFunction, chunks[0].Kind)
	assert.Equal(t, strings.TrimSuffix(src, "\n"), chunks[0].Text)
}

func TestExtractJavaScriptClassAndMethod(t *testing.T) {
	t.Parallel()

	src := `class Greeter {
  greet(name) {
    return "hi " + name;
  }
}
`
	chunks := RegexExtractor{}.Extract(src, language.JavaScript, 100)
	require.NotEmpty(t, chunks)

	var kinds []language.ChunkKind
	for _, c := range chunks {
		kinds = append(kinds, c.Kind)
	}
	assert.Contains(t, kinds, language.KindClass)
}

func TestExtractGoFunctionAndMethod(t *testing.T) {
	t.Parallel()

	src := `func Add(a, b int) int {
	return a + b
}

func (s *Server) Handle(req Request) Response {
	return s.process(req)
}
`
	chunks := RegexExtractor{}.Extract(src, language.Go, 100)
	require.Len(t, chunks, 2)
	assert.Equal(t, language.KindFunction, chunks[0].Kind)
	assert.Equal(t, language.KindMethod, chunks[1].Kind)
	assert.True(t, strings.HasPrefix(chunks[0].Text, "func Add"))
	assert.True(t, strings.HasPrefix(chunks[1].Text, "func (s *Server) Handle"))
}

func TestExtractPythonFunctionStopsAtDedent(t *testing.T) {
	t.Parallel()

	src := "def greet(name):\n    print(name)\n    return None\n\ndef other():\n    pass\n"
	chunks := RegexExtractor{}.Extract(src, language.Python, 100)

	require.Len(t, chunks, 2)
	assert.True(t, strings.Contains(chunks[0].Text, "print(name)"))
	assert.False(t, strings.Contains(chunks[0].Text, "def other"))
}

func TestExtractRespectsMaxChunks(t *testing.T) {
	t.Parallel()

	src := "func A() {}\nfunc B() {}\nfunc C() {}\n"
	chunks := RegexExtractor{}.Extract(src, language.Go, 2)
	assert.Len(t, chunks, 2)
}

func TestExtractClampsUnclosedBraceToEOF(t *testing.T) {
	t.Parallel()

	src := "function broken(a) {\n  return a;\n"
	require.NotPanics(t, func() {
		chunks := RegexExtractor{}.Extract(src, language.JavaScript, 100)
		require.Len(t, chunks, 1)
		assert.Equal(t, len(src), chunks[0].EndByte)
	})
}

func TestExtractEmptySourceYieldsNoChunks(t *testing.T) {
	t.Parallel()

	chunks := RegexExtractor{}.Extract("", language.JavaScript, 100)
	assert.Empty(t, chunks)
}

package language

// Test Plan:
// - Parse recognizes every canonical and alias identifier, case-insensitively
// - Parse falls back to JavaScript for an unrecognized identifier
// - String round-trips through Parse for every named constant
// - Get falls back to the JavaScript descriptor for Unknown
// - Descriptors has exactly one entry per named constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecognizesAliases(t *testing.T) {
	t.Parallel()

	cases := map[string]Language{
		"javascript": JavaScript,
		"JS":         JavaScript,
		" js ":       JavaScript,
		"typescript": TypeScript,
		"TS":         TypeScript,
		"python":     Python,
		"py":         Python,
		"rust":       Rust,
		"rs":         Rust,
		"go":         Go,
		"GoLang":     Go,
		"java":       Java,
		"c":          C,
		"cpp":        Cpp,
		"C++":        Cpp,
	}

	for id, want := range cases {
		id, want := id, want
		t.Run(id, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, Parse(id))
		})
	}
}

func TestParseFallsBackToJavaScript(t *testing.T) {
	t.Parallel()

	assert.Equal(t, JavaScript, Parse("cobol"))
	assert.Equal(t, JavaScript, Parse(""))
	assert.Equal(t, JavaScript, Parse("   "))
}

func TestStringRoundTripsThroughParse(t *testing.T) {
	t.Parallel()

	for _, l := range []Language{JavaScript, TypeScript, Python, Rust, Go, Java, C, Cpp} {
		require.Equal(t, l, Parse(l.String()))
	}
}

func TestGetFallsBackForUnknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Descriptors[JavaScript], Get(Unknown))
}

func TestDescriptorsCoverEveryLanguage(t *testing.T) {
	t.Parallel()

	for _, l := range []Language{JavaScript, TypeScript, Python, Rust, Go, Java, C, Cpp} {
		d, ok := Descriptors[l]
		require.True(t, ok, "missing descriptor for %v", l)
		assert.Equal(t, l, d.Language)
		assert.NotEmpty(t, d.ChunkPatterns)
		assert.NotEmpty(t, d.Keywords)
	}
}

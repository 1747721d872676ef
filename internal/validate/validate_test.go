package validate

// Test Plan:
// - Balanced JS source validates true
// - Unbalanced braces validate false
// - Delimiters inside a string literal are ignored
// - Python source mixing tabs and spaces in one indent prefix is invalid
// - Python source using spaces only is valid
// - Brace-delimited languages ignore indentation mixing entirely

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/agent-booster/internal/language"
)

func TestValidateBalancedJavaScript(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate("function f(a) {\n  return [a, (a)];\n}\n", language.JavaScript))
}

func TestValidateUnbalancedBraces(t *testing.T) {
	t.Parallel()

	assert.False(t, Validate("function f(a) {\n  return a;\n", language.JavaScript))
}

func TestValidateIgnoresDelimitersInStrings(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate(`const s = "unbalanced ( [ { here";`, language.JavaScript))
}

func TestValidatePythonRejectsMixedIndentation(t *testing.T) {
	t.Parallel()

	src := "def f():\n \tx = 1\n"
	assert.False(t, Validate(src, language.Python))
}

func TestValidatePythonAcceptsSpacesOnly(t *testing.T) {
	t.Parallel()

	src := "def f():\n    x = 1\n    return x\n"
	assert.True(t, Validate(src, language.Python))
}

func TestValidateBraceDelimitedIgnoresIndentation(t *testing.T) {
	t.Parallel()

	src := "func f() {\n    x := 1\n\ty := 2\n}\n"
	assert.True(t, Validate(src, language.Go))
}

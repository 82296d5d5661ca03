package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "spaces only", text: "   "},
		{name: "tabs and newlines", text: "\t\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Compile(tt.text)
			assert.Nil(t, e)

			var emptyErr *EmptyExpressionError
			require.ErrorAs(t, err, &emptyErr)
		})
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	e, err := Compile("1 +")
	assert.Nil(t, e)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "1 +", compileErr.Source)
	assert.Error(t, compileErr.Cause)
	assert.Contains(t, compileErr.Error(), `"1 +"`)
}

func TestCompile_TrimsSource(t *testing.T) {
	e, err := Compile("  1 + 1 \n")
	require.NoError(t, err)
	assert.Equal(t, "1 + 1", e.Source())
}

func TestInvoke(t *testing.T) {
	env := map[string]interface{}{
		"vars": map[string]interface{}{
			"pool":  "production",
			"count": 3,
		},
	}

	tests := []struct {
		name string
		text string
		want interface{}
	}{
		{name: "arithmetic", text: "1 + 2", want: 3},
		{name: "string concatenation", text: `"pool: " + vars.pool`, want: "pool: production"},
		{name: "comparison", text: "vars.count > 1", want: true},
		{name: "boolean literal", text: "false", want: false},
		{name: "undefined variable is nil", text: "missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Compile(tt.text)
			require.NoError(t, err)

			got, err := e.Invoke(env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoke_FunctionCall(t *testing.T) {
	called := 0
	env := map[string]interface{}{
		"restartPool": func(name string) string {
			called++
			return "restarted " + name
		},
		"vars": map[string]interface{}{"pool": "default"},
	}

	e, err := Compile("restartPool(vars.pool)")
	require.NoError(t, err)

	got, err := e.Invoke(env)
	require.NoError(t, err)
	assert.Equal(t, "restarted default", got)
	assert.Equal(t, 1, called)
}

func TestInvoke_FaultingFunction(t *testing.T) {
	env := map[string]interface{}{
		"poolState": func(name string) (string, error) {
			return "", assert.AnError
		},
	}

	e, err := Compile(`poolState("missing")`)
	require.NoError(t, err)

	_, err = e.Invoke(env)
	assert.Error(t, err)
}

// Compiling identical text twice must yield programs that behave
// identically against equal environments.
func TestCompile_Deterministic(t *testing.T) {
	env := map[string]interface{}{
		"vars": map[string]interface{}{"n": 21},
	}

	first, err := Compile("vars.n * 2")
	require.NoError(t, err)
	second, err := Compile("vars.n * 2")
	require.NoError(t, err)
	require.NotSame(t, first, second)

	a, err := first.Invoke(env)
	require.NoError(t, err)
	b, err := second.Invoke(env)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// A compiled Expression is reusable: repeated invocations against
// different environments each see their own bindings.
func TestInvoke_Reusable(t *testing.T) {
	e := MustCompile("vars.n + 1")

	for i := 0; i < 3; i++ {
		got, err := e.Invoke(map[string]interface{}{
			"vars": map[string]interface{}{"n": i},
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, got)
	}
}

func TestMustCompile_PanicsOnBadText(t *testing.T) {
	assert.Panics(t, func() { MustCompile("") })
}

package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionSet_ZeroMembersPassVacuously(t *testing.T) {
	s := NewConditionSet()

	s.Evaluate(NewContext())

	assert.True(t, s.Passed)
}

func TestConditionSet_AllMembersRunWithoutShortCircuit(t *testing.T) {
	s := NewConditionSet()
	s.Append(newValue(t, "true"))
	s.Append(newValue(t, "false"))
	s.Append(newValue(t, "true"))

	s.Evaluate(NewContext())

	assert.False(t, s.Passed)
	for i, v := range s.Values() {
		assert.True(t, v.Processed, "member %d must be processed despite earlier failure", i)
	}
}

func TestConditionSet_FaultFailsTheSet(t *testing.T) {
	s := NewConditionSet()
	s.Append(newValue(t, "fail()"))
	s.Append(newValue(t, "true"))

	s.Evaluate(faultingContext())

	assert.False(t, s.Passed)
	assert.True(t, s.Values()[0].Error)
	assert.True(t, s.Values()[1].Processed, "faulted member must not stop later members")
}

func TestConditionSet_Truthiness(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "true literal", expr: "true", want: true},
		{name: "false literal", expr: "false", want: false},
		{name: "nonzero number", expr: "42", want: true},
		{name: "zero", expr: "0", want: false},
		{name: "zero float", expr: "0.0", want: false},
		{name: "nonempty string", expr: `"ok"`, want: true},
		{name: "empty string", expr: `""`, want: false},
		{name: "nil result", expr: "nil", want: false},
		{name: "nonempty list", expr: "[1]", want: true},
		{name: "empty list", expr: "[]", want: false},
		{name: "empty map", expr: "{}", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewConditionSet()
			s.Append(newValue(t, tt.expr))

			s.Evaluate(NewContext())

			require.False(t, s.Values()[0].Error)
			assert.Equal(t, tt.want, s.Passed)
		})
	}
}

func TestConditionSet_RepeatEvaluationKeepsCachedMembers(t *testing.T) {
	ctx := NewContext()
	calls := 0
	ctx.RegisterFunc("probe", func() bool {
		calls++
		return true
	})

	s := NewConditionSet()
	s.Append(newValue(t, "probe()"))

	s.Evaluate(ctx)
	s.Evaluate(ctx)

	assert.Equal(t, 1, calls)
	assert.True(t, s.Passed)
}

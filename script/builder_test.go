package script

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptBuilder(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *ScriptBuilder) *ScriptBuilder
		expected []byte
	}{
		{
			name: "ops only",
			build: func(b *ScriptBuilder) *ScriptBuilder {
				return b.AddOp(OP_DUP).AddOps(OP_HASH160, OP_EQUALVERIFY)
			},
			expected: []byte{OP_DUP, OP_HASH160, OP_EQUALVERIFY},
		},
		{
			name: "small data is not a number opcode",
			build: func(b *ScriptBuilder) *ScriptBuilder {
				return b.AddData([]byte{0x05})
			},
			expected: []byte{OP_DATA_1, 0x05},
		},
		{
			name: "empty data",
			build: func(b *ScriptBuilder) *ScriptBuilder {
				return b.AddData(nil)
			},
			expected: []byte{OP_0},
		},
		{
			name: "placeholder",
			build: func(b *ScriptBuilder) *ScriptBuilder {
				return b.AddOp(OP_1).AddPlaceholder().AddOp(OP_2)
			},
			expected: []byte{OP_1, OP_RESERVED, OP_2},
		},
		{
			name: "pushdata1",
			build: func(b *ScriptBuilder) *ScriptBuilder {
				return b.AddData(bytes.Repeat([]byte{0x49}, 76))
			},
			expected: append([]byte{OP_PUSHDATA1, 76}, bytes.Repeat([]byte{0x49}, 76)...),
		},
	}

	b := NewScriptBuilder()
	for _, test := range tests {
		got, err := test.build(b.Reset()).Script()
		require.NoError(t, err, test.name)
		require.Equal(t, test.expected, got, test.name)
	}
}

func TestScriptBuilderInstructions(t *testing.T) {
	raw, err := NewScriptBuilder().AddInstructions(
		DataPush{0xaa},
		Operation(OP_PLACEHOLDER),
		Operation(OP_CAT),
	).Script()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xaa, OP_PLACEHOLDER, OP_CAT}, raw)

	_, err = NewScriptBuilder().AddInstructions(bogusInstruction{}).AddOp(OP_DUP).Script()
	require.True(t, IsErrorCode(err, ErrMalformedPush))
}

func TestScriptBuilderSegmentsIntoItself(t *testing.T) {
	b := NewScriptBuilder().
		AddOp(OP_DUP).AddData(bytes.Repeat([]byte{0x01}, 300)).
		AddPlaceholder().
		AddData(bytes.Repeat([]byte{0x02}, 80)).AddOp(OP_EQUAL)
	raw, err := b.Script()
	require.NoError(t, err)

	f, err := FromScript(raw)
	require.NoError(t, err)
	require.Equal(t, raw, f.Bytes(OP_PLACEHOLDER))
}

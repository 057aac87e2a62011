package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPrefix(t *testing.T) {
	tests := []struct {
		n      uint64
		prefix []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{75, []byte{0x4b}},
		{76, []byte{OP_PUSHDATA1, 0x4c}},
		{255, []byte{OP_PUSHDATA1, 0xff}},
		{256, []byte{OP_PUSHDATA2, 0x00, 0x01}},
		{65535, []byte{OP_PUSHDATA2, 0xff, 0xff}},
		{65536, []byte{OP_PUSHDATA4, 0x00, 0x00, 0x01, 0x00}},
		{100000, []byte{OP_PUSHDATA4, 0xa0, 0x86, 0x01, 0x00}},
		{MaxPushLength, []byte{OP_PUSHDATA4, 0xff, 0xff, 0xff, 0xff}},
	}

	for _, test := range tests {
		prefix, err := PushPrefix(test.n)
		require.NoError(t, err, "n=%d", test.n)
		require.Equal(t, test.prefix, prefix, "n=%d", test.n)

		l, width, err := PushedLength(prefix)
		require.NoError(t, err)
		require.Equal(t, test.n, l)
		require.Equal(t, len(prefix), width)
	}
}

func TestAppendPushMinimal(t *testing.T) {
	for _, n := range []int{0, 1, 75, 76, 255, 256, 65535, 65536, 100000} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		out, err := AppendPush(nil, data)
		require.NoError(t, err)

		l, width, err := PushedLength(out)
		require.NoError(t, err)
		require.Equal(t, uint64(n), l)
		require.Equal(t, data, out[width:])

		// 总是选择能容纳 n 的最窄形式
		switch {
		case n <= 75:
			require.Equal(t, 1, width)
		case n <= 255:
			require.Equal(t, 2, width)
		case n <= 65535:
			require.Equal(t, 3, width)
		default:
			require.Equal(t, 5, width)
		}
	}
}

func TestAppendPushKeepsDst(t *testing.T) {
	out, err := AppendPush([]byte{OP_DUP}, []byte{0xaa})
	require.NoError(t, err)
	require.Equal(t, []byte{OP_DUP, 0x01, 0xaa}, out)
}

func TestPushPrefixTooLong(t *testing.T) {
	_, err := PushPrefix(uint64(MaxPushLength) + 1)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrPushTooLong))
}

func TestPushedLengthErrors(t *testing.T) {
	_, _, err := PushedLength(nil)
	require.True(t, IsErrorCode(err, ErrShortScript))

	_, _, err = PushedLength([]byte{OP_CAT})
	require.True(t, IsErrorCode(err, ErrInvalidPrefix))

	_, _, err = PushedLength([]byte{OP_PUSHDATA2, 0x01})
	require.True(t, IsErrorCode(err, ErrShortScript))

	// 非最小前缀也能解码
	l, width, err := PushedLength([]byte{OP_PUSHDATA4, 0x01, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	require.Equal(t, uint64(1), l)
	require.Equal(t, 5, width)
}

func TestCheckPlaceholder(t *testing.T) {
	for _, op := range []byte{OP_0, OP_DATA_1, OP_DATA_75, OP_PUSHDATA1, OP_PUSHDATA2, OP_PUSHDATA4} {
		require.True(t, IsErrorCode(CheckPlaceholder(op), ErrInvalidPlaceholder), OpcodeName(op))
	}
	for _, op := range []byte{OP_1NEGATE, OP_PLACEHOLDER, OP_NOP10, OP_INVALIDOPCODE} {
		require.NoError(t, CheckPlaceholder(op), OpcodeName(op))
	}
}

func TestErrorCodeStringer(t *testing.T) {
	for c := ErrInternal; c < numErrorCodes; c++ {
		require.NotContains(t, c.String(), "Unknown")
	}
	require.Equal(t, "Unknown ErrorCode (99)", ErrorCode(99).String())
}

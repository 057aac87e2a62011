package fill

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/treeforest/easyfill/script"
)

func TestCommandSegment(t *testing.T) {
	var out bytes.Buffer
	c := NewCommand(t.TempDir(), script.OP_PLACEHOLDER, &out)

	err := c.Run([]string{"segment", "-script", hex.EncodeToString(mockTemplate(t))})
	require.NoError(t, err)
	require.Contains(t, out.String(), "segments: 2")
	require.Contains(t, out.String(), "[0] 0101")
	require.Contains(t, out.String(), "OP_CAT OP_DATA_2 0x0102 OP_EQUAL")
}

func TestCommandDisasm(t *testing.T) {
	var out bytes.Buffer
	c := NewCommand(t.TempDir(), script.OP_PLACEHOLDER, &out)

	require.NoError(t, c.Run([]string{"disasm", "-script", "0x76a9"}))
	require.Equal(t, "OP_DUP OP_HASH160\n", out.String())

	err := c.Run([]string{"disasm", "-script", "4c"})
	require.True(t, script.IsErrorCode(err, script.ErrShortScript))
}

func TestCommandTemplates(t *testing.T) {
	var out bytes.Buffer
	c := NewCommand(t.TempDir(), script.OP_PLACEHOLDER, &out)
	raw := hex.EncodeToString(mockTemplate(t))

	require.NoError(t, c.Run([]string{"register", "-script", raw}))
	id := strings.TrimPrefix(strings.SplitN(out.String(), "\n", 2)[0], "id: ")
	require.Equal(t, TemplateID(Hash160(mockTemplate(t))), id)

	out.Reset()
	require.NoError(t, c.Run([]string{"register", "-script", raw}))
	require.Contains(t, out.String(), "template already exists")

	out.Reset()
	require.NoError(t, c.Run([]string{"get", "-id", id}))
	require.Contains(t, out.String(), "segments: 2")

	out.Reset()
	require.NoError(t, c.Run([]string{"list"}))
	require.Contains(t, out.String(), id)

	out.Reset()
	require.NoError(t, c.Run([]string{"prove", "-id", id, "-index", "1"}))
	require.Contains(t, out.String(), "segment: 7e02010287")

	out.Reset()
	require.NoError(t, c.Run([]string{"remove", "-id", id}))
	require.Error(t, c.Run([]string{"get", "-id", id}))
}

func TestCommandUsage(t *testing.T) {
	var out bytes.Buffer
	c := NewCommand(t.TempDir(), script.OP_PLACEHOLDER, &out)

	require.True(t, errors.Is(c.Run(nil), ErrUsage))
	require.Contains(t, out.String(), "Usage:")
	require.True(t, errors.Is(c.Run([]string{"unknown"}), ErrUsage))
	require.True(t, errors.Is(c.Run([]string{"get"}), ErrUsage))
	require.True(t, errors.Is(c.Run([]string{"prove", "-id", "x", "-index", "-1"}), ErrUsage))
	require.True(t, errors.Is(c.Run([]string{"segment", "-bogus"}), ErrUsage))
}

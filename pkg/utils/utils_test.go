package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/treeforest/easyfill/base58check"
)

func TestIsValidTemplateID(t *testing.T) {
	payload := make([]byte, 20)
	require.True(t, IsValidTemplateID(string(base58check.Encode(base58check.ScriptHashVersion, payload))))
	require.False(t, IsValidTemplateID(string(base58check.Encode(0x00, payload))))
	require.False(t, IsValidTemplateID(string(base58check.Encode(base58check.ScriptHashVersion, payload[:19]))))
	require.False(t, IsValidTemplateID("bogus"))
	require.False(t, IsValidTemplateID(""))
}

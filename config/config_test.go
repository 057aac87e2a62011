package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/treeforest/easyfill/script"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "http_server_port: 9090\ndb_path: /tmp/tpl\ndebug: true\n")
	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, conf.HttpServerPort)
	require.Equal(t, "/tmp/tpl", conf.DBPath)
	require.True(t, conf.Debug)
	// 未设置的字段保留默认值
	require.Equal(t, byte(script.OP_PLACEHOLDER), conf.Placeholder)
	require.Equal(t, 5, conf.ShutdownTimeout)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", "http_server_port = 7070\nplaceholder = 185\n")
	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7070, conf.HttpServerPort)
	require.Equal(t, byte(0xb9), conf.Placeholder)
	require.Equal(t, ".", conf.DBPath)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeFile(t, "bad.yaml", "placeholder: 76\n")
	_, err = Load(path)
	require.True(t, script.IsErrorCode(err, script.ErrInvalidPlaceholder))

	path = writeFile(t, "bad.toml", "http_server_port = \"x\"\n")
	_, err = Load(path)
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	conf := DefaultConfig()
	conf.Debug = true

	data, err := conf.Marshal()
	require.NoError(t, err)
	out := DefaultConfig()
	require.NoError(t, out.Unmarshal(data))
	require.Equal(t, conf, out)

	data, err = conf.EncodeTOML()
	require.NoError(t, err)
	out = DefaultConfig()
	require.NoError(t, out.DecodeTOML(data))
	require.Equal(t, conf, out)
}

package config

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/treeforest/easyfill/script"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// 对外服务配置
	HttpServerPort  int `yaml:"http_server_port" toml:"http_server_port"` // web监听端口
	ShutdownTimeout int `yaml:"shutdown_timeout" toml:"shutdown_timeout"` // 优雅退出超时(秒)

	// 存储配置
	DBPath string `yaml:"db_path" toml:"db_path"` // 模板数据库路径

	// 模板配置
	Placeholder byte `yaml:"placeholder" toml:"placeholder"` // 占位操作码，默认 OP_RESERVED(0x50)

	Debug bool `yaml:"debug" toml:"debug"` // 是否输出调试日志
}

func DefaultConfig() *Config {
	return &Config{
		HttpServerPort:  8080,
		ShutdownTimeout: 5,
		DBPath:          ".",
		Placeholder:     script.OP_PLACEHOLDER,
		Debug:           false,
	}
}

func (c *Config) Unmarshal(b []byte) error {
	return yaml.Unmarshal(b, c)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) DecodeTOML(b []byte) error {
	_, err := toml.Decode(string(b), c)
	return err
}

func (c *Config) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load 加载配置文件，.toml 后缀按 TOML 解析，其余按 YAML 解析。未设置的字段使用默认值。
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	conf := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = conf.DecodeTOML(data)
	} else {
		err = conf.Unmarshal(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate 检查配置是否合法
func (c *Config) Validate() error {
	if c.HttpServerPort <= 0 || c.HttpServerPort > 65535 {
		return errors.Errorf("invalid http_server_port %d", c.HttpServerPort)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.Errorf("invalid shutdown_timeout %d", c.ShutdownTimeout)
	}
	if c.DBPath == "" {
		return errors.New("db_path is empty")
	}
	if err := script.CheckPlaceholder(c.Placeholder); err != nil {
		return errors.Wrap(err, "invalid placeholder")
	}
	return nil
}

package config

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/m3o/safe/pkg/logging"
)

var logger = logging.Component("pkg/config")

// EnvPrefix marks environment variables that take part in configuration.
const EnvPrefix = "SAFE_"

type Config map[string]string

func Parse(r io.Reader) (Config, error) {
	config := make(Config)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := unquote(strings.TrimSpace(parts[1]))
		config[key] = value
	}
	return config, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// LoadFile reads a KEY=VALUE file. A missing file yields an empty Config.
func LoadFile(path string) (Config, error) {
	logger.Debugf("Loading config from %s", path)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Config), nil
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (c Config) Merge(other Config) {
	for k, v := range other {
		c[k] = v
	}
}

func (c Config) Get(key string, defaultValue string) string {
	if v, ok := c[key]; ok && v != "" {
		return v
	}
	return defaultValue
}

func (c Config) GetInt(key string, defaultValue int) int {
	v, ok := c[key]
	if !ok || v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warnf("Invalid integer for %s: %q, using %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}

func (c Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := c[key]
	if !ok || v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warnf("Invalid duration for %s: %q, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}

// MergeConfigs merges configs in priority order, the first one wins.
func MergeConfigs(priority ...Config) Config {
	res := make(Config)
	for i := len(priority) - 1; i >= 0; i-- {
		res.Merge(priority[i])
	}
	return res
}

func GetEnvConfig() Config {
	res := make(Config)
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix) {
			parts := strings.SplitN(env, "=", 2)
			res[parts[0]] = parts[1]
		}
	}
	return res
}

package support

import (
	"path/filepath"

	"github.com/m3o/safe/pkg/config"
	"github.com/m3o/safe/pkg/logging"
	"github.com/sirupsen/logrus"
)

var logger = logging.Component("support")

const (
	KeyCipherPassword  = "SAFE_CIPHER_PASSWORD"
	KeyBackend         = "SAFE_BACKEND"
	KeyFile            = "SAFE_FILE"
	KeyKeyringService  = "SAFE_KEYRING_SERVICE"
	KeyKDF             = "SAFE_KDF"
	KeyKDFSalt         = "SAFE_KDF_SALT"
	KeyKDFIterations   = "SAFE_KDF_ITERATIONS"
	KeyRetryMaxElapsed = "SAFE_RETRY_MAX_ELAPSED"
)

const DefaultConfigFile = "safe.env"

// LoadMergedConfig merges, from highest priority: SAFE_ environment variables,
// the explicit config file and the default config file in configDir.
func LoadMergedConfig(configDir, configFile string, logger *logrus.Entry) config.Config {
	envCfg := config.GetEnvConfig()

	defaultPath := filepath.Join(configDir, DefaultConfigFile)
	defaultCfg, err := config.LoadFile(defaultPath)
	if err != nil {
		logger.Warnf("Failed to load config %s: %v", defaultPath, err)
	}

	fileCfg := make(config.Config)
	if configFile != "" {
		fileCfg, err = config.LoadFile(configFile)
		if err != nil {
			logger.Warnf("Failed to load config %s: %v", configFile, err)
		}
	}

	return config.MergeConfigs(envCfg, fileCfg, defaultCfg)
}

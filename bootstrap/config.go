package bootstrap

import (
	"fmt"
	"os"

	"entsearch/config"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes the zap logger with colored console output. The
// level can be changed after construction, once configuration is loaded.
func InitLogger(level zap.AtomicLevel) (*zap.Logger, *zap.SugaredLogger, error) {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, logger.Sugar(), nil
}

// InitConfig loads the application configuration. An empty path searches
// the default locations.
func InitConfig(path string, sugar *zap.SugaredLogger) (*config.Config, error) {
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load config: %v\n", err)
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if viper.ConfigFileUsed() == "" {
		sugar.Info("No config file found, using defaults and env vars")
	}

	if !cfg.HasHost() {
		sugar.Infow("Enterprise Search host not configured",
			"description", "applications will show the setup guide and never fetch config data")
	}

	sugar.Infow("Config loaded",
		"host", cfg.EnterpriseSearch.Host,
		"backend_url", cfg.GetBackendURL(),
		"api_port", cfg.API.Port,
		"catalogue_enabled", cfg.Catalogue.Enabled,
		"catalogue_backend", cfg.Catalogue.Backend)

	return cfg, nil
}

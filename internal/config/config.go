package config

import (
	"errors"
	"strings"

	gopackages "github.com/andrew-solarstorm/go-packages/common"
	"github.com/rs/zerolog"
)

type ServerEnv = string

var (
	DevEnv     ServerEnv = "dev"
	StagingEnv ServerEnv = "staging"
	ProdEnv    ServerEnv = "prod"
)

const (
	GENERAL_CONFIG_KEY  = "general-config"
	RPC_CONFIG_KEY      = "rpc-config"
	SPLITTER_CONFIG_KEY = "splitter-config"
)

type GeneralConfig struct {
	HTTPPort string
	HTTPHost string
	Env      string
	LogLevel string
}

func (gc *GeneralConfig) Key() string {
	return GENERAL_CONFIG_KEY
}

func (gc *GeneralConfig) Load() error {
	gc.HTTPPort = gopackages.GetEnvOrDefault("HTTP_PORT", "8080")
	gc.HTTPHost = gopackages.GetEnvOrDefault("HTTP_HOST", "localhost")
	gc.Env = gopackages.GetEnvOrDefault("ENV", DevEnv)
	gc.LogLevel = gopackages.GetEnvOrDefault("LOG_LEVEL", "info")

	if err := gc.Validate(); err != nil {
		return err
	}
	gc.applyLogLevel()
	return nil
}

func (gc *GeneralConfig) Validate() error {
	if gc.HTTPPort == "" || gc.HTTPHost == "" || gc.Env == "" {
		return errors.New("invalid server config")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(gc.LogLevel)); err != nil {
		return errors.New("invalid log level: " + gc.LogLevel)
	}
	return nil
}

func (gc *GeneralConfig) applyLogLevel() {
	level, _ := zerolog.ParseLevel(strings.ToLower(gc.LogLevel))
	zerolog.SetGlobalLevel(level)
}

package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// reading config error is fatal, and exists main thread
func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

func readFile(cfg *Configuration) {
	f, err := os.Open("config.yml")
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		processError(err)
	}
}

func readEnv(cfg *Configuration) {
	err := envconfig.Process("", cfg)
	if err != nil {
		processError(err)
	}
}

func applyDefaults(cfg *Configuration) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Bridge.ExpirySeconds == 0 {
		cfg.Bridge.ExpirySeconds = DEFAULT_EXPIRY_SECONDS
	}
	if cfg.Token.Precision == 0 && cfg.Token.Symbol == "TLM" {
		cfg.Token.Precision = 4
	}
}

func Init() {
	readFile(&Config)
	readEnv(&Config)
	applyDefaults(&Config)
}

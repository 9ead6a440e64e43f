package config

import (
	"os"
	"sync"
)

type MLConfig struct {
	ModelDir    string
	DefaultKind string
}

var (
	mlConfig *MLConfig
	mlOnce   sync.Once
)

func LoadMLConfig() *MLConfig {
	mlOnce.Do(func() {
		dir := os.Getenv("MODEL_DIR")
		if dir == "" {
			dir = "models"
		}
		kind := os.Getenv("MODEL_KIND")
		if kind == "" {
			kind = "random_forest"
		}
		mlConfig = &MLConfig{
			ModelDir:    dir,
			DefaultKind: kind,
		}
	})
	return mlConfig
}

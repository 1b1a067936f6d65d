package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/aolivares/school-library-service/internal/server"
	"github.com/aolivares/school-library-service/internal/service"
	"github.com/aolivares/school-library-service/pkg/kafka"
	"github.com/aolivares/school-library-service/pkg/logger"
	"github.com/aolivares/school-library-service/pkg/postgres"
)

type Fines struct {
	DayRate   float64 `yaml:"dayRate" envconfig:"FINE_DAY_RATE" default:"0.50"`
	DamageFee float64 `yaml:"damageFee" envconfig:"FINE_DAMAGE_FEE" default:"10.00"`
}

type Worker struct {
	SweepInterval time.Duration `yaml:"sweepInterval" envconfig:"RESERVATION_SWEEP_INTERVAL" default:"1h"`
}

type Config struct {
	Server   server.Config `yaml:"server"`
	Database postgres.DB   `yaml:"db"`
	Kafka    kafka.Config  `yaml:"kafka"`
	Log      logger.Log    `yaml:"log"`
	Fines    Fines         `yaml:"fines"`
	Worker   Worker        `yaml:"worker"`
}

func (c *Config) FinePolicy() service.FinePolicy {
	return service.FinePolicy{
		DayRate:   c.Fines.DayRate,
		DamageFee: c.Fines.DamageFee,
	}
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

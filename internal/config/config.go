package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const DefaultQueueSize = 1024

type Config struct {
	QueueSize int  `mapstructure:"queue_size" validate:"gte=0"`
	Nats      Nats `mapstructure:"nats"`
}

type Nats struct {
	Host     string `mapstructure:"host" validate:"required"`
	Subject  string `mapstructure:"subject" validate:"required"`
	Token    string `mapstructure:"token"`
	User     string `mapstructure:"user" validate:"required_with=Password"`
	Password string `mapstructure:"password"`
}

func (c *Config) GetQueueSize() int {
	if c.QueueSize == 0 {
		return DefaultQueueSize
	}
	return c.QueueSize
}

var validate = validator.New()

// GetConfig decodes the nats source settings from v and validates them.
func GetConfig(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := validate.Struct(c); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return c, nil
}

package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, toml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(toml)))
	return v
}

func TestGetConfig(t *testing.T) {
	v := load(t, `
queue_size = 16

[nats]
host = "nats://127.0.0.1:4222"
subject = "logs.>"
user = "tap"
password = "secret"
`)
	c, err := GetConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 16, c.GetQueueSize())
	assert.Equal(t, "nats://127.0.0.1:4222", c.Nats.Host)
	assert.Equal(t, "logs.>", c.Nats.Subject)
	assert.Equal(t, "tap", c.Nats.User)
	assert.Equal(t, "secret", c.Nats.Password)
}

func TestGetConfig_Defaults(t *testing.T) {
	v := load(t, `
[nats]
host = "nats://127.0.0.1:4222"
subject = "logs"
`)
	c, err := GetConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultQueueSize, c.GetQueueSize())
}

func TestGetConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing host":    "[nats]\nsubject = \"logs\"\n",
		"missing subject": "[nats]\nhost = \"nats://127.0.0.1:4222\"\n",
		"password only":   "[nats]\nhost = \"nats://h\"\nsubject = \"s\"\npassword = \"p\"\n",
		"negative queue":  "queue_size = -1\n[nats]\nhost = \"nats://h\"\nsubject = \"s\"\n",
	}
	for name, toml := range tests {
		toml := toml
		t.Run(name, func(t *testing.T) {
			_, err := GetConfig(load(t, toml))
			assert.Error(t, err)
		})
	}
}

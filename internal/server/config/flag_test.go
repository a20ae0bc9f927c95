package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", ":9090", "-d", "postgres://flag", "-r", "redis:6380", "-k", "flag-secret"},
			expected: &Config{EndpointAddr: ":9090", DatabaseDSN: "postgres://flag", RedisAddr: "redis:6380", SecretKey: "flag-secret"}},
		{name: "Test2 partial", args: []string{"cmd", "-a", ":7070"},
			expected: &Config{EndpointAddr: ":7070"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

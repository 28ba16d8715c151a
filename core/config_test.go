package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setenv(t *testing.T, key, val string) {
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, val))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestNewConfig_defaults(t *testing.T) {
	setenv(t, "ENV", "qa")

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "QA", conf.Env)
	assert.True(t, conf.Debug)
	assert.False(t, conf.TestMode)
	assert.Equal(t, ":8000", conf.Server.Address)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, CohortConfig{Ideal: 20, MinSize: 5, MaxSize: 30}, conf.Cohort)
	assert.FileExists(t, filepath.Join(conf.WorkDir, "go.mod"))
}

func TestNewConfig_env(t *testing.T) {
	setenv(t, "ENV", "QA")
	setenv(t, "QA_DEBUG", "false")
	setenv(t, "QA_SERVER_ADDRESS", ":9000")
	setenv(t, "QA_SERVER_SHUTDOWNTIMEOUT", "10s")
	setenv(t, "QA_COHORT_IDEAL", "25")
	setenv(t, "QA_COHORT_MAXSIZE", "35")
	setenv(t, "DEV_COHORT_MINSIZE", "8") // other environment

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.False(t, conf.Debug)
	assert.Equal(t, ":9000", conf.Server.Address)
	assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, CohortConfig{Ideal: 25, MinSize: 5, MaxSize: 35}, conf.Cohort)
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		s     string
		lower bool
		want  string
	}{
		{s: "  B1 ", want: "B1"},
		{s: "\tB1\n", lower: true, want: "b1"},
		{s: "   ", want: ""},
	}
	for _, tt := range tests {
		if got := CleanString(tt.s, tt.lower); got != tt.want {
			t.Errorf("failed! CleanString(%q, %v) = %q; want %q", tt.s, tt.lower, got, tt.want)
		}
	}
}

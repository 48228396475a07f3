package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeConfig_FlagDefaults(t *testing.T) {
	cfg := analyzeConfig()

	assert.Equal(t, "mlm", cfg.Method)
	assert.Equal(t, 1.28, cfg.SampleRate)
	assert.Equal(t, 60.0, cfg.Depth)
	assert.Equal(t, "boxcar", cfg.Window)
	assert.Equal(t, "density", cfg.Scaling)
	assert.True(t, cfg.OneSided)
	assert.Equal(t, 2.5, cfg.Beta)
	assert.Equal(t, 10.0, cfg.Gamma)
}

func TestAnalyzeConfig_ViperOverrides(t *testing.T) {
	// config-file/env values land in viper; the bound keys must reach the
	// pipeline configuration
	viper.Set("method", "mem")
	viper.Set("sample_rate", 2.56)
	viper.Set("depth", 25.0)
	t.Cleanup(func() {
		viper.Reset()
		bindAnalyzeFlags()
	})

	cfg := analyzeConfig()
	assert.Equal(t, "mem", cfg.Method)
	assert.Equal(t, 2.56, cfg.SampleRate)
	assert.Equal(t, 25.0, cfg.Depth)
}

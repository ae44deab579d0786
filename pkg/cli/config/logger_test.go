package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/aegis-sec/aegis/pkg/cli/config"
)

func TestLoggerConfigure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		output  string
		wantErr bool
	}{
		{name: "console to stdout", level: "info", format: "console", output: "stdout"},
		{name: "json to stderr", level: "debug", format: "json", output: "stderr"},
		{name: "unknown level", level: "verbose", format: "console", output: "stdout", wantErr: true},
		{name: "unknown format", level: "info", format: "xml", output: "stdout", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewLoggerForTest(tc.level, tc.format, tc.output)
			closer, err := cfg.Configure()
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			closer()
		})
	}
}

func TestLoggerConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aegis.log")
	cfg := config.NewLoggerForTest("info", "json", path)

	closer, err := cfg.Configure()
	gt.NoError(t, err).Required()
	closer()

	_, err = os.Stat(path)
	gt.NoError(t, err)
}

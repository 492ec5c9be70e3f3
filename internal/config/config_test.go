package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
document:
  source: dom
  stylesheet_path: /tmp/extra.css
logging:
  console:
    level: debug
  file:
    level: normal
    destination: /tmp/pdflight.log
    mode: append
`)

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, SourceDOM, cfg.Document.Source)
	assert.Equal(t, "/tmp/extra.css", cfg.Document.StylesheetPath)
	assert.Equal(t, FormatTree, cfg.Document.OutputFormat, "unset keys keep defaults")
	assert.Equal(t, LevelDebug, cfg.Logging.ConsoleLogger.Level)
	assert.Equal(t, ModeAppend, cfg.Logging.FileLogger.Mode)
	assert.Equal(t, 10, cfg.Logging.FileLogger.MaxSize)
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "version: 1\ndocument:\n  colour: red\n"},
		{"bad source", "version: 1\ndocument:\n  source: xml\n"},
		{"bad format", "version: 1\ndocument:\n  output_format: pdf\n"},
		{"bad version", "version: 2\n"},
		{"bad level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
		{"file log without destination", "version: 1\nlogging:\n  file:\n    level: debug\n"},
		{"not yaml", "version: [1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDump(t *testing.T) {
	cfg := Default()
	cfg.Document.Source = SourceDOM

	data, err := Dump(&cfg)
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	loaded, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestPrepare_Default(t *testing.T) {
	cfg := Default()

	log, err := cfg.Logging.Prepare()
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestPrepare_FileLogger(t *testing.T) {
	for _, mode := range []string{ModeOverwrite, ModeAppend} {
		t.Run(mode, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "run.log")
			conf := LoggingConfig{
				ConsoleLogger: LoggerConfig{Level: LevelNone},
				FileLogger:    LoggerConfig{Level: LevelDebug, Destination: dest, Mode: mode, MaxSize: 1},
			}

			log, err := conf.Prepare()
			require.NoError(t, err)
			log.Debug("converted document")
			_ = log.Sync()

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Contains(t, string(data), "converted document")
			assert.Contains(t, string(data), AppName)
		})
	}
}

func TestPrepare_FileLoggerNormalSkipsDebug(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "run.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: LevelNone},
		FileLogger:    LoggerConfig{Level: LevelNormal, Destination: dest, Mode: ModeOverwrite},
	}

	log, err := conf.Prepare()
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestPrepare_BadDestination(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: LevelNone},
		FileLogger: LoggerConfig{
			Level:       LevelDebug,
			Destination: filepath.Join(t.TempDir(), "missing", "dir", "run.log"),
			Mode:        ModeOverwrite,
		},
	}

	_, err := conf.Prepare()
	assert.Error(t, err)
}

func TestDefaultYAML(t *testing.T) {
	data := DefaultYAML()
	assert.Contains(t, string(data), "# none, normal or debug")

	cfg, err := LoadConfiguration(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)

	data[0] = '#'
	assert.Equal(t, byte('v'), DefaultYAML()[0], "callers get a copy")
}

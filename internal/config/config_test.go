package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pronounce.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := Validate(&cfg); err != nil {
		t.Errorf("Default() invalid: %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if cfg.Language != d.Language || cfg.Server.ListenAddr != d.Server.ListenAddr || !cfg.Parallel {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Recognizer.Timeout != 30*time.Second {
		t.Errorf("recognizer.timeout = %v", cfg.Recognizer.Timeout)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
parallel: false
recognizer:
  provider: whisper
  api_key: sk-test
  timeout: 5s
server:
  listen_addr: 127.0.0.1:9000
feature:
  n_mfcc: 20
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Parallel {
		t.Errorf("top-level fields = %q %v", cfg.LogLevel, cfg.Parallel)
	}
	if cfg.Recognizer.Provider != RecognizerWhisper || cfg.Recognizer.APIKey != "sk-test" || cfg.Recognizer.Timeout != 5*time.Second {
		t.Errorf("recognizer = %+v", cfg.Recognizer)
	}
	if cfg.Recognizer.Model != "whisper-1" {
		t.Errorf("default model lost: %q", cfg.Recognizer.Model)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9000" || cfg.Feature.NumMFCC != 20 || cfg.Feature.SampleRate != 16000 {
		t.Errorf("server/feature = %+v %+v", cfg.Server, cfg.Feature)
	}
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("PRONOUNCE_RECOGNIZER_API_KEY", "sk-env")
	t.Setenv("PRONOUNCE_RECOGNIZER_PROVIDER", "whisper")
	t.Setenv("PRONOUNCE_LANGUAGE", "ms")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("language", "id", "")
	flags.String("db", "", "")
	if err := flags.Parse([]string{"--db", "/tmp/p.sqlite"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Recognizer.APIKey != "sk-env" || cfg.Recognizer.Provider != RecognizerWhisper {
		t.Errorf("env not applied: %+v", cfg.Recognizer)
	}
	if cfg.Language != "ms" {
		t.Errorf("unchanged flag should not override env: language = %q", cfg.Language)
	}
	if cfg.Progress.DBPath != "/tmp/p.sqlite" {
		t.Errorf("flag not applied: db_path = %q", cfg.Progress.DBPath)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"unknown key", "lgo_level: info\n", []string{"decode"}},
		{
			"invalid values",
			"log_level: loud\nrecognizer:\n  provider: whisper\nfeature:\n  sample_rate: 0\n",
			[]string{"log_level", "recognizer.api_key", "feature.sample_rate"},
		},
		{"bad provider", "recognizer:\n  provider: google\n", []string{"recognizer.provider"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

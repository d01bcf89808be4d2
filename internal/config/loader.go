package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "YTMSEARCH_"

// LoadFromFiles merges the given YAML files in lexical order. Non-empty
// fields of a later file override earlier ones.
func LoadFromFiles(files []string) (Config, error) {
	return LoadDefaultsAndFiles(nil, files)
}

func LoadDefaultsAndFiles(defaultsYAML []byte, files []string) (Config, error) {
	var merged Config
	if len(defaultsYAML) > 0 {
		if err := yaml.Unmarshal(defaultsYAML, &merged); err != nil {
			return Config{}, fmt.Errorf("defaults: %w", err)
		}
	}
	for _, f := range sortedYAML(files) {
		b, err := os.ReadFile(f)
		if err != nil {
			return Config{}, err
		}
		var part Config
		if err := yaml.Unmarshal(b, &part); err != nil {
			return Config{}, fmt.Errorf("%s: %w", f, err)
		}
		merged = mergeConfig(merged, part)
	}
	return merged, nil
}

// ApplyEnv overrides cfg with YTMSEARCH_* environment variables. Unset
// variables leave the file values untouched.
func ApplyEnv(cfg Config) (Config, error) {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix})
}

func applyEnv(cfg Config, opts env.Options) (Config, error) {
	out := cfg
	if err := env.ParseWithOptions(&out, opts); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return out, nil
}

// FindFiles lists the YAML files directly inside dir.
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return sortedYAML(files), nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func sortedYAML(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		lf := strings.ToLower(f)
		if strings.HasSuffix(lf, ".yaml") || strings.HasSuffix(lf, ".yml") {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func mergeConfig(base, overlay Config) Config {
	out := base
	out.Client = mergeClient(base.Client, overlay.Client)
	out.Media.Command = mergeCommand(base.Media.Command, overlay.Media.Command)
	if overlay.Slack.BotToken != "" {
		out.Slack.BotToken = overlay.Slack.BotToken
	}
	if overlay.Slack.ChannelID != "" {
		out.Slack.ChannelID = overlay.Slack.ChannelID
	}
	if overlay.Slack.APIURL != "" {
		out.Slack.APIURL = overlay.Slack.APIURL
	}
	return out
}

func mergeClient(a, b Client) Client {
	out := a
	if b.BaseURL != "" {
		out.BaseURL = b.BaseURL
	}
	if b.Language != "" {
		out.Language = b.Language
	}
	if b.Region != "" {
		out.Region = b.Region
	}
	if b.UserAgent != "" {
		out.UserAgent = b.UserAgent
	}
	if b.Timeout != 0 {
		out.Timeout = b.Timeout
	}
	return out
}

func mergeCommand(a, b Command) Command {
	out := a
	if b.Binary != "" {
		out.Binary = b.Binary
		out.Args = b.Args
	} else if len(b.Args) > 0 {
		out.Args = b.Args
	}
	return out
}

package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Client struct {
	BaseURL   string        `yaml:"base_url,omitempty" json:"base_url,omitempty" env:"BASE_URL"`
	Language  string        `yaml:"language,omitempty" json:"language,omitempty" env:"LANGUAGE"`
	Region    string        `yaml:"region,omitempty" json:"region,omitempty" env:"REGION"`
	UserAgent string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty" env:"USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" env:"TIMEOUT"`
}

type Media struct {
	Command Command `yaml:"command,omitempty" json:"command,omitempty"`
}

type Slack struct {
	BotToken  string `yaml:"bot_token,omitempty" json:"bot_token,omitempty" env:"BOT_TOKEN"`
	ChannelID string `yaml:"channel_id,omitempty" json:"channel_id,omitempty" env:"CHANNEL_ID"`
	// APIURL points at a Slack-compatible API; empty uses slack.com.
	APIURL string `yaml:"api_url,omitempty" json:"api_url,omitempty" env:"API_URL"`
}

type Config struct {
	Client Client `yaml:"client,omitempty" json:"client,omitempty"`
	Media  Media  `yaml:"media,omitempty" json:"media,omitempty"`
	Slack  Slack  `yaml:"slack,omitempty" json:"slack,omitempty" envPrefix:"SLACK_"`
}

// Command is an external binary plus extra arguments. In YAML it is either
// a bare string (the binary) or a mapping with binary and args.
type Command struct {
	Binary string   `yaml:"binary" json:"binary,omitempty" env:"YTDLP"`
	Args   []string `yaml:"args,omitempty" json:"args,omitempty"`
}

func (c *Command) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		c.Binary = value.Value
		c.Args = nil
		return nil
	case yaml.MappingNode:
		var aux struct {
			Binary string   `yaml:"binary"`
			Args   []string `yaml:"args"`
		}
		if err := value.Decode(&aux); err != nil {
			return err
		}
		c.Binary = aux.Binary
		c.Args = aux.Args
		return nil
	default:
		return fmt.Errorf("invalid command node kind: %d", value.Kind)
	}
}

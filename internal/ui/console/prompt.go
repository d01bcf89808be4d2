package console

import (
	"strings"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/gopak/ytmsearch/internal/config"
)

type initAnswers struct {
	Language string `survey:"language"`
	Region   string `survey:"region"`
	Binary   string `survey:"binary"`
}

func initQuestions(base config.Config) []*survey.Question {
	return []*survey.Question{
		{
			Name:     "language",
			Prompt:   &survey.Input{Message: "Result language (hl):", Default: base.Client.Language},
			Validate: survey.Required,
		},
		{
			Name:   "region",
			Prompt: &survey.Input{Message: "Region (gl, two letters, empty for none):", Default: base.Client.Region},
		},
		{
			Name:     "binary",
			Prompt:   &survey.Input{Message: "yt-dlp binary:", Default: base.Media.Command.Binary},
			Validate: survey.Required,
		},
	}
}

func applyAnswers(base config.Config, a initAnswers) config.Config {
	out := base
	out.Client.Language = strings.TrimSpace(a.Language)
	out.Client.Region = strings.ToUpper(strings.TrimSpace(a.Region))
	out.Media.Command.Binary = strings.TrimSpace(a.Binary)
	return out
}

// PromptConfig asks for the user-facing settings, starting from base.
func PromptConfig(base config.Config) (config.Config, error) {
	var a initAnswers
	if err := survey.Ask(initQuestions(base), &a); err != nil {
		return config.Config{}, err
	}
	return applyAnswers(base, a), nil
}

// ConfirmOverwrite asks before replacing an existing config file.
func ConfirmOverwrite(path string) (bool, error) {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: "Overwrite " + path + "?", Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

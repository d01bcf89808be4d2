package cmd

import (
	"context"
	"fmt"

	"github.com/gopak/ytmsearch/internal/config"
	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/gopak/ytmsearch/internal/search"
	"github.com/gopak/ytmsearch/internal/share"
	"github.com/gopak/ytmsearch/internal/ui/console"
	"github.com/gopak/ytmsearch/internal/ytmusic"
	"github.com/spf13/cobra"
)

func newCapability(cfg config.Config) search.Factory {
	return func() search.Capability {
		return ytmusic.NewClient(
			ytmusic.WithBaseURL(cfg.Client.BaseURL),
			ytmusic.WithLanguage(cfg.Client.Language),
			ytmusic.WithRegion(cfg.Client.Region),
			ytmusic.WithUserAgent(cfg.Client.UserAgent),
			ytmusic.WithTimeout(cfg.Client.Timeout),
		)
	}
}

func newSearchCmd() *cobra.Command {
	var output string
	var post bool
	cmd := &cobra.Command{
		Use:   "search <word>...",
		Short: "Print the top song for a query as JSON",
		Long: `Joins all arguments with single spaces and prints the best matching song
as a JSON array with at most one element. No arguments print [].
Flags are read only before the first word; everything from the first
word on, including "--" and words that start with a dash, is the query.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := console.ParseFormat(output)
			if err != nil {
				return err
			}
			ui := console.NewConsoleUI(cmd.OutOrStdout(), format)
			if len(search.JoinQuery(args)) == 0 {
				return ui.PrintSongs(nil)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var poster *share.Service
			if post {
				if poster, err = share.FromConfig(cfg.Slack); err != nil {
					return err
				}
			}

			songs, err := search.New(newCapability(cfg)).TopSong(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := ui.PrintSongs(songs); err != nil {
				return err
			}
			if poster != nil {
				postTopSong(cmd.Context(), poster, songs)
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&output, "output", "o", string(console.FormatJSON), "output format: json or table")
	cmd.Flags().BoolVar(&post, "post", false, "post the top song link to the configured Slack channel")
	return cmd
}

// postTopSong never fails the command; the result was already printed.
func postTopSong(ctx context.Context, s *share.Service, songs []ytmusic.Song) {
	if len(songs) == 0 {
		logging.Debug("nothing to post")
		return
	}
	url := ytmusic.WatchURL(songs[0].VideoID)
	if err := s.PostLink(ctx, url); err != nil {
		logging.Warn(fmt.Sprintf("failed to post to Slack: %v", err))
		return
	}
	logging.Debug("posted to Slack: " + url)
}

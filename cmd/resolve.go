package cmd

import (
	"fmt"

	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/gopak/ytmsearch/internal/media"
	"github.com/gopak/ytmsearch/internal/search"
	"github.com/gopak/ytmsearch/internal/ui/console"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "resolve <word>...",
		Short: "Search the top song and print its media metadata from yt-dlp",
		Args:  cobra.ArbitraryArgs,
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
			song, err := search.New(newCapability(cfg)).First(cmd.Context(), args)
			if err != nil {
				return err
			}
			logging.Debug(fmt.Sprintf("resolve: %s (%s)", song.Title, song.VideoID))
			res, err := media.NewResolver(cfg.Media.Command).Resolve(cmd.Context(), song.VideoID)
			if err != nil {
				return err
			}
			return ui.PrintMedia(res)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&output, "output", "o", string(console.FormatJSON), "output format: json or table")
	return cmd
}

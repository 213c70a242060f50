package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd is the only command: running streamdash starts the dashboard.
var rootCmd = &cobra.Command{
	Use:   "streamdash",
	Short: "Real-time dashboard for a streaming server",
	Long: `Show host resources, pm2 channel workers and HLS output health,
refreshed every couple of seconds until you press Ctrl+C.

Settings come from ./streamdash.yaml or ~/.config/streamdash/config.yaml,
and every key can be overridden with a STREAMDASH_ environment variable.

Examples:
  streamdash
  STREAMDASH_BASE_DIR=/srv/streaming streamdash
  STREAMDASH_PLAIN=true streamdash | tee dashboard.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("streamdash {{.Version}}\n")
}

// Execute runs the root command. Interrupts cancel the command's context,
// which the dashboard treats as a normal shutdown. It returns the process exit code.
func Execute() int {
	if err := execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func execute(parent context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

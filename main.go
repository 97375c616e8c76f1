package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		flags         Flags
		interval      int
		printDefaults bool
		debug         bool
	)

	rootCmd := &cobra.Command{
		Use:   "staticsync",
		Short: "Mirror a local directory into a bucket",
		Long: "Mirror a local directory into an S3 or GCS bucket and invalidate the changed paths on CloudFront.\n" +
			"Output: '-\\t/path' for each object deleted from the bucket and '+\\t/path' for each file uploaded. " +
			"Reads configuration from " + defaultConfigFile + " (see -p).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
			if printDefaults {
				fmt.Fprint(cmd.OutOrStdout(), printDefaultConfiguration(flags))
				return nil
			}
			if cmd.Flags().Changed("interval") {
				flags.Interval = &interval
			}

			settings, err := loadSettings(flags)
			if err != nil {
				return err
			}
			log.Info("config:\n" + strings.Join(settings.ConfigStringArray(), "\n"))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler, err := newSyncHandlerFromSettings(ctx, settings, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if settings.Interval > 0 {
				return runScheduled(ctx, handler, settings.Interval)
			}
			_, err = handler.Sync(ctx)
			return err
		},
	}

	rootCmd.Flags().StringVar(&flags.ConfigFile, "config", "", "Configuration file (default "+defaultConfigFile+")")
	rootCmd.Flags().StringVarP(&flags.Dir, "dir", "d", "", "The directory with the site. Required unless 'dir' is set in the config file.")
	rootCmd.Flags().StringVarP(&flags.Bucket, "bucket", "b", "", "The name of the bucket. Required unless 'bucket' is set in the config file.")
	rootCmd.Flags().StringVarP(&flags.Distribution, "distribution", "c", "", "CloudFront distribution ID for the site.")
	rootCmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "Do not sync, just output the diff.")
	rootCmd.Flags().BoolVarP(&printDefaults, "default-config", "p", false, "Print the default configuration and exit.")
	rootCmd.Flags().IntVar(&interval, "interval", 0, "Sync again every N seconds instead of exiting.")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return rootCmd
}

// newSyncHandlerFromSettings builds the clients the settings ask for. Dry
// runs get neither invalidator nor notifier.
func newSyncHandlerFromSettings(ctx context.Context, settings Settings, out io.Writer) (*SyncHandler, error) {
	client, err := settings.ClientFromSettings(ctx)
	if err != nil {
		return nil, err
	}

	var invalidator Invalidator
	if settings.Distribution != "" && !settings.DryRun {
		if invalidator, err = NewCloudFrontInvalidator(ctx, settings); err != nil {
			return nil, err
		}
	}

	var notifier Notifier
	if settings.SNSTopic != "" && !settings.DryRun {
		if notifier, err = NewSNSNotifier(ctx, settings); err != nil {
			return nil, err
		}
	}

	return NewSyncHandler(client, invalidator, notifier, settings, out), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

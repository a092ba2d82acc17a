package apps

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/h2hsecure/tokenreport/internal/adapter"
	"github.com/h2hsecure/tokenreport/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportSnapshot string
	reportSink     string
)

var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print access token and Open ID of the current user",
	Long:  AppDescription,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := Report(cmd.Context(), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	ReportCmd.Flags().StringVar(&reportSnapshot, "snapshot", "", "replay a stored snapshot instead of calling the API")
	ReportCmd.Flags().StringVar(&reportSink, "sink", "plain", "where to write the result: plain or log")
}

func newSink(kind string, out io.Writer) (domain.Sink, error) {
	switch kind {
	case "plain", "":
		return adapter.NewWriterSink(out), nil
	case "log":
		return adapter.NewLogSink(log.Logger), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", kind)
	}
}

// Report runs the reporter once against the API, or against a snapshot when
// --snapshot is given.
func Report(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sink, err := newSink(reportSink, out)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	var source domain.UsersSource

	if reportSnapshot != "" {
		db, err := adapter.NewBoltDB(cfg.DBPath, true)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msgf("db close")
			}
		}()
		source = adapter.NewSnapshotSource(db, reportSnapshot)
	} else {
		source = adapter.NewUsersAPIAdapter(cfg, httpClient)
	}

	_, written, err := domain.NewReporter(source, sink).Run(ctx)
	if err != nil {
		return err
	}
	if !written {
		log.Debug().Msg("nothing to report")
	}

	return nil
}

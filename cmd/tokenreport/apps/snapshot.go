package apps

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/h2hsecure/tokenreport/internal/adapter"
	"github.com/h2hsecure/tokenreport/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var SnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored /api/users responses",
	Long:  AppDescription,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Fetch /api/users once and store the raw body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := SaveSnapshot(cmd.Context(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Print a stored body as " + adapter.SnapshotEnvKey + "=<base64>",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := ExportSnapshot(cmd.Context(), os.Stdout, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := ListSnapshots(cmd.Context(), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	SnapshotCmd.AddCommand(snapshotSaveCmd)
	SnapshotCmd.AddCommand(snapshotExportCmd)
	SnapshotCmd.AddCommand(snapshotListCmd)
}

func withStore(readOnly bool, fn func(cfg *domain.Config, db domain.SnapshotStore) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, err := adapter.NewBoltDB(cfg.DBPath, readOnly)
	if err != nil {
		return err
	}

	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msgf("db close")
		}
	}()

	return fn(cfg, db)
}

func SaveSnapshot(ctx context.Context, name string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return withStore(false, func(cfg *domain.Config, db domain.SnapshotStore) error {
		api := adapter.NewUsersAPIAdapter(cfg, httpClient)
		if err := adapter.CaptureSnapshot(ctx, api, db, name); err != nil {
			return err
		}

		log.Info().Str("snapshot", name).Str("db", cfg.DBPath).Msg("saved")
		return nil
	})
}

func ExportSnapshot(ctx context.Context, out io.Writer, name string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return withStore(true, func(_ *domain.Config, db domain.SnapshotStore) error {
		snapshot, err := db.Load(ctx, name)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, adapter.ExportLine(snapshot))
		return err
	})
}

func ListSnapshots(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return withStore(true, func(_ *domain.Config, db domain.SnapshotStore) error {
		snapshots, err := db.List(ctx)
		if err != nil {
			return err
		}

		for _, snapshot := range snapshots {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%d bytes\n", snapshot.Name, snapshot.CapturedAt.Format(time.RFC3339), len(snapshot.Body)); err != nil {
				return err
			}
		}
		return nil
	})
}

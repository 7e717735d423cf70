package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/countfit/dataset"
	"github.com/arloliu/countfit/format"
)

func snapshotCmd(a *app) *cobra.Command {
	var data, out, compression string

	c := &cobra.Command{
		Use:   "snapshot",
		Short: "Convert a CSV dataset into a compressed binary snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct, err := format.ParseCompression(compression)
			if err != nil {
				return err
			}

			tbl, err := dataset.Load(data)
			if err != nil {
				return err
			}

			encoded, stats, err := dataset.EncodeWithStats(tbl, dataset.WithCompression(ct))
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, encoded, 0o644); err != nil { //nolint: gosec
				return fmt.Errorf("write snapshot: %w", err)
			}

			a.log().Info("snapshot written",
				zap.String("path", out),
				zap.Stringer("compression", ct),
				zap.Int64("payload_bytes", stats.OriginalSize),
				zap.Int64("compressed_bytes", stats.CompressedSize),
				zap.Duration("elapsed", stats.Duration))

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d columns x %d rows, %d bytes (%s, %.1f%% saved)\n",
				out, len(tbl.Names()), tbl.Rows(), len(encoded), ct, stats.SpaceSavings())

			return err
		},
	}

	c.Flags().StringVarP(&data, "data", "d", "", "Input dataset (required)")
	c.Flags().StringVarP(&out, "out", "o", "", "Output snapshot path (required)")
	c.Flags().StringVar(&compression, "compression", "zstd", "Payload codec: none|zstd|s2|lz4")

	_ = c.MarkFlagRequired("data")
	_ = c.MarkFlagRequired("out")

	return c
}

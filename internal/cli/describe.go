package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/countfit/dataset"
)

type description struct {
	Column    string          `json:"column"`
	By        string          `json:"by,omitempty"`
	Summary   dataset.Summary `json:"summary"`
	Groups    []dataset.Group `json:"groups,omitempty"`
	Histogram []dataset.Bin   `json:"histogram"`
}

func describeCmd(a *app) *cobra.Command {
	var data, value, by, format string
	var bins int

	c := &cobra.Command{
		Use:   "describe",
		Short: "Summarize a count column, optionally by group, with a histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := dataset.Load(data)
			if err != nil {
				return err
			}

			values, err := tbl.Numeric(value)
			if err != nil {
				return err
			}

			d := description{Column: value, By: by, Summary: dataset.Summarize(values)}
			if by != "" {
				if d.Groups, err = dataset.GroupMeans(tbl, value, by); err != nil {
					return err
				}
			}
			if d.Histogram, err = dataset.Histogram(values, bins); err != nil {
				return err
			}
			a.log().Debug("described column",
				zap.String("column", value),
				zap.Int("rows", tbl.Rows()),
				zap.Int("groups", len(d.Groups)))

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sanitize(d))
			case "pretty", "":
				printDescription(cmd.OutOrStdout(), d)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}
		},
	}

	c.Flags().StringVarP(&data, "data", "d", "", "Dataset: CSV file or snapshot (required)")
	c.Flags().StringVar(&value, "value", "", "Numeric column to describe (required)")
	c.Flags().StringVar(&by, "by", "", "Grouping column")
	c.Flags().IntVar(&bins, "bins", 0, "Histogram bins; 0 gives one bin per integer value")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("data")
	_ = c.MarkFlagRequired("value")

	return c
}

// sanitize replaces NaN statistics, which JSON cannot encode, with zero. Count
// already tells the reader the statistic is empty.
func sanitize(d description) description {
	d.Summary = sanitizeSummary(d.Summary)
	groups := make([]dataset.Group, len(d.Groups))
	for i, g := range d.Groups {
		groups[i] = dataset.Group{Level: g.Level, Summary: sanitizeSummary(g.Summary)}
	}
	d.Groups = groups

	return d
}

func sanitizeSummary(s dataset.Summary) dataset.Summary {
	for _, v := range []*float64{&s.Mean, &s.Variance, &s.Min, &s.Max} {
		if math.IsNaN(*v) {
			*v = 0
		}
	}

	return s
}

const histogramWidth = 40

func printDescription(w io.Writer, d description) {
	s := d.Summary
	fmt.Fprintf(w, "%s: n=%d missing=%d mean=%s var=%s min=%s max=%s\n",
		d.Column, s.Count, s.Missing, num(s.Mean), num(s.Variance), num(s.Min), num(s.Max))

	if len(d.Groups) > 0 {
		rows := make([][]string, 0, len(d.Groups))
		for _, g := range d.Groups {
			rows = append(rows, []string{g.Level, strconv.Itoa(g.Count), num(g.Mean), num(g.Variance)})
		}
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(d.By, "n", "mean", "variance").
			Rows(rows...)
		fmt.Fprintf(w, "\n%s\n", tbl.Render())
	}

	if len(d.Histogram) == 0 {
		return
	}

	peak := 0
	for _, b := range d.Histogram {
		peak = max(peak, b.Count)
	}
	fmt.Fprintln(w)
	for _, b := range d.Histogram {
		bar := 0
		if peak > 0 {
			bar = b.Count * histogramWidth / peak
		}
		fmt.Fprintf(w, "[%6s, %6s) %6d %s\n", num(b.Lower), num(b.Upper), b.Count, strings.Repeat("#", bar))
	}
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}

	return strconv.FormatFloat(v, 'g', 6, 64)
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects a Render output encoding.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPretty, FormatJSON, FormatMsgpack:
		return f, nil
	case "":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("invalid --format %q (expected pretty|json|msgpack)", name)
	}
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(r)
	case FormatPretty, "":
		_, err := io.WriteString(w, Pretty(r))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Pretty renders r as a terminal summary with a coefficient table.
func Pretty(r *Report) string {
	var b strings.Builder

	title := "Poisson regression"
	if r.Model != "" {
		title += ": " + r.Model
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(faintStyle.Render("run "+r.RunID) + "\n\n")

	fmt.Fprintf(&b, "observations  %d", r.Observations)
	if r.Dropped > 0 {
		fmt.Fprintf(&b, " (%d rows dropped)", r.Dropped)
	}
	fmt.Fprintf(&b, "\nmethod        %s, %d iterations, %s\n", r.Method, r.Iterations, r.Status)
	fmt.Fprintf(&b, "log-lik       %.4f\n", r.LogLikelihood)
	fmt.Fprintf(&b, "converged     %t\n", r.Converged)
	fmt.Fprintf(&b, "inference     %s\n\n", r.Inference)

	rows := make([][]string, 0, len(r.Coefficients))
	for _, c := range r.Coefficients {
		rows = append(rows, []string{
			c.Name,
			formatFloat(&c.Estimate),
			formatFloat(c.StdErr),
			formatFloat(c.Z),
			formatP(c.P),
			formatFloat(&c.RateRatio),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("term", "estimate", "std.err", "z", "p", "rate ratio").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	b.WriteString(tbl.Render() + "\n")

	if !r.Converged {
		b.WriteString(warnStyle.Render("warning: optimizer did not converge, estimates are provisional") + "\n")
	}
	if len(r.Aliased) > 0 {
		b.WriteString(warnStyle.Render("warning: aliased terms "+strings.Join(r.Aliased, ", ")+"; standard errors undefined") + "\n")
	}
	if r.ClippedRows > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning: %d rows outside the linear predictor guard", r.ClippedRows)) + "\n")
	}

	if c := r.Contrast; c != nil {
		fmt.Fprintf(&b, "\ncontrast %s: %s -> %s\n", c.Term, strconv.FormatFloat(c.Base, 'g', -1, 64), strconv.FormatFloat(c.Treated, 'g', -1, 64))
		fmt.Fprintf(&b, "  mean rate  %.4f -> %.4f\n", c.MeanBase, c.MeanTreated)
		fmt.Fprintf(&b, "  difference %.4f, ratio %.4f\n", c.Difference, c.Ratio)
	}

	return b.String()
}

func formatFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}

	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func formatP(p *float64) string {
	switch {
	case p == nil:
		return "n/a"
	case *p < 1e-4:
		return "<1e-4"
	default:
		return strconv.FormatFloat(*p, 'f', 4, 64)
	}
}

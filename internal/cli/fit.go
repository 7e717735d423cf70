package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/countfit/dataset"
	"github.com/arloliu/countfit/design"
	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/internal/config"
	"github.com/arloliu/countfit/poisson"
	"github.com/arloliu/countfit/report"
)

type fitFlags struct {
	data        string
	config      string
	format      string
	accept      bool
	response    string
	numeric     []string
	squared     []string
	categorical []string
	noIntercept bool
	method      string
	maxIter     int
	contrast    string
	base        float64
	treated     float64
	runID       string
}

func fitCmd(a *app) *cobra.Command {
	var f fitFlags

	c := &cobra.Command{
		Use:   "fit",
		Short: "Fit a Poisson regression and print the coefficient table",
		Example: `  countfit fit --data visits.csv --response visits --numeric age --categorical arm:placebo
  countfit fit --config model.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := resolveModel(cmd, f)
			if err != nil {
				return err
			}

			rep, err := runFit(m, f.runID, a.log())
			if err != nil {
				return err
			}

			return report.Render(cmd.OutOrStdout(), rep, m.Format)
		},
	}

	c.Flags().StringVarP(&f.data, "data", "d", "", "Dataset: CSV file or snapshot (required unless set in --config)")
	c.Flags().StringVarP(&f.config, "config", "c", "", "YAML model file")
	c.Flags().StringVar(&f.format, "format", "pretty", "Output format: pretty|json|msgpack")
	c.Flags().BoolVar(&f.accept, "accept-nonconverged", false, "Report estimates even when the optimizer did not converge")
	c.Flags().StringVarP(&f.response, "response", "r", "", "Response (count) column")
	c.Flags().StringSliceVar(&f.numeric, "numeric", nil, "Numeric predictor columns")
	c.Flags().StringSliceVar(&f.squared, "squared", nil, "Numeric columns entered as squares")
	c.Flags().StringSliceVar(&f.categorical, "categorical", nil, "Categorical columns as column[:reference]")
	c.Flags().BoolVar(&f.noIntercept, "no-intercept", false, "Fit without an intercept")
	c.Flags().StringVar(&f.method, "method", "", "Optimizer: bfgs|lbfgs")
	c.Flags().IntVar(&f.maxIter, "max-iter", 0, "Optimizer iteration budget")
	c.Flags().StringVar(&f.contrast, "contrast", "", "Design column to contrast, e.g. arm[treated]")
	c.Flags().Float64Var(&f.base, "contrast-base", 0, "Base value of the contrast column")
	c.Flags().Float64Var(&f.treated, "contrast-treated", 1, "Treated value of the contrast column")
	c.Flags().StringVar(&f.runID, "run-id", "", "Run ID recorded in the report (generated when empty)")

	return c
}

// resolveModel merges the optional model file with the command-line flags.
// Flags that were set explicitly win over the file.
func resolveModel(cmd *cobra.Command, f fitFlags) (*config.Model, error) {
	var dto config.YAMLModel
	if f.config != "" {
		var err error
		if dto, err = config.ReadYAML(f.config); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("response") {
		dto.Response = f.response
	}
	if changed("numeric") {
		dto.Numeric = f.numeric
	}
	if changed("squared") {
		dto.Squared = f.squared
	}
	if changed("categorical") {
		dto.Categorical = dto.Categorical[:0]
		for _, spec := range f.categorical {
			column, reference, _ := strings.Cut(spec, ":")
			dto.Categorical = append(dto.Categorical, config.YAMLCategorical{Column: column, Reference: reference})
		}
	}
	if changed("no-intercept") {
		intercept := !f.noIntercept
		dto.Intercept = &intercept
	}
	if changed("method") {
		dto.Fit.Method = f.method
	}
	if changed("max-iter") {
		dto.Fit.MaxIterations = &f.maxIter
	}
	if changed("accept-nonconverged") {
		dto.Fit.AcceptNonConverged = f.accept
	}
	if changed("contrast") {
		dto.Contrast = &config.YAMLContrast{Term: f.contrast}
	}
	if dto.Contrast != nil && changed("contrast-base") {
		dto.Contrast.Base = &f.base
	}
	if dto.Contrast != nil && changed("contrast-treated") {
		dto.Contrast.Treated = &f.treated
	}
	if changed("format") || dto.Output.Format == "" {
		dto.Output.Format = f.format
	}

	m, err := config.MapModel(f.config, dto)
	if err != nil {
		return nil, err
	}
	if changed("data") {
		m.Data = f.data
	}
	if m.Data == "" {
		return nil, errors.New("no dataset: pass --data or set data in the model file")
	}

	return m, nil
}

// runFit loads the data, fits the model and assembles the report.
func runFit(m *config.Model, runID string, log *zap.Logger) (*report.Report, error) {
	tbl, err := dataset.Load(m.Data)
	if err != nil {
		return nil, err
	}

	mx, err := design.Build(tbl, m.Design)
	if err != nil {
		return nil, fmt.Errorf("build design: %w", err)
	}
	if mx.Dropped > 0 {
		log.Warn("dropped incomplete rows", zap.Int("dropped", mx.Dropped), zap.Int("kept", len(mx.Response)))
	}

	res, err := poisson.Fit(mx.Response, mx.X, m.Options(mx.Names, log)...)
	if err != nil {
		if poisson.IsConvergenceError(err) {
			return nil, fmt.Errorf("%w (rerun with --accept-nonconverged to report the last iterate)", err)
		}
		return nil, err
	}

	opts := []report.Option{
		report.WithModel(m.Design.Formula()),
		report.WithDropped(mx.Dropped),
	}
	if runID != "" {
		opts = append(opts, report.WithRunID(runID))
	}

	if m.Contrast != nil {
		idx, ok := mx.Index(m.Contrast.Term)
		if !ok {
			return nil, fmt.Errorf("contrast: %w: %q (design columns: %s)",
				errs.ErrUnknownColumn, m.Contrast.Term, strings.Join(mx.Names, ", "))
		}
		c, err := res.Contrast(mx.X, idx, m.Contrast.Base, m.Contrast.Treated)
		if err != nil {
			return nil, fmt.Errorf("contrast: %w", err)
		}
		opts = append(opts, report.WithContrast(c))
	}

	log.Info("fit complete",
		zap.String("model", m.Design.Formula()),
		zap.Bool("converged", res.Converged),
		zap.Stringer("inference", res.InferenceStatus))

	return report.New(res, opts...)
}

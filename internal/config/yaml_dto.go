package config

// YAMLModel is the on-disk shape of a model file.
type YAMLModel struct {
	Data        string            `yaml:"data"`
	Response    string            `yaml:"response"`
	Intercept   *bool             `yaml:"intercept"`
	Numeric     []string          `yaml:"numeric"`
	Squared     []string          `yaml:"squared"`
	Categorical []YAMLCategorical `yaml:"categorical"`
	Fit         YAMLFit           `yaml:"fit"`
	Contrast    *YAMLContrast     `yaml:"contrast"`
	Output      YAMLOutput        `yaml:"output"`
}

type YAMLCategorical struct {
	Column    string `yaml:"column"`
	Reference string `yaml:"reference"`
}

type YAMLFit struct {
	Method             string   `yaml:"method"`
	MaxIterations      *int     `yaml:"max_iterations"`
	GradientTolerance  *float64 `yaml:"gradient_tolerance"`
	PredictorBound     *float64 `yaml:"predictor_bound"`
	AcceptNonConverged bool     `yaml:"accept_nonconverged"`
}

type YAMLContrast struct {
	Term    string   `yaml:"term"`
	Base    *float64 `yaml:"base"`
	Treated *float64 `yaml:"treated"`
}

type YAMLOutput struct {
	Format string `yaml:"format"`
}

// Package dataset holds tabular input data for count regressions.
//
// A Table is an ordered set of equally long named columns. Numeric columns
// store float64 values with NaN marking a missing cell; text columns store
// strings with "" marking a missing cell. Tables come from CSV files
// (ReadCSV) or from compact binary snapshots (Encode/Decode), and feed the
// design package which turns them into design matrices.
//
// The package also provides the descriptive statistics usually inspected
// before fitting: per-group means (GroupMeans), summaries (Summarize) and
// count histograms (Histogram).
package dataset

// Package reshape turns per-entity minute samples into a long-format dataset
// with one filtered sub-dataset and one line-series descriptor per entity.
package reshape

import (
	"cmp"
	"slices"
	"strconv"
)

// Schema column names. Every chart built from a Dataset reads these columns;
// domain names such as "Question" or "Rank" are aliases kept in Config.
const (
	ColumnMinute = "minute"
	ColumnLabel  = "label"
	ColumnValue  = "value"
)

// DatasetPrefix prefixes sub-dataset identifiers.
const DatasetPrefix = "dataset_"

// Entity is one plotted series source: a question or a user.
type Entity struct {
	SortKey     float64
	TieBreakKey float64
	Label       string
	Samples     []float64
}

// Row is a single (minute, label, value) observation.
type Row struct {
	Minute int
	Label  string
	Value  float64
}

// Config describes how a chart names and labels its data.
type Config struct {
	Title      string
	XAxisName  string
	YAxisName  string
	LabelAlias string
	ValueAlias string
	// LabelPrefix, when set, replaces entity labels with the prefix followed
	// by the 1-based sorted position ("Q1", "Q2", ...).
	LabelPrefix string
}

// Encode maps series dimensions onto schema columns.
type Encode struct {
	X       string
	Y       string
	Tooltip []string
}

// SubDataset holds the rows of a single label.
type SubDataset struct {
	ID    string
	Label string
	Rows  []Row
}

// Match reports whether a row belongs to the sub-dataset.
func (s SubDataset) Match(row Row) bool {
	return row.Label == s.Label
}

// Last returns the last row of the sub-dataset.
func (s SubDataset) Last() (Row, bool) {
	if len(s.Rows) == 0 {
		return Row{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}

// Series is a line-series descriptor bound to a sub-dataset.
type Series struct {
	Name       string
	DatasetID  string
	ShowSymbol bool
	EndLabel   string
	Emphasis   string
	Encode     Encode
}

// Dataset is the reshaped output consumed by chart components.
type Dataset struct {
	Config  Config
	Columns [3]string
	Rows    []Row
	Subsets []SubDataset
	Series  []Series
}

// Empty reports whether the dataset has no rows.
func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Subset returns the sub-dataset for a label.
func (d Dataset) Subset(label string) (SubDataset, bool) {
	idx := slices.IndexFunc(d.Subsets, func(s SubDataset) bool { return s.Label == label })
	if idx < 0 {
		return SubDataset{}, false
	}
	return d.Subsets[idx], true
}

// Header returns the display names of the schema columns.
func (d Dataset) Header() [3]string {
	return [3]string{
		aliasOr(d.Config.XAxisName, ColumnMinute),
		aliasOr(d.Config.LabelAlias, ColumnLabel),
		aliasOr(d.Config.ValueAlias, ColumnValue),
	}
}

// SortEntities returns a copy of entities ordered by SortKey, then TieBreakKey.
func SortEntities(entities []Entity) []Entity {
	sorted := slices.Clone(entities)
	slices.SortStableFunc(sorted, compareEntities)
	return sorted
}

func compareEntities(a, b Entity) int {
	if c := cmp.Compare(a.SortKey, b.SortKey); c != 0 {
		return c
	}
	return cmp.Compare(a.TieBreakKey, b.TieBreakKey)
}

// Reshape flattens entities into long-format rows and derives one sub-dataset
// and one series per distinct label.
func Reshape(cfg Config, entities []Entity) Dataset {
	ds := Dataset{
		Config:  cfg,
		Columns: [3]string{ColumnMinute, ColumnLabel, ColumnValue},
	}

	sorted := SortEntities(entities)
	total := 0
	for _, e := range sorted {
		total += len(e.Samples)
	}
	ds.Rows = make([]Row, 0, total)

	for i, e := range sorted {
		label := e.Label
		if cfg.LabelPrefix != "" {
			label = cfg.LabelPrefix + strconv.Itoa(i+1)
		}
		for j := 1; j <= len(e.Samples); j++ {
			ds.Rows = append(ds.Rows, Row{Minute: j, Label: label, Value: e.Samples[j-1]})
		}
	}

	ds.Subsets = filterByLabel(ds.Rows)
	ds.Series = make([]Series, 0, len(ds.Subsets))
	for _, subset := range ds.Subsets {
		ds.Series = append(ds.Series, newSeries(subset))
	}

	return ds
}

func filterByLabel(rows []Row) []SubDataset {
	var labels []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seen[row.Label]; ok {
			continue
		}
		seen[row.Label] = struct{}{}
		labels = append(labels, row.Label)
	}

	subsets := make([]SubDataset, 0, len(labels))
	for _, label := range labels {
		subset := SubDataset{ID: DatasetPrefix + label, Label: label}
		for _, row := range rows {
			if subset.Match(row) {
				subset.Rows = append(subset.Rows, row)
			}
		}
		// Merged duplicate labels interleave minutes; keep them ascending.
		slices.SortStableFunc(subset.Rows, func(a, b Row) int { return cmp.Compare(a.Minute, b.Minute) })
		subsets = append(subsets, subset)
	}
	return subsets
}

func newSeries(subset SubDataset) Series {
	s := Series{
		Name:      subset.Label,
		DatasetID: subset.ID,
		Emphasis:  "series",
		Encode: Encode{
			X:       ColumnMinute,
			Y:       ColumnValue,
			Tooltip: []string{ColumnValue},
		},
	}
	if last, ok := subset.Last(); ok {
		s.EndLabel = EndLabel(last)
	}
	return s
}

// EndLabel formats the end-of-line label of a series.
func EndLabel(row Row) string {
	return row.Label + ": " + FormatValue(row.Value)
}

// FormatValue renders a sample value without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func aliasOr(alias, fallback string) string {
	if alias == "" {
		return fallback
	}
	return alias
}

package predictor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Artifact kinds
const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
)

// Tree aggregation modes
const (
	AggregateSum  = "sum"  // gradient boosting
	AggregateMean = "mean" // random forest
)

// Artifact is the on-disk model description
type Artifact struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Features []string `json:"features" yaml:"features"`

	// linear
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	Coefficients []float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`

	// tree_ensemble
	BaseScore float64 `json:"base_score,omitempty" yaml:"base_score,omitempty"`
	Aggregate string  `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Trees     []Tree  `json:"trees,omitempty" yaml:"trees,omitempty"`
}

// Tree is a binary regression tree stored as a flat node list rooted at index 0
type Tree struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Node is either a split (Feature/Threshold/Left/Right) or a leaf (Leaf set).
// Samples with feature <= Threshold go Left.
type Node struct {
	Feature   int      `json:"feature,omitempty" yaml:"feature,omitempty"`
	Threshold float64  `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Left      int      `json:"left,omitempty" yaml:"left,omitempty"`
	Right     int      `json:"right,omitempty" yaml:"right,omitempty"`
	Leaf      *float64 `json:"leaf,omitempty" yaml:"leaf,omitempty"`
}

// Load reads and validates a model artifact.
// The format is chosen from the extension: .yaml/.yml are YAML, anything else JSON.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var a Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&a)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&a)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedModel, path, err)
	}

	m, err := a.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Build validates the artifact and returns a ready model
func (a Artifact) Build() (*Model, error) {
	if err := a.checkFeatures(); err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindLinear:
		if len(a.Coefficients) != NumFeatures {
			return nil, fmt.Errorf("%w: linear model has %d coefficients, want %d",
				ErrIncompatibleModel, len(a.Coefficients), NumFeatures)
		}
		lm := &linear{intercept: a.Intercept}
		copy(lm.coef[:], a.Coefficients)
		return &Model{kind: a.Kind, reg: lm}, nil

	case KindTreeEnsemble:
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("%w: tree ensemble has no trees", ErrMalformedModel)
		}
		agg := a.Aggregate
		if agg == "" {
			agg = AggregateSum
		}
		if agg != AggregateSum && agg != AggregateMean {
			return nil, fmt.Errorf("%w: unknown aggregate %q", ErrMalformedModel, a.Aggregate)
		}
		for i, t := range a.Trees {
			if err := t.validate(); err != nil {
				return nil, fmt.Errorf("%w: tree %d: %v", ErrMalformedModel, i, err)
			}
		}
		return &Model{kind: a.Kind, reg: &ensemble{base: a.BaseScore, mean: agg == AggregateMean, trees: a.Trees}}, nil

	case "":
		return nil, fmt.Errorf("%w: missing kind", ErrMalformedModel)
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrIncompatibleModel, a.Kind)
	}
}

// checkFeatures verifies the artifact was trained on the expected columns in order
func (a Artifact) checkFeatures() error {
	if len(a.Features) != NumFeatures {
		return fmt.Errorf("%w: artifact has %d features, want %d",
			ErrIncompatibleModel, len(a.Features), NumFeatures)
	}
	for i, name := range a.Features {
		if !strings.EqualFold(name, FeatureNames[i]) {
			return fmt.Errorf("%w: feature %d is %q, want %q",
				ErrIncompatibleModel, i, name, FeatureNames[i])
		}
	}
	return nil
}

// validate checks node references. Children must come after their parent,
// which also rules out cycles.
func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf != nil {
			continue
		}
		if n.Feature < 0 || n.Feature >= NumFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, n.Left)
		}
		if n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, n.Right)
		}
	}
	return nil
}

type linear struct {
	intercept float64
	coef      [NumFeatures]float64
}

func (l *linear) predict(f Features) float64 {
	y := l.intercept
	for i, c := range l.coef {
		y += c * f[i]
	}
	return y
}

type ensemble struct {
	base  float64
	mean  bool
	trees []Tree
}

func (e *ensemble) predict(f Features) float64 {
	var sum float64
	for _, t := range e.trees {
		sum += t.eval(f)
	}
	if e.mean {
		sum /= float64(len(e.trees))
	}
	return e.base + sum
}

func (t Tree) eval(f Features) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf != nil {
			return *n.Leaf
		}
		if f[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package model

import (
	"fmt"
	"math"
)

// Regressor is a loaded demand model. Implementations are immutable and safe
// for concurrent use.
type Regressor interface {
	Name() string
	Kind() Kind
	FeatureNames() []string
	Predict(x []float64) (float64, error)
}

// New builds a regressor from a validated artifact.
func New(a *Artifact) (Regressor, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	base := baseModel{
		name:     a.Name,
		kind:     a.Kind,
		features: append([]string(nil), a.FeatureNames...),
	}

	switch a.Kind {
	case KindLinear:
		return &linear{
			baseModel:    base,
			intercept:    a.Intercept,
			coefficients: append([]float64(nil), a.Coefficients...),
		}, nil
	case KindForest:
		return &ensemble{baseModel: base, trees: copyTrees(a.Trees), scale: 1 / float64(len(a.Trees))}, nil
	case KindGBM:
		return &ensemble{baseModel: base, trees: copyTrees(a.Trees), offset: a.BaseScore, scale: a.LearningRate}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, a.Kind)
}

type baseModel struct {
	name     string
	kind     Kind
	features []string
}

func (b baseModel) Name() string { return b.name }
func (b baseModel) Kind() Kind   { return b.kind }

func (b baseModel) FeatureNames() []string {
	return append([]string(nil), b.features...)
}

func (b baseModel) check(x []float64) error {
	if len(x) != len(b.features) {
		return fmt.Errorf("expected %d features, got %d", len(b.features), len(x))
	}
	return nil
}

type linear struct {
	baseModel
	intercept    float64
	coefficients []float64
}

func (m *linear) Predict(x []float64) (float64, error) {
	if err := m.check(x); err != nil {
		return 0, err
	}
	y := m.intercept
	for i, c := range m.coefficients {
		y += c * x[i]
	}
	return finite(y)
}

// ensemble covers both forest (mean) and gradient boosting (offset + lr*sum).
type ensemble struct {
	baseModel
	trees  []Tree
	offset float64
	scale  float64
}

func (m *ensemble) Predict(x []float64) (float64, error) {
	if err := m.check(x); err != nil {
		return 0, err
	}
	var sum float64
	for i := range m.trees {
		sum += m.trees[i].eval(x)
	}
	return finite(m.offset + m.scale*sum)
}

func (t *Tree) eval(x []float64) float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func finite(y float64) (float64, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("model produced non-finite output %v", y)
	}
	return y, nil
}

func copyTrees(src []Tree) []Tree {
	out := make([]Tree, len(src))
	for i, t := range src {
		out[i] = Tree{Nodes: append([]Node(nil), t.Nodes...)}
	}
	return out
}

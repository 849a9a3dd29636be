// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package model

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Kind names a regressor family.
type Kind string

const (
	KindLinear Kind = "linear"
	KindForest Kind = "forest"
	KindGBM    Kind = "gbm"
)

var (
	// ErrUnsupportedKind is returned for an artifact kind with no regressor.
	ErrUnsupportedKind = errors.New("unsupported model kind")

	// ErrInvalidArtifact is returned when an artifact is structurally broken.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

// Node is one node of a binary regression tree. A node is a leaf when Left
// is negative.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a flat array of nodes rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Artifact is the JSON export of a trained regressor.
type Artifact struct {
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Intercept    float64   `json:"intercept,omitempty"`
	Coefficients []float64 `json:"coefficients,omitempty"`
	LearningRate float64   `json:"learning_rate,omitempty"`
	BaseScore    float64   `json:"base_score,omitempty"`
	Trees        []Tree    `json:"trees,omitempty"`
}

// ReadArtifact decodes an artifact from path without validating it.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes an artifact from JSON bytes.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return &a, nil
}

// Validate checks that the artifact can be evaluated.
func (a *Artifact) Validate() error {
	n := len(a.FeatureNames)
	if n == 0 {
		return fmt.Errorf("%w: no feature_names", ErrInvalidArtifact)
	}

	seen := make(map[string]struct{}, n)
	for _, name := range a.FeatureNames {
		if name == "" {
			return fmt.Errorf("%w: empty feature name", ErrInvalidArtifact)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = struct{}{}
	}

	switch a.Kind {
	case KindLinear:
		if len(a.Coefficients) != n {
			return fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidArtifact, len(a.Coefficients), n)
		}
	case KindForest, KindGBM:
		if len(a.Trees) == 0 {
			return fmt.Errorf("%w: %s model has no trees", ErrInvalidArtifact, a.Kind)
		}
		for i, t := range a.Trees {
			if err := t.validate(n); err != nil {
				return fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, a.Kind)
	}
	return nil
}

func (t Tree) validate(features int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, node := range t.Nodes {
		if node.Left < 0 {
			continue
		}
		if node.Feature < 0 || node.Feature >= features {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.Feature)
		}
		// Children must point forward, which also rules out cycles.
		if node.Left <= i || node.Left >= len(t.Nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, node.Left)
		}
		if node.Right <= i || node.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, node.Right)
		}
	}
	return nil
}

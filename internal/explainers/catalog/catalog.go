// Package catalog resolves explainer names from the command line.
package catalog

import (
	"fmt"

	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/explainers/consumerlag"
	"github.com/ivlev/scene2video/internal/explainers/dlq"
	"github.com/ivlev/scene2video/internal/explainers/indexdesign"
	"github.com/ivlev/scene2video/internal/explainers/oversharding"
	"github.com/ivlev/scene2video/internal/explainers/scaling"
)

// All selects every explainer
const All = "all"

// Names lists explainers in render order
func Names() []string {
	return []string{dlq.Name, consumerlag.Name, indexdesign.Name, scaling.Name, oversharding.Name}
}

// New creates an explainer by name
func New(name string) (explainers.Explainer, error) {
	switch name {
	case dlq.Name:
		return dlq.New(), nil
	case consumerlag.Name:
		return consumerlag.New(), nil
	case indexdesign.Name:
		return indexdesign.New(), nil
	case scaling.Name:
		return scaling.New(), nil
	case oversharding.Name:
		return oversharding.New(), nil
	default:
		return nil, fmt.Errorf("unknown explainer: %s (available: %v, %s)", name, Names(), All)
	}
}

// Select expands a -video argument into explainers
func Select(name string) ([]explainers.Explainer, error) {
	if name != All {
		e, err := New(name)
		if err != nil {
			return nil, err
		}
		return []explainers.Explainer{e}, nil
	}

	var list []explainers.Explainer
	for _, n := range Names() {
		e, err := New(n)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, nil
}

/*
 * protocol_test.go, part of gobands.
 *
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goBands is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package gen

import (
	"strings"
	"testing"

	"github.com/rmera/gobands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//structureOf builds a cubic test structure with one site per given kind.
func structureOf(t *testing.T, kinds ...bands.Kind) *bands.Structure {
	t.Helper()
	cell := mat.NewDense(3, 3, []float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	sites := make([]bands.Site, 0, len(kinds))
	for i, k := range kinds {
		sites = append(sites, bands.Site{Kind: k.Name, Coords: [3]float64{float64(i), 0, 0}})
	}
	S, err := bands.NewStructure(cell, kinds, sites)
	require.NoError(t, err)
	return S
}

func kind(symbol string) bands.Kind {
	return bands.Kind{Name: symbol, Symbol: symbol}
}

func TestLoadRegistry(t *testing.T) {
	const registry = `
quick:
  parameters:
    mesh-cutoff: '150 Ry'
  basis:
    pao-basis-size: 'DZ'
  pseudo_family: 'FamA'
  kpoints:
    distance: 0.2
good:
  parameters: {}
  basis: {}
  pseudo_family: 'FamB'
`
	R, err := LoadRegistry(strings.NewReader(registry), "quick")
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "quick"}, R.Names())
	assert.Equal(t, "quick", R.Default())
	assert.True(t, R.Has("good"))
	assert.False(t, R.Has("bad"))
	assert.Equal(t, []string{"FamA", "FamB"}, R.Families())
	p, err := R.Get("quick")
	require.NoError(t, err)
	assert.Equal(t, "FamA", p.PseudoFamily)
	_, err = R.Get("bad")
	assert.Error(t, err)
}

func TestLoadRegistryInvalid(t *testing.T) {
	cases := []struct {
		name     string
		registry string
		def      string
	}{
		{"missing parameters", "only:\n  basis: {}\n  pseudo_family: 'F'\n", "only"},
		{"missing basis", "only:\n  parameters: {}\n  pseudo_family: 'F'\n", "only"},
		{"missing pseudo_family", "only:\n  parameters: {}\n  basis: {}\n", "only"},
		{"mesh-cutoff without units", "only:\n  parameters:\n    mesh-cutoff: '200'\n  basis: {}\n  pseudo_family: 'F'\n", "only"},
		{"mesh-cutoff non numeric", "only:\n  parameters:\n    mesh-cutoff: 'big Ry'\n  basis: {}\n  pseudo_family: 'F'\n", "only"},
		{"undefined default", "only:\n  parameters: {}\n  basis: {}\n  pseudo_family: 'F'\n", "other"},
		{"non-positive kpoint distance", "only:\n  parameters: {}\n  basis: {}\n  pseudo_family: 'F'\n  kpoints:\n    distance: 0.0\n", "only"},
		{"empty registry", "", "only"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadRegistry(strings.NewReader(c.registry), c.def)
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedRegistry(t *testing.T) {
	g, err := NewSiestaGenerator()
	require.NoError(t, err)
	assert.Equal(t, []string{"fast", "moderate", "precise"}, g.Protocols())
	assert.Equal(t, "moderate", g.DefaultProtocol())
}

const heuristicRegistry = `
only:
  parameters:
    xc-functional: 'GGA'
    mesh-cutoff: '200 Ry'
  basis:
    pao-basis-size: 'DZP'
  pseudo_family: 'F'
  atomic_heuristics:
    H:
      parameters:
        mesh-cutoff: '250 Ry'
    Fe:
      parameters:
        mesh-cutoff: '150 Ry'
      basis:
        split-tail-norm: true
        polarization: 'non-perturbative'
        size: 'TZP'
        pao-block: "Fe 2\n n=3 2 2"
`

func TestParametersHeuristics(t *testing.T) {
	R, err := LoadRegistry(strings.NewReader(heuristicRegistry), "only")
	require.NoError(t, err)
	p, err := R.Get("only")
	require.NoError(t, err)

	//H raises the cutoff, the lower Fe one is ignored
	params, err := p.parameters(structureOf(t, kind("H"), kind("Fe")))
	require.NoError(t, err)
	assert.Equal(t, "250 Ry", params["mesh-cutoff"])
	assert.Equal(t, "GGA", params["xc-functional"])

	//no applicable heuristics, the global value stands
	params, err = p.parameters(structureOf(t, kind("Si")))
	require.NoError(t, err)
	assert.Equal(t, "200 Ry", params["mesh-cutoff"])

	//the protocol's own map must not be touched by the merge
	assert.Equal(t, "200 Ry", p.Parameters["mesh-cutoff"])
}

func TestParametersHeuristicsNoGlobalCutoff(t *testing.T) {
	const registry = `
only:
  parameters: {}
  basis: {}
  pseudo_family: 'F'
  atomic_heuristics:
    H:
      parameters:
        mesh-cutoff: '250 Ry'
`
	R, err := LoadRegistry(strings.NewReader(registry), "only")
	require.NoError(t, err)
	p, err := R.Get("only")
	require.NoError(t, err)
	params, err := p.parameters(structureOf(t, kind("H")))
	require.NoError(t, err)
	assert.Equal(t, "250 Ry", params["mesh-cutoff"])

	params, err = p.parameters(structureOf(t, kind("Si")))
	require.NoError(t, err)
	_, ok := params["mesh-cutoff"]
	assert.False(t, ok)
}

func TestParametersHeuristicsBadCutoff(t *testing.T) {
	//A malformed heuristic only fails when an affected element shows up.
	const registry = `
only:
  parameters: {}
  basis: {}
  pseudo_family: 'F'
  atomic_heuristics:
    H:
      parameters:
        mesh-cutoff: 'nonsense'
`
	R, err := LoadRegistry(strings.NewReader(registry), "only")
	require.NoError(t, err)
	p, err := R.Get("only")
	require.NoError(t, err)
	_, err = p.parameters(structureOf(t, kind("H")))
	assert.Error(t, err)
	_, err = p.parameters(structureOf(t, kind("Si")))
	assert.NoError(t, err)
}

func TestBasisHeuristics(t *testing.T) {
	R, err := LoadRegistry(strings.NewReader(heuristicRegistry), "only")
	require.NoError(t, err)
	p, err := R.Get("only")
	require.NoError(t, err)

	basis, err := p.basis(structureOf(t, kind("Fe"), kind("H")))
	require.NoError(t, err)
	assert.Equal(t, "DZP", basis["pao-basis-size"])
	assert.Equal(t, true, basis["pao-split-tail-norm"])
	assert.Equal(t, "\n  Fe  non-perturbative \n%endblock paopolarizationscheme", basis["%block pao-polarization-scheme"])
	assert.Equal(t, "\n  Fe  TZP \n%endblock paobasissizes", basis["%block pao-basis-sizes"])
	assert.Equal(t, "\nFe 2\n n=3 2 2 \n%endblock pao-basis", basis["%block pao-basis"])

	//no applicable heuristics: no cards
	basis, err = p.basis(structureOf(t, kind("Si")))
	require.NoError(t, err)
	_, ok := basis["%block pao-basis"]
	assert.False(t, ok)
	_, ok = basis["pao-split-tail-norm"]
	assert.False(t, ok)
}

func TestBasisHeuristicsRenamedKind(t *testing.T) {
	R, err := LoadRegistry(strings.NewReader(heuristicRegistry), "only")
	require.NoError(t, err)
	p, err := R.Get("only")
	require.NoError(t, err)

	//Two kinds of the same element: each gets its own entry, and the
	//pao block text is rewritten for the kind name.
	S := structureOf(t, bands.Kind{Name: "Fe1", Symbol: "Fe"}, bands.Kind{Name: "Fe2", Symbol: "Fe"})
	basis, err := p.basis(S)
	require.NoError(t, err)
	assert.Equal(t, "\n  Fe1  non-perturbative \n  Fe2  non-perturbative \n%endblock paopolarizationscheme", basis["%block pao-polarization-scheme"])
	assert.Equal(t, "\nFe1 2\n n=3 2 2 \nFe2 2\n n=3 2 2 \n%endblock pao-basis", basis["%block pao-basis"])
}

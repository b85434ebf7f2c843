/*
 * protocol.go, part of gobands.
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
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/gobands"
	"gopkg.in/yaml.v3"
)

//go:embed protocols/siesta.yml
var siestaProtocols []byte

//MeshSpec is the k-point mesh prescription of a protocol: a target density
//expressed as a maximum spacing between k-points, plus an optional offset.
type MeshSpec struct {
	Distance float64   `yaml:"distance"`
	Offset   []float64 `yaml:"offset"`
}

//Heuristic is a per-element override rule applied on top of a protocol's
//defaults when the element is present in the structure.
type Heuristic struct {
	Parameters map[string]any `yaml:"parameters"`
	Basis      map[string]any `yaml:"basis"`
}

//Protocol is a named bundle of default simulation parameters: the numeric
//and textual parameters, the basis prescription, the pseudopotential family
//and, optionally, a k-point mesh density and per-element heuristics.
type Protocol struct {
	Description      string               `yaml:"description"`
	Parameters       map[string]any       `yaml:"parameters"`
	Basis            map[string]any       `yaml:"basis"`
	PseudoFamily     string               `yaml:"pseudo_family"`
	Kpoints          *MeshSpec            `yaml:"kpoints"`
	AtomicHeuristics map[string]Heuristic `yaml:"atomic_heuristics"`
}

//Registry holds a set of named protocols plus the name of the default one.
type Registry struct {
	protocols map[string]Protocol
	def       string
}

//LoadRegistry reads a YAML protocol registry from r and validates it. The
//def protocol must be among the ones defined. Each protocol must define
//parameters, basis and pseudo_family; a mesh-cutoff parameter, when present,
//must be of the "value units" form.
func LoadRegistry(r io.Reader, def string) (*Registry, error) {
	protocols := make(map[string]Protocol)
	if err := yaml.NewDecoder(r).Decode(&protocols); err != nil {
		return nil, fmt.Errorf("LoadRegistry: %w", err)
	}
	R := &Registry{protocols: protocols, def: def}
	if err := R.validate(); err != nil {
		return nil, fmt.Errorf("invalid protocol registry: %w", err)
	}
	return R, nil
}

func (R *Registry) validate() error {
	if len(R.protocols) == 0 {
		return fmt.Errorf("no protocols defined")
	}
	if _, ok := R.protocols[R.def]; !ok {
		return fmt.Errorf("default protocol %q is not defined", R.def)
	}
	for name, p := range R.protocols {
		if p.Parameters == nil {
			return fmt.Errorf("protocol %q does not define the mandatory key parameters", name)
		}
		if p.Basis == nil {
			return fmt.Errorf("protocol %q does not define the mandatory key basis", name)
		}
		if p.PseudoFamily == "" {
			return fmt.Errorf("protocol %q does not define the mandatory key pseudo_family", name)
		}
		if mc, ok := p.Parameters["mesh-cutoff"]; ok {
			if _, _, err := splitValueUnits(mc); err != nil {
				return fmt.Errorf("wrong format of mesh-cutoff in parameters of protocol %q: %w", name, err)
			}
		}
		if p.Kpoints != nil && p.Kpoints.Distance <= 0 {
			return fmt.Errorf("protocol %q defines a non-positive k-point distance", name)
		}
	}
	return nil
}

//Names returns the sorted names of the protocols in the registry.
func (R *Registry) Names() []string {
	names := make([]string, 0, len(R.protocols))
	for n := range R.protocols {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

//Default returns the name of the default protocol.
func (R *Registry) Default() string {
	return R.def
}

//Has returns whether the registry defines a protocol with the given name.
func (R *Registry) Has(name string) bool {
	_, ok := R.protocols[name]
	return ok
}

//Get returns the protocol with the given name.
func (R *Registry) Get(name string) (Protocol, error) {
	p, ok := R.protocols[name]
	if !ok {
		return Protocol{}, fmt.Errorf("Get: no protocol named %q", name)
	}
	return p, nil
}

//Families returns the sorted list of distinct pseudopotential families
//referenced by the protocols in the registry.
func (R *Registry) Families() []string {
	seen := make(map[string]bool)
	ret := []string{}
	for _, p := range R.protocols {
		if !seen[p.PseudoFamily] {
			seen[p.PseudoFamily] = true
			ret = append(ret, p.PseudoFamily)
		}
	}
	sort.Strings(ret)
	return ret
}

//splitValueUnits splits a "value units" string, such as the mesh-cutoff
//parameter ("250 Ry"), into its numeric value and its units.
func splitValueUnits(v any) (float64, string, error) {
	s, ok := v.(string)
	if !ok {
		return 0, "", fmt.Errorf("value and units are required, got %v", v)
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("value and units are required, got %q", s)
	}
	val, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed value in %q: %w", s, err)
	}
	return val, fields[1], nil
}

//parameters merges the global parameters of the protocol with the
//per-element heuristics applicable to the structure. The mesh-cutoff ends up
//as the maximum over the global value and every applicable per-element
//value; the units come from the global value when one is set, otherwise
//from the first heuristic supplying one.
func (p Protocol) parameters(S *bands.Structure) (map[string]any, error) {
	params := make(map[string]any, len(p.Parameters))
	for k, v := range p.Parameters {
		params[k] = v
	}
	if p.AtomicHeuristics == nil {
		return params, nil
	}
	var meshcut float64
	var units string
	var haveMeshcut bool
	if mc, ok := params["mesh-cutoff"]; ok {
		var err error
		meshcut, units, err = splitValueUnits(mc)
		if err != nil {
			return nil, fmt.Errorf("wrong mesh-cutoff value in protocol: %w", err)
		}
		haveMeshcut = true
	}
	for _, kind := range S.Kinds() {
		h, ok := p.AtomicHeuristics[kind.Symbol]
		if !ok || h.Parameters == nil {
			continue
		}
		mc, ok := h.Parameters["mesh-cutoff"]
		if !ok {
			continue
		}
		custcut, custunits, err := splitValueUnits(mc)
		if err != nil {
			return nil, fmt.Errorf("wrong mesh-cutoff value for heuristic %s: %w", kind.Symbol, err)
		}
		if !haveMeshcut {
			meshcut = custcut
			units = custunits
			haveMeshcut = true
		} else if custcut > meshcut {
			meshcut = custcut
		}
	}
	if haveMeshcut {
		params["mesh-cutoff"] = fmt.Sprintf("%v %s", meshcut, units)
	}
	return params, nil
}

//basis merges the basis prescription of the protocol with the per-element
//basis heuristics applicable to the structure. The polarization, size and
//pao-block overrides are accumulated per kind and rendered as the
//corresponding Siesta block cards.
func (p Protocol) basis(S *bands.Structure) (map[string]any, error) {
	basis := make(map[string]any, len(p.Basis))
	for k, v := range p.Basis {
		basis[k] = v
	}
	if p.AtomicHeuristics == nil {
		return basis, nil
	}
	type entry struct{ kind, value string }
	var pol, size, paoBlock []entry
	for _, kind := range S.Kinds() {
		h, ok := p.AtomicHeuristics[kind.Symbol]
		if !ok || h.Basis == nil {
			continue
		}
		if _, ok := h.Basis["split-tail-norm"]; ok {
			basis["pao-split-tail-norm"] = true
		}
		if v, ok := h.Basis["polarization"]; ok {
			pol = append(pol, entry{kind.Name, fmt.Sprintf("%v", v)})
		}
		if v, ok := h.Basis["size"]; ok {
			size = append(size, entry{kind.Name, fmt.Sprintf("%v", v)})
		}
		if v, ok := h.Basis["pao-block"]; ok {
			block := fmt.Sprintf("%v", v)
			//A renamed kind keeps its own pao block, under the kind name.
			if kind.Name != kind.Symbol {
				block = strings.ReplaceAll(block, kind.Symbol, kind.Name)
			}
			paoBlock = append(paoBlock, entry{kind.Name, block})
		}
	}
	if len(pol) > 0 {
		card := "\n"
		for _, e := range pol {
			card += fmt.Sprintf("  %s  %s \n", e.kind, e.value)
		}
		card += "%endblock paopolarizationscheme"
		basis["%block pao-polarization-scheme"] = card
	}
	if len(size) > 0 {
		card := "\n"
		for _, e := range size {
			card += fmt.Sprintf("  %s  %s \n", e.kind, e.value)
		}
		card += "%endblock paobasissizes"
		basis["%block pao-basis-sizes"] = card
	}
	if len(paoBlock) > 0 {
		card := "\n"
		for _, e := range paoBlock {
			card += fmt.Sprintf("%s \n", e.value)
		}
		card += "%endblock pao-basis"
		basis["%block pao-basis"] = card
	}
	return basis, nil
}

/*
 * siesta.go, part of gobands.
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
	"bytes"
	"fmt"

	"github.com/rmera/gobands"
	"go.uber.org/zap"
)

//SiestaProcess is the workflow-engine process type launched by the Siesta
//generator.
const SiestaProcess = "siesta.bands"

//SiestaGenerator assembles band-structure requests for the Siesta code. It
//resolves a protocol from its registry, applies the per-element heuristics
//for the structure at hand and, unless an explicit k-point path is given,
//obtains one from the SeeK-Path service.
type SiestaGenerator struct {
	registry *Registry
	finder   PathFinder
	families []string
	log      *zap.Logger
}

//NewSiestaGenerator returns a SiestaGenerator with the built-in protocol
//registry, which is validated here, at construction time. The known
//pseudopotential families default to the ones the registry references, and
//the path finder to the external SeeK-Path helper.
func NewSiestaGenerator() (*SiestaGenerator, error) {
	registry, err := LoadRegistry(bytes.NewReader(siestaProtocols), "moderate")
	if err != nil {
		return nil, fmt.Errorf("NewSiestaGenerator: %w", err)
	}
	g := new(SiestaGenerator)
	g.registry = registry
	g.families = registry.Families()
	g.finder = NewSeekPath()
	g.log = zap.NewNop()
	return g, nil
}

//SetLogger sets the logger used for the non-fatal warnings the generator
//emits. The default logger discards them.
func (g *SiestaGenerator) SetLogger(log *zap.Logger) {
	g.log = log
}

//SetPathFinder sets the PathFinder used when no explicit band k-points are
//supplied.
func (g *SiestaGenerator) SetPathFinder(finder PathFinder) {
	g.finder = finder
}

//SetFamilies sets the pseudopotential families the generator accepts. A
//protocol referencing a family outside this list makes Builder fail.
func (g *SiestaGenerator) SetFamilies(families []string) {
	g.families = append([]string{}, families...)
}

//SetRegistry replaces the protocol registry. The known families are reset to
//the ones the new registry references.
func (g *SiestaGenerator) SetRegistry(registry *Registry) {
	g.registry = registry
	g.families = registry.Families()
}

//Protocols returns the names of the protocols in the registry.
func (g *SiestaGenerator) Protocols() []string {
	return g.registry.Names()
}

//DefaultProtocol returns the name of the protocol used when the input does
//not select one.
func (g *SiestaGenerator) DefaultProtocol() string {
	return g.registry.Default()
}

//Builder assembles the Siesta band-structure request for the input in. The
//structure is required. If no explicit band k-points are given, the
//SeeK-Path service determines the path and the structure of the request
//becomes the primitive one; in that case a restart is rejected, since the
//parent files no longer match the structure.
func (g *SiestaGenerator) Builder(in *Input) (*Builder, error) {
	if in == nil || in.Structure == nil {
		return nil, fmt.Errorf("SiestaGenerator: an input with a structure is required")
	}
	if err := in.Structure.Corrupted(); err != nil {
		return nil, fmt.Errorf("SiestaGenerator: %w", err)
	}
	spin := in.SpinType
	if spin == "" {
		spin = bands.SpinNone
	}
	if spin != bands.SpinNone && spin != bands.SpinCollinear {
		return nil, fmt.Errorf("SiestaGenerator: spin type %q not supported, only %q and %q are", spin, bands.SpinNone, bands.SpinCollinear)
	}
	electronic := in.ElectronicType
	if electronic == "" {
		electronic = bands.ElectronicMetal
	}
	if electronic != bands.ElectronicMetal && electronic != bands.ElectronicInsulator {
		return nil, fmt.Errorf("SiestaGenerator: electronic type %q not supported, only %q and %q are", electronic, bands.ElectronicMetal, bands.ElectronicInsulator)
	}
	eng, err := in.Engines.Bands()
	if err != nil {
		return nil, err
	}
	if eng.Code == "" {
		return nil, fmt.Errorf("SiestaGenerator: the bands engine does not name a code")
	}
	name := in.Protocol
	if name == "" {
		name = g.registry.Default()
	}
	if !g.registry.Has(name) {
		g.log.Warn("no protocol implemented with the given name, using the default",
			zap.String("protocol", name), zap.String("default", g.registry.Default()))
		name = g.registry.Default()
	}
	proto, err := g.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if !isInString(g.families, proto.PseudoFamily) {
		return nil, fmt.Errorf("SiestaGenerator: protocol %q requires the pseudo family %q, which is not among the known ones", name, proto.PseudoFamily)
	}

	//K-points for the bands. SeeK-Path may replace the structure by its
	//primitive equivalent, which makes any prior density matrix unusable.
	structure := in.Structure
	var path *bands.Path
	if in.BandsKpoints == nil {
		if in.ParentFolder != nil {
			return nil, ErrRestartConflict
		}
		if g.finder == nil {
			return nil, fmt.Errorf("SiestaGenerator: no path finder available and no explicit band k-points given")
		}
		structure, path, err = g.finder.ExplicitPath(structure, *in.seekPathParams())
		if err != nil {
			return nil, fmt.Errorf("SiestaGenerator: %w", err)
		}
	} else {
		path = in.BandsKpoints.Copy()
		if err := path.Corrupted(); err != nil {
			return nil, fmt.Errorf("SiestaGenerator: %w", err)
		}
	}

	//Mesh for the self-consistent part, from the protocol's density.
	var mesh *bands.Mesh
	if proto.Kpoints != nil {
		mesh, err = bands.NewMeshFromDensity(structure, proto.Kpoints.Distance, proto.Kpoints.Offset)
		if err != nil {
			return nil, fmt.Errorf("SiestaGenerator: %w", err)
		}
	}

	//Parameters, including the spin options.
	params, err := proto.parameters(structure)
	if err != nil {
		return nil, fmt.Errorf("SiestaGenerator: protocol %q: %w", name, err)
	}
	if spin == bands.SpinCollinear {
		params["spin"] = "polarized"
	}
	if in.MagnetizationPerSite != nil {
		switch spin {
		case bands.SpinNone:
			g.log.Warn("the magnetization per site will be ignored as the spin type is none")
		case bands.SpinCollinear:
			card := "\n"
			for i, magn := range in.MagnetizationPerSite {
				card += fmt.Sprintf(" %d %v \n", i+1, magn)
			}
			card += "%endblock dm-init-spin"
			params["%block dm-init-spin"] = card
		}
	}

	basis, err := proto.basis(structure)
	if err != nil {
		return nil, fmt.Errorf("SiestaGenerator: protocol %q: %w", name, err)
	}
	options, err := DecodeJobOptions(eng.Options)
	if err != nil {
		return nil, fmt.Errorf("SiestaGenerator: %w", err)
	}

	b := newBuilder(SiestaProcess, eng.Code)
	b.Structure = structure
	b.Parameters = params
	b.Basis = basis
	b.Kpoints = mesh
	b.BandsKpoints = path
	b.PseudoFamily = proto.PseudoFamily
	b.Options = options
	b.ParentFolder = in.ParentFolder
	return b, nil
}

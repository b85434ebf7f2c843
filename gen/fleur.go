/*
 * fleur.go, part of gobands.
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
	"fmt"

	"go.uber.org/zap"
)

//FleurProcess is the workflow-engine process type launched by the Fleur
//generator.
const FleurProcess = "fleur.banddos"

//FleurCalcProcess is the process type of the plain Fleur calculation whose
//output folder a bands run restarts from.
const FleurCalcProcess = "fleur.fleur"

//FleurGenerator assembles band-structure requests for the Fleur code. Fleur
//keeps everything needed for a bands run in the output of the preceding
//self-consistent calculation, so this generator is restart-only: it takes a
//parent folder and an explicit k-point path, and inherits the code and job
//options from the parent calculation unless the input overrides them.
type FleurGenerator struct {
	log *zap.Logger
}

//NewFleurGenerator returns a FleurGenerator.
func NewFleurGenerator() *FleurGenerator {
	g := new(FleurGenerator)
	g.log = zap.NewNop()
	return g
}

//SetLogger sets the logger used for the non-fatal warnings the generator
//emits. The default logger discards them.
func (g *FleurGenerator) SetLogger(log *zap.Logger) {
	g.log = log
}

//Protocols returns nil: the Fleur generator does not use protocols, all its
//numerical settings come from the parent calculation.
func (g *FleurGenerator) Protocols() []string {
	return nil
}

//DefaultProtocol returns the empty string; see Protocols.
func (g *FleurGenerator) DefaultProtocol() string {
	return ""
}

//Builder assembles the Fleur band-structure request for the input in. The
//parent folder and the explicit band k-points are required; the parent must
//have been created by a Fleur calculation. The structure, if given, is
//ignored: Fleur reads it from the parent files.
func (g *FleurGenerator) Builder(in *Input) (*Builder, error) {
	if in == nil {
		return nil, fmt.Errorf("FleurGenerator: an input is required")
	}
	if in.BandsKpoints == nil {
		return nil, ErrNoBandsKpoints
	}
	if in.ParentFolder == nil {
		return nil, ErrNoParentFolder
	}
	if err := in.ParentFolder.Corrupted(); err != nil {
		return nil, fmt.Errorf("FleurGenerator: %w", err)
	}
	if !in.ParentFolder.CreatedBy(FleurCalcProcess) {
		return nil, fmt.Errorf("FleurGenerator: the parent folder was created by a %q calculation, not by a %q one", in.ParentFolder.CreatorProcess, FleurCalcProcess)
	}
	path := in.BandsKpoints.Copy()
	if err := path.Corrupted(); err != nil {
		return nil, fmt.Errorf("FleurGenerator: %w", err)
	}
	//The engines entry is mandatory even when everything in it is
	//inherited, so a caller cannot silently target the wrong task.
	eng, err := in.Engines.Bands()
	if err != nil {
		return nil, err
	}
	code := in.ParentFolder.CreatorCode
	optmap := in.ParentFolder.CreatorOptions
	if eng.Code != "" {
		code = eng.Code
	}
	if eng.Options != nil {
		optmap = eng.Options
	}
	if code == "" {
		return nil, fmt.Errorf("FleurGenerator: neither the parent calculation nor the bands engine name a code")
	}
	options, err := DecodeJobOptions(optmap)
	if err != nil {
		return nil, fmt.Errorf("FleurGenerator: %w", err)
	}
	b := newBuilder(FleurProcess, code)
	b.BandsKpoints = path
	b.ParentFolder = in.ParentFolder
	b.Options = options
	//The path is already decided here, the workflow must not run its own
	//k-path search.
	b.WfParameters = map[string]any{"kpath": "skip"}
	return b, nil
}

/*
 * gen.go, part of gobands.
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
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/rmera/gobands"
)

//This allows to set up band-structure calculations using different
//simulation codes.
type Generator interface {

	//Protocols returns the names of the parameter protocols known to the
	//generator, or nil if the generator does not use protocols.
	Protocols() []string

	//DefaultProtocol returns the name of the protocol used when the input
	//does not select one.
	DefaultProtocol() string

	//Builder assembles the request object for the workflow engine based on
	//the data in in. The input is validated against the requirements of the
	//specific code.
	Builder(in *Input) (*Builder, error)
}

//Errors shared by the generators.
var (
	ErrNoBandsEngine   = errors.New(`the engines of the input must contain a "bands" entry`)
	ErrRestartConflict = errors.New("a parent folder was given to trigger a restart, but the k-point path search may modify the structure, making the parent files unusable; pass the band k-points explicitly or remove the parent folder")
	ErrNoBandsKpoints  = errors.New("an explicit k-point path for the bands is required")
	ErrNoParentFolder  = errors.New("a parent folder to restart from is required")
)

//SeekPathParams are the parameters passed through to the external SeeK-Path
//service when an explicit k-point path has to be determined.
type SeekPathParams struct {
	//Reference target distance between neighboring k-points along the path,
	//in 1/Å.
	ReferenceDistance float64 `json:"reference_distance" yaml:"reference_distance"`
	//The symmetry precision used internally by the symmetry library.
	SymPrec float64 `json:"symprec" yaml:"symprec"`
	//The angle tolerance used internally by the symmetry library.
	AngleTolerance float64 `json:"angle_tolerance" yaml:"angle_tolerance"`
	//The threshold for determining edge cases. The meaning depends on the
	//Bravais lattice.
	Threshold float64 `json:"threshold" yaml:"threshold"`
	//If false, and the group has no inversion symmetry, additional path
	//lines are returned.
	WithTimeReversal bool `json:"with_time_reversal" yaml:"with_time_reversal"`
}

//DefaultSeekPathParams returns the SeekPathParams used when the input does
//not supply any.
func DefaultSeekPathParams() *SeekPathParams {
	return &SeekPathParams{
		ReferenceDistance: 0.025,
		SymPrec:           1e-5,
		AngleTolerance:    -1.0,
		Threshold:         1e-7,
		WithTimeReversal:  true,
	}
}

//Engine identifies the installed simulation code to run and the job options
//for it. Options is a free-form map as accepted by the workflow engine; use
//DecodeJobOptions to obtain the typed version.
type Engine struct {
	Code    string
	Options map[string]any
}

//Engines maps a task name (for this package, always "bands") to the engine
//in charge of it.
type Engines map[string]Engine

//Bands returns the engine in charge of the bands calculation, or
//ErrNoBandsEngine if none was declared.
func (E Engines) Bands() (*Engine, error) {
	eng, ok := E["bands"]
	if !ok {
		return nil, ErrNoBandsEngine
	}
	return &eng, nil
}

//Input is the engine-agnostic input set accepted by every Generator. Only
//Engines is required by all generators; the per-code requirements are
//documented on each generator.
type Input struct {
	//The structure. It might be replaced internally by its primitive
	//equivalent if the SeeK-Path service is used.
	Structure *bands.Structure
	//The protocol selecting the level of precision (and computational cost)
	//the input parameters are chosen for.
	Protocol string
	//The type of spin polarization.
	SpinType bands.SpinType
	//The electronic character of the system.
	ElectronicType bands.ElectronicType
	//The initial magnetization per site, in Bohr magnetons. The difference
	//between spin-up and spin-down electrons at each site.
	MagnetizationPerSite []float64
	//The engines in charge of the calculations.
	Engines Engines
	//Parameters for the SeeK-Path call. Nil selects the defaults.
	SeekPath *SeekPathParams
	//The full list of k-points where to calculate the bands. When given,
	//the SeeK-Path service is not contacted.
	BandsKpoints *bands.Path
	//A prior calculation's output folder to restart from (density matrix,
	//charge density...). What is actually used depends on the code.
	ParentFolder *RemoteFolder
}

//seekPathParams returns the SeekPath parameters of the input, falling back
//to the defaults.
func (in *Input) seekPathParams() *SeekPathParams {
	if in.SeekPath == nil {
		return DefaultSeekPathParams()
	}
	return in.SeekPath
}

//Resources describes the compute resources requested for a job.
type Resources struct {
	NumMachines           int `mapstructure:"num_machines" yaml:"num_machines,omitempty"`
	NumMPIProcsPerMachine int `mapstructure:"num_mpiprocs_per_machine" yaml:"num_mpiprocs_per_machine,omitempty"`
	NumCoresPerMPIProc    int `mapstructure:"num_cores_per_mpiproc" yaml:"num_cores_per_mpiproc,omitempty"`
}

//JobOptions is the typed form of the free-form options map attached to an
//Engine. Keys not covered by the named fields are preserved in Custom.
type JobOptions struct {
	Resources           Resources      `mapstructure:"resources" yaml:"resources,omitempty"`
	MaxWallclockSeconds int            `mapstructure:"max_wallclock_seconds" yaml:"max_wallclock_seconds,omitempty"`
	QueueName           string         `mapstructure:"queue_name" yaml:"queue_name,omitempty"`
	Account             string         `mapstructure:"account" yaml:"account,omitempty"`
	WithMPI             bool           `mapstructure:"withmpi" yaml:"withmpi,omitempty"`
	Custom              map[string]any `mapstructure:",remain" yaml:"custom,omitempty"`
}

//DecodeJobOptions converts a free-form options map into JobOptions. A nil
//map yields nil options.
func DecodeJobOptions(m map[string]any) (*JobOptions, error) {
	if m == nil {
		return nil, nil
	}
	opts := new(JobOptions)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("DecodeJobOptions: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("DecodeJobOptions: %w", err)
	}
	return opts, nil
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

/*
 * builder.go, part of gobands.
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
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rmera/gobands"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

//Builder is the structured request object the external workflow engine
//consumes to launch a band-structure calculation. It is declarative: nothing
//here executes, schedules or persists anything.
type Builder struct {
	//ID is a unique identifier for this request.
	ID string
	//CreatedAt is the assembly time of the request, in UTC.
	CreatedAt time.Time
	//Process is the workflow-engine process type to launch,
	//e.g. "siesta.bands".
	Process string
	//Code is the label of the installed simulation code to run.
	Code string
	//Structure is the (possibly primitivized) structure to calculate.
	Structure *bands.Structure
	//Parameters are the code-specific input parameters.
	Parameters map[string]any
	//Basis is the code-specific basis-set prescription.
	Basis map[string]any
	//Kpoints is the regular mesh for the self-consistent part, if any.
	Kpoints *bands.Mesh
	//BandsKpoints is the explicit k-point path for the bands.
	BandsKpoints *bands.Path
	//PseudoFamily names the pseudopotential family to draw from.
	PseudoFamily string
	//Options are the job options for the calculation.
	Options *JobOptions
	//ParentFolder, when set, points to the prior calculation to restart
	//from.
	ParentFolder *RemoteFolder
	//WfParameters are extra parameters for the workflow wrapping the
	//calculation, e.g. the Fleur kpath mode.
	WfParameters map[string]any
}

//newBuilder returns a Builder for the given process type and code, with a
//fresh ID and timestamp.
func newBuilder(process, code string) *Builder {
	return &Builder{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Process:   process,
		Code:      code,
	}
}

//The yaml doc types below keep the serialized form of a builder independent
//from the in-memory representation (the structure hides its cell matrix, the
//mesh and path use fixed-size arrays).

type kindDoc struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

type siteDoc struct {
	Kind   string    `yaml:"kind"`
	Coords []float64 `yaml:"coords,flow"`
}

type structureDoc struct {
	Cell  [][]float64 `yaml:"cell,flow"`
	Kinds []kindDoc   `yaml:"kinds"`
	Sites []siteDoc   `yaml:"sites"`
}

type meshDoc struct {
	Divisions []int     `yaml:"divisions,flow"`
	Offset    []float64 `yaml:"offset,flow"`
}

type pathDoc struct {
	Points [][]float64    `yaml:"points,flow"`
	Labels map[int]string `yaml:"labels,omitempty"`
}

type builderDoc struct {
	ID           string         `yaml:"id"`
	CreatedAt    time.Time      `yaml:"created_at"`
	Process      string         `yaml:"process"`
	Code         string         `yaml:"code"`
	Structure    *structureDoc  `yaml:"structure,omitempty"`
	Parameters   map[string]any `yaml:"parameters,omitempty"`
	Basis        map[string]any `yaml:"basis,omitempty"`
	Kpoints      *meshDoc       `yaml:"kpoints,omitempty"`
	BandsKpoints *pathDoc       `yaml:"bands_kpoints,omitempty"`
	PseudoFamily string         `yaml:"pseudo_family,omitempty"`
	Options      *JobOptions    `yaml:"options,omitempty"`
	ParentFolder *RemoteFolder  `yaml:"parent_folder,omitempty"`
	WfParameters map[string]any `yaml:"wf_parameters,omitempty"`
}

func structureToDoc(S *bands.Structure) *structureDoc {
	if S == nil {
		return nil
	}
	doc := new(structureDoc)
	cell := S.Cell()
	for i := 0; i < 3; i++ {
		doc.Cell = append(doc.Cell, []float64{cell.At(i, 0), cell.At(i, 1), cell.At(i, 2)})
	}
	for _, k := range S.Kinds() {
		doc.Kinds = append(doc.Kinds, kindDoc{Name: k.Name, Symbol: k.Symbol})
	}
	for _, s := range S.Sites() {
		doc.Sites = append(doc.Sites, siteDoc{Kind: s.Kind, Coords: []float64{s.Coords[0], s.Coords[1], s.Coords[2]}})
	}
	return doc
}

func docToStructure(doc *structureDoc) (*bands.Structure, error) {
	if doc == nil {
		return nil, nil
	}
	if len(doc.Cell) != 3 {
		return nil, fmt.Errorf("structure document with %d cell rows", len(doc.Cell))
	}
	data := make([]float64, 0, 9)
	for _, row := range doc.Cell {
		if len(row) != 3 {
			return nil, fmt.Errorf("structure document with a cell row of %d components", len(row))
		}
		data = append(data, row...)
	}
	kinds := make([]bands.Kind, 0, len(doc.Kinds))
	for _, k := range doc.Kinds {
		kinds = append(kinds, bands.Kind{Name: k.Name, Symbol: k.Symbol})
	}
	sites := make([]bands.Site, 0, len(doc.Sites))
	for _, s := range doc.Sites {
		if len(s.Coords) != 3 {
			return nil, fmt.Errorf("structure document with a site of %d coordinates", len(s.Coords))
		}
		sites = append(sites, bands.Site{Kind: s.Kind, Coords: [3]float64{s.Coords[0], s.Coords[1], s.Coords[2]}})
	}
	return bands.NewStructure(mat.NewDense(3, 3, data), kinds, sites)
}

func pathToDoc(P *bands.Path) *pathDoc {
	if P == nil {
		return nil
	}
	doc := &pathDoc{Labels: P.Labels}
	for _, p := range P.Points {
		doc.Points = append(doc.Points, []float64{p[0], p[1], p[2]})
	}
	return doc
}

func docToPath(doc *pathDoc) (*bands.Path, error) {
	if doc == nil {
		return nil, nil
	}
	P := &bands.Path{Labels: doc.Labels}
	for _, p := range doc.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("k-point path document with a point of %d components", len(p))
		}
		P.Points = append(P.Points, [3]float64{p[0], p[1], p[2]})
	}
	return P, nil
}

//MarshalYAML implements yaml.Marshaler.
func (B *Builder) MarshalYAML() (interface{}, error) {
	doc := &builderDoc{
		ID:           B.ID,
		CreatedAt:    B.CreatedAt,
		Process:      B.Process,
		Code:         B.Code,
		Structure:    structureToDoc(B.Structure),
		Parameters:   B.Parameters,
		Basis:        B.Basis,
		BandsKpoints: pathToDoc(B.BandsKpoints),
		PseudoFamily: B.PseudoFamily,
		Options:      B.Options,
		ParentFolder: B.ParentFolder,
		WfParameters: B.WfParameters,
	}
	if B.Kpoints != nil {
		doc.Kpoints = &meshDoc{Divisions: B.Kpoints.Divisions[:], Offset: B.Kpoints.Offset[:]}
	}
	return doc, nil
}

//UnmarshalYAML implements yaml.Unmarshaler.
func (B *Builder) UnmarshalYAML(value *yaml.Node) error {
	doc := new(builderDoc)
	if err := value.Decode(doc); err != nil {
		return err
	}
	S, err := docToStructure(doc.Structure)
	if err != nil {
		return err
	}
	P, err := docToPath(doc.BandsKpoints)
	if err != nil {
		return err
	}
	B.ID = doc.ID
	B.CreatedAt = doc.CreatedAt
	B.Process = doc.Process
	B.Code = doc.Code
	B.Structure = S
	B.Parameters = doc.Parameters
	B.Basis = doc.Basis
	B.BandsKpoints = P
	B.PseudoFamily = doc.PseudoFamily
	B.Options = doc.Options
	B.ParentFolder = doc.ParentFolder
	B.WfParameters = doc.WfParameters
	if doc.Kpoints != nil {
		if len(doc.Kpoints.Divisions) != 3 {
			return fmt.Errorf("k-point mesh document with %d divisions", len(doc.Kpoints.Divisions))
		}
		m := new(bands.Mesh)
		copy(m.Divisions[:], doc.Kpoints.Divisions)
		copy(m.Offset[:], doc.Kpoints.Offset)
		B.Kpoints = m
	}
	return nil
}

//Render writes the builder to w as YAML, the form in which it is handed to
//the workflow engine.
func (B *Builder) Render(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(B); err != nil {
		return fmt.Errorf("Render: %w", err)
	}
	return nil
}

/*
 * seekpath.go, part of gobands.
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
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/rmera/gobands"
	"gonum.org/v1/gonum/mat"
)

//PathFinder determines the explicit band-structure k-point path for a
//structure. The returned structure may differ from the input one: path
//conventions are defined for the primitive cell, so the finder may
//primitivize (and reorient) the structure. Callers must use the returned
//structure together with the returned path.
type PathFinder interface {
	ExplicitPath(S *bands.Structure, params SeekPathParams) (*bands.Structure, *bands.Path, error)
}

//SeekPath finds k-point paths by running the external SeeK-Path helper
//program, exchanging JSON documents over standard input and output. The
//symmetry analysis itself is entirely the helper's business.
type SeekPath struct {
	command string
}

//NewSeekPath returns a SeekPath runner. The helper command is taken from the
//GOBANDS_SEEKPATH environment variable, falling back to "seekpath-path" in
//the PATH.
func NewSeekPath() *SeekPath {
	sp := new(SeekPath)
	sp.command = os.Getenv("GOBANDS_SEEKPATH")
	if sp.command == "" {
		sp.command = "seekpath-path"
	}
	return sp
}

//SetCommand sets the helper command to run.
func (sp *SeekPath) SetCommand(command string) {
	sp.command = command
}

//The wire format of the helper: a request with the structure and the
//parameters, a reply with the primitive structure and the explicit k-points.

type jsonKind struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type jsonSite struct {
	Kind   string     `json:"kind"`
	Coords [3]float64 `json:"coords"`
}

type jsonStructure struct {
	Cell  [3][3]float64 `json:"cell"`
	Kinds []jsonKind    `json:"kinds"`
	Sites []jsonSite    `json:"sites"`
}

type jsonLabel struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type seekPathRequest struct {
	Structure jsonStructure  `json:"structure"`
	Params    SeekPathParams `json:"parameters"`
}

type seekPathReply struct {
	PrimitiveStructure jsonStructure `json:"primitive_structure"`
	ExplicitKpoints    struct {
		Points [][3]float64 `json:"points"`
		Labels []jsonLabel  `json:"labels"`
	} `json:"explicit_kpoints"`
}

func structureToJSON(S *bands.Structure) jsonStructure {
	var js jsonStructure
	cell := S.Cell()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			js.Cell[i][j] = cell.At(i, j)
		}
	}
	for _, k := range S.Kinds() {
		js.Kinds = append(js.Kinds, jsonKind{Name: k.Name, Symbol: k.Symbol})
	}
	for _, s := range S.Sites() {
		js.Sites = append(js.Sites, jsonSite{Kind: s.Kind, Coords: s.Coords})
	}
	return js
}

func jsonToStructure(js jsonStructure) (*bands.Structure, error) {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, js.Cell[i][0], js.Cell[i][1], js.Cell[i][2])
	}
	kinds := make([]bands.Kind, 0, len(js.Kinds))
	for _, k := range js.Kinds {
		kinds = append(kinds, bands.Kind{Name: k.Name, Symbol: k.Symbol})
	}
	sites := make([]bands.Site, 0, len(js.Sites))
	for _, s := range js.Sites {
		sites = append(sites, bands.Site{Kind: s.Kind, Coords: s.Coords})
	}
	return bands.NewStructure(mat.NewDense(3, 3, data), kinds, sites)
}

//ExplicitPath runs the helper for the structure S and returns the primitive
//structure and the explicit k-point path along the high-symmetry lines.
func (sp *SeekPath) ExplicitPath(S *bands.Structure, params SeekPathParams) (*bands.Structure, *bands.Path, error) {
	if err := S.Corrupted(); err != nil {
		return nil, nil, fmt.Errorf("ExplicitPath: %w", err)
	}
	req, err := json.Marshal(seekPathRequest{Structure: structureToJSON(S), Params: params})
	if err != nil {
		return nil, nil, fmt.Errorf("ExplicitPath: %w", err)
	}
	cmd := exec.Command(sp.command)
	cmd.Stdin = bytes.NewReader(req)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, nil, fmt.Errorf("ExplicitPath: %s failed: %w: %s", sp.command, err, stderr.String())
	}
	var reply seekPathReply
	if err := json.Unmarshal(stdout.Bytes(), &reply); err != nil {
		return nil, nil, fmt.Errorf("ExplicitPath: malformed reply from %s: %w", sp.command, err)
	}
	prim, err := jsonToStructure(reply.PrimitiveStructure)
	if err != nil {
		return nil, nil, fmt.Errorf("ExplicitPath: malformed primitive structure from %s: %w", sp.command, err)
	}
	path := &bands.Path{Points: reply.ExplicitKpoints.Points}
	if len(reply.ExplicitKpoints.Labels) > 0 {
		path.Labels = make(map[int]string, len(reply.ExplicitKpoints.Labels))
		for _, l := range reply.ExplicitKpoints.Labels {
			path.Labels[l.Index] = l.Label
		}
	}
	if err := path.Corrupted(); err != nil {
		return nil, nil, fmt.Errorf("ExplicitPath: malformed k-point path from %s: %w", sp.command, err)
	}
	return prim, path, nil
}

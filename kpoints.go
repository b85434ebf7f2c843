/*
 * kpoints.go, part of gobands.
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

package bands

import (
	"fmt"
	"math"
)

//Mesh is a regular k-point mesh, given by the number of divisions along each
//reciprocal lattice vector and an optional offset, in fractions of the mesh
//spacing.
type Mesh struct {
	Divisions [3]int
	Offset    [3]float64
}

//NewMeshFromDensity returns the smallest regular mesh for the structure S
//such that the spacing between neighboring k-points along each reciprocal
//axis does not exceed distance (in 1/Å). An offset, if given, must have
//three components.
func NewMeshFromDensity(S *Structure, distance float64, offset []float64) (*Mesh, error) {
	if distance <= 0 {
		return nil, fmt.Errorf("NewMeshFromDensity: non-positive distance %v", distance)
	}
	rec, err := S.ReciprocalCell()
	if err != nil {
		return nil, fmt.Errorf("NewMeshFromDensity: %w", err)
	}
	m := new(Mesh)
	for i := 0; i < 3; i++ {
		norm := math.Hypot(rec.At(i, 0), math.Hypot(rec.At(i, 1), rec.At(i, 2)))
		d := int(math.Ceil(norm / distance))
		if d < 1 {
			d = 1
		}
		m.Divisions[i] = d
	}
	if offset != nil {
		if len(offset) != 3 {
			return nil, fmt.Errorf("NewMeshFromDensity: offset must have 3 components, got %d", len(offset))
		}
		copy(m.Offset[:], offset)
	}
	return m, nil
}

//Path is an explicit list of k-points, in fractional coordinates of the
//reciprocal cell, with high-symmetry points labeled by their index in the
//list.
type Path struct {
	Points [][3]float64
	Labels map[int]string
}

//Len returns the number of k-points in the path.
func (P *Path) Len() int {
	return len(P.Points)
}

//Corrupted checks the internal consistency of the path. It returns an error
//describing the problem found, or nil.
func (P *Path) Corrupted() error {
	if P == nil || len(P.Points) == 0 {
		return fmt.Errorf("nil or empty k-point path")
	}
	for i, l := range P.Labels {
		if i < 0 || i >= len(P.Points) {
			return fmt.Errorf("label %q at index %d, out of the path range", l, i)
		}
	}
	return nil
}

//Distances returns the cumulative cartesian distance, in 1/Å, along the
//path, for the structure S. The first element is always 0. This is the
//natural abscissa for band-structure plots.
func (P *Path) Distances(S *Structure) ([]float64, error) {
	if err := P.Corrupted(); err != nil {
		return nil, fmt.Errorf("Distances: %w", err)
	}
	rec, err := S.ReciprocalCell()
	if err != nil {
		return nil, fmt.Errorf("Distances: %w", err)
	}
	cart := func(p [3]float64) [3]float64 {
		var ret [3]float64
		for j := 0; j < 3; j++ {
			//fractional coordinates are over the rows of the reciprocal cell
			ret[j] = p[0]*rec.At(0, j) + p[1]*rec.At(1, j) + p[2]*rec.At(2, j)
		}
		return ret
	}
	ret := make([]float64, len(P.Points))
	prev := cart(P.Points[0])
	for i := 1; i < len(P.Points); i++ {
		cur := cart(P.Points[i])
		dx, dy, dz := cur[0]-prev[0], cur[1]-prev[1], cur[2]-prev[2]
		ret[i] = ret[i-1] + math.Sqrt(dx*dx+dy*dy+dz*dz)
		prev = cur
	}
	return ret, nil
}

//Copy returns a deep copy of the path.
func (P *Path) Copy() *Path {
	ret := &Path{Points: append([][3]float64{}, P.Points...)}
	if P.Labels != nil {
		ret.Labels = make(map[int]string, len(P.Labels))
		for k, v := range P.Labels {
			ret.Labels[k] = v
		}
	}
	return ret
}

/*
 * kpoints_test.go, part of gobands.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshFromDensity(t *testing.T) {
	a := 3.0
	S, err := NewStructure(cubic(a),
		[]Kind{{Name: "Al", Symbol: "Al"}},
		[]Site{{Kind: "Al", Coords: [3]float64{0, 0, 0}}})
	require.NoError(t, err)

	//|b| = 2π/3 ≈ 2.094; with a 0.2 1/Å spacing, 11 divisions are needed.
	m, err := NewMeshFromDensity(S, 0.2, nil)
	require.NoError(t, err)
	want := int(math.Ceil(2 * math.Pi / a / 0.2))
	assert.Equal(t, [3]int{want, want, want}, m.Divisions)
	assert.Equal(t, [3]float64{0, 0, 0}, m.Offset)

	m, err = NewMeshFromDensity(S, 0.2, []float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0.5, 0.5, 0.5}, m.Offset)

	//a spacing far coarser than the reciprocal cell still yields one point
	m, err = NewMeshFromDensity(S, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 1, 1}, m.Divisions)

	_, err = NewMeshFromDensity(S, -1, nil)
	assert.Error(t, err)
	_, err = NewMeshFromDensity(S, 0.2, []float64{0.5})
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	P := &Path{
		Points: [][3]float64{{0, 0, 0}, {0.25, 0, 0}, {0.5, 0, 0}},
		Labels: map[int]string{0: "GAMMA", 2: "X"},
	}
	require.NoError(t, P.Corrupted())
	assert.Equal(t, 3, P.Len())

	bad := &Path{Points: P.Points, Labels: map[int]string{5: "M"}}
	assert.Error(t, bad.Corrupted())
	var nilPath *Path
	assert.Error(t, nilPath.Corrupted())

	C := P.Copy()
	C.Labels[0] = "Z"
	C.Points[0][0] = 9
	assert.Equal(t, "GAMMA", P.Labels[0])
	assert.Equal(t, 0.0, P.Points[0][0])
}

func TestPathDistances(t *testing.T) {
	a := 2 * math.Pi //so the reciprocal cell is the identity
	S, err := NewStructure(cubic(a),
		[]Kind{{Name: "C", Symbol: "C"}},
		[]Site{{Kind: "C", Coords: [3]float64{0, 0, 0}}})
	require.NoError(t, err)
	P := &Path{Points: [][3]float64{{0, 0, 0}, {0.5, 0, 0}, {0.5, 0.5, 0}}}
	d, err := P.Distances(S)
	require.NoError(t, err)
	require.Len(t, d, 3)
	assert.InDelta(t, 0.0, d[0], 1e-12)
	assert.InDelta(t, 0.5, d[1], 1e-12)
	assert.InDelta(t, 1.0, d[2], 1e-12)
}

func TestBandsCorrupted(t *testing.T) {
	P := &Path{Points: [][3]float64{{0, 0, 0}, {0.5, 0, 0}}}
	B := &Bands{Path: P, Eigenvalues: [][]float64{{-1, 1}, {-0.5, 1.5}}, FermiEnergy: 0.1}
	assert.NoError(t, B.Corrupted())
	assert.Equal(t, 2, B.NBands())

	B = &Bands{Path: P, Eigenvalues: [][]float64{{-1, 1}}}
	assert.Error(t, B.Corrupted())
	B = &Bands{Path: P, Eigenvalues: [][]float64{{-1, 1}, {-0.5}}}
	assert.Error(t, B.Corrupted())
	B = &Bands{Eigenvalues: [][]float64{{-1}}}
	assert.Error(t, B.Corrupted())
}

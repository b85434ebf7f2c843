/*
 * structure_test.go, part of gobands.
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
	"gonum.org/v1/gonum/mat"
)

//cubic returns a simple cubic cell of side a, in Å.
func cubic(a float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{a, 0, 0, 0, a, 0, 0, 0, a})
}

func TestNewStructure(t *testing.T) {
	S, err := NewStructure(cubic(3.0),
		[]Kind{{Name: "Si", Symbol: "Si"}},
		[]Site{{Kind: "Si", Coords: [3]float64{0, 0, 0}}, {Kind: "Si", Coords: [3]float64{0.75, 0.75, 0.75}}})
	require.NoError(t, err)
	assert.Equal(t, 2, S.Len())
	assert.Equal(t, "Si2", S.Formula())
	assert.InDelta(t, 27.0, S.Volume(), 1e-12)

	//undeclared kind
	_, err = NewStructure(cubic(3.0),
		[]Kind{{Name: "Si", Symbol: "Si"}},
		[]Site{{Kind: "Ge", Coords: [3]float64{0, 0, 0}}})
	assert.Error(t, err)

	//unknown element
	_, err = NewStructure(cubic(3.0),
		[]Kind{{Name: "Xx", Symbol: "Xx"}},
		[]Site{{Kind: "Xx", Coords: [3]float64{0, 0, 0}}})
	assert.Error(t, err)

	//singular cell
	_, err = NewStructure(mat.NewDense(3, 3, []float64{1, 0, 0, 2, 0, 0, 0, 0, 1}),
		[]Kind{{Name: "Si", Symbol: "Si"}},
		[]Site{{Kind: "Si", Coords: [3]float64{0, 0, 0}}})
	assert.Error(t, err)

	//duplicated kind names
	_, err = NewStructure(cubic(3.0),
		[]Kind{{Name: "Fe", Symbol: "Fe"}, {Name: "Fe", Symbol: "Fe"}},
		[]Site{{Kind: "Fe", Coords: [3]float64{0, 0, 0}}})
	assert.Error(t, err)
}

func TestReciprocalCell(t *testing.T) {
	a := 3.0
	S, err := NewStructure(cubic(a),
		[]Kind{{Name: "Cu", Symbol: "Cu"}},
		[]Site{{Kind: "Cu", Coords: [3]float64{0, 0, 0}}})
	require.NoError(t, err)
	rec, err := S.ReciprocalCell()
	require.NoError(t, err)
	want := 2 * math.Pi / a
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				assert.InDelta(t, want, rec.At(i, j), 1e-12)
			} else {
				assert.InDelta(t, 0.0, rec.At(i, j), 1e-12)
			}
		}
	}
}

func TestFracCoords(t *testing.T) {
	S, err := NewStructure(cubic(4.0),
		[]Kind{{Name: "Na", Symbol: "Na"}, {Name: "Cl", Symbol: "Cl"}},
		[]Site{{Kind: "Na", Coords: [3]float64{0, 0, 0}}, {Kind: "Cl", Coords: [3]float64{2, 2, 2}}})
	require.NoError(t, err)
	f, err := S.FracCoords(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f[0], 1e-12)
	assert.InDelta(t, 0.5, f[1], 1e-12)
	assert.InDelta(t, 0.5, f[2], 1e-12)
	_, err = S.FracCoords(7)
	assert.Error(t, err)
}

func TestStructureCopyIsDeep(t *testing.T) {
	S, err := NewStructure(cubic(3.0),
		[]Kind{{Name: "Fe1", Symbol: "Fe"}, {Name: "Fe2", Symbol: "Fe"}},
		[]Site{{Kind: "Fe1", Coords: [3]float64{0, 0, 0}}, {Kind: "Fe2", Coords: [3]float64{1.5, 1.5, 1.5}}})
	require.NoError(t, err)
	C := S.Copy()
	cell := C.Cell()
	cell.Set(0, 0, 100) //Cell returns a copy, the original must not move
	assert.InDelta(t, 3.0, S.Cell().At(0, 0), 1e-12)
	assert.Equal(t, S.Formula(), C.Formula())
	assert.Equal(t, []string{"Fe"}, S.Symbols())

	masses, err := S.Masses()
	require.NoError(t, err)
	assert.Len(t, masses, 2)
	assert.InDelta(t, 55.845, masses[0], 1e-6)
}

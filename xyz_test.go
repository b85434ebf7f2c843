/*
 * xyz_test.go, part of gobands.
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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siXYZ = `2
Lattice="3.866975 0.0 0.0 0.0 3.866975 0.0 0.0 0.0 3.866975" Properties=species:S:1:pos:R:3
Si 0.0 0.0 0.0
Si 0.966744 0.966744 0.966744
`

func TestXYZReadFrom(t *testing.T) {
	S, err := XYZReadFrom(strings.NewReader(siXYZ))
	require.NoError(t, err)
	assert.Equal(t, 2, S.Len())
	assert.Equal(t, "Si2", S.Formula())
	assert.InDelta(t, 3.866975, S.Cell().At(0, 0), 1e-12)
	k, err := S.Kind("Si")
	require.NoError(t, err)
	assert.Equal(t, "Si", k.Symbol)
}

func TestXYZRoundTrip(t *testing.T) {
	S, err := XYZReadFrom(strings.NewReader(siXYZ))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, XYZWriteTo(&buf, S))
	S2, err := XYZReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, S.Formula(), S2.Formula())
	assert.Equal(t, S.Len(), S2.Len())
	assert.InDelta(t, S.Volume(), S2.Volume(), 1e-9)
	s1, s2 := S.Sites(), S2.Sites()
	for i := range s1 {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, s1[i].Coords[j], s2[i].Coords[j], 1e-6)
		}
	}
}

func TestXYZReadFromErrors(t *testing.T) {
	//no Lattice entry
	_, err := XYZReadFrom(strings.NewReader("1\nno cell here\nSi 0 0 0\n"))
	assert.Error(t, err)
	//truncated file
	_, err = XYZReadFrom(strings.NewReader("2\nLattice=\"1 0 0 0 1 0 0 0 1\"\nSi 0 0 0\n"))
	assert.Error(t, err)
	//malformed count
	_, err = XYZReadFrom(strings.NewReader("two\nLattice=\"1 0 0 0 1 0 0 0 1\"\n"))
	assert.Error(t, err)
	//short Lattice entry
	_, err = XYZReadFrom(strings.NewReader("1\nLattice=\"1 0 0\"\nSi 0 0 0\n"))
	assert.Error(t, err)
	//malformed coordinates
	_, err = XYZReadFrom(strings.NewReader("1\nLattice=\"1 0 0 0 1 0 0 0 1\"\nSi x y z\n"))
	assert.Error(t, err)
}

/*
 * results_test.go, part of gobands.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFermiEnergy(t *testing.T) {
	f, err := FermiEnergy(SiestaProcess, map[string]any{"E_Fermi": -3.2, "other": 1})
	require.NoError(t, err)
	assert.InDelta(t, -3.2, f, 1e-12)

	f, err = FermiEnergy(FleurProcess, map[string]any{"fermi_energy_scf": 5})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, f, 1e-12)

	//each process reports under its own key
	_, err = FermiEnergy(FleurProcess, map[string]any{"E_Fermi": -3.2})
	assert.Error(t, err)
	_, err = FermiEnergy("unknown.process", map[string]any{"E_Fermi": -3.2})
	assert.Error(t, err)
	_, err = FermiEnergy(SiestaProcess, map[string]any{"E_Fermi": "minus three"})
	assert.Error(t, err)
}

func TestAssembleBands(t *testing.T) {
	path := simplePath()
	B, err := AssembleBands(path, [][]float64{{-1, 0.5}, {-0.8, 0.7}}, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 2, B.NBands())
	assert.InDelta(t, 0.1, B.FermiEnergy, 1e-12)

	//eigenvalue rows must match the path
	_, err = AssembleBands(path, [][]float64{{-1, 0.5}}, 0.1)
	assert.Error(t, err)
	_, err = AssembleBands(nil, [][]float64{{-1}}, 0.1)
	assert.Error(t, err)
}

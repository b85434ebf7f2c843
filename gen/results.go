/*
 * results.go, part of gobands.
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

	"github.com/rmera/gobands"
)

//The key under which each process type reports the Fermi energy of the
//self-consistent run in its output-parameter dictionary.
var fermiKeys = map[string]string{
	FleurProcess:  "fermi_energy_scf",
	SiestaProcess: "E_Fermi",
}

//FermiEnergy extracts the Fermi energy, in eV, from the output-parameter
//dictionary of a concluded calculation of the given process type.
func FermiEnergy(process string, output map[string]any) (float64, error) {
	key, ok := fermiKeys[process]
	if !ok {
		return 0, fmt.Errorf("FermiEnergy: no known Fermi energy key for process %q", process)
	}
	v, ok := output[key]
	if !ok {
		return 0, fmt.Errorf("FermiEnergy: the output parameters do not contain %q", key)
	}
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	}
	return 0, fmt.Errorf("FermiEnergy: %q is a %T, not a number", key, v)
}

//AssembleBands puts together the common band-structure result from the
//pieces a concluded workflow reports: the path the bands were calculated
//along, the eigenvalues at each of its points and the Fermi energy.
func AssembleBands(path *bands.Path, eigenvalues [][]float64, fermi float64) (*bands.Bands, error) {
	B := &bands.Bands{Path: path, Eigenvalues: eigenvalues, FermiEnergy: fermi}
	if err := B.Corrupted(); err != nil {
		return nil, fmt.Errorf("AssembleBands: %w", err)
	}
	return B, nil
}

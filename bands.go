/*
 * bands.go, part of gobands.
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

import "fmt"

//SpinType indicates the spin treatment requested for a calculation.
//The values mirror the ones understood by the common band-structure
//workflows, so they can be passed through to the workflow engine as-is.
type SpinType string

const (
	SpinNone         SpinType = "none"
	SpinCollinear    SpinType = "collinear"
	SpinNonCollinear SpinType = "non_collinear"
	SpinOrbit        SpinType = "spin_orbit"
)

//ParseSpinType returns the SpinType corresponding to the string s,
//or an error if s does not name one.
func ParseSpinType(s string) (SpinType, error) {
	switch SpinType(s) {
	case SpinNone, SpinCollinear, SpinNonCollinear, SpinOrbit:
		return SpinType(s), nil
	}
	return "", fmt.Errorf("ParseSpinType: no spin type named %q", s)
}

//ElectronicType indicates the expected electronic character of the system.
type ElectronicType string

const (
	ElectronicMetal     ElectronicType = "metal"
	ElectronicInsulator ElectronicType = "insulator"
	ElectronicAutomatic ElectronicType = "automatic"
)

//ParseElectronicType returns the ElectronicType corresponding to the string
//s, or an error if s does not name one.
func ParseElectronicType(s string) (ElectronicType, error) {
	switch ElectronicType(s) {
	case ElectronicMetal, ElectronicInsulator, ElectronicAutomatic:
		return ElectronicType(s), nil
	}
	return "", fmt.Errorf("ParseElectronicType: no electronic type named %q", s)
}

//Bands holds a computed band structure: the eigenvalues, in eV, for each
//point of the k-point path along which they were obtained, plus the Fermi
//energy of the preceding self-consistent calculation.
type Bands struct {
	Path        *Path
	Eigenvalues [][]float64 //Eigenvalues[i][n] is the energy of band n at the i-th k-point, in eV.
	FermiEnergy float64     //eV
}

//NBands returns the number of bands, i.e. the number of eigenvalues
//available at each k-point.
func (B *Bands) NBands() int {
	if len(B.Eigenvalues) == 0 {
		return 0
	}
	return len(B.Eigenvalues[0])
}

//Corrupted checks the internal consistency of the band structure. It returns
//an error describing the problem found, or nil.
func (B *Bands) Corrupted() error {
	if B.Path == nil {
		return fmt.Errorf("Bands without a k-point path")
	}
	if len(B.Eigenvalues) != B.Path.Len() {
		return fmt.Errorf("Bands with %d sets of eigenvalues for %d k-points", len(B.Eigenvalues), B.Path.Len())
	}
	n := B.NBands()
	for i, v := range B.Eigenvalues {
		if len(v) != n {
			return fmt.Errorf("Bands with %d eigenvalues at k-point %d, %d expected", len(v), i, n)
		}
	}
	return nil
}

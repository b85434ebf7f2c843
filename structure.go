/*
 * structure.go, part of gobands.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Kind is a named species of atom in a periodic structure. Several kinds may
//share the same chemical element (say, "Fe1" and "Fe2" for the two magnetic
//sublattices of an antiferromagnet), which is why the kind name and the
//element symbol are kept separate.
type Kind struct {
	Name   string
	Symbol string
}

//Site is one atomic position in a periodic structure. Coords are cartesian,
//in Å. The Kind field refers to a Kind by name.
type Site struct {
	Kind   string
	Coords [3]float64
}

//Structure represents a fully periodic crystal structure: a cell, a set of
//atom kinds and the atomic sites. The cell rows are the lattice vectors,
//in Å.
type Structure struct {
	cell  *mat.Dense
	kinds []Kind
	sites []Site
}

//NewStructure builds a Structure from a 3x3 cell matrix (rows are lattice
//vectors, in Å), the atom kinds and the sites. The arguments are checked for
//consistency: the cell must be non-singular, every kind must name a known
//element, and every site must refer to a declared kind.
func NewStructure(cell *mat.Dense, kinds []Kind, sites []Site) (*Structure, error) {
	if cell == nil {
		return nil, fmt.Errorf("NewStructure: nil cell")
	}
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("NewStructure: cell must be 3x3, got %dx%d", r, c)
	}
	S := &Structure{cell: mat.DenseCopyOf(cell), kinds: append([]Kind{}, kinds...), sites: append([]Site{}, sites...)}
	if err := S.Corrupted(); err != nil {
		return nil, err
	}
	return S, nil
}

//Corrupted checks the internal consistency of the structure. It returns an
//error describing the problem found, or nil.
func (S *Structure) Corrupted() error {
	if S == nil || S.cell == nil {
		return fmt.Errorf("nil structure or cell")
	}
	if math.Abs(mat.Det(S.cell)) < 1e-10 {
		return fmt.Errorf("singular cell")
	}
	if len(S.kinds) == 0 || len(S.sites) == 0 {
		return fmt.Errorf("structure without kinds or sites")
	}
	names := make(map[string]bool, len(S.kinds))
	for _, k := range S.kinds {
		if !KnownElement(k.Symbol) {
			return fmt.Errorf("kind %q has unknown element %q", k.Name, k.Symbol)
		}
		if names[k.Name] {
			return fmt.Errorf("duplicated kind name %q", k.Name)
		}
		names[k.Name] = true
	}
	for i, s := range S.sites {
		if !names[s.Kind] {
			return fmt.Errorf("site %d refers to undeclared kind %q", i, s.Kind)
		}
	}
	return nil
}

//Len returns the number of atomic sites in the structure.
func (S *Structure) Len() int {
	return len(S.sites)
}

//Kinds returns a copy of the atom kinds of the structure.
func (S *Structure) Kinds() []Kind {
	return append([]Kind{}, S.kinds...)
}

//Sites returns a copy of the atomic sites of the structure.
func (S *Structure) Sites() []Site {
	return append([]Site{}, S.sites...)
}

//Kind returns the kind with the given name.
func (S *Structure) Kind(name string) (Kind, error) {
	for _, k := range S.kinds {
		if k.Name == name {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("Kind: no kind named %q", name)
}

//Cell returns a copy of the 3x3 cell matrix. Rows are lattice vectors, in Å.
func (S *Structure) Cell() *mat.Dense {
	return mat.DenseCopyOf(S.cell)
}

//Volume returns the cell volume, in Å^3.
func (S *Structure) Volume() float64 {
	return math.Abs(mat.Det(S.cell))
}

//ReciprocalCell returns the reciprocal cell matrix, in 1/Å. Rows are the
//reciprocal lattice vectors, including the 2π factor.
func (S *Structure) ReciprocalCell() (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(S.cell); err != nil {
		return nil, fmt.Errorf("ReciprocalCell: %w", err)
	}
	rec := mat.NewDense(3, 3, nil)
	rec.Scale(2*math.Pi, inv.T())
	return rec, nil
}

//Symbols returns the sorted list of distinct chemical elements present in
//the structure.
func (S *Structure) Symbols() []string {
	seen := make(map[string]bool)
	ret := []string{}
	for _, k := range S.kinds {
		if !seen[k.Symbol] {
			seen[k.Symbol] = true
			ret = append(ret, k.Symbol)
		}
	}
	sort.Strings(ret)
	return ret
}

//Masses returns a slice with the mass, in Daltons, of each site in the
//structure, in order.
func (S *Structure) Masses() ([]float64, error) {
	ret := make([]float64, 0, len(S.sites))
	for _, s := range S.sites {
		k, err := S.Kind(s.Kind)
		if err != nil {
			return nil, err
		}
		m, err := ElementMass(k.Symbol)
		if err != nil {
			return nil, err
		}
		ret = append(ret, m)
	}
	return ret, nil
}

//Formula returns the chemical formula of the cell contents, with the
//elements in alphabetical order, e.g. "O2Si" for a quartz cell with one
//silicon and two oxygens.
func (S *Structure) Formula() string {
	count := make(map[string]int)
	for _, s := range S.sites {
		k, err := S.Kind(s.Kind)
		if err != nil {
			continue //Corrupted() catches this
		}
		count[k.Symbol]++
	}
	var b strings.Builder
	for _, sym := range S.Symbols() {
		if count[sym] == 1 {
			fmt.Fprintf(&b, "%s", sym)
		} else {
			fmt.Fprintf(&b, "%s%d", sym, count[sym])
		}
	}
	return b.String()
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	return &Structure{
		cell:  mat.DenseCopyOf(S.cell),
		kinds: append([]Kind{}, S.kinds...),
		sites: append([]Site{}, S.sites...),
	}
}

//FracCoords returns the fractional coordinates of the i-th site.
func (S *Structure) FracCoords(i int) ([3]float64, error) {
	var ret [3]float64
	if i < 0 || i >= len(S.sites) {
		return ret, fmt.Errorf("FracCoords: site %d out of range", i)
	}
	var inv mat.Dense
	if err := inv.Inverse(S.cell); err != nil {
		return ret, fmt.Errorf("FracCoords: %w", err)
	}
	c := S.sites[i].Coords
	//cartesian row vector times the inverse cell (rows are lattice vectors)
	v := mat.NewVecDense(3, []float64{c[0], c[1], c[2]})
	var f mat.VecDense
	f.MulVec(inv.T(), v)
	ret[0], ret[1], ret[2] = f.AtVec(0), f.AtVec(1), f.AtVec(2)
	return ret, nil
}

/*
 * xyz.go, part of gobands.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//XYZRead reads a periodic structure from an extended-XYZ file. The comment
//line must carry the cell in a Lattice="ax ay az bx by bz cx cy cz" entry
//(row-major lattice vectors, in Å); coordinates are cartesian, in Å. One
//kind per distinct element is created, named after the element symbol.
func XYZRead(filename string) (*Structure, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	S, err := XYZReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("XYZRead %s: %w", filename, err)
	}
	return S, nil
}

//XYZReadFrom reads an extended-XYZ structure from r. See XYZRead.
func XYZReadFrom(r io.Reader) (*Structure, error) {
	scn := bufio.NewScanner(r)
	if !scn.Scan() {
		return nil, fmt.Errorf("empty file")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scn.Text()))
	if err != nil {
		return nil, fmt.Errorf("malformed atom count line: %w", err)
	}
	if !scn.Scan() {
		return nil, fmt.Errorf("missing comment line")
	}
	cell, err := parseLattice(scn.Text())
	if err != nil {
		return nil, err
	}
	kinds := []Kind{}
	seen := make(map[string]bool)
	sites := make([]Site, 0, natoms)
	for i := 0; i < natoms; i++ {
		if !scn.Scan() {
			return nil, fmt.Errorf("expected %d atoms, file ends after %d", natoms, i)
		}
		fields := strings.Fields(scn.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("malformed atom line %d: %q", i+1, scn.Text())
		}
		sym := fields[0]
		if !seen[sym] {
			seen[sym] = true
			kinds = append(kinds, Kind{Name: sym, Symbol: sym})
		}
		var c [3]float64
		for j := 0; j < 3; j++ {
			c[j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("malformed coordinate in atom line %d: %w", i+1, err)
			}
		}
		sites = append(sites, Site{Kind: sym, Coords: c})
	}
	return NewStructure(cell, kinds, sites)
}

//parseLattice extracts the Lattice="..." entry of an extended-XYZ comment
//line and returns the corresponding 3x3 cell matrix.
func parseLattice(comment string) (*mat.Dense, error) {
	const tag = `Lattice="`
	start := strings.Index(comment, tag)
	if start < 0 {
		return nil, fmt.Errorf("no Lattice entry in comment line %q", comment)
	}
	rest := comment[start+len(tag):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return nil, fmt.Errorf("unterminated Lattice entry in comment line %q", comment)
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 9 {
		return nil, fmt.Errorf("Lattice entry must have 9 components, got %d", len(fields))
	}
	data := make([]float64, 9)
	for i, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed Lattice component %q: %w", v, err)
		}
		data[i] = f
	}
	return mat.NewDense(3, 3, data), nil
}

//XYZWrite writes the structure S to filename in extended-XYZ format, with
//the cell in the Lattice entry of the comment line.
func XYZWrite(filename string, S *Structure) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := XYZWriteTo(f, S); err != nil {
		return fmt.Errorf("XYZWrite %s: %w", filename, err)
	}
	return nil
}

//XYZWriteTo writes the structure S to w in extended-XYZ format. See
//XYZWrite.
func XYZWriteTo(w io.Writer, S *Structure) error {
	if err := S.Corrupted(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d\n", S.Len()); err != nil {
		return err
	}
	cell := S.Cell()
	lat := make([]string, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lat = append(lat, strconv.FormatFloat(cell.At(i, j), 'f', -1, 64))
		}
	}
	if _, err := fmt.Fprintf(w, "Lattice=\"%s\" Properties=species:S:1:pos:R:3\n", strings.Join(lat, " ")); err != nil {
		return err
	}
	for _, s := range S.Sites() {
		k, err := S.Kind(s.Kind)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", k.Symbol, s.Coords[0], s.Coords[1], s.Coords[2]); err != nil {
			return err
		}
	}
	return nil
}

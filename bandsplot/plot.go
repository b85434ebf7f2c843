/*
 * plot.go, part of gobands.
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

//Package bandsplot draws computed band structures along their k-point path,
//with the high-symmetry points marked on the abscissa and the Fermi level
//drawn across the plot.
package bandsplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/gobands"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Plot draws the band structure B, computed for the structure S, and saves
//it to filename. The image format is taken from the filename extension
//(.png, .pdf, .svg...). The abscissa is the cumulative cartesian distance
//along the path, in 1/Å; energies are referred to as read, in eV.
func Plot(B *bands.Bands, S *bands.Structure, title, filename string) error {
	if err := B.Corrupted(); err != nil {
		return fmt.Errorf("Plot: %w", err)
	}
	x, err := B.Path.Distances(S)
	if err != nil {
		return fmt.Errorf("Plot: %w", err)
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Energy (eV)"
	p.Add(plotter.NewGrid())

	//One line per band.
	for n := 0; n < B.NBands(); n++ {
		pts := make(plotter.XYs, len(x))
		for i := range x {
			pts[i].X = x[i]
			pts[i].Y = B.Eigenvalues[i][n]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("Plot: %w", err)
		}
		line.Color = color.RGBA{B: 180, A: 255}
		p.Add(line)
	}

	//The Fermi level, across the whole path.
	fermi := plotter.XYs{{X: x[0], Y: B.FermiEnergy}, {X: x[len(x)-1], Y: B.FermiEnergy}}
	fline, err := plotter.NewLine(fermi)
	if err != nil {
		return fmt.Errorf("Plot: %w", err)
	}
	fline.Color = color.RGBA{R: 200, A: 255}
	fline.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(fline)
	p.Legend.Add("Fermi level", fline)

	//High-symmetry labels as the only X ticks.
	if len(B.Path.Labels) > 0 {
		ticks := []plot.Tick{}
		for i, label := range B.Path.Labels {
			ticks = append(ticks, plot.Tick{Value: x[i], Label: label})
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	p.X.Min = x[0]
	p.X.Max = x[len(x)-1]

	if err := p.Save(7*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("Plot: %w", err)
	}
	return nil
}

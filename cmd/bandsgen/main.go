/*
 * main.go, part of gobands.
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

//bandsgen assembles band-structure requests for the workflow engine from
//the command line: it reads a structure, resolves a protocol and writes the
//resulting builder as YAML or as a compressed bundle.
package main

import (
	"fmt"
	"os"

	"github.com/rmera/gobands"
	"github.com/rmera/gobands/gen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	verbose    bool
	outFile    string
	bundleFile string
)

func logger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

//emit writes the builder as YAML to outFile (or stdout) and, if requested,
//as a compressed bundle.
func emit(b *gen.Builder) error {
	if bundleFile != "" {
		if err := gen.WriteBundle(bundleFile, b); err != nil {
			return err
		}
	}
	if outFile == "" || outFile == "-" {
		return b.Render(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.Render(f)
}

//pathFile is the YAML format accepted by --kpoints: an explicit list of
//fractional k-points with optional labels.
type pathFile struct {
	Points [][]float64    `yaml:"points"`
	Labels map[int]string `yaml:"labels"`
}

func readPath(name string) (*bands.Path, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var pf pathFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("reading k-points from %s: %w", name, err)
	}
	P := &bands.Path{Labels: pf.Labels}
	for _, p := range pf.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("reading k-points from %s: a point has %d components", name, len(p))
		}
		P.Points = append(P.Points, [3]float64{p[0], p[1], p[2]})
	}
	return P, nil
}

func siestaCmd() *cobra.Command {
	var (
		structureFile string
		protocol      string
		spin          string
		electronic    string
		code          string
		kpointsFile   string
	)
	cmd := &cobra.Command{
		Use:   "siesta",
		Short: "Assemble a Siesta band-structure request",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger()
			if err != nil {
				return err
			}
			defer log.Sync()
			S, err := bands.XYZRead(structureFile)
			if err != nil {
				return err
			}
			spinType, err := bands.ParseSpinType(spin)
			if err != nil {
				return err
			}
			elType, err := bands.ParseElectronicType(electronic)
			if err != nil {
				return err
			}
			g, err := gen.NewSiestaGenerator()
			if err != nil {
				return err
			}
			g.SetLogger(log)
			in := &gen.Input{
				Structure:      S,
				Protocol:       protocol,
				SpinType:       spinType,
				ElectronicType: elType,
				Engines:        gen.Engines{"bands": gen.Engine{Code: code}},
			}
			if kpointsFile != "" {
				in.BandsKpoints, err = readPath(kpointsFile)
				if err != nil {
					return err
				}
			}
			b, err := g.Builder(in)
			if err != nil {
				return err
			}
			return emit(b)
		},
	}
	cmd.Flags().StringVarP(&structureFile, "structure", "s", "", "extended-XYZ file with the structure (required)")
	cmd.Flags().StringVarP(&protocol, "protocol", "p", "", "protocol name (default: the generator's default)")
	cmd.Flags().StringVar(&spin, "spin", string(bands.SpinNone), "spin type: none or collinear")
	cmd.Flags().StringVar(&electronic, "electronic", string(bands.ElectronicMetal), "electronic type: metal or insulator")
	cmd.Flags().StringVarP(&code, "code", "c", "", "label of the installed Siesta code (required)")
	cmd.Flags().StringVarP(&kpointsFile, "kpoints", "k", "", "YAML file with an explicit k-point path, bypassing SeeK-Path")
	cmd.MarkFlagRequired("structure")
	cmd.MarkFlagRequired("code")
	return cmd
}

func fleurCmd() *cobra.Command {
	var (
		kpointsFile    string
		parentPath     string
		parentComputer string
		parentCode     string
		code           string
	)
	cmd := &cobra.Command{
		Use:   "fleur",
		Short: "Assemble a Fleur band-structure request from a prior calculation",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger()
			if err != nil {
				return err
			}
			defer log.Sync()
			path, err := readPath(kpointsFile)
			if err != nil {
				return err
			}
			g := gen.NewFleurGenerator()
			g.SetLogger(log)
			in := &gen.Input{
				BandsKpoints: path,
				Engines:      gen.Engines{"bands": gen.Engine{Code: code}},
				ParentFolder: &gen.RemoteFolder{
					Computer:       parentComputer,
					Path:           parentPath,
					CreatorProcess: gen.FleurCalcProcess,
					CreatorCode:    parentCode,
				},
			}
			b, err := g.Builder(in)
			if err != nil {
				return err
			}
			return emit(b)
		},
	}
	cmd.Flags().StringVarP(&kpointsFile, "kpoints", "k", "", "YAML file with the explicit k-point path (required)")
	cmd.Flags().StringVar(&parentPath, "parent-path", "", "path of the parent calculation's output folder (required)")
	cmd.Flags().StringVar(&parentComputer, "parent-computer", "", "computer holding the parent folder")
	cmd.Flags().StringVar(&parentCode, "parent-code", "", "code label of the parent calculation")
	cmd.Flags().StringVarP(&code, "code", "c", "", "code label overriding the parent's one")
	cmd.MarkFlagRequired("kpoints")
	cmd.MarkFlagRequired("parent-path")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "bandsgen",
		Short:         "Assemble band-structure calculation requests for the workflow engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().StringVarP(&outFile, "out", "o", "-", "output file for the builder YAML, - for stdout")
	root.PersistentFlags().StringVarP(&bundleFile, "bundle", "b", "", "also write the builder as a compressed bundle to this file")
	root.AddCommand(siestaCmd(), fleurCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

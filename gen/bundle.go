/*
 * bundle.go, part of gobands.
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
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

//A bundle is a builder serialized to zstd-compressed YAML, the form in which
//a request crosses a process boundary on its way to the workflow engine.

//WriteBundle writes the builder B to the file name as a compressed bundle.
func WriteBundle(name string, B *Builder) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("WriteBundle: %w", err)
	}
	defer f.Close()
	if err := WriteBundleTo(f, B); err != nil {
		return fmt.Errorf("WriteBundle %s: %w", name, err)
	}
	return nil
}

//WriteBundleTo writes the builder B to w as a compressed bundle.
func WriteBundleTo(w io.Writer, B *Builder) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(zw)
	if err := enc.Encode(B); err != nil {
		zw.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

//ReadBundle reads a builder back from the bundle file name.
func ReadBundle(name string) (*Builder, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("ReadBundle: %w", err)
	}
	defer f.Close()
	B, err := ReadBundleFrom(f)
	if err != nil {
		return nil, fmt.Errorf("ReadBundle %s: %w", name, err)
	}
	return B, nil
}

//ReadBundleFrom reads a builder back from the compressed bundle in r.
func ReadBundleFrom(r io.Reader) (*Builder, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	B := new(Builder)
	if err := yaml.NewDecoder(zr).Decode(B); err != nil {
		return nil, err
	}
	return B, nil
}

/*
 * restart.go, part of gobands.
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

import "fmt"

//RemoteFolder is a reference to the output folder of a prior calculation,
//living on the compute resource the workflow engine manages. Restarting from
//one bypasses part of the setup of a new calculation; what is actually
//reused (density matrix, charge density, wave functions...) depends on the
//simulation code.
type RemoteFolder struct {
	//Computer is the workflow-engine label of the machine holding the folder.
	Computer string `yaml:"computer"`
	//Path is the absolute path of the folder on that machine.
	Path string `yaml:"path"`
	//CreatorProcess is the process type of the calculation that produced
	//the folder, e.g. "fleur.fleur".
	CreatorProcess string `yaml:"creator_process"`
	//CreatorCode is the code label that calculation ran with.
	CreatorCode string `yaml:"creator_code"`
	//CreatorOptions are the job options that calculation ran with.
	CreatorOptions map[string]any `yaml:"creator_options,omitempty"`
}

//CreatedBy returns whether the folder was produced by a calculation of the
//given process type.
func (R *RemoteFolder) CreatedBy(process string) bool {
	return R != nil && R.CreatorProcess == process
}

//Corrupted checks that the folder reference is complete enough to restart
//from. It returns an error describing the problem found, or nil.
func (R *RemoteFolder) Corrupted() error {
	if R == nil {
		return fmt.Errorf("nil remote folder")
	}
	if R.Path == "" {
		return fmt.Errorf("remote folder without a path")
	}
	if R.CreatorProcess == "" {
		return fmt.Errorf("remote folder without a creator process")
	}
	return nil
}

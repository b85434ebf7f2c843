/*
 * doc.go, part of gobands.
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

//Package bands provides periodic-structure and k-point types used to set up
//electronic band-structure calculations, in such a way that the calculation
//settings are as separated as possible from the choice of the simulation code
//that will perform the calculation. The code-specific input generation lives
//in the gen subpackage.
package bands

/*
Copyright © 2024 the MOLASSES authors.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package molasses implements the MOLASSES cellular-automata lava flow
// simulation: given a digital elevation model, one or more vents, an
// erupted volume, a pulse volume, and a residual thickness, it evolves
// a grid of cells by injecting lava at the vents in discrete pulses and
// redistributing it to downhill neighbors until the volume is spent.
//
// Raster input is pinned by the Band interface in this package and
// implemented by internal/raster; configuration parsing lives in
// internal/config; random numbers come from the RNG type in rng.go.
// The simulation core itself has no I/O of its own.
package molasses

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

// Package config parses the MOLASSES configuration and events files
// (spec §6): a UTF-8, line-oriented KEY = VALUE grammar with '#' and
// blank-line comments. Value coercion uses github.com/spf13/cast so
// that numeric keys tolerate the usual surface variation (leading
// zeros, whitespace, scientific notation) without a bespoke parser
// for every type.
package config

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/spatialmodel/molasses"
)

// Inputs holds everything read from a MOLASSES configuration file.
type Inputs struct {
	DEMFile    string
	EventsFile string
	ID         string

	// Residual and ElevUncert are either a scalar (applied to every
	// cell) or a path to a raster band; a non-empty ResidualPath /
	// ElevUncertPath records that a path was supplied.
	Residual       float64
	ResidualPath   string
	ElevUncert     float64
	ElevUncertPath string

	FlowParams molasses.FlowParamConfig

	Runs          int
	CreateFlowField bool
	Mode          molasses.NeighborMode
	Policy        molasses.Policy

	HasAOI    bool
	AOIEasting, AOINorthing, AOIRadius float64

	ASCIIFlowMap  string
	ASCIIHitMap   string
	RasterFlowMap string
	RasterHitMap  string
	RasterPostDEM string
	RasterPreDEM  string
	StatsFile     string
}

// raw is the key/value bag accumulated from one pass over the file,
// before validation and type coercion.
type raw map[string]string

// Parse reads and validates a configuration file (spec §6). Missing
// mandatory values (DEM_FILE, EVENTS_FILE, any volume range, any
// residual range) return a ConfigMissing error; a value that cannot
// be coerced to its expected type returns ConfigMalformed.
func Parse(path string) (*Inputs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, molassesErr(molasses.IoFailure, "opening configuration file "+path, err)
	}
	defer f.Close()

	kv, err := scan(f)
	if err != nil {
		return nil, err
	}

	in := &Inputs{Policy: molasses.PolicySlopeProportional}

	in.DEMFile = kv["DEM_FILE"]
	in.EventsFile = kv["EVENTS_FILE"]
	in.ID = kv["ID"]
	in.StatsFile = kv["STATS_FILE"]
	in.ASCIIFlowMap = kv["ASCII_FLOW_MAP"]
	in.ASCIIHitMap = kv["ASCII_HIT_MAP"]
	in.RasterFlowMap = kv["RASTER_FLOW_MAP"]
	in.RasterHitMap = kv["RASTER_HIT_MAP"]
	in.RasterPostDEM = kv["RASTER_POST_DEM"]
	in.RasterPreDEM = kv["RASTER_PRE_DEM"]

	if in.DEMFile == "" {
		return nil, molassesErr(molasses.ConfigMissing, "DEM_FILE", nil)
	}
	if in.EventsFile == "" {
		return nil, molassesErr(molasses.ConfigMissing, "EVENTS_FILE", nil)
	}

	if err := parseScalarOrPath(kv, "RESIDUAL", &in.Residual, &in.ResidualPath); err != nil {
		return nil, err
	}
	if err := parseScalarOrPath(kv, "ELEVATION_UNCERT", &in.ElevUncert, &in.ElevUncertPath); err != nil {
		return nil, err
	}

	var err1 error
	in.FlowParams.TotalVolume, err1 = parseRange(kv, "MIN_TOTAL_VOLUME", "MAX_TOTAL_VOLUME", "LOG_MEAN_TOTAL_VOLUME", "LOG_STD_DEV_TOTAL_VOLUME", true)
	if err1 != nil {
		return nil, err1
	}
	in.FlowParams.PulseVolume, err1 = parseRange(kv, "MIN_PULSE_VOLUME", "MAX_PULSE_VOLUME", "", "", true)
	if err1 != nil {
		return nil, err1
	}
	in.FlowParams.Residual, err1 = parseRange(kv, "MIN_RESIDUAL", "MAX_RESIDUAL", "LOG_MEAN_RESIDUAL", "LOG_STD_DEV_RESIDUAL", true)
	if err1 != nil {
		return nil, err1
	}

	if v, ok := kv["RUNS"]; ok {
		in.Runs, err1 = cast.ToIntE(v)
		if err1 != nil {
			return nil, molassesErr(molasses.ConfigMalformed, "RUNS", err1)
		}
	} else {
		in.Runs = 1
	}

	if _, ok := kv["CREATE_FLOW_FIELD"]; ok {
		in.CreateFlowField = true
	}
	// PARENTS toggles 8-neighbor (Moore) selection; its absence leaves
	// the default 4-neighbor (cardinal) selection in place, matching
	// its original use as a plain presence flag.
	if _, ok := kv["PARENTS"]; ok {
		in.Mode = molasses.Moore
	} else {
		in.Mode = molasses.Cardinal
	}

	if e, ok := kv["AOI_EASTING"]; ok {
		in.HasAOI = true
		if in.AOIEasting, err1 = cast.ToFloat64E(e); err1 != nil {
			return nil, molassesErr(molasses.ConfigMalformed, "AOI_EASTING", err1)
		}
		if n, ok := kv["AOI_NORTHING"]; ok {
			if in.AOINorthing, err1 = cast.ToFloat64E(n); err1 != nil {
				return nil, molassesErr(molasses.ConfigMalformed, "AOI_NORTHING", err1)
			}
		}
		if r, ok := kv["AOI_RADIUS"]; ok {
			if in.AOIRadius, err1 = cast.ToFloat64E(r); err1 != nil {
				return nil, molassesErr(molasses.ConfigMalformed, "AOI_RADIUS", err1)
			}
		}
	}

	return in, nil
}

// parseScalarOrPath interprets value as a float if it parses as one,
// otherwise treats it as a raster path (spec §6: "scalar or path").
func parseScalarOrPath(kv raw, key string, scalar *float64, path *string) error {
	v, ok := kv[key]
	if !ok {
		return nil
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		*scalar = f
		return nil
	}
	*path = v
	return nil
}

// parseRange reads a Min/Max/LogMean/LogStd quadruple into a
// molasses.ParamRange. mandatory requests a ConfigMissing error if
// neither bound is present.
func parseRange(kv raw, minKey, maxKey, logMeanKey, logStdKey string, mandatory bool) (molasses.ParamRange, error) {
	var pr molasses.ParamRange
	minV, minOK := kv[minKey]
	maxV, maxOK := kv[maxKey]
	if mandatory && !minOK && !maxOK {
		return pr, molassesErr(molasses.ConfigMissing, minKey+"/"+maxKey, nil)
	}
	var err error
	if minOK {
		if pr.Min, err = cast.ToFloat64E(minV); err != nil {
			return pr, molassesErr(molasses.ConfigMalformed, minKey, err)
		}
	}
	if maxOK {
		if pr.Max, err = cast.ToFloat64E(maxV); err != nil {
			return pr, molassesErr(molasses.ConfigMalformed, maxKey, err)
		}
	}
	if logMeanKey != "" {
		if v, ok := kv[logMeanKey]; ok {
			if pr.LogMean, err = cast.ToFloat64E(v); err != nil {
				return pr, molassesErr(molasses.ConfigMalformed, logMeanKey, err)
			}
		}
	}
	if logStdKey != "" {
		if v, ok := kv[logStdKey]; ok {
			if pr.LogStd, err = cast.ToFloat64E(v); err != nil {
				return pr, molassesErr(molasses.ConfigMalformed, logStdKey, err)
			}
		}
	}
	return pr, nil
}

// scan reads KEY = VALUE lines, skipping '#' comments and blank lines.
func scan(r io.Reader) (raw, error) {
	kv := make(raw)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, molassesErr(molasses.ConfigMalformed, "line without '=': "+line, nil)
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		kv[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, molassesErr(molasses.IoFailure, "reading configuration file", err)
	}
	return kv, nil
}

// ParseEventsFile reads one event (list of vents) per non-comment line.
func ParseEventsFile(path string) ([][]molasses.Vent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, molassesErr(molasses.IoFailure, "opening events file "+path, err)
	}
	defer f.Close()

	var events [][]molasses.Vent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vents, err := molasses.ParseEventLine(line)
		if err != nil {
			return nil, err
		}
		events = append(events, vents)
	}
	if err := sc.Err(); err != nil {
		return nil, molassesErr(molasses.IoFailure, "reading events file", err)
	}
	if len(events) == 0 {
		return nil, molassesErr(molasses.ConfigMalformed, "events file has no events", nil)
	}
	return events, nil
}

// molassesErr mirrors the unexported constructor in the core package;
// config lives in its own package so it builds its own *molasses.Error
// through the exported NewError helper.
func molassesErr(kind molasses.Kind, msg string, err error) error {
	return molasses.NewError(kind, msg, err)
}

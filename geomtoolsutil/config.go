/*
Copyright © 2026 the GeomTools authors.
This file is part of GeomTools.

GeomTools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GeomTools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GeomTools.  If not, see <http://www.gnu.org/licenses/>.
*/

package geomtoolsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/spatialtools/geomtools"
)

// checkInputFile makes sure the input file is specified and exists,
// expanding any environment variables.
func checkInputFile(f, option string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("geomtools: you need to specify the %s shapefile", option)
	}
	f = os.ExpandEnv(f)
	if !strings.HasSuffix(f, ".shp") {
		return f, fmt.Errorf("geomtools: the %s file `%s` is not a .shp file", option, f)
	}
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("geomtools: the %s file doesn't exist: %v", option, err)
	}
	return f, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f, option string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("geomtools: you need to specify the %s shapefile", option)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("geomtools: the %s directory doesn't exist: %v", option, err)
	}
	return f, nil
}

// readInput reads the input shapefile named in the configuration.
func readInput(cfg *viper.Viper) (*geomtools.FeatureCollection, error) {
	f, err := checkInputFile(cfg.GetString("input"), "input")
	if err != nil {
		return nil, err
	}
	return geomtools.ReadShapefile(f)
}

// writeOutput writes fc to the output shapefile named in the
// configuration.
func writeOutput(cfg *viper.Viper, fc *geomtools.FeatureCollection) error {
	f, err := checkOutputFile(cfg.GetString("output"), "output")
	if err != nil {
		return err
	}
	return fc.WriteShapefile(f)
}

// writeCircles writes the circle polygons to the output shapefile and,
// when a centers path is configured, the center points alongside.
func writeCircles(cfg *viper.Viper, centers, circles *geomtools.FeatureCollection) error {
	if err := writeOutput(cfg, circles); err != nil {
		return err
	}
	if c := cfg.GetString("centers"); c != "" {
		f, err := checkOutputFile(c, "centers")
		if err != nil {
			return err
		}
		return centers.WriteShapefile(f)
	}
	return nil
}

// pivotFromConfig assembles the rotation pivot from the pivot, pivotx
// and pivoty options.
func pivotFromConfig(cfg *viper.Viper) (geomtools.Pivot, error) {
	switch name := cfg.GetString("pivot"); name {
	case "fixed":
		return geomtools.Pivot{
			Mode: geomtools.PivotFixed,
			X:    cast.ToFloat64(cfg.Get("pivotx")),
			Y:    cast.ToFloat64(cfg.Get("pivoty")),
		}, nil
	case "centroid":
		return geomtools.Pivot{Mode: geomtools.PivotCentroid}, nil
	case "truecentroid":
		return geomtools.Pivot{Mode: geomtools.PivotTrueCentroid}, nil
	default:
		return geomtools.Pivot{}, fmt.Errorf("geomtools: unknown pivot `%s`; want fixed, centroid or truecentroid", name)
	}
}

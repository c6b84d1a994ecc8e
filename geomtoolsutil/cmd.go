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

// Package geomtoolsutil holds the command-line interface of the
// GeomTools vector geometry toolbox.
package geomtoolsutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialtools/geomtools"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to GeomTools.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input is the path of the input shapefile.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output is the path the result shapefile is written to.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "centers",
			usage: `
              centers is the path the circle-center shapefile is written
              to, in addition to the circle polygons in output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{circleCmd.PersistentFlags()},
		},
		{
			name: "accuracy",
			usage: `
              accuracy is the convergence threshold of the inscribed
              circle estimate, in the units of the input coordinate
              system.`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{innerCircleCmd.Flags()},
		},
		{
			name: "to",
			usage: `
              to is the path of the shapefile holding the features the
              distance lines run to. When empty, distances are measured
              within the input collection itself.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{distanceCmd.Flags()},
		},
		{
			name: "step",
			usage: `
              step is the arc-length distance between sampled points.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{pointsAlongCmd.Flags()},
		},
		{
			name: "cutter",
			usage: `
              cutter is the path of the polyline shapefile the input
              features are cut by.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cutCmd.Flags()},
		},
		{
			name: "policy",
			usage: `
              policy chooses the numbering order: top_left, top_right,
              bottom_left, bottom_right, right_top, right_bottom,
              left_top or left_bottom.`,
			defaultVal: "top_left",
			flagsets:   []*pflag.FlagSet{numerateCmd.Flags()},
		},
		{
			name: "field",
			usage: `
              field is the attribute field the assigned numbers are
              written to.`,
			defaultVal: "number",
			flagsets:   []*pflag.FlagSet{numerateCmd.Flags()},
		},
		{
			name: "angle",
			usage: `
              angle is the clockwise rotation angle in degrees.`,
			shorthand:  "a",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rotateCmd.Flags()},
		},
		{
			name: "pivot",
			usage: `
              pivot chooses the rotation pivot: fixed, centroid or
              truecentroid. The fixed pivot rotates everything around
              the point given by pivotx and pivoty.`,
			defaultVal: "centroid",
			flagsets:   []*pflag.FlagSet{rotateCmd.Flags()},
		},
		{
			name: "pivotx",
			usage: `
              pivotx is the x coordinate of the fixed pivot.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rotateCmd.Flags()},
		},
		{
			name: "pivoty",
			usage: `
              pivoty is the y coordinate of the fixed pivot.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{rotateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOMTOOLS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(circleCmd)
	circleCmd.AddCommand(circle3Cmd)
	circleCmd.AddCommand(innerCircleCmd)
	Root.AddCommand(distanceCmd)
	Root.AddCommand(deriveCmd)
	deriveCmd.AddCommand(boundaryCmd)
	deriveCmd.AddCommand(extentCmd)
	deriveCmd.AddCommand(hullCmd)
	deriveCmd.AddCommand(hullRectCmd)
	deriveCmd.AddCommand(pointsAlongCmd)
	deriveCmd.AddCommand(lineToPolygonCmd)
	deriveCmd.AddCommand(cutCmd)
	Root.AddCommand(numerateCmd)
	Root.AddCommand(rotateCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geomtools: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geomtools",
	Short: "A vector geometry toolbox.",
	Long: `GeomTools derives circles, distance lines, shapes, numberings and
rotations from shapefile feature collections.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOMTOOLS_var' where 'var'
is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of GeomTools.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GeomTools v%s\n", geomtools.Version)
	},
	DisableAutoGenTag: true,
}

var circleCmd = &cobra.Command{
	Use:   "circle",
	Short: "Derive circles from features.",
	Long: `circle derives circle features. Use the subcommands specified below
to choose between circumcircles through point triples and maximum
inscribed circles of polygons.`,
	DisableAutoGenTag: true,
}

// circle3Cmd builds the circumcircle of every three consecutive points.
var circle3Cmd = &cobra.Command{
	Use:   "three-points",
	Short: "Build circles through point triples.",
	Long: `three-points builds, for every three consecutive points of the input
collection, the unique circle through them. The circle polygons go to
the output shapefile; the circle centers, carrying the radius in their
distance field, go to the shapefile named by the centers option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := readInput(Cfg)
		if err != nil {
			return err
		}
		centers, circles, err := fc.CircleFromThreePoints()
		if err != nil {
			return err
		}
		return writeCircles(Cfg, centers, circles)
	},
	DisableAutoGenTag: true,
}

// innerCircleCmd estimates maximum inscribed circles.
var innerCircleCmd = &cobra.Command{
	Use:   "inner",
	Short: "Estimate maximum inscribed circles.",
	Long: `inner estimates the maximum inscribed circle of every polygon of the
input collection, converging until the boundary clearance drops below
the accuracy option. The circle polygons go to the output shapefile and
the centers to the shapefile named by the centers option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := readInput(Cfg)
		if err != nil {
			return err
		}
		centers, circles, err := fc.InnerCircle(Cfg.GetFloat64("accuracy"))
		if err != nil {
			return err
		}
		return writeCircles(Cfg, centers, circles)
	},
	DisableAutoGenTag: true,
}

var distanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Connect features with shortest-distance lines.",
	Long: `distance connects every point of the input collection with the nearest
location on every feature of the to collection, recording identifiers,
endpoint coordinates, lengths and per-identifier length ranks on each
line. Without a to collection the input is measured against itself and
symmetric duplicates are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readInput(Cfg)
		if err != nil {
			return err
		}
		b := a
		if toPath := Cfg.GetString("to"); toPath != "" {
			b, err = geomtools.ReadShapefile(toPath)
			if err != nil {
				return err
			}
		}
		out, err := geomtools.DistanceLines(a, b)
		if err != nil {
			return err
		}
		return writeOutput(Cfg, out)
	},
	DisableAutoGenTag: true,
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive shapes from features.",
	Long: `derive computes derived geometry for every feature of the input
collection. Use the subcommands specified below to choose the derived
shape.`,
	DisableAutoGenTag: true,
}

var boundaryCmd = deriveCommand("boundary",
	"Derive feature boundaries.",
	`boundary derives the topological boundary of every feature: ring lines
for polygons and endpoints for polylines.`,
	func(fc *geomtools.FeatureCollection) (*geomtools.FeatureCollection, error) {
		return fc.Boundary()
	})

var extentCmd = deriveCommand("extent",
	"Derive feature extents.",
	`extent derives the axis-aligned bounding rectangle of every feature.`,
	func(fc *geomtools.FeatureCollection) (*geomtools.FeatureCollection, error) {
		return fc.Extent()
	})

var hullCmd = deriveCommand("hull",
	"Derive feature convex hulls.",
	`hull derives the convex hull of every feature's vertex set.`,
	func(fc *geomtools.FeatureCollection) (*geomtools.FeatureCollection, error) {
		return fc.ConvexHull()
	})

var hullRectCmd = deriveCommand("rectangle",
	"Derive minimum bounding rectangles.",
	`rectangle derives the minimum-area bounding rectangle of every
feature.`,
	func(fc *geomtools.FeatureCollection) (*geomtools.FeatureCollection, error) {
		return fc.HullRectangle()
	})

var lineToPolygonCmd = deriveCommand("polygon",
	"Reinterpret polylines as polygons.",
	`polygon reinterprets the paths of every polyline feature as polygon
rings. The paths must have at least three distinct finite vertices
each.`,
	func(fc *geomtools.FeatureCollection) (*geomtools.FeatureCollection, error) {
		return fc.LineToPolygon()
	})

var pointsAlongCmd = &cobra.Command{
	Use:   "points",
	Short: "Sample points along features.",
	Long: `points samples every polyline feature (or polygon boundary) at the
fixed arc-length increment given by the step option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := readInput(Cfg)
		if err != nil {
			return err
		}
		out, err := fc.PointsAlong(Cfg.GetFloat64("step"))
		if err != nil {
			return err
		}
		return writeOutput(Cfg, out)
	},
	DisableAutoGenTag: true,
}

var cutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Cut features by polylines.",
	Long: `cut splits every polygon or polyline feature of the input collection
by the polylines of the cutter shapefile and explodes the pieces to
singlepart features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := readInput(Cfg)
		if err != nil {
			return err
		}
		cutterPath := Cfg.GetString("cutter")
		if cutterPath == "" {
			return fmt.Errorf("geomtools: the cut command needs a cutter shapefile")
		}
		cutter, err := geomtools.ReadShapefile(cutterPath)
		if err != nil {
			return err
		}
		out, err := geomtools.Cut(fc, cutter)
		if err != nil {
			return err
		}
		return writeOutput(Cfg, out)
	},
	DisableAutoGenTag: true,
}

var numerateCmd = &cobra.Command{
	Use:   "numerate",
	Short: "Number point features by position.",
	Long: `numerate sorts the point features of the input collection by the
chosen policy and writes the resulting 1-based numbers into the chosen
attribute field.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := readInput(Cfg)
		if err != nil {
			return err
		}
		policy, err := geomtools.ParseSortPolicy(Cfg.GetString("policy"))
		if err != nil {
			return err
		}
		if err := fc.Numerate(policy, Cfg.GetString("field")); err != nil {
			return err
		}
		return writeOutput(Cfg, fc)
	},
	DisableAutoGenTag: true,
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate features.",
	Long: `rotate applies a rigid clockwise rotation to every feature of the
input collection, around a fixed pivot point or around each feature's
own centroid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := readInput(Cfg)
		if err != nil {
			return err
		}
		pivot, err := pivotFromConfig(Cfg)
		if err != nil {
			return err
		}
		out, err := fc.Rotate(Cfg.GetFloat64("angle"), pivot)
		if err != nil {
			return err
		}
		return writeOutput(Cfg, out)
	},
	DisableAutoGenTag: true,
}

// deriveCommand wraps a per-collection derivation into a subcommand of
// deriveCmd.
func deriveCommand(use, short, long string, fn func(*geomtools.FeatureCollection) (*geomtools.FeatureCollection, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := readInput(Cfg)
			if err != nil {
				return err
			}
			out, err := fn(fc)
			if err != nil {
				return err
			}
			return writeOutput(Cfg, out)
		},
		DisableAutoGenTag: true,
	}
}

/*
Copyright © 2020 the gridprop authors.
This file is part of gridprop.

gridprop is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gridprop is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gridprop.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package gridutil holds the command-line interface to the grid property
// tools.
package gridutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridprop"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to gridprop.
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
			name: "CaseFile",
			usage: `
              CaseFile is the path to the TOML file holding the tokenized
              keywords of the simulation deck.`,
			shorthand:  "c",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the NetCDF file the grid properties
              are written to.`,
			shorthand:  "o",
			defaultVal: "gridprop.ncf",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging level: one of debug, info, warning
              or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "AllowInactive",
			usage: `
              AllowInactive specifies whether explicit values for inactive
              cells are accepted without a warning.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "StartDate",
			usage: `
              StartDate is the simulation start date, in the format
              YYYY-MM-DD. Schedule actions become ready at this date.`,
			defaultVal: "2000-01-01",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies variables to calculate from the grid
              properties and write to the output file, in the format
              {"VarName":"expression"}, e.g. {"NETPORO":"PORO * NTG"}.
              Expressions can use the functions exp, log, min and max.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Limits",
			usage: `
              Limits gives the allowed range of grid properties, in the format
              {"KEYWORD":"min,max"}. Properties outside of their range stop
              the run.`,
			defaultVal: map[string]string{"PORO": "0,1", "NTG": "0,1"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), checkCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GRIDPROP")

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
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
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
	Root.AddCommand(runCmd)
	Root.AddCommand(checkCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gridprop: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("gridprop: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gridprop",
	Short: "Reservoir grid property processing.",
	Long: `gridprop builds the per-cell properties of a reservoir simulation grid
from the keywords of a simulation deck. Use the subcommands specified below to
access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GRIDPROP_var' where 'var' is the
name of the variable to be set. File paths are allowed to contain environment
variables.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of gridprop.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gridprop v%s\n", gridprop.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd processes a case and writes the results.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a case and write its grid properties.",
	Long: `run reads the keywords in CaseFile, applies them to the grid properties,
checks the property limits, calculates OutputVariables, and writes every
property to OutputFile in NetCDF format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		caseFile, err := checkCaseFile(Cfg.GetString("CaseFile"))
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		limits, err := getLimits("Limits", Cfg)
		if err != nil {
			return err
		}
		start, err := getDate("StartDate", Cfg)
		if err != nil {
			return err
		}
		outputVars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		return Run(caseFile, outputFile, Cfg.GetBool("AllowInactive"), start,
			outputVars, limits, logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

// checkCmd processes a case and prints a summary.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Process a case and summarize its grid properties.",
	Long: `check reads the keywords in CaseFile, applies them to the grid properties,
checks the property limits, and prints a summary of each property without
writing any output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		caseFile, err := checkCaseFile(Cfg.GetString("CaseFile"))
		if err != nil {
			return err
		}
		limits, err := getLimits("Limits", Cfg)
		if err != nil {
			return err
		}
		start, err := getDate("StartDate", Cfg)
		if err != nil {
			return err
		}
		return Check(cmd.OutOrStdout(), caseFile, Cfg.GetBool("AllowInactive"), start, limits, logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

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

package gridutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// checkCaseFile makes sure that the case file is specified and exists, and
// expands any environment variables.
func checkCaseFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify a case file configuration variable (for example: CaseFile="case.toml")`)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("gridprop: the CaseFile can not be read: %v", err)
	}
	return f, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output.ncf")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("gridprop: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return make(map[string]string), nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if v == "" {
			return make(map[string]string), nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("gridprop: %s should be a JSON object of strings, for example {\"NAME\":\"value\"}: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("gridprop: invalid type for %s: %#v", varName, i)
	}
}

// getLimits reads a map of keyword names to "min,max" ranges.
func getLimits(varName string, cfg *viper.Viper) (map[string][2]float64, error) {
	m, err := GetStringMapString(varName, cfg)
	if err != nil {
		return nil, err
	}
	o := make(map[string][2]float64)
	for k, v := range m {
		parts := strings.Split(v, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("gridprop: %s for %s should be in the format \"min,max\" but is %q", varName, k, v)
		}
		var l [2]float64
		for i, p := range parts {
			f, err := cast.ToFloat64E(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("gridprop: %s for %s: %v", varName, k, err)
			}
			l[i] = f
		}
		if l[0] > l[1] {
			return nil, fmt.Errorf("gridprop: %s for %s: minimum %g is greater than maximum %g", varName, k, l[0], l[1])
		}
		o[strings.ToUpper(k)] = l
	}
	return o, nil
}

// getDate reads a YYYY-MM-DD date.
func getDate(varName string, cfg *viper.Viper) (time.Time, error) {
	s := os.ExpandEnv(cfg.GetString(varName))
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return t, fmt.Errorf("gridprop: %s should be in the format YYYY-MM-DD: %v", varName, err)
	}
	return t, nil
}

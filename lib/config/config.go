/*package config parses cellvol run configuration files. Config files are
INI-style and read with gcfg:

    [mesh]
    path = run/mesh.vol

    [output]
    path     = run/volumedata.csv
    truncate = false

Parsing and validation are split: Raw holds whatever the user wrote, and
Process converts it to a validated Config after command-line overrides have
been applied on top.
*/
package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// Raw stores the unprocessed values which the user assigned to each config
// variable.
type Raw struct {
	Mesh struct {
		Path string
	}
	Output struct {
		Path     string
		Truncate bool
	}
}

// Config stores configuration information. It is a post-processed version of
// Raw.
type Config struct {
	// MeshPath is the volume listing to read the domain from.
	MeshPath string
	// OutPath is the file cell volumes are exported to.
	OutPath string
	// Truncate makes the export truncate OutPath instead of appending.
	Truncate bool
}

// ParseFile parses the config file at path.
func ParseFile(path string) (*Raw, error) {
	raw := &Raw{}
	if err := gcfg.ReadFileInto(raw, path); err != nil {
		return nil, fmt.Errorf("The config file '%s' could not be parsed: %v", path, err)
	}
	return raw, nil
}

// Parse parses config text. It exists so tests and callers with in-memory
// configuration don't need to touch the file system.
func Parse(text string) (*Raw, error) {
	raw := &Raw{}
	if err := gcfg.ReadStringInto(raw, text); err != nil {
		return nil, fmt.Errorf("The config text could not be parsed: %v", err)
	}
	return raw, nil
}

// Overwrite replaces values in raw with values that were set on the command
// line. Empty strings mean the flag was not given. Truncate is applied only
// when truncateSet is true, since false is a meaningful flag value.
func (raw *Raw) Overwrite(meshPath, outPath string, truncate, truncateSet bool) {
	if meshPath != "" { raw.Mesh.Path = meshPath }
	if outPath != "" { raw.Output.Path = outPath }
	if truncateSet { raw.Output.Truncate = truncate }
}

// Process converts the raw user input to a validated Config. Only checks
// which don't require interacting with external files are done here; whether
// the paths actually resolve is the caller's problem.
func (raw *Raw) Process() (*Config, error) {
	if raw.Mesh.Path == "" {
		return nil, fmt.Errorf("No mesh path was given. Set 'path' in the [mesh] section or pass --mesh.")
	}
	if raw.Output.Path == "" {
		return nil, fmt.Errorf("No output path was given. Set 'path' in the [output] section or pass --out.")
	}

	return &Config{
		MeshPath: raw.Mesh.Path,
		OutPath:  raw.Output.Path,
		Truncate: raw.Output.Truncate,
	}, nil
}

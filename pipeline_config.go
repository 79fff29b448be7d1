package rolandqd

/*------------------------------------------------------------------
 *
 * Purpose:	Resolve a pipeline macro name (a built-in like "encode",
 *		or an operator-defined one) to its ordered stage list.
 *
 * Description:	Mirrors deviceid.go's tocalls.yaml loading: a layered
 *		list of search directories, first file found wins, and a
 *		missing file is not an error -- the built-in macro table
 *		is the fallback.
 *
 *------------------------------------------------------------------*/

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// builtinMacros are the macros spec.md §4.7 hardcodes.
var builtinMacros = map[string][]string{
	"encode":    {StageLutInvert, StageMfmEncode, StageLutInvert},
	"decode":    {StageLutInvert, StageMfmSync, StageMfmDecode, StageLutInvert},
	"syx-to-qd": {StageSyxRead, StageQdSampleBlocks},
}

const pipelineConfigFile = "rolandqd.yaml"

// pipelineConfigSearchPath mirrors deviceid.go's tocallsSearchPath: cwd,
// a local data directory, a user config directory, then installed
// system-wide locations.
func pipelineConfigSearchPath() []string {
	paths := []string{
		pipelineConfigFile,
		filepath.Join("data", pipelineConfigFile),
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(cfgDir, "rolandqd", pipelineConfigFile))
	}
	paths = append(paths,
		filepath.Join("/usr/local/share/rolandqd", pipelineConfigFile),
		filepath.Join("/usr/share/rolandqd", pipelineConfigFile),
	)
	return paths
}

// pipelineConfigFormat is the on-disk shape of rolandqd.yaml:
//
//	macros:
//	  my-macro: [lut-invert, mfm-encode, lut-invert]
type pipelineConfigFormat struct {
	Macros map[string][]string `yaml:"macros"`
}

// MacroTable resolves macro names to stage lists, built-ins plus any
// operator-defined overrides loaded from rolandqd.yaml.
type MacroTable struct {
	macros map[string][]string
}

// LoadMacroTable builds the macro table: built-ins first, then the first
// rolandqd.yaml found along the search path (if any) merged on top, so
// operators can add new macros or override existing ones.
func LoadMacroTable() (*MacroTable, error) {
	macros := make(map[string][]string, len(builtinMacros))
	for name, stages := range builtinMacros {
		macros[name] = stages
	}

	for _, path := range pipelineConfigSearchPath() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var cfg pipelineConfigFormat
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, wrapError(InvalidArguments, err, "parsing %s", path)
		}
		for name, stages := range cfg.Macros {
			macros[name] = stages
		}
		break
	}

	return &MacroTable{macros: macros}, nil
}

// Resolve expands a mode list: any entry matching a known macro name is
// replaced by its stage list (in place, preserving order); any other
// entry is assumed to already be a raw stage name.
func (m *MacroTable) Resolve(modes []string) []string {
	stages := make([]string, 0, len(modes))
	for _, mode := range modes {
		if expansion, ok := m.macros[mode]; ok {
			stages = append(stages, expansion...)
			continue
		}
		stages = append(stages, mode)
	}
	return stages
}

package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // option flags, e.g. "-threads"
	Args    []string // subcommand/argument values
}

// commandMetadata maps command names to their options and arguments.
// These are extracted from the actual command implementations in api.go
// and sim.go.
var commandMetadata = map[string]CommandMetadata{
	"load": {
		Args: []string{"league", "projections", "store"},
	},
	"sim": {
		Args:    []string{"prepare", "start", "show", "details", "hist", "champions", "log", "trim", "stop"},
		Options: []string{"-threads", "-stop", "-iters", "-collect"},
	},
	"scenario": {
		Args:    []string{"trade", "adddrop", "list", "clear"},
		Options: []string{"-give", "-get", "-givepicks", "-getpicks", "-add", "-drop"},
	},
	"trade": {
		Options: []string{"-give", "-get", "-givepicks", "-getpicks", "-window"},
	},
	"tiers": {
		Args:    []string{"QB", "RB", "WR", "TE", "K", "DST"},
		Options: []string{"-k"},
	},
	"curve": {
		Args:    []string{"QB", "RB", "WR", "TE", "K", "DST"},
		Options: []string{"-degree"},
	},
	"adp": {
		Args: []string{"fetch"},
	},
	"history": {
		Options: []string{"-n"},
	},
	"roster":    {},
	"standings": {},
	"schedule":  {},
	"set":       {},
	"seed":      {},
	"help":      {},
	"exit":      {},
}

func commandNames() []string {
	names := make([]string, 0, len(commandMetadata))
	for name := range commandMetadata {
		names = append(names, name)
	}
	return names
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	fields, err := shellquote.Split(prefix)
	if err != nil {
		return nil, 0
	}
	trailingSpace := strings.HasSuffix(prefix, " ")

	// Completing the command name itself.
	if len(fields) == 0 || (len(fields) == 1 && !trailingSpace) {
		partial := ""
		if len(fields) == 1 {
			partial = fields[0]
		}
		return matches(commandNames(), partial)
	}

	meta, ok := commandMetadata[fields[0]]
	if !ok {
		return nil, 0
	}
	partial := ""
	if !trailingSpace {
		partial = fields[len(fields)-1]
	}
	candidates := meta.Args
	if strings.HasPrefix(partial, "-") || (partial == "" && len(fields) > 1 && !trailingSpace) {
		candidates = meta.Options
	} else if partial == "" {
		candidates = append(append([]string{}, meta.Args...), meta.Options...)
	}
	return matches(candidates, partial)
}

func matches(candidates []string, partial string) ([][]rune, int) {
	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, partial) && cand != partial {
			out = append(out, []rune(cand[len(partial):]+" "))
		}
	}
	return out, len(partial)
}

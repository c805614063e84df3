package main

import (
	"fmt"
	"strings"

	"github.com/rybkr/cmdtree/internal/termcolor"
)

type globalFlags struct {
	colorMode termcolor.ColorMode
	colorSet  bool // --color or --no-color was given
	version   bool
}

// parseGlobalFlags extracts --color, --no-color and --version from anywhere
// before a "--" in args, returning the parsed flags and the remaining
// (filtered) arguments.
func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	gf := globalFlags{colorMode: termcolor.ColorAuto}
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}

		if arg == "--version" {
			gf.version = true
			continue
		}

		if arg == "--no-color" {
			gf.colorMode, gf.colorSet = termcolor.ColorNever, true
			continue
		}

		if arg == "--color" {
			if i+1 >= len(args) {
				return gf, nil, fmt.Errorf("--color requires a value")
			}
			mode, err := termcolor.ParseColorMode(args[i+1])
			if err != nil {
				return gf, nil, err
			}
			gf.colorMode, gf.colorSet = mode, true
			i++ // skip the value
			continue
		}

		if val, ok := strings.CutPrefix(arg, "--color="); ok {
			mode, err := termcolor.ParseColorMode(val)
			if err != nil {
				return gf, nil, err
			}
			gf.colorMode, gf.colorSet = mode, true
			continue
		}

		remaining = append(remaining, arg)
	}

	return gf, remaining, nil
}

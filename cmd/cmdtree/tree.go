package main

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/rybkr/cmdtree/internal/cli"
)

type treeEntry struct {
	path  string
	depth int
	label string
}

// renderTree draws the visible commands of reg. A non-empty filter keeps
// the commands whose path fuzzy-matches it, along with their ancestors.
func renderTree(reg *cli.Registry, filter string, aliases bool) (string, error) {
	var entries []treeEntry
	reg.Walk(func(path []*cli.Command) bool {
		cmd := path[len(path)-1]
		if cmd.Hidden {
			return false
		}
		label := cmd.Name
		if aliases && len(cmd.Aliases) > 0 {
			label += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		if cmd.Description != "" {
			label += "  " + cmd.Description
		}
		entries = append(entries, treeEntry{path: pathOf(path), depth: len(path) - 1, label: label})
		return true
	})

	if filter != "" {
		entries = filterEntries(entries, filter)
		if len(entries) == 0 {
			return "", cli.Exit(1, fmt.Errorf("no commands match %q", filter))
		}
	}

	items := make(pterm.LeveledList, len(entries))
	for i, e := range entries {
		items[i] = pterm.LeveledListItem{Level: e.depth, Text: e.label}
	}
	out, err := pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(items)).Srender()
	if err != nil {
		return "", fmt.Errorf("render tree: %w", err)
	}
	return out, nil
}

func filterEntries(entries []treeEntry, filter string) []treeEntry {
	keep := make(map[string]bool)
	for _, e := range entries {
		if !fuzzy.MatchFold(filter, e.path) {
			continue
		}
		parts := strings.Fields(e.path)
		for i := range parts {
			keep[strings.Join(parts[:i+1], " ")] = true
		}
	}

	var out []treeEntry
	for _, e := range entries {
		if keep[e.path] {
			out = append(out, e)
		}
	}
	return out
}

func pathOf(path []*cli.Command) string {
	names := make([]string, len(path))
	for i, c := range path {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

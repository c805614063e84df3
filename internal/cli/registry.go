package cli

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"

	"go.uber.org/multierr"
)

// Registry owns the forest of registered commands. Commands are registered
// during startup and are read-only once the first dispatch begins, so reads
// from concurrent dispatches need no locking.
type Registry struct {
	roots   []*Command
	byName  map[string]*Command // root names and root aliases
	aliases map[string]string   // every alias in the tree -> owning command path
	nodes   map[*Command]bool   // every command in the tree
	sealed  atomic.Bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Command),
		aliases: make(map[string]string),
		nodes:   make(map[*Command]bool),
	}
}

// Register adds cmd as a root command. The definition is validated as a
// whole; all problems are reported together and nothing is inserted when
// any are found.
func (r *Registry) Register(cmd *Command) error {
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	if cmd == nil {
		return &InvalidDefinitionError{Field: "command", Message: "nil command"}
	}

	var err error
	for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
		if _, isAlias := r.aliases[name]; isAlias && name != cmd.Name {
			continue // reported by validate
		}
		if owner, exists := r.byName[name]; exists {
			err = multierr.Append(err, &DuplicateNameError{Name: name, Scope: "root", Owner: owner.Name})
		}
	}
	newAliases := make(map[string]string)
	visited := make(map[*Command]bool)
	err = multierr.Append(err, r.validate(cmd, nil, newAliases, visited))
	if err != nil {
		return err
	}

	r.roots = append(r.roots, cmd)
	r.byName[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		r.byName[a] = cmd
	}
	for a, owner := range newAliases {
		r.aliases[a] = owner
	}
	for c := range visited {
		r.nodes[c] = true
	}
	return nil
}

// MustRegister is like Register but panics on error. It suits setup code
// where a bad definition is a programming mistake.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// validate checks cmd and its subtree. parents is the path above cmd;
// pending collects aliases claimed by this registration so far and visited
// the commands it has reached. A command already in the tree is reported
// and its subtree is not descended, so cycles terminate.
func (r *Registry) validate(cmd *Command, parents []*Command, pending map[string]string, visited map[*Command]bool) error {
	here := append(parents[:len(parents):len(parents)], cmd)
	path := commandPath(here)
	if visited[cmd] || r.nodes[cmd] {
		return &InvalidDefinitionError{Command: path, Field: "subcommands", Message: "command appears more than once in the tree"}
	}
	visited[cmd] = true
	var err error

	if msg := checkName(cmd.Name); msg != "" {
		err = multierr.Append(err, &InvalidDefinitionError{Command: path, Field: "name", Message: msg})
	}
	if cmd.Action == nil && len(cmd.Subcommands) == 0 {
		err = multierr.Append(err, &InvalidDefinitionError{
			Command: path, Field: "action", Message: "a command needs an action or subcommands",
		})
	}

	for _, a := range cmd.Aliases {
		if a == cmd.Name {
			err = multierr.Append(err, &InvalidDefinitionError{Command: path, Field: "alias", Message: "alias repeats the command name"})
			continue
		}
		if msg := checkName(a); msg != "" {
			err = multierr.Append(err, &InvalidDefinitionError{Command: path, Field: "alias", Message: msg})
			continue
		}
		if owner, ok := r.aliases[a]; ok {
			err = multierr.Append(err, &DuplicateNameError{Name: a, Scope: "alias", Owner: owner})
			continue
		}
		if owner, ok := pending[a]; ok {
			err = multierr.Append(err, &DuplicateNameError{Name: a, Scope: "alias", Owner: owner})
			continue
		}
		pending[a] = path
	}

	err = multierr.Append(err, validateOptions(path, cmd.Options))

	seen := make(map[string]string)
	for _, sub := range cmd.Subcommands {
		if sub == nil {
			err = multierr.Append(err, &InvalidDefinitionError{Command: path, Field: "subcommands", Message: "nil subcommand"})
			continue
		}
		for _, name := range append([]string{sub.Name}, sub.Aliases...) {
			if other, dup := seen[name]; dup {
				err = multierr.Append(err, &DuplicateNameError{Name: name, Scope: path, Owner: other})
			}
			seen[name] = sub.Name
		}
		err = multierr.Append(err, r.validate(sub, here, pending, visited))
	}
	return err
}

func validateOptions(path string, opts []Option) error {
	var err error
	keys := make(map[string]string)
	claim := func(key, owner string) {
		if other, dup := keys[key]; dup {
			err = multierr.Append(err, &InvalidDefinitionError{
				Command: path, Field: "options",
				Message: fmt.Sprintf("%q is declared by both %q and %q", key, other, owner),
			})
			return
		}
		keys[key] = owner
	}

	for _, o := range opts {
		if msg := checkName(o.Name); msg != "" {
			err = multierr.Append(err, &InvalidDefinitionError{Command: path, Field: "option name", Message: msg})
			continue
		}
		claim(o.Name, o.Name)
		if o.Alias != "" {
			if n := len([]rune(o.Alias)); n != 1 || o.Alias == "-" {
				err = multierr.Append(err, &InvalidDefinitionError{
					Command: path, Field: "option alias",
					Message: fmt.Sprintf("alias %q of --%s must be a single character", o.Alias, o.Name),
				})
			} else {
				claim(o.Alias, o.Name)
			}
		}
		if o.Type < Boolean || o.Type > Number {
			err = multierr.Append(err, &InvalidDefinitionError{
				Command: path, Field: "option type", Message: fmt.Sprintf("--%s has unknown type %v", o.Name, o.Type),
			})
			continue
		}
		if _, ok := o.defaultValue(); !ok {
			err = multierr.Append(err, &InvalidDefinitionError{
				Command: path, Field: "option default",
				Message: fmt.Sprintf("--%s default %v (%T) is not a %s", o.Name, o.Default, o.Default, o.Type),
			})
		}
	}
	return err
}

// checkName returns a description of what is wrong with name, or "".
func checkName(name string) string {
	switch {
	case name == "":
		return "name is empty"
	case strings.HasPrefix(name, "-"):
		return fmt.Sprintf("%q must not start with '-'", name)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Sprintf("%q must not contain whitespace", name)
	}
	return ""
}

// seal makes the registry read-only.
func (r *Registry) seal() {
	r.sealed.Store(true)
}

// FindCommand returns the root command whose name or alias equals
// nameOrAlias exactly.
func (r *Registry) FindCommand(nameOrAlias string) (*Command, bool) {
	cmd, ok := r.byName[nameOrAlias]
	return cmd, ok
}

// Resolution is the outcome of ResolvePath.
type Resolution struct {
	Path []*Command // matched commands from root to the deepest match
	Rest []string   // tokens not consumed as command names
}

// Command returns the deepest matched command.
func (res Resolution) Command() *Command {
	return res.Path[len(res.Path)-1]
}

// ResolvePath matches tokens[0] against the root commands, then keeps
// descending while the next token names a subcommand of the current node.
// It reports false when tokens[0] matches no root.
func (r *Registry) ResolvePath(tokens []string) (Resolution, bool) {
	if len(tokens) == 0 {
		return Resolution{}, false
	}
	cmd, ok := r.FindCommand(tokens[0])
	if !ok {
		return Resolution{}, false
	}

	path := []*Command{cmd}
	i := 1
	for ; i < len(tokens); i++ {
		sub := cmd.Subcommand(tokens[i])
		if sub == nil {
			break
		}
		cmd = sub
		path = append(path, cmd)
	}
	return Resolution{Path: path, Rest: append([]string(nil), tokens[i:]...)}, true
}

// Commands returns the root commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.roots))
	copy(out, r.roots)
	return out
}

// CommandNames returns all root command names in sorted order.
func (r *Registry) CommandNames() []string {
	names := make([]string, len(r.roots))
	for i, c := range r.roots {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}

// Candidates returns the visible root names, in registration order,
// followed by each command's aliases when includeAliases is set.
func (r *Registry) Candidates(includeAliases bool) []string {
	return candidateNames(r.roots, includeAliases)
}

func candidateNames(cmds []*Command, includeAliases bool) []string {
	var out []string
	for _, c := range cmds {
		if c.Hidden {
			continue
		}
		out = append(out, c.Name)
		if includeAliases {
			out = append(out, c.Aliases...)
		}
	}
	return out
}

// Walk visits every command depth-first in registration order. path holds
// the commands from the root down to and including cmd. Returning false
// from fn skips cmd's subtree.
func (r *Registry) Walk(fn func(path []*Command) bool) {
	for _, root := range r.roots {
		walk([]*Command{root}, fn)
	}
}

func walk(path []*Command, fn func([]*Command) bool) {
	if !fn(path) {
		return
	}
	cmd := path[len(path)-1]
	for _, sub := range cmd.Subcommands {
		walk(append(path[:len(path):len(path)], sub), fn)
	}
}

package cli

import (
	"math"
	"strconv"
	"strings"
)

// Values holds the option values bound for one invocation. Every declared
// option has a value: either the one supplied on the command line or its
// default.
type Values struct {
	values map[string]any
	set    map[string]bool
}

// Get returns the value bound to the option name.
func (v Values) Get(name string) (any, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Has reports whether the option was supplied explicitly.
func (v Values) Has(name string) bool {
	return v.set[name]
}

// Bool returns the value of a boolean option, or false.
func (v Values) Bool(name string) bool {
	b, _ := v.values[name].(bool)
	return b
}

// String returns the value of a string option, or "".
func (v Values) String(name string) string {
	s, _ := v.values[name].(string)
	return s
}

// Number returns the value of a number option, or 0.
func (v Values) Number(name string) float64 {
	n, _ := v.values[name].(float64)
	return n
}

// Map returns a copy of all bound values keyed by option name.
func (v Values) Map() map[string]any {
	out := make(map[string]any, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// ResolveOptions binds flag tokens to the option definitions of the command
// at path and returns the bound values with the positional arguments in
// their original order.
//
// Accepted forms are --name, --name=value, -a and -a=value; either prefix
// matches an option's name or alias. String and number options without an
// inline value take the next token. A boolean may be followed by a literal
// true or false. "--" ends option parsing and a lone "-" is positional.
func ResolveOptions(path string, defs []Option, tokens []string) (Values, []string, error) {
	vals := Values{
		values: make(map[string]any, len(defs)),
		set:    make(map[string]bool),
	}
	for _, o := range defs {
		vals.values[o.Name], _ = o.defaultValue()
	}

	var args []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "--" {
			args = append(args, tokens[i+1:]...)
			break
		}
		if !isFlag(tok) {
			args = append(args, tok)
			continue
		}

		flag, value, inline := strings.Cut(tok, "=")
		opt, ok := findFlag(defs, flag)
		if !ok {
			return Values{}, nil, &UnknownOptionError{Command: path, Flag: flag}
		}

		var bound any
		switch opt.Type {
		case Boolean:
			switch {
			case inline:
				b, ok := parseBoolLiteral(value)
				if !ok {
					return Values{}, nil, &InvalidOptionValueError{Command: path, Flag: flag, Value: value, Type: opt.Type}
				}
				bound = b
			case i+1 < len(tokens):
				if b, ok := parseBoolLiteral(tokens[i+1]); ok {
					bound = b
					i++
				} else {
					bound = true
				}
			default:
				bound = true
			}
		case String, Number:
			if !inline {
				if i+1 >= len(tokens) {
					return Values{}, nil, &InvalidOptionValueError{
						Command: path, Flag: flag, Type: opt.Type, Reason: "requires a value",
					}
				}
				i++
				value = tokens[i]
			}
			if opt.Type == String {
				bound = value
				break
			}
			n, ok := parseNumber(value)
			if !ok {
				return Values{}, nil, &InvalidOptionValueError{Command: path, Flag: flag, Value: value, Type: opt.Type}
			}
			bound = n
		}
		vals.values[opt.Name] = bound
		vals.set[opt.Name] = true
	}
	return vals, args, nil
}

// isFlag reports whether tok is an option token rather than a positional.
func isFlag(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}

// findFlag looks up the option named by a "-x" or "--xx" token without its
// inline value. Three or more dashes match nothing.
func findFlag(defs []Option, flag string) (Option, bool) {
	key, ok := strings.CutPrefix(flag, "--")
	if !ok {
		key = strings.TrimPrefix(flag, "-")
	}
	if strings.HasPrefix(key, "-") {
		return Option{}, false
	}
	return lookupOption(defs, key)
}

func lookupOption(defs []Option, key string) (Option, bool) {
	if key == "" {
		return Option{}, false
	}
	for _, o := range defs {
		if o.Name == key {
			return o, true
		}
	}
	for _, o := range defs {
		if o.Alias != "" && o.Alias == key {
			return o, true
		}
	}
	return Option{}, false
}

func parseBoolLiteral(s string) (value, ok bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseNumber accepts base-10 integers and decimals with an optional
// exponent. Hex literals, digit separators, Inf and NaN are rejected.
func parseNumber(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Package i18n provides localized user-facing strings for the CLI: the
// "command not found" messages, help section headings, and error hints.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the locale every key is defined in.
const BaseLocale = "en"

// Message keys.
const (
	NotFoundNone      = "command.not_found.none"
	NotFoundSuggest   = "command.not_found.suggest"
	HelpVersion       = "help.version"
	HelpUsage         = "help.usage"
	HelpCommands      = "help.commands"
	HelpSubcommands   = "help.subcommands"
	HelpOptions       = "help.options"
	HelpExamples      = "help.examples"
	HelpAliases       = "help.aliases"
	HelpGlobalFlags   = "help.global_flags"
	HelpDefault       = "help.default"
	HelpMoreInfo      = "help.more_info"
	HintHelp          = "hint.help"
	HintCommandHelp   = "hint.command_help"
	HintDidYouMean    = "hint.did_you_mean"
	ErrRequired       = "error.subcommand_required"
	ErrUnknownSub     = "error.unknown_subcommand"
	GlobalFlagColor   = "flag.color"
	GlobalFlagNoColor = "flag.no_color"
	GlobalFlagVersion = "flag.version"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		NotFoundNone:      `Command "%s" not found. No similar commands found.`,
		NotFoundSuggest:   `Command "%s" not found. Did you mean:`,
		HelpVersion:       "%s version %s",
		HelpUsage:         "Usage:",
		HelpCommands:      "Commands:",
		HelpSubcommands:   "Subcommands:",
		HelpOptions:       "Options:",
		HelpExamples:      "Examples:",
		HelpAliases:       "Aliases:",
		HelpGlobalFlags:   "Global flags:",
		HelpDefault:       "(default: %s)",
		HelpMoreInfo:      "Run '%s help <command>' for more information on a command.",
		HintHelp:          "Run '%s help' for a list of commands.",
		HintCommandHelp:   "Run '%s help %s' for usage.",
		HintDidYouMean:    "Did you mean %s?",
		ErrRequired:       "%s requires a subcommand",
		ErrUnknownSub:     `%s: unknown subcommand "%s"`,
		GlobalFlagColor:   "Color output: auto, always, never",
		GlobalFlagNoColor: "Disable color output",
		GlobalFlagVersion: "Show version and exit",
	},
	language.Spanish: {
		NotFoundNone:      `Comando "%s" no encontrado. No se encontraron comandos similares.`,
		NotFoundSuggest:   `Comando "%s" no encontrado. ¿Quisiste decir:`,
		HelpVersion:       "%s versión %s",
		HelpUsage:         "Uso:",
		HelpCommands:      "Comandos:",
		HelpSubcommands:   "Subcomandos:",
		HelpOptions:       "Opciones:",
		HelpExamples:      "Ejemplos:",
		HelpAliases:       "Alias:",
		HelpGlobalFlags:   "Opciones globales:",
		HelpDefault:       "(predeterminado: %s)",
		HelpMoreInfo:      "Ejecuta '%s help <comando>' para más información sobre un comando.",
		HintHelp:          "Ejecuta '%s help' para ver la lista de comandos.",
		HintCommandHelp:   "Ejecuta '%s help %s' para ver el uso.",
		HintDidYouMean:    "¿Quisiste decir %s?",
		ErrRequired:       "%s requiere un subcomando",
		ErrUnknownSub:     `%s: subcomando desconocido "%s"`,
		GlobalFlagColor:   "Salida en color: auto, always, never",
		GlobalFlagNoColor: "Desactivar la salida en color",
		GlobalFlagVersion: "Mostrar la versión y salir",
	},
}

// supported lists the catalog's locales; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Spanish}

var (
	builder = mustBuild()
	matcher = language.NewMatcher(supported)
)

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: register %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// Catalog renders messages for one locale.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

var base = New(BaseLocale)

// Default returns the English catalog.
func Default() *Catalog {
	return base
}

// New returns a catalog for locale, falling back to English when the locale
// is empty, malformed, or not translated.
func New(locale string) *Catalog {
	tag := supported[0]
	if locale = strings.TrimSpace(locale); locale != "" {
		if requested, err := language.Parse(locale); err == nil {
			if _, idx, conf := matcher.Match(requested); conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Catalog{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

// Locale returns the resolved locale of the catalog.
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// Sprintf formats the message registered under key. Arguments should be
// pre-formatted strings so numbers are not localized.
func (c *Catalog) Sprintf(key string, args ...any) string {
	if c == nil {
		c = base
	}
	return c.printer.Sprintf(key, args...)
}

// Keys returns every key defined for the base locale.
func Keys() []string {
	keys := make([]string, 0, len(messages[language.English]))
	for k := range messages[language.English] {
		keys = append(keys, k)
	}
	return keys
}

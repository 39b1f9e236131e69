// Package output renders command results as tables, JSON, compact lines or
// styled markdown.
package output

import (
	"os"
	"strings"
)

// Format is an output format.
type Format int

// Output formats. FormatAuto resolves to FormatTable.
const (
	FormatAuto Format = iota
	FormatJSON
	FormatTable
	FormatCompact
)

// EnvOutput selects the output format when no flag is given.
const EnvOutput = "DUEWATCH_OUTPUT"

var envFormats = map[string]Format{
	"json":    FormatJSON,
	"table":   FormatTable,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

// Detect picks the format from flags first, then DUEWATCH_OUTPUT, then table.
// With several flags set, JSON wins over compact and compact over table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := envFormats[strings.ToLower(strings.TrimSpace(os.Getenv(EnvOutput)))]; ok {
		return f
	}
	return FormatTable
}

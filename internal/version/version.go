package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the phpdrift CLI.
// These variables can be overridden at build time via -ldflags -X.

var (
	// Plain is the semantic version without styling. JSON output and
	// ldflags overrides work with this form.
	Plain = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored раскрашивает компоненты версии для терминала. Строка, не
// похожая на semver, возвращается как есть.
func Colored() string {
	parts := strings.SplitN(Plain, ".", 3)
	if len(parts) != 3 {
		return Plain
	}
	patch, suffix, _ := strings.Cut(parts[2], "-")
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(patch)
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

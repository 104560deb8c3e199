package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"phpdrift/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "phpdrift",
	Short: "PHP version compatibility checker",
	Long:  `phpdrift scans PHP sources for constructs deprecated by newer PHP versions`,
}

// main initializes the CLI by setting the command version, registering subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Plain

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write scan trace events to file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|scan|phase|file|debug)")
	rootCmd.PersistentFlags().String("trace-format", "text", "trace output format (text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

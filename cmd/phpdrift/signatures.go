package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"phpdrift/internal/diagfmt"
	"phpdrift/internal/driver"
)

var signaturesCmd = &cobra.Command{
	Use:   "signatures [flags] file.php",
	Short: "Extract function and method signatures from a PHP source file",
	Long: `Signatures prints the parameter lists the checker extracts from a file.
This is the same pass check runs before applying its rules, so the output
shows exactly what the rules get to see.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignatures,
}

func init() {
	signaturesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runSignatures(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// Извлекаем сигнатуры
	result, err := driver.ExtractSignatures(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("signature extraction failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		opts := diagfmt.PrettyOpts{
			Color:       useColor,
			Context:     2,
			ShowNotes:   true,
			ShowSnippet: true,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	// Выводим сигнатуры в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatSignaturesPretty(os.Stdout, result.Sigs, result.FileSet)
	case "json":
		return diagfmt.FormatSignaturesJSON(os.Stdout, result.Sigs, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"pdf-text-pipeline/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "textpipe",
	Short: "Textpipe - text normalization from the command line",
	Long: `Textpipe runs the de-hyphenation and word extraction stages of the
text pipeline against local files, without starting the HTTP server.`,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Repair hyphenated line breaks in a text file",
	Long: `Repair soft line breaks and end-of-line hyphenation in a text file
and print the normalized text to stdout.

Examples:
  textpipe normalize extracted.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

var wordsCmd = &cobra.Command{
	Use:   "words [file]",
	Short: "Extract cleaned words from a text file",
	Long: `Normalize a text file and print its cleaned word list, one word per
line, capped at the pipeline word limit.

Examples:
  textpipe words extracted.txt
  textpipe words extracted.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the word list as JSON")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	fmt.Println(service.Dehyphenate(text))
	return nil
}

func runWords(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	words := service.Words(text)
	nWords := len(words)
	if nWords > service.MaxWords {
		words = words[:service.MaxWords]
	}
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(map[string]interface{}{
			"n_words": nWords,
			"words":   words,
		})
	}
	for _, w := range words {
		fmt.Println(w)
	}
	return nil
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

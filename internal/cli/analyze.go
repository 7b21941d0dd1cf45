// Package cli provides the command-line interface for Piccolor.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/piccolor/internal/analyzer"
	"github.com/jmylchreest/piccolor/internal/cluster"
	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/layout"
	"github.com/jmylchreest/piccolor/internal/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Analyze command flags
	analyzeColours      int
	analyzeMaxDimension int
	analyzeSeed         int64
	analyzeAlgorithm    string
	analyzeLayout       string
	analyzeCanvasSize   int
	analyzeFormat       string
	analyzeOutput       string
	analyzeShowPreview  bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze an image and extract its colour palette",
	Long: `Analyze an image, extract its dominant colour palette, and compute a
proportional canvas layout for the extracted colours.

The analysis is deterministic: the same image and options always
produce the same palette, in the same order, with the same layout.
Colours are ranked by coverage; ties are broken by RGB value so the
ordering never depends on chance.

The image argument may be a local file, a directory (one image is
picked at random), an HTTPS URL (downloaded and cached), or "-" to
read image data from stdin.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Extract up to 16 colours (default) from an image
  piccolor analyze wallpaper.jpg

  # Extract 8 colours with terminal previews
  piccolor analyze --preview --colours 8 wallpaper.png

  # Full analysis as JSON, including layout placements
  piccolor analyze --format json wallpaper.jpg

  # Hex codes only, written to a file
  piccolor analyze -f hex -o palette.txt wallpaper.jpg

  # Honeycomb layout on a 512px canvas
  piccolor analyze --layout honeycomb --canvas-size 512 wallpaper.jpg

  # Analyze a random image from a directory
  piccolor analyze ~/Pictures/wallpapers

  # Analyze a remote image
  piccolor analyze https://example.com/wallpaper.jpg

  # Read image data from stdin
  cat wallpaper.png | piccolor analyze -`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	// Define flags for the analyze command
	analyzeCmd.Flags().IntVarP(&analyzeColours, "colours", "c", 16, "maximum number of colours to extract (1-32)")
	analyzeCmd.Flags().IntVar(&analyzeMaxDimension, "max-dimension", 800, "downsample images whose longest edge exceeds this")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", cluster.DefaultSeed, "clustering seed")
	analyzeCmd.Flags().StringVarP(&analyzeAlgorithm, "algorithm", "a", "kmeans", "clustering algorithm (kmeans, dominant)")
	analyzeCmd.Flags().StringVarP(&analyzeLayout, "layout", "l", "grid", "canvas layout mode (grid, honeycomb)")
	analyzeCmd.Flags().IntVar(&analyzeCanvasSize, "canvas-size", layout.DefaultCanvasSize, "side length of the square layout canvas")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format (text, json, hex, rgb, hsl, hsv)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeShowPreview, "preview", false, "show colour previews in terminal")
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	data, err := source.Resolve(cmd.Context(), args[0], source.Options{})
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	cfg := analyzer.DefaultConfig()
	cfg.MaxColors = analyzeColours
	cfg.MaxDimension = analyzeMaxDimension
	cfg.Seed = analyzeSeed
	cfg.Algorithm = cluster.Algorithm(analyzeAlgorithm)
	cfg.CanvasSize = analyzeCanvasSize
	cfg.LayoutMode, err = layout.ParseMode(analyzeLayout)
	if err != nil {
		return err
	}

	result, err := analyzer.New(analysisLogger(verbose)).Analyze(cmd.Context(), data, cfg)
	if err != nil {
		return err
	}

	output, err := formatResult(result, analyzeFormat, analyzeShowPreview)
	if err != nil {
		return err
	}

	if verbose || (!quiet && analyzeFormat == "text") {
		fmt.Fprintln(os.Stderr, result.Summary())
	}

	// Write output to file or stdout
	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote palette to %s\n", analyzeOutput)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

// analysisLogger builds the analyzer logger from the verbose flag.
func analysisLogger(verbose bool) hclog.Logger {
	if verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "analyze",
			Output: log.Writer(),
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "analyze",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// formatResult renders an analysis result in the requested format.
func formatResult(result *analyzer.Result, format string, showPreview bool) (string, error) {
	switch format {
	case "text":
		return formatText(result, showPreview), nil
	case "json":
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "hex", "rgb", "hsl", "hsv":
		f, err := colour.ParseFormat(format)
		if err != nil {
			return "", err
		}
		return formatValues(result.Colors, f, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, hex, rgb, hsl, hsv)", format)
	}
}

// formatText renders the ranked palette as aligned text rows.
func formatText(result *analyzer.Result, showPreview bool) string {
	var sb strings.Builder
	if showPreview {
		sb.WriteString(colour.PreviewBar(result.Colors, terminalWidth()))
		sb.WriteString("\n\n")
	}
	for _, c := range result.Colors {
		if showPreview {
			sb.WriteString(colour.Preview(c.RGB, 4))
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%-8s %-18s %6.2f%%  %d px\n", c.Hex, c.RGB.String(), c.Percentage, c.PixelCount)
	}
	return sb.String()
}

// formatValues renders one colour value per line.
func formatValues(colors []colour.Info, f colour.Format, showPreview bool) string {
	var sb strings.Builder
	for _, c := range colors {
		if showPreview {
			sb.WriteString(colour.Preview(c.RGB, 4))
			sb.WriteString("  ")
		}
		sb.WriteString(c.Format(f))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// terminalWidth reports the stdout width, falling back to 80 columns
// when stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 1 {
		return 80
	}
	return width
}

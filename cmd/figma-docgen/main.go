package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	figmadocgen "github.com/hellenic-development/figma-docgen"
	"github.com/hellenic-development/figma-docgen/pkg/config"
	"github.com/hellenic-development/figma-docgen/pkg/figma"
	"github.com/hellenic-development/figma-docgen/pkg/server"
)

const version = figma.Version

var (
	frameURL    string
	figmaToken  string
	deepseekKey string
	outputFile  string
	model       string
	maxDepth    int
	exportImage bool
	imageFormat string
	imageDir    string

	configFile string
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-docgen",
		Short: "Generate UI documentation from Figma frames",
		Long:  "A tool that classifies the nodes of a Figma frame into UI elements, enriches them with AI descriptions, and renders markdown documentation.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env file is optional.
			godotenv.Load()
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate documentation for one frame and write it to a file",
		Run:   runGenerate,
	}
	generateCmd.Flags().StringVarP(&frameURL, "url", "u", "", "Figma frame URL with node-id (required)")
	generateCmd.Flags().StringVarP(&figmaToken, "token", "t", "", "Figma Personal Access Token (default $FIGMA_ACCESS_TOKEN)")
	generateCmd.Flags().StringVarP(&deepseekKey, "deepseek-key", "k", "", "DeepSeek API key (default $DEEPSEEK_API_KEY)")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "FIGMA_FRAME_DOCS.md", "Output markdown file")
	generateCmd.Flags().StringVar(&model, "model", "", "Chat model id")
	generateCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum tree traversal depth (0 = default)")
	generateCmd.Flags().BoolVar(&exportImage, "export-image", false, "Export a frame screenshot and link it in the output")
	generateCmd.Flags().StringVar(&imageFormat, "image-format", "png", "Screenshot format: png, svg, jpg, pdf")
	generateCmd.Flags().StringVar(&imageDir, "image-dir", "figma-assets", "Output directory for the screenshot")
	generateCmd.MarkFlagRequired("url")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the documentation HTTP service",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-docgen version %s\n", version)
		},
	}

	rootCmd.AddCommand(generateCmd, serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n📝 Figma Frame Documentation")
	cyan.Println("============================")
	cyan.Println()

	token := figmaToken
	if token == "" {
		token = os.Getenv("FIGMA_ACCESS_TOKEN")
	}
	key := deepseekKey
	if key == "" {
		key = os.Getenv("DEEPSEEK_API_KEY")
	}

	result, err := figmadocgen.Run(cmd.Context(), figmadocgen.Options{
		FigmaToken:  token,
		DeepSeekKey: key,
		FrameURL:    frameURL,
		Model:       model,
		MaxDepth:    maxDepth,
		ExportImage: exportImage,
		ImageFormat: imageFormat,
		ImageDir:    imageDir,
		Logger:      &cliLogger{},
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cyan.Println("\n📊 Summary:")
	fmt.Printf("  • Frame: %s\n", result.FrameName)
	fmt.Printf("  • Elements: %d\n", len(result.Elements))
	if result.Screenshot != nil {
		fmt.Printf("  • Screenshot: %s\n", result.Screenshot.FileName)
	}

	green.Printf("\n💾 Writing to %s... ", outputFile)
	if err := os.WriteFile(outputFile, []byte(result.Markdown), 0644); err != nil {
		red.Printf("✗\n")
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓")

	green.Printf("\n✨ Successfully documented %d element(s) to %s\n\n", len(result.Elements), outputFile)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).ListenAndServe(ctx)
}

// cliLogger implements figmadocgen.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}

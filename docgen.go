package figmadocgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/hellenic-development/figma-docgen/pkg/enricher"
	"github.com/hellenic-development/figma-docgen/pkg/extractor"
	"github.com/hellenic-development/figma-docgen/pkg/figma"
	"github.com/hellenic-development/figma-docgen/pkg/formatter"
	"github.com/hellenic-development/figma-docgen/pkg/imager"
)

// Pipeline error kinds. Callers map these onto their own error surface
// (the HTTP server maps them to 400/500/404 responses).
var (
	// ErrInvalidFrameURL means the frame URL did not yield both a file key and a node ID.
	ErrInvalidFrameURL = errors.New("invalid Figma frame URL")
	// ErrFigmaTokenMissing means no Figma access token was configured.
	ErrFigmaTokenMissing = errors.New("figma access token not configured")
	// ErrDeepSeekKeyMissing means no DeepSeek API key was configured.
	ErrDeepSeekKeyMissing = errors.New("deepseek API key not configured")
	// ErrFrameNotFound means the node fetch failed for any reason: transport
	// error, non-200 status, or the node absent from the response.
	ErrFrameNotFound = errors.New("frame not found")
)

// Options configures the documentation pipeline. Credentials are passed in
// explicitly; the pipeline reads no ambient environment state.
type Options struct {
	FigmaToken  string
	DeepSeekKey string
	FrameURL    string // Figma frame URL with a node-id parameter

	Model    string // chat model id, default enricher.DefaultModel
	MaxDepth int    // traversal depth cap, default extractor.DefaultMaxDepth

	ExportImage bool   // render a frame screenshot and link it in the markdown
	ImageFormat string // "png", "svg", "jpg", "pdf"
	ImageDir    string // default "figma-assets"

	// Base URL overrides for the two upstream APIs, used in tests.
	FigmaBaseURL    string
	DeepSeekBaseURL string

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the generated documentation.
type Result struct {
	FrameName  string
	Markdown   string
	Elements   []extractor.UIElement
	Screenshot *imager.ExportedAsset // nil unless ExportImage succeeded
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run executes the documentation pipeline: parse the frame URL, fetch the
// node subtree, classify it into UI elements, enrich them with AI text, and
// render the markdown table. The two upstream calls happen in sequence, each
// attempted exactly once; enrichment failure degrades to deterministic
// fallback text rather than failing the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.logInfo("Parsing frame URL...")
	fileKey, nodeID := figma.ParseFrameURL(opts.FrameURL)
	if fileKey == "" || nodeID == "" {
		return nil, fmt.Errorf("%w: expected figma.com/file/FILE_KEY/...?node-id=NODE_ID", ErrInvalidFrameURL)
	}
	opts.logInfo("File key: %s, node: %s", fileKey, nodeID)

	if opts.FigmaToken == "" {
		return nil, ErrFigmaTokenMissing
	}
	if opts.DeepSeekKey == "" {
		return nil, ErrDeepSeekKeyMissing
	}

	client := figma.NewClient(opts.FigmaToken)
	if opts.FigmaBaseURL != "" {
		client.SetBaseURL(opts.FigmaBaseURL)
	}

	opts.logInfo("Fetching node from Figma...")
	node, err := client.GetNode(ctx, fileKey, nodeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameNotFound, err)
	}

	frameName := node.Name
	if frameName == "" {
		frameName = "UI Screen"
	}
	opts.logInfo("Frame: %s", frameName)

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = extractor.DefaultMaxDepth
	}

	opts.logInfo("Classifying UI elements...")
	elements := extractor.ExtractWithDepth(node, maxDepth)
	opts.logInfo("Found %d element(s)", len(elements))

	enr := enricher.NewClient(opts.DeepSeekKey)
	enr.SetModel(opts.Model)
	if opts.DeepSeekBaseURL != "" {
		enr.SetBaseURL(opts.DeepSeekBaseURL)
	}

	opts.logInfo("Enriching elements with AI descriptions...")
	if err := enr.Enrich(ctx, elements, frameName); err != nil {
		opts.logWarn("AI enrichment degraded to fallback text: %v", err)
	}

	var screenshot *imager.ExportedAsset
	if opts.ExportImage {
		opts.logInfo("Exporting frame screenshot...")
		screenshot, err = imager.ExportFrameScreenshot(ctx, client, fileKey, nodeID, frameName, imager.ExportConfig{
			Format:    opts.ImageFormat,
			OutputDir: opts.ImageDir,
		})
		if err != nil {
			opts.logWarn("Screenshot export failed: %v", err)
			screenshot = nil
		}
	}

	screenshotFile := ""
	if screenshot != nil {
		screenshotFile = screenshot.FileName
	}

	opts.logInfo("Generating markdown documentation...")
	markdown := formatter.ToMarkdown(elements, frameName, screenshotFile)

	return &Result{
		FrameName:  frameName,
		Markdown:   markdown,
		Elements:   elements,
		Screenshot: screenshot,
	}, nil
}

// Package figmadocgen turns a Figma design frame into human-readable
// markdown documentation: it fetches the frame's node tree from the Figma
// API, classifies visual nodes into UI-element categories (text, button,
// card, icon), enriches each element with AI-generated descriptions via the
// DeepSeek API, and renders the result as a markdown table.
//
// The HTTP service lives in pkg/server and the CLI in cmd/figma-docgen; this
// root package exposes the same pipeline as a Go API so that callers can
// embed documentation generation in their own tools.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmadocgen:
//
//	import "github.com/hellenic-development/figma-docgen" // package figmadocgen
//
// # Quick start
//
//	result, err := figmadocgen.Run(ctx, figmadocgen.Options{
//	    FigmaToken:  os.Getenv("FIGMA_ACCESS_TOKEN"),
//	    DeepSeekKey: os.Getenv("DEEPSEEK_API_KEY"),
//	    FrameURL:    "https://www.figma.com/design/ABC123/My-Design?node-id=1-2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("docs.md", []byte(result.Markdown), 0644)
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Enrichment fallback
//
// The AI enrichment step is best-effort: when the completion call fails or
// returns unparseable content, every element receives deterministic template
// text and Run still succeeds. Enrichment never partially applies — a single
// completion request serves the whole batch.
package figmadocgen

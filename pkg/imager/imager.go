// Package imager exports a rendered screenshot of the documented frame via
// the Figma image render API. Export is best-effort: documentation still
// renders when the screenshot cannot be produced.
package imager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hellenic-development/figma-docgen/pkg/figma"
)

// ExportConfig holds configuration for the frame screenshot export.
type ExportConfig struct {
	Format    string  // "png", "svg", "jpg", "pdf"
	Scale     float64 // render scale factor, 1 when zero
	OutputDir string  // local directory, default "figma-assets"
}

// ExportedAsset describes a downloaded screenshot file.
type ExportedAsset struct {
	NodeID   string
	NodeName string
	FileName string
	Format   string
	Scale    float64
}

// ExportFrameScreenshot renders the target frame through the Figma image API
// and saves it under config.OutputDir. Returns metadata about the written file.
func ExportFrameScreenshot(ctx context.Context, client *figma.Client, fileKey, nodeID, nodeName string, config ExportConfig) (*ExportedAsset, error) {
	if config.Format == "" {
		config.Format = "png"
	}
	if config.Scale <= 0 {
		config.Scale = 1
	}
	if config.OutputDir == "" {
		config.OutputDir = "figma-assets"
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", config.OutputDir, err)
	}

	imgResp, err := client.GetImages(ctx, fileKey, []string{nodeID}, config.Format, config.Scale)
	if err != nil {
		return nil, fmt.Errorf("failed to get image from Figma API: %w", err)
	}

	downloadURL := imgResp.Images[nodeID]
	if downloadURL == "" {
		return nil, fmt.Errorf("no image URL returned for node %s", nodeID)
	}

	fileName := buildFileName(nodeName, nodeID, config.Format, config.Scale)
	destPath := filepath.Join(config.OutputDir, fileName)

	f, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %q: %w", destPath, err)
	}
	defer f.Close()

	if err := client.Download(ctx, downloadURL, f); err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to download %s: %w", nodeName, err)
	}

	return &ExportedAsset{
		NodeID:   nodeID,
		NodeName: nodeName,
		FileName: fileName,
		Format:   config.Format,
		Scale:    config.Scale,
	}, nil
}

// buildFileName creates a sanitized filename from a node name.
// Uses kebab-case, adds @2x/@3x suffix for raster scales > 1,
// falls back to the sanitized node ID if the name is empty.
func buildFileName(nodeName, nodeID, format string, scale float64) string {
	name := nodeName
	if name == "" {
		name = nodeID
	}

	name = toKebabCase(name)
	if name == "" {
		name = "screenshot"
	}

	scaleSuffix := ""
	if scale > 1 && format != "svg" && format != "pdf" {
		scaleSuffix = fmt.Sprintf("@%gx", scale)
	}

	return fmt.Sprintf("%s%s.%s", name, scaleSuffix, format)
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

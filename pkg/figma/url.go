package figma

import (
	"regexp"
	"strings"
)

// Frame URL patterns. Both /file/ and /design/ paths are in circulation
// (e.g. figma.com/design/ABC123/Design-Name?node-id=11933-305884). The node-id
// query parameter uses hyphens in shared URLs while the API expects colons.
var (
	fileKeyRe = regexp.MustCompile(`figma\.com/(?:file|design)/([A-Za-z0-9]+)`)
	nodeIDRe  = regexp.MustCompile(`node-id=([0-9%-]+)`)
)

// ParseFrameURL extracts the file key and node ID from a Figma frame URL.
// Hyphens in the node ID are rewritten to colons, the delimiter the nodes API
// expects. A component whose pattern does not match is returned as an empty
// string; no error is raised for malformed input.
func ParseFrameURL(frameURL string) (fileKey, nodeID string) {
	if m := fileKeyRe.FindStringSubmatch(frameURL); len(m) == 2 {
		fileKey = m[1]
	}
	if m := nodeIDRe.FindStringSubmatch(frameURL); len(m) == 2 {
		nodeID = strings.ReplaceAll(m[1], "-", ":")
	}
	return fileKey, nodeID
}

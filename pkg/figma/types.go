package figma

// Version is the current release of figma-docgen.
const Version = "0.1.0"

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// It contains file metadata and a map of node IDs to their corresponding NodeData.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps a node with its document structure.
// This is the structure returned for each requested node in a NodesResponse.
type NodeData struct {
	Document Node `json:"document"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Nodes can be frames, groups, text, shapes, or other Figma elements; only the
// properties relevant to UI-element classification are decoded.
type Node struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	CornerRadius float64    `json:"cornerRadius,omitempty"`
	Characters   string     `json:"characters,omitempty"`
	Children     []Node     `json:"children,omitempty"`
	BoundingBox  *Rectangle `json:"absoluteBoundingBox,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImagesResponse represents the response from the Figma image render API endpoint.
// Images maps node IDs to temporary download URLs; an empty URL means the node
// could not be rendered.
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

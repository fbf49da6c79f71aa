package figma

import (
	"testing"
)

func TestParseFrameURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantFileKey string
		wantNodeID  string
	}{
		{
			name:        "file URL with node-id",
			url:         "https://figma.com/file/ABC123/Test?node-id=1-2",
			wantFileKey: "ABC123",
			wantNodeID:  "1:2",
		},
		{
			name:        "design URL with node-id",
			url:         "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884",
			wantFileKey: "4gkABR5gEZnIvlCaXmA4KI",
			wantNodeID:  "11933:305884",
		},
		{
			name:        "node-id with additional parameters",
			url:         "https://www.figma.com/design/ABC123/Design?node-id=123-456&t=ObvUckUHZc8tSjeT-1",
			wantFileKey: "ABC123",
			wantNodeID:  "123:456",
		},
		{
			name:        "missing node-id",
			url:         "https://www.figma.com/file/ABC123/Design-Name",
			wantFileKey: "ABC123",
			wantNodeID:  "",
		},
		{
			name:        "wrong path",
			url:         "https://www.figma.com/dashboard/ABC123?node-id=1-2",
			wantFileKey: "",
			wantNodeID:  "1:2",
		},
		{
			name:        "wrong domain",
			url:         "https://www.example.com/file/ABC123",
			wantFileKey: "",
			wantNodeID:  "",
		},
		{
			name:        "empty URL",
			url:         "",
			wantFileKey: "",
			wantNodeID:  "",
		},
		{
			name:        "no scheme",
			url:         "figma.com/file/aB1cD2eF3/MyDesign?node-id=7-9",
			wantFileKey: "aB1cD2eF3",
			wantNodeID:  "7:9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileKey, nodeID := ParseFrameURL(tt.url)
			if fileKey != tt.wantFileKey {
				t.Errorf("ParseFrameURL() fileKey = %q, want %q", fileKey, tt.wantFileKey)
			}
			if nodeID != tt.wantNodeID {
				t.Errorf("ParseFrameURL() nodeID = %q, want %q", nodeID, tt.wantNodeID)
			}
		})
	}
}

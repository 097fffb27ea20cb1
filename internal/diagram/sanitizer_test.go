package diagram_test

import (
	"testing"

	"github.com/myrjola/snapsolve/internal/diagram"
	"github.com/stretchr/testify/require"
)

func TestSanitizerRender(t *testing.T) {
	s := diagram.NewSanitizer()

	tests := []struct {
		name        string
		document    string
		wantErr     error
		contains    []string
		notContains []string
	}{
		{
			name:     "clean document passes through",
			document: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="40"></circle></svg>`,
			contains: []string{"<svg", `viewBox="0 0 100 100"`, "<circle"},
		},
		{
			name:     "xml declaration is allowed",
			document: `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><rect width="1" height="1"></rect></svg>`,
			contains: []string{"<svg", "<rect"},
		},
		{
			name:        "script elements are removed",
			document:    `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script><path d="M0 0"></path></svg>`,
			contains:    []string{"<path"},
			notContains: []string{"<script", "alert"},
		},
		{
			name:        "event handler attributes are removed",
			document:    `<svg xmlns="http://www.w3.org/2000/svg" onload="evil()"><circle onclick="evil()" r="1"></circle></svg>`,
			contains:    []string{"<circle"},
			notContains: []string{"onload", "onclick", "evil"},
		},
		{
			name:        "javascript hrefs are removed",
			document:    `<svg xmlns="http://www.w3.org/2000/svg"><a href="javascript:evil()"><text>link</text></a></svg>`,
			contains:    []string{"<text"},
			notContains: []string{"javascript:"},
		},
		{
			name:        "foreignObject subtrees are removed",
			document:    `<svg xmlns="http://www.w3.org/2000/svg"><foreignObject><iframe src="https://example.com"></iframe></foreignObject><rect width="1" height="1"></rect></svg>`,
			contains:    []string{"<rect"},
			notContains: []string{"foreignobject", "iframe"},
		},
		{
			name:        "lowercase foreignobject subtrees are removed",
			document:    `<svg xmlns="http://www.w3.org/2000/svg"><foreignobject><iframe src="https://example.com"></iframe></foreignobject><circle r="1"></circle></svg>`,
			contains:    []string{"<circle"},
			notContains: []string{"foreignObject", "iframe"},
		},
		{
			name:     "missing xmlns is added",
			document: `<svg viewBox="0 0 10 10"></svg>`,
			contains: []string{`xmlns="http://www.w3.org/2000/svg"`},
		},
		{
			name:     "non-svg root is rejected",
			document: `<div><svg xmlns="http://www.w3.org/2000/svg"></svg></div>`,
			wantErr:  diagram.ErrMalformedDiagram,
		},
		{
			name:     "plain text is rejected",
			document: "not a vector document",
			wantErr:  diagram.ErrMalformedDiagram,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Render(tt.document)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				require.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				require.NotContains(t, got, unwanted)
			}
		})
	}
}

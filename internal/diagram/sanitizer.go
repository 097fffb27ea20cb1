// Package diagram renders vector-image documents behind a narrow interface so
// that the answer flow never depends on injecting server-provided markup into
// a live view tree.
package diagram

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/snapsolve/internal/errors"
	"golang.org/x/net/html"
)

// ErrMalformedDiagram signals content that is not a self-contained SVG
// document. The caller decides what an unrenderable diagram looks like; the
// textual answer is unaffected.
var ErrMalformedDiagram = errors.NewSentinel("malformed vector document")

// Sanitizer renders an SVG document by parsing it, dropping scriptable
// content, and re-serializing the tree. The output is inert markup.
type Sanitizer struct{}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Render implements the presenter's Renderer interface.
func (s *Sanitizer) Render(document string) (string, error) {
	if !hasSVGRoot(document) {
		return "", errors.Wrap(ErrMalformedDiagram, "missing svg root element")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return "", errors.Join(ErrMalformedDiagram, errors.Wrap(err, "parse document"))
	}

	svg := doc.Find("svg").First()
	if svg.Length() == 0 {
		return "", errors.Wrap(ErrMalformedDiagram, "no svg element after parsing")
	}

	svg.Find("script").Remove()
	// The parser keeps SVG foreign content nodes camelCased while type
	// selectors are lowercased, so foreignObject must be matched by name.
	svg.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if strings.EqualFold(goquery.NodeName(sel), "foreignobject") {
			sel.Remove()
		}
	})

	svg.Find("*").Each(func(_ int, sel *goquery.Selection) {
		stripUnsafeAttributes(sel)
	})
	stripUnsafeAttributes(svg)

	if _, ok := svg.Attr("xmlns"); !ok {
		svg.SetAttr("xmlns", "http://www.w3.org/2000/svg")
	}

	var buf bytes.Buffer
	for _, node := range svg.Nodes {
		if err = html.Render(&buf, node); err != nil {
			return "", errors.Wrap(err, "render svg")
		}
	}
	return buf.String(), nil
}

// hasSVGRoot checks that the document opens with an svg root element,
// allowing a leading XML declaration or doctype.
func hasSVGRoot(document string) bool {
	rest := strings.TrimSpace(document)
	for {
		lower := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(lower, "<?"):
			end := strings.Index(rest, "?>")
			if end == -1 {
				return false
			}
			rest = strings.TrimSpace(rest[end+len("?>"):])
		case strings.HasPrefix(lower, "<!"):
			end := strings.IndexByte(rest, '>')
			if end == -1 {
				return false
			}
			rest = strings.TrimSpace(rest[end+1:])
		default:
			return strings.HasPrefix(lower, "<svg")
		}
	}
}

func stripUnsafeAttributes(sel *goquery.Selection) {
	for _, node := range sel.Nodes {
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			key := strings.ToLower(attr.Key)
			if strings.HasPrefix(key, "on") {
				continue
			}
			if (key == "href" || key == "xlink:href" || key == "src") &&
				strings.HasPrefix(strings.ToLower(strings.TrimSpace(attr.Val)), "javascript:") {
				continue
			}
			kept = append(kept, attr)
		}
		node.Attr = kept
	}
}

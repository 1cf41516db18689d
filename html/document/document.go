// Package document lays out a parsed document, page after page.
package document

import (
	"fmt"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/html/layout"
	"github.com/benoitkugler/flexrender/html/layout/block"
	"github.com/benoitkugler/flexrender/html/tree"
	"github.com/benoitkugler/flexrender/logger"
)

// MaxPages is the number of pages after which the layout of a document
// is stopped.
const MaxPages = 10_000

// Page is the layout of one page.
type Page struct {
	// Root is the fragment of the root element, in page coordinates:
	// the page margins are included.
	Root *bo.Fragment

	Width, Height pr.Float
	// Margins are indexed by [bo.Side].
	Margins [4]pr.Float
}

// Body returns the fragment of the <body> element, or nil.
func (p Page) Body() *bo.Fragment {
	for _, child := range p.Root.Children {
		if !child.IsLine && child.Box.Tag == "body" {
			return child
		}
	}
	return nil
}

// Render lays out the document, returning at least one page.
func Render(doc *tree.Document) []Page {
	logger.ProgressLogger.Debug("Step 3 - Laying out the pages")

	width, height := doc.PageContentSize()
	ctx := block.NewContext()
	var (
		pages  []Page
		resume layout.ResumeStack
	)
	for {
		frag, next := block.RootLayout(ctx, doc.Root, width, height, resume)
		frag.Translate(doc.PageMargins[bo.SLeft], doc.PageMargins[bo.STop])
		pages = append(pages, Page{
			Root:    frag,
			Width:   doc.PageWidth,
			Height:  doc.PageHeight,
			Margins: doc.PageMargins,
		})
		logger.ProgressLogger.Debugf("  page %d: resume at %s", len(pages), next)

		if next == nil {
			break
		}
		if len(pages) == MaxPages {
			logger.WarningLogger.Warnf("layout stopped after %d pages", MaxPages)
			break
		}
		resume = next
	}
	return pages
}

// RenderHTML parses and lays out the given HTML content.
// Warnings about ignored input are logged, not returned.
func RenderHTML(content string) ([]Page, error) {
	doc, err := tree.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return Render(doc), nil
}

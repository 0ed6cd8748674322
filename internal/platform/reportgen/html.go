package reportgen

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// PDFConverter renders report HTML into PDF bytes. The conversion itself is
// an external collaborator (headless browser, conversion service); this
// package only produces the HTML.
type PDFConverter func(ctx context.Context, html string) ([]byte, error)

const pageStyle = `
body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1a202c; margin: 0; }
.page { padding: 48px 56px; page-break-after: always; min-height: 960px; }
.page h2 { font-size: 18px; border-bottom: 2px solid #2b6cb0; padding-bottom: 6px; }
.page .numero { float: right; color: #718096; font-size: 12px; }
.page .conteudo { font-size: 13px; line-height: 1.6; white-space: pre-wrap; }
.cabecalho { font-size: 12px; color: #718096; margin-bottom: 24px; }
`

// RenderHTML produces the full printable document: header, the summary page
// and every content page, one styled block per page. The output is what the
// PDF converter receives verbatim.
func RenderHTML(title string, summary Page, pages []Page) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"pt-BR\"><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title><style>")
	b.WriteString(pageStyle)
	b.WriteString("</style></head><body>")

	writePage := func(p Page) {
		fmt.Fprintf(&b, `<div class="page"><div class="cabecalho">%s</div>`, html.EscapeString(title))
		fmt.Fprintf(&b, `<h2>%s<span class="numero">página %d</span></h2>`, html.EscapeString(p.Title), p.Number)
		fmt.Fprintf(&b, `<div class="conteudo">%s</div></div>`, html.EscapeString(p.Content))
	}

	writePage(summary)
	for _, p := range pages {
		writePage(p)
	}
	b.WriteString("</body></html>")
	return b.String()
}

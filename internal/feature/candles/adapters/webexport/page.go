// Package webexport wraps a rendered SVG chart and its accessible
// description into HTML.
package webexport

import (
	"fmt"
	"html/template"
	"io"

	"candle_dashboard/internal/feature/candles/domain/describe"
	"candle_dashboard/internal/feature/candles/domain/entity"
)

const figureTmpl = `{{define "figure"}}<figure class="candle-chart" role="group" aria-labelledby="{{.ID}}-title" aria-describedby="{{.ID}}-summary">
<div role="img" aria-label="{{.Desc.Title}}">{{.SVG}}</div>
<figcaption id="{{.ID}}-title">{{.Desc.Title}}</figcaption>
<p id="{{.ID}}-summary">{{.Desc.Summary}}</p>
<details><summary>Data points</summary>
<ol data-x-label="{{.Desc.XLabel}}" data-y-label="{{.Desc.YLabel}}">{{range .Desc.Points}}
<li data-tone="{{printf "%.2f" .Tone}}">{{.Text}}</li>{{end}}
</ol>
</details>
</figure>{{end}}`

const pageTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Desc.Title}}</title>
<style>
body { margin: 2rem; font-family: sans-serif; background: {{.Background}}; color: {{.Foreground}}; }
.candle-chart svg { max-width: 100%; height: auto; }
</style>
</head>
<body>
{{template "figure" .}}
</body>
</html>
`

var (
	embedTemplate = template.Must(template.New("figure").Parse(figureTmpl))
	pageTemplate  = template.Must(template.New("page").Parse(figureTmpl + pageTmpl))
)

type view struct {
	ID         string
	SVG        template.HTML
	Desc       describe.Description
	Background template.CSS
	Foreground template.CSS
}

// Writer produces the standalone page and the embeddable snippet.
type Writer struct{}

// NewWriter returns a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WritePage writes a complete HTML document containing the chart.
// svg must come from the chart renderer; it is inserted without escaping.
func (Writer) WritePage(w io.Writer, svg []byte, d describe.Description, style entity.ChartStyle) error {
	v := newView(svg, d, style)
	if err := pageTemplate.ExecuteTemplate(w, "page", v); err != nil {
		return fmt.Errorf("webexport: page: %w", err)
	}
	return nil
}

// WriteEmbed writes only the <figure> element, for pasting into another page.
func (Writer) WriteEmbed(w io.Writer, svg []byte, d describe.Description, style entity.ChartStyle) error {
	v := newView(svg, d, style)
	if err := embedTemplate.ExecuteTemplate(w, "figure", v); err != nil {
		return fmt.Errorf("webexport: embed: %w", err)
	}
	return nil
}

func newView(svg []byte, d describe.Description, style entity.ChartStyle) view {
	v := view{
		ID:         "candle-chart",
		SVG:        template.HTML(svg),
		Desc:       d,
		Background: "#ffffff",
		Foreground: "#333333",
	}
	if style.Theme == entity.Dark {
		v.Background, v.Foreground = "#2e2e2e", "#eeeeee"
	}
	return v
}

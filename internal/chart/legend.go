package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	legendPadding   = 6
	legendLineGap   = 6
	legendLineWidth = 28
	legendRowGap    = 4
	legendOffset    = 10
)

// titledLegend is go-chart's boxed legend with a heading row, anchored to the
// top-left corner of the plot area.
func titledLegend(c *gochart.Chart, title string) gochart.Renderable {
	return func(r gochart.Renderer, cb gochart.Box, chartDefaults gochart.Style) {
		legendStyle := chartDefaults.InheritFrom(gochart.Style{
			FillColor:   drawing.ColorWhite.WithAlpha(220),
			FontColor:   drawing.ColorFromHex("333333"),
			FontSize:    9.0,
			StrokeColor: drawing.ColorFromHex("b0b0b0"),
			StrokeWidth: 1.0,
		})

		var labels []string
		var styles []gochart.Style
		for _, s := range c.Series {
			if s.GetStyle().Hidden {
				continue
			}
			labels = append(labels, s.GetName())
			styles = append(styles, s.GetStyle())
		}
		if len(labels) == 0 {
			return
		}

		legendStyle.GetTextOptions().WriteToRenderer(r)
		titleBox := r.MeasureText(title)

		left := cb.Left + legendOffset
		top := cb.Top + legendOffset
		contentRight := left + legendPadding + titleBox.Width()
		contentBottom := top + legendPadding + titleBox.Height()
		for _, l := range labels {
			tb := r.MeasureText(l)
			contentBottom += legendRowGap + tb.Height()
			if right := left + legendPadding + legendLineWidth + legendLineGap + tb.Width(); right > contentRight {
				contentRight = right
			}
		}

		box := gochart.Box{
			Top:    top,
			Left:   left,
			Right:  contentRight + legendPadding,
			Bottom: contentBottom + legendPadding,
		}
		gochart.Draw.Box(r, box, legendStyle)

		legendStyle.GetTextOptions().WriteToRenderer(r)
		tx := left + legendPadding
		ty := top + legendPadding + titleBox.Height()
		r.Text(title, tx+(box.Width()-2*legendPadding-titleBox.Width())/2, ty)

		for i, l := range labels {
			tb := r.MeasureText(l)
			ty += legendRowGap + tb.Height()
			ly := ty - tb.Height()/2

			st := styles[i]
			r.SetStrokeColor(st.StrokeColor)
			r.SetStrokeWidth(st.StrokeWidth)
			r.SetStrokeDashArray(nil)
			r.MoveTo(tx, ly)
			r.LineTo(tx+legendLineWidth, ly)
			r.Stroke()

			r.SetFillColor(st.DotColor)
			r.SetStrokeColor(st.DotColor)
			r.Circle(st.DotWidth, tx+legendLineWidth/2, ly)
			r.FillStroke()

			legendStyle.GetTextOptions().WriteToRenderer(r)
			r.Text(l, tx+legendLineWidth+legendLineGap, ty)
		}
	}
}

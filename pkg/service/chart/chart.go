package chart

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is the output format of rendered charts
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	DefaultWidth  = 1400
	DefaultHeight = 700

	strokeWidth = 2.5
	dotWidth    = 3.0

	// a single week is drawn in the middle of a one week wide axis
	singlePointPadding = 84 * time.Hour
)

// ParseFormat converts a string into a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", goerr.New("unsupported chart format", goerr.V("format", s))
	}
}

// Option is a functional option for configuring Renderer
type Option func(*Renderer)

// WithFormat sets the output format
func WithFormat(f Format) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// WithSize sets the output size in pixels. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// Renderer draws line charts with go-chart
type Renderer struct {
	format Format
	width  int
	height int
}

var _ interfaces.ChartRenderer = (*Renderer)(nil)

// New creates a new chart renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{
		format: FormatPNG,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType returns the MIME type of the rendered output
func (r *Renderer) ContentType() string {
	if r.format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Extension returns the file extension of the rendered output
func (r *Renderer) Extension() string {
	return string(r.format)
}

// Render draws c into w
func (r *Renderer) Render(ctx context.Context, w io.Writer, c *model.LineChart) error {
	if c == nil || c.IsEmpty() {
		return goerr.New("chart has no points", goerr.T(model.ErrTagEmptySeries))
	}

	ch := r.build(c)

	provider := gochart.PNG
	if r.format == FormatSVG {
		provider = gochart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return goerr.Wrap(err, "failed to render chart",
			goerr.V("title", c.Title),
			goerr.V("format", r.format))
	}

	ctxlog.From(ctx).Debug("Chart rendered",
		"title", c.Title,
		"format", r.format,
		"series", len(c.Series),
	)
	return nil
}

func (r *Renderer) build(c *model.LineChart) gochart.Chart {
	series := make([]gochart.Series, 0, len(c.Series))
	var minT, maxT time.Time
	peak := 0

	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.Date
			ys[i] = float64(p.Value)
			if minT.IsZero() || p.Date.Before(minT) {
				minT = p.Date
			}
			if p.Date.After(maxT) {
				maxT = p.Date
			}
			if p.Value > peak {
				peak = p.Value
			}
		}

		col := ParseColor(s.Color)
		series = append(series, gochart.TimeSeries{
			Name: s.Label,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: strokeWidth,
				DotColor:    col,
				DotWidth:    dotWidth,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	if !maxT.After(minT) {
		minT = minT.Add(-singlePointPadding)
		maxT = maxT.Add(singlePointPadding)
	}

	ch := gochart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:           c.XLabel,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(model.DateLayout),
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(minT),
				Max: gochart.TimeToFloat64(maxT),
			},
		},
		YAxis: gochart.YAxis{
			Name:           c.YLabel,
			Range:          &gochart.ContinuousRange{Min: 0, Max: yAxisMax(peak)},
			ValueFormatter: gochart.IntValueFormatter,
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.LegendLeft(&ch)}
	return ch
}

// yAxisMax leaves headroom above the peak and keeps the axis non-degenerate
func yAxisMax(peak int) float64 {
	if peak <= 0 {
		return 1
	}
	return math.Ceil(float64(peak) * 1.1)
}

// ParseColor converts a color name or hex code into a drawing color.
// Unknown values fall back to the default series color.
func ParseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := strings.TrimPrefix(s, "#")
		if len(hex) == 3 || len(hex) == 6 {
			return drawing.ColorFromHex(hex)
		}
		return gochart.ColorBlue
	}
	if c := drawing.ColorFromKnown(s); !c.IsZero() {
		return c
	}
	return gochart.ColorBlue
}

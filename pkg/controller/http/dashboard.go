package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/frontend"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
	"github.com/secmon-lab/respitrack/pkg/domain/model"
	"github.com/secmon-lab/respitrack/pkg/domain/types"
	"github.com/secmon-lab/respitrack/pkg/utils/apperr"
)

const (
	pageTemplate = "dashboard.html"

	chartOverview = "overview"
	chartFiltered = "filtered"

	longDateLayout = "January 2, 2006"
)

// DashboardHandler serves the dashboard page, its charts and exports
type DashboardHandler struct {
	dashboard interfaces.Dashboard
	renderer  interfaces.ChartRenderer
	exporter  interfaces.Exporter
	page      *template.Template
}

// dashboardPage is the data passed to the page template. When Error is set
// nothing but the error is rendered.
type dashboardPage struct {
	Title            string
	Error            string
	View             *model.DashboardView
	OverviewChartURL string
	FilteredChartURL string
	ExportURL        string
	APIURL           string
}

var templateFuncs = template.FuncMap{
	"comma": func(v int) string {
		return humanize.Comma(int64(v))
	},
	"longDate": func(t time.Time) string {
		return t.Format(longDateLayout)
	},
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard interfaces.Dashboard, renderer interfaces.ChartRenderer, exporter interfaces.Exporter) (*DashboardHandler, error) {
	fsys, err := frontend.TemplateFS()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open embedded templates")
	}

	page, err := template.New(pageTemplate).Funcs(templateFuncs).ParseFS(fsys, pageTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse dashboard template", goerr.V("template", pageTemplate))
	}

	return &DashboardHandler{
		dashboard: dashboard,
		renderer:  renderer,
		exporter:  exporter,
		page:      page,
	}, nil
}

// HandlePage renders the HTML dashboard for the selection in the query
func (h *DashboardHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := parseSelection(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	view, err := h.dashboard.View(ctx, sel)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	query := rangeQuery(view)
	h.render(w, r, http.StatusOK, &dashboardPage{
		Title:            view.Title,
		View:             view,
		OverviewChartURL: "/charts/" + chartOverview + "." + h.renderer.Extension(),
		FilteredChartURL: "/charts/" + chartFiltered + "." + h.renderer.Extension() + "?" + query,
		ExportURL:        "/export.csv?" + query,
		APIURL:           "/api/dashboard?" + query,
	})
}

// HandleChart renders /charts/{overview|filtered}.{ext}
func (h *DashboardHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ext, ok := strings.Cut(chi.URLParam(r, "chart"), ".")
	if !ok || ext != h.renderer.Extension() {
		writeError(ctx, w, "chart not found", http.StatusNotFound)
		return
	}

	var (
		chart *model.LineChart
		err   error
	)
	switch name {
	case chartOverview:
		chart, err = h.dashboard.OverviewChart(ctx)
	case chartFiltered:
		var sel model.Selection
		if sel, err = parseSelection(r); err == nil {
			chart, err = h.dashboard.FilteredChart(ctx, sel)
		}
	default:
		writeError(ctx, w, "chart not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(ctx, &buf, chart); err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(ctx).Error("Failed to write chart", "error", err, "chart", name)
	}
}

// HandleAPI returns the dashboard view as JSON
func (h *DashboardHandler) HandleAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := parseSelection(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	view, err := h.dashboard.View(ctx, sel)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	writeJSON(ctx, w, view)
}

// HandleExport downloads the records of the selected range
func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := parseSelection(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	records, selected, err := h.dashboard.Filtered(ctx, sel)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Export(ctx, &buf, records); err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	filename := fmt.Sprintf("respiratory_%s_%s.csv", selected.StartString(), selected.EndString())
	w.Header().Set("Content-Type", h.exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(ctx).Error("Failed to write export", "error", err)
	}
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Handle(r.Context(), err)
	h.render(w, r, apperr.Status(err), &dashboardPage{
		Title: h.dashboard.Config().Title,
		Error: apperr.Message(err, h.dashboard.DatasetName()),
	})
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, data *dashboardPage) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to render dashboard page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write dashboard page", "error", err)
	}
}

func (h *DashboardHandler) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Handle(r.Context(), err)
	writeError(r.Context(), w, apperr.Message(err, h.dashboard.DatasetName()), apperr.Status(err))
}

// parseSelection reads the optional start, end and series query parameters
func parseSelection(r *http.Request) (model.Selection, error) {
	var sel model.Selection
	query := r.URL.Query()

	params := []struct {
		key string
		dst *time.Time
	}{
		{key: "start", dst: &sel.Start},
		{key: "end", dst: &sel.End},
	}
	for _, p := range params {
		value := strings.TrimSpace(query.Get(p.key))
		if value == "" {
			continue
		}
		t, err := model.ParseDate(value)
		if err != nil {
			return model.Selection{}, goerr.Wrap(err, "invalid date in query",
				goerr.V("param", p.key),
				goerr.V("value", value),
				goerr.T(model.ErrTagInvalidSelection))
		}
		*p.dst = t
	}

	// series may be repeated or comma separated
	for _, value := range query["series"] {
		for _, name := range strings.Split(value, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			s, err := types.ParseSeries(name)
			if err != nil {
				return model.Selection{}, goerr.Wrap(err, "invalid series in query",
					goerr.V("value", name),
					goerr.T(model.ErrTagInvalidSelection))
			}
			sel.Series = append(sel.Series, s)
		}
	}

	return sel, nil
}

func rangeQuery(view *model.DashboardView) string {
	q := url.Values{}
	q.Set("start", view.Selection.StartString())
	q.Set("end", view.Selection.EndString())
	for _, s := range view.SeriesFilter {
		q.Add("series", s.String())
	}
	return q.Encode()
}

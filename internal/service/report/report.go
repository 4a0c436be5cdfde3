package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kubev2v/training-planner/internal/service/report/csv"
	"github.com/kubev2v/training-planner/internal/service/report/html"
	"github.com/kubev2v/training-planner/internal/service/report/types"
	"github.com/kubev2v/training-planner/internal/service/report/xlsx"
)

// Registry holds one renderer per report format.
type Registry struct {
	renderers map[types.ReportFormat]types.ReportRenderer
}

func NewRegistry(renderers ...types.ReportRenderer) *Registry {
	r := &Registry{renderers: make(map[types.ReportFormat]types.ReportRenderer, len(renderers))}
	for _, renderer := range renderers {
		r.renderers[renderer.SupportedFormat()] = renderer
	}
	return r
}

// NewDefaultRegistry registers the csv, html and xlsx renderers.
func NewDefaultRegistry() *Registry {
	return NewRegistry(csv.NewRenderer(), html.NewRenderer(), xlsx.NewRenderer())
}

func (r *Registry) Renderer(format types.ReportFormat) (types.ReportRenderer, error) {
	renderer, found := r.renderers[format]
	if !found {
		return nil, fmt.Errorf("unsupported report format %q, must be one of %s", format, strings.Join(r.FormatNames(), ", "))
	}
	return renderer, nil
}

func (r *Registry) Formats() []types.ReportFormat {
	formats := make([]types.ReportFormat, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func (r *Registry) FormatNames() []string {
	names := []string{}
	for _, f := range r.Formats() {
		names = append(names, string(f))
	}
	return names
}

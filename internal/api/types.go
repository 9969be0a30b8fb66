package api

import (
	"github.com/matzehuels/depflow/pkg/depgraph"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/lint"
	"github.com/matzehuels/depflow/pkg/pipeline"
	"github.com/matzehuels/depflow/pkg/scan"
)

// FileFacts is one inventory entry as sent by a client that did its own
// scanning. Imports are raw import strings; exports are exported names.
type FileFacts struct {
	ID        string   `json:"id"`
	IsDir     bool     `json:"is_dir,omitempty"`
	LineCount int      `json:"line_count,omitempty"`
	Imports   []string `json:"imports,omitempty"`
	Exports   []string `json:"exports,omitempty"`
}

// LayoutParams overrides individual spacing values. Unset fields keep their
// default.
type LayoutParams struct {
	NodeSpacingX  *float64 `json:"node_spacing_x,omitempty"`
	LayerSpacingY *float64 `json:"layer_spacing_y,omitempty"`
	OffsetX       *float64 `json:"offset_x,omitempty"`
	OffsetY       *float64 `json:"offset_y,omitempty"`
}

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Files    []FileFacts   `json:"files"`
	Layout   *LayoutParams `json:"layout,omitempty"`
	Rules    []lint.Rule   `json:"rules,omitempty"`
	SkipDeps bool          `json:"skip_deps,omitempty"`
}

// AnalyzeResponse is the body returned by POST /v1/analyze.
type AnalyzeResponse struct {
	ID     string         `json:"id"`
	Graph  graph.Graph    `json:"graph"`
	Stats  pipeline.Stats `json:"stats"`
	Cached bool           `json:"cached"`
}

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Graph  graph.Graph   `json:"graph"`
	Layout *LayoutParams `json:"layout,omitempty"`
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	Graph graph.Graph `json:"graph"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Graph       graph.Graph `json:"graph"`
	Format      string      `json:"format"`
	Detailed    bool        `json:"detailed,omitempty"`
	Directories bool        `json:"directories,omitempty"`
	Pinned      bool        `json:"pinned,omitempty"`
	Scale       float64     `json:"scale,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// config resolves the overrides against the default spacing.
func (p *LayoutParams) config() transform.Config {
	cfg := transform.DefaultConfig()
	if p == nil {
		return cfg
	}
	if p.NodeSpacingX != nil {
		cfg.NodeSpacingX = *p.NodeSpacingX
	}
	if p.LayerSpacingY != nil {
		cfg.LayerSpacingY = *p.LayerSpacingY
	}
	if p.OffsetX != nil {
		cfg.OffsetX = *p.OffsetX
	}
	if p.OffsetY != nil {
		cfg.OffsetY = *p.OffsetY
	}
	return cfg
}

// files converts request entries to scanner output. Directories carry no
// facts.
func (r AnalyzeRequest) files() []scan.File {
	files := make([]scan.File, 0, len(r.Files))
	for _, f := range r.Files {
		file := scan.File{Entry: scan.Entry{
			ID:    f.ID,
			Name:  depgraph.BaseName(f.ID),
			IsDir: f.IsDir,
		}}
		if !f.IsDir {
			facts := &scan.Facts{LineCount: f.LineCount}
			for _, src := range f.Imports {
				facts.Imports = append(facts.Imports, scan.Import{Source: src})
			}
			for _, name := range f.Exports {
				facts.Exports = append(facts.Exports, scan.Export{Name: name, IsDefault: name == "default"})
			}
			file.Facts = facts
		}
		files = append(files, file)
	}
	return files
}

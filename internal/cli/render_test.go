package cli

import (
	"reflect"
	"testing"

	"github.com/matzehuels/depflow/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empty parts", " svg, ,dot ", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid dot", []string{"dot"}, false},
		{"valid all", []string{"dot", "svg", "pdf", "png", "json"}, false},
		{"invalid format", []string{"gif"}, true},
		{"mixed valid invalid", []string{"svg", "gif"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single format derived from input",
			input:   "out/graph.json",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "out/graph.svg"},
		},
		{
			name:    "single format explicit output",
			output:  "diagram.svg",
			input:   "graph.json",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "diagram.svg"},
		},
		{
			name:    "single format stdout",
			output:  "-",
			input:   "graph.json",
			formats: []string{"dot"},
			want:    map[string]string{"dot": "-"},
		},
		{
			name:    "multiple formats strip known extension",
			output:  "diagram.svg",
			input:   "graph.json",
			formats: []string{"svg", "dot"},
			want:    map[string]string{"svg": "diagram.svg", "dot": "diagram.dot"},
		},
		{
			name:    "multiple formats keep unknown extension",
			output:  "diagram.v2",
			input:   "graph.json",
			formats: []string{"svg", "png"},
			want:    map[string]string{"svg": "diagram.v2.svg", "png": "diagram.v2.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPaths(tt.output, tt.input, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

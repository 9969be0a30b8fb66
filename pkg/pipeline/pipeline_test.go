package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	errs "github.com/matzehuels/depflow/pkg/errors"
	"github.com/matzehuels/depflow/pkg/lint"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Layout == nil || *opts.Layout != transform.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", opts.Layout)
	}
	if len(opts.Rules) != len(lint.DefaultRules()) {
		t.Errorf("Rules = %d, want default rules", len(opts.Rules))
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultPNGScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Layout: &transform.Config{NodeSpacingX: 10, LayerSpacingY: 20}}
	for range 3 {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
	}
	if opts.Layout.NodeSpacingX != 10 || opts.Layout.OffsetX != 0 {
		t.Errorf("explicit layout was replaced: %+v", opts.Layout)
	}
}

func TestValidateAndSetDefaultsEmptyRules(t *testing.T) {
	opts := Options{Rules: []lint.Rule{}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Rules) != 0 || opts.linter.Len() != 0 {
		t.Errorf("empty rules should disable linting, got %d", opts.linter.Len())
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"nan layout", Options{Layout: &transform.Config{NodeSpacingX: math.NaN()}}, errs.ErrCodeInvalidConfig},
		{"bad rule", Options{Rules: []lint.Rule{{Name: "x", From: "[", To: ".*"}}}, errs.ErrCodeInvalidRule},
		{"bad format", Options{Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true, Scale: 3}

	if got := opts.ArtifactKeyOpts(FormatSVG); got.Scale != 0 || !got.Detailed || got.Format != FormatSVG {
		t.Errorf("svg key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 3 {
		t.Errorf("png key opts scale = %v, want 3", got.Scale)
	}
}

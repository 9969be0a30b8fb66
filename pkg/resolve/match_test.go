package resolve

import "testing"

func TestMatch(t *testing.T) {
	known := NewIDSet("src/utils/helpers.ts", "src/hooks/index.tsx")

	tests := []struct {
		candidate string
		want      string
		wantOK    bool
	}{
		{"src/utils/helpers", "src/utils/helpers.ts", true},
		{"src/hooks", "src/hooks/index.tsx", true},
		{"src/utils/helpers.ts", "src/utils/helpers.ts", true},
		{"lodash", "", false},
		{"src/utils", "", false},
	}

	for _, tt := range tests {
		got, ok := Match(tt.candidate, known)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.candidate, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchPriority(t *testing.T) {
	tests := []struct {
		name  string
		known []string
		want  string
	}{
		{"ts before tsx", []string{"a.tsx", "a.ts"}, "a.ts"},
		{"tsx before js", []string{"a.js", "a.tsx"}, "a.tsx"},
		{"js before jsx", []string{"a.jsx", "a.js"}, "a.js"},
		{"file before index", []string{"a/index.ts", "a.jsx"}, "a.jsx"},
		{"index.ts before index.tsx", []string{"a/index.tsx", "a/index.ts"}, "a/index.ts"},
		{"index.tsx before index.js", []string{"a/index.js", "a/index.tsx"}, "a/index.tsx"},
		{"exact before suffix", []string{"a", "a.ts"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match("a", NewIDSet(tt.known...))
			if !ok || got != tt.want {
				t.Errorf("Match() = (%q, %v), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestMatchIgnoresUnlistedConventions(t *testing.T) {
	// index.jsx and .mjs are not probed
	known := NewIDSet("a/index.jsx", "a.mjs")
	if got, ok := Match("a", known); ok {
		t.Errorf("Match() = %q, want no match", got)
	}
}

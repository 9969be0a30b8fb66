package lint

import (
	"testing"

	errs "github.com/matzehuels/depflow/pkg/errors"
)

func TestDefaultRules(t *testing.T) {
	l, err := Compile(DefaultRules())
	if err != nil {
		t.Fatalf("Compile(DefaultRules()) error: %v", err)
	}

	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{"domain to adapter", "src/domain/user.ts", "src/adapters/db.ts", "Domain Independence"},
		{"domain to infrastructure", "app/Domain/Order.ts", "app/Infrastructure/Repo.ts", "Domain Independence"},
		{"infra to application", "src/infrastructure/http.ts", "src/application/login.ts", "No Reverse Dependencies"},
		{"driven adapter to use cases", "src/adapters/driven/db.ts", "src/use-cases/save.ts", "No Reverse Dependencies"},
		{"adapter to domain", "src/adapters/db.ts", "src/domain/user.ts", ""},
		{"unrelated", "src/main.ts", "src/utils.ts", ""},
		// Patterns need a leading directory.
		{"top-level domain", "domain/user.ts", "src/adapters/db.ts", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bad := l.Check(tt.from, tt.to)
			if got != tt.want || bad != (tt.want != "") {
				t.Errorf("Check(%q, %q) = %q, %v; want %q", tt.from, tt.to, got, bad, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"missing name", Rule{From: ".*", To: ".*"}},
		{"bad from", Rule{Name: "r", From: "(", To: ".*"}},
		{"bad to", Rule{Name: "r", From: ".*", To: "[a-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]Rule{tt.rule})
			if !errs.Is(err, errs.ErrCodeInvalidRule) {
				t.Errorf("Compile() error = %v, want INVALID_RULE", err)
			}
		})
	}
}

func TestFirstRuleWins(t *testing.T) {
	l, err := Compile([]Rule{
		{Name: "first", From: "a", To: "b"},
		{Name: "second", From: ".*", To: ".*"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if name, _ := l.Check("a", "b"); name != "first" {
		t.Errorf("Check() = %q, want first", name)
	}
	if name, _ := l.Check("x", "y"); name != "second" {
		t.Errorf("Check() = %q, want second", name)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestNilLinter(t *testing.T) {
	var l *Linter
	if _, bad := l.Check("a", "b"); bad {
		t.Error("nil Linter should allow everything")
	}
	if l.Len() != 0 {
		t.Error("nil Linter should have no rules")
	}
}

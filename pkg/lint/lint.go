// Package lint checks dependency edges against architecture rules.
//
// A [Rule] forbids edges whose source path matches From and whose target
// path matches To. Rules are regular expressions over node IDs, so they can
// describe layered or hexagonal boundaries:
//
//	rules := []lint.Rule{{
//	    Name: "Domain Independence",
//	    From: `.*/(Domain|domain)/.*`,
//	    To:   `.*/([Aa]dapters?|[Ii]nfrastructure)/.*`,
//	}}
//	l, err := lint.Compile(rules)
//	if name, bad := l.Check("src/domain/user.ts", "src/adapters/db.ts"); bad {
//	    fmt.Println("violates", name)
//	}
//
// Violations only annotate edges. They never remove edges or change the
// layout.
package lint

import (
	"regexp"

	errs "github.com/matzehuels/depflow/pkg/errors"
)

// Rule forbids dependencies from paths matching From to paths matching To.
type Rule struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description,omitempty" toml:"description"`
	From        string `json:"from" toml:"from"`
	To          string `json:"to" toml:"to"`
}

// DefaultRules returns the built-in hexagonal architecture rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "Domain Independence",
			Description: "Domain layer cannot import from Infrastructure/Adapters",
			From:        `.*/(Domain|domain)/.*`,
			To:          `.*/([Aa]dapters?|[Ii]nfrastructure)/.*`,
		},
		{
			Name:        "No Reverse Dependencies",
			Description: "Infrastructure cannot import from Application layer",
			From:        `.*/([Ii]nfrastructure|adapters/driven)/.*`,
			To:          `.*/([Aa]pplication|use[_-]?cases)/.*`,
		},
	}
}

// Linter is a compiled rule set. It is safe for concurrent use.
type Linter struct {
	rules []compiled
}

type compiled struct {
	name string
	from *regexp.Regexp
	to   *regexp.Regexp
}

// Compile validates and compiles rules. It fails with an INVALID_RULE error
// naming the first rule that has no name or an invalid pattern.
func Compile(rules []Rule) (*Linter, error) {
	l := &Linter{rules: make([]compiled, 0, len(rules))}
	for i, r := range rules {
		if r.Name == "" {
			return nil, errs.New(errs.ErrCodeInvalidRule, "rule %d has no name", i)
		}
		from, err := regexp.Compile(r.From)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidRule, err, "rule %q: invalid from pattern", r.Name)
		}
		to, err := regexp.Compile(r.To)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidRule, err, "rule %q: invalid to pattern", r.Name)
		}
		l.rules = append(l.rules, compiled{name: r.Name, from: from, to: to})
	}
	return l, nil
}

// Check returns the name of the first rule the edge from → to violates, and
// true. It returns "", false for allowed edges and for a nil Linter.
func (l *Linter) Check(from, to string) (string, bool) {
	if l == nil {
		return "", false
	}
	for _, r := range l.rules {
		if r.from.MatchString(from) && r.to.MatchString(to) {
			return r.name, true
		}
	}
	return "", false
}

// Len returns the number of compiled rules.
func (l *Linter) Len() int {
	if l == nil {
		return 0
	}
	return len(l.rules)
}

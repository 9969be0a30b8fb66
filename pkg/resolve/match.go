package resolve

// Set is the lookup Match needs from a node collection.
// *depgraph.Graph satisfies it.
type Set interface {
	Has(id string) bool
}

// Suffixes lists the conventions probed by [Match], in priority order.
var Suffixes = []string{
	"",
	".ts",
	".tsx",
	".js",
	".jsx",
	"/index.ts",
	"/index.tsx",
	"/index.js",
}

// IDSet is a plain string set implementing [Set].
type IDSet map[string]struct{}

// NewIDSet builds an IDSet from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Match maps candidate to a node ID in known.
//
// An exact match wins. Otherwise each entry of [Suffixes] is appended in turn
// and the first variant present in known is returned. When nothing matches,
// Match returns ("", false); callers drop the edge, since imports of missing
// files or external packages are expected.
func Match(candidate string, known Set) (string, bool) {
	if known.Has(candidate) {
		return candidate, true
	}
	for _, suffix := range Suffixes {
		if id := candidate + suffix; known.Has(id) {
			return id, true
		}
	}
	return "", false
}

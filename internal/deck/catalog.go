// Package deck flattens the collection's hierarchical deck tree into an
// ordered, filterable list of deck summaries.
package deck

// RootID identifies the synthetic root of a deck tree. It never appears in
// catalog output.
const RootID int64 = 0

// Node is one deck in the tree returned by the collection service.
type Node struct {
	ID          int64
	Name        string
	Depth       int
	Collapsed   bool
	NewCount    int
	LearnCount  int
	ReviewCount int
	Filtered    bool
	Children    []*Node
}

// Summary is the user-facing projection of a Node.
type Summary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Depth       int    `json:"depth"`
	Collapsed   bool   `json:"collapsed"`
	ReviewCount int    `json:"review_count"`
	LearnCount  int    `json:"learn_count"`
	NewCount    int    `json:"new_count"`
	Filtered    bool   `json:"filtered"`
}

// Filter restricts catalog output by deck id and deck name. An empty set
// places no constraint on its dimension; both sets are ANDed.
type Filter struct {
	IDs   map[int64]struct{}
	Names map[string]struct{}
}

// NewFilter builds a Filter from id and name lists.
func NewFilter(ids []int64, names []string) Filter {
	f := Filter{
		IDs:   make(map[int64]struct{}, len(ids)),
		Names: make(map[string]struct{}, len(names)),
	}
	for _, id := range ids {
		f.IDs[id] = struct{}{}
	}
	for _, n := range names {
		f.Names[n] = struct{}{}
	}
	return f
}

// Match reports whether s passes the filter.
func (f Filter) Match(s Summary) bool {
	if len(f.IDs) > 0 {
		if _, ok := f.IDs[s.ID]; !ok {
			return false
		}
	}
	if len(f.Names) > 0 {
		if _, ok := f.Names[s.Name]; !ok {
			return false
		}
	}
	return true
}

// frame is a node waiting to be visited together with its computed depth.
type frame struct {
	node  *Node
	depth int
}

// Flatten walks the tree in pre-order and returns one summary per non-root
// node. The walk keeps an explicit stack so arbitrarily deep trees do not
// grow the call stack, and it never modifies the input.
//
// Depth is assigned from the walk: the root keeps its own depth and each
// child sits exactly one level below its parent.
func Flatten(root *Node) []Summary {
	if root == nil {
		return []Summary{}
	}

	out := make([]Summary, 0)
	stack := []frame{{node: root, depth: root.Depth}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		if n.ID != RootID {
			out = append(out, summarize(n, top.depth))
		}

		// Push in reverse so the first child is visited next.
		for i := len(n.Children) - 1; i >= 0; i-- {
			if c := n.Children[i]; c != nil {
				stack = append(stack, frame{node: c, depth: top.depth + 1})
			}
		}
	}
	return out
}

// FlattenAndFilter flattens the tree and keeps the summaries that match f,
// preserving pre-order.
func FlattenAndFilter(root *Node, f Filter) []Summary {
	all := Flatten(root)
	out := all[:0]
	for _, s := range all {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

func summarize(n *Node, depth int) Summary {
	return Summary{
		ID:          n.ID,
		Name:        n.Name,
		Depth:       depth,
		Collapsed:   n.Collapsed,
		ReviewCount: n.ReviewCount,
		LearnCount:  n.LearnCount,
		NewCount:    n.NewCount,
		Filtered:    n.Filtered,
	}
}

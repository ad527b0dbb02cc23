package searcher

const (
	noParent = -1
	noAction = -1
	noChild  = -1
	rootID   = 0
)

// Node holds the statistics of every action available at one explored state.
// Visits, Values and Policy are indexed by action.
type Node[S any] struct {
	State    S
	Visits   []float64
	Values   []float64 // Running mean outcome of each action's subtree
	Policy   []float64 // Prior, never modified after creation
	Terminal bool

	parent   int
	action   int // Action taken at parent to reach this node
	depth    int
	children []int
}

func (n *Node[S]) NumActions() int {
	return len(n.Visits)
}

// Parent returns the parent's index, ok is false for the root.
func (n *Node[S]) Parent() (index int, ok bool) {
	return n.parent, n.parent != noParent
}

// Action returns the action that led here from the parent, ok is false for the root.
func (n *Node[S]) Action() (action int, ok bool) {
	return n.action, n.action != noAction
}

func (n *Node[S]) Depth() int {
	return n.depth
}

func (n *Node[S]) TotalVisits() float64 {
	total := 0.0
	for _, v := range n.Visits {
		total += v
	}
	return total
}

// Tree is an arena of nodes. A node's index never changes and children are
// found through per-action slots, so a path of actions always resolves to
// the same node. The root, once expanded, has index 0.
//
// Pointers returned by Node and Root are only valid until the tree grows.
type Tree[S any] struct {
	nodes []Node[S]
}

func newTree[S any](capacity int) *Tree[S] {
	return &Tree[S]{nodes: make([]Node[S], 0, capacity)}
}

// Len returns the number of expanded nodes.
func (t *Tree[S]) Len() int {
	return len(t.nodes)
}

// Root returns nil before the root is expanded.
func (t *Tree[S]) Root() *Node[S] {
	if len(t.nodes) == 0 {
		return nil
	}
	return &t.nodes[rootID]
}

func (t *Tree[S]) Node(index int) *Node[S] {
	return &t.nodes[index]
}

// Child returns the index of the node reached by taking action at index.
func (t *Tree[S]) Child(index, action int) (int, bool) {
	child := t.nodes[index].children[action]
	return child, child != noChild
}

// Lookup resolves a path of actions from the root.
func (t *Tree[S]) Lookup(path []int) (int, bool) {
	if len(t.nodes) == 0 {
		return noChild, false
	}
	index := rootID
	for _, action := range path {
		node := &t.nodes[index]
		if action < 0 || action >= len(node.children) {
			return noChild, false
		}
		child, ok := t.Child(index, action)
		if !ok {
			return noChild, false
		}
		index = child
	}
	return index, true
}

// Path rebuilds the actions leading from the root to index.
func (t *Tree[S]) Path(index int) []int {
	path := make([]int, t.nodes[index].depth)
	for i := len(path) - 1; i >= 0; i-- {
		node := &t.nodes[index]
		path[i] = node.action
		index = node.parent
	}
	return path
}

// add stores node as the child of parent via action and returns its index.
func (t *Tree[S]) add(parent, action int, node Node[S]) int {
	node.parent = parent
	node.action = action
	node.children = make([]int, len(node.Visits))
	for i := range node.children {
		node.children[i] = noChild
	}
	if parent != noParent {
		node.depth = t.nodes[parent].depth + 1
	}

	index := len(t.nodes)
	t.nodes = append(t.nodes, node)
	if parent != noParent {
		t.nodes[parent].children[action] = index
	}
	return index
}

package tree

// Kind discriminates the three shapes a Node can take
type Kind int

const (
	KindEmpty Kind = iota
	KindDir
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindLeaf:
		return "leaf"
	default:
		return "empty"
	}
}

// EmptyLabel is what the sentinel renders as.
const EmptyLabel = "-- EMPTY --"

// Node is one row of a directory listing. The zero value is the empty
// sentinel.
type Node struct {
	Name  string
	Kind  Kind
	Count int // number of listed children, directories only
}

// Dir returns a directory node holding count children.
func Dir(name string, count int) Node {
	return Node{Name: name, Kind: KindDir, Count: count}
}

// Leaf returns an item node.
func Leaf(name string) Node {
	return Node{Name: name, Kind: KindLeaf}
}

// Empty returns the placeholder that keeps an empty directory listable.
func Empty() Node {
	return Node{}
}

func (n Node) IsDir() bool   { return n.Kind == KindDir }
func (n Node) IsLeaf() bool  { return n.Kind == KindLeaf }
func (n Node) IsEmpty() bool { return n.Kind == KindEmpty }

// Label is the text shown for the node in a listing.
func (n Node) Label() string {
	if n.IsEmpty() {
		return EmptyLabel
	}
	return n.Name
}

// less orders directories before leaves, then by name.
func less(a, b Node) bool {
	if a.IsDir() != b.IsDir() {
		return a.IsDir()
	}
	return a.Name < b.Name
}

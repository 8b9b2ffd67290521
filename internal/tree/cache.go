package tree

import (
	"sort"
	"strings"
)

// Listing is one directory as reported by a namespace walk.
type Listing struct {
	Path  string   // slash separated, relative to the store root; root is ""
	Dirs  []string // immediate subdirectory names
	Items []string // immediate item names, suffix already stripped
}

// Entry is the cached, ordered content of one directory.
type Entry struct {
	Path   string
	Nodes  []Node
	Cursor int // last focus index, restored when the directory is shown again
}

// realCount is the number of nodes that are not the sentinel.
func (e *Entry) realCount() int {
	if len(e.Nodes) == 1 && e.Nodes[0].IsEmpty() {
		return 0
	}
	return len(e.Nodes)
}

func (e *Entry) index(name string, kind Kind) int {
	for i, n := range e.Nodes {
		if n.Kind == kind && n.Name == name {
			return i
		}
	}
	return -1
}

// Cache maps every known directory path to its Entry. It is owned by a
// single goroutine and does no locking.
type Cache struct {
	entries map[string]*Entry
}

// Build constructs the cache from a bottom-up walk. Children must appear
// before their parent so that directory counts are known when the parent's
// nodes are created.
func Build(listings []Listing) *Cache {
	c := &Cache{entries: make(map[string]*Entry, len(listings))}

	for _, l := range listings {
		dirs := append([]string(nil), l.Dirs...)
		items := append([]string(nil), l.Items...)
		sort.Strings(dirs)
		sort.Strings(items)

		nodes := make([]Node, 0, len(dirs)+len(items))
		for _, d := range dirs {
			count := 0
			if child, ok := c.entries[Join(l.Path, d)]; ok {
				count = child.realCount()
			}
			nodes = append(nodes, Dir(d, count))
		}
		for _, f := range items {
			nodes = append(nodes, Leaf(f))
		}
		if len(nodes) == 0 {
			nodes = []Node{Empty()}
		}
		c.entries[l.Path] = &Entry{Path: l.Path, Nodes: nodes}
	}

	c.ensure("")
	return c
}

// Entry returns the cached directory at path, or nil.
func (c *Cache) Entry(path string) *Entry {
	return c.entries[path]
}

// Has reports whether path is a cached directory.
func (c *Cache) Has(path string) bool {
	_, ok := c.entries[path]
	return ok
}

// Nodes returns the listing of path. Unknown paths list as empty.
func (c *Cache) Nodes(path string) []Node {
	if e := c.entries[path]; e != nil {
		return e.Nodes
	}
	return []Node{Empty()}
}

// Cursor returns the remembered focus index for path.
func (c *Cache) Cursor(path string) int {
	if e := c.entries[path]; e != nil {
		return e.Cursor
	}
	return 0
}

// SetCursor remembers the focus index for path.
func (c *Cache) SetCursor(path string, cursor int) {
	if e := c.entries[path]; e != nil {
		e.Cursor = cursor
	}
}

// Index returns the position of the first node called name at path, or -1.
func (c *Cache) Index(path, name string) int {
	e := c.entries[path]
	if e == nil {
		return -1
	}
	for i, n := range e.Nodes {
		if !n.IsEmpty() && n.Name == name {
			return i
		}
	}
	return -1
}

// Insert adds n to the directory at path keeping directories first and
// names ascending, and returns its index. A node of the same name and kind
// is never duplicated: its existing index is returned instead.
func (c *Cache) Insert(path string, n Node) int {
	e := c.ensure(path)
	if n.IsEmpty() {
		return 0
	}
	if i := e.index(n.Name, n.Kind); i >= 0 {
		return i
	}

	if e.realCount() == 0 {
		e.Nodes = e.Nodes[:0]
	}
	e.Nodes = append(e.Nodes, n)
	sort.SliceStable(e.Nodes, func(i, j int) bool {
		return less(e.Nodes[i], e.Nodes[j])
	})
	if n.IsDir() {
		c.ensure(Join(path, n.Name))
		c.refreshCount(Join(path, n.Name))
	}

	c.refreshCount(path)
	return e.index(n.Name, n.Kind)
}

// InsertPath inserts a leaf addressed by a possibly nested name such as
// "web/site", creating the intermediate directories. The returned index is
// that of the first segment inside path, or -1 when name has no segments.
func (c *Cache) InsertPath(path, name string) int {
	var segs []string
	for _, s := range strings.Split(name, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return -1
	}

	first := -1
	cur := path
	for i, seg := range segs {
		var idx int
		if i == len(segs)-1 {
			idx = c.Insert(cur, Leaf(seg))
		} else {
			idx = c.Insert(cur, Dir(seg, 0))
			cur = Join(cur, seg)
		}
		if i == 0 {
			first = idx
		}
	}
	return first
}

// Remove drops the node at index. A removed directory takes its cached
// subtree with it, and an emptied directory gets the sentinel back.
func (c *Cache) Remove(path string, index int) {
	e := c.entries[path]
	if e == nil || index < 0 || index >= len(e.Nodes) {
		return
	}
	n := e.Nodes[index]
	if n.IsEmpty() {
		return
	}

	e.Nodes = append(e.Nodes[:index], e.Nodes[index+1:]...)
	if len(e.Nodes) == 0 {
		e.Nodes = []Node{Empty()}
	}
	if e.Cursor >= len(e.Nodes) {
		e.Cursor = len(e.Nodes) - 1
	}

	if n.IsDir() {
		prefix := Join(path, n.Name)
		for p := range c.entries {
			if p == prefix || strings.HasPrefix(p, prefix+"/") {
				delete(c.entries, p)
			}
		}
	}

	c.refreshCount(path)
}

func (c *Cache) ensure(path string) *Entry {
	e, ok := c.entries[path]
	if !ok {
		e = &Entry{Path: path, Nodes: []Node{Empty()}}
		c.entries[path] = e
	}
	return e
}

// refreshCount updates the node standing for path in its parent listing.
func (c *Cache) refreshCount(path string) {
	if path == "" {
		return
	}
	parent := c.entries[Parent(path)]
	if parent == nil {
		return
	}
	if i := parent.index(Base(path), KindDir); i >= 0 {
		parent.Nodes[i].Count = c.entries[path].realCount()
	}
}

// Join appends name to a store path.
func Join(root, name string) string {
	switch {
	case root == "":
		return name
	case name == "":
		return root
	}
	return root + "/" + name
}

// Parent strips the last segment; the root is its own parent.
func Parent(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}

// Base returns the last segment of path.
func Base(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

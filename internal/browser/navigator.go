package browser

import (
	"github.com/LFroesch/cpass/internal/logger"
	"github.com/LFroesch/cpass/internal/tree"
	"github.com/LFroesch/cpass/internal/viewport"
)

// Direction of a directory change.
type Direction int

const (
	Descend Direction = iota
	Ascend
)

// Change tells subscribers what has to be redrawn.
type Change int

const (
	// ChangeFocus means the focused entry moved, the preview may be stale.
	ChangeFocus Change = iota
	// ChangeView means another directory or listing is shown.
	ChangeView
	// ChangeContent means the focused entry's content may have changed even
	// if its path did not.
	ChangeContent
)

// Navigator shows one cached directory at a time through a viewport. The
// displayed nodes are a private copy that is refilled in place on every
// swap, and subscribers are told about each refill.
type Navigator struct {
	cache  *tree.Cache
	path   string
	nodes  []tree.Node
	view   viewport.Controller
	height int

	subscribers []func(Change)
	held        bool
}

// NewNavigator starts at the store root.
func NewNavigator(cache *tree.Cache) *Navigator {
	n := &Navigator{cache: cache, height: 1}
	n.load()
	n.view.Reset(cache.Cursor(""), len(n.nodes), n.height)
	return n
}

// OnChange subscribes fn to every state change.
func (n *Navigator) OnChange(fn func(Change)) {
	n.subscribers = append(n.subscribers, fn)
}

func (n *Navigator) notify(c Change) {
	if n.held {
		return
	}
	for _, fn := range n.subscribers {
		fn(c)
	}
}

// Path is the directory being shown; the root is "".
func (n *Navigator) Path() string { return n.path }

// Nodes is the listing being shown. Callers must not modify it.
func (n *Navigator) Nodes() []tree.Node { return n.nodes }

// Viewport returns the current focus and scroll position.
func (n *Navigator) Viewport() viewport.Controller { return n.view }

// Height is the number of visible list rows.
func (n *Navigator) Height() int { return n.height }

// Focused is the node under the cursor.
func (n *Navigator) Focused() tree.Node {
	return n.nodes[n.view.Focus]
}

// FocusedPath is the store path of the focused node.
func (n *Navigator) FocusedPath() string {
	return tree.Join(n.path, n.Focused().Name)
}

// SetHeight updates the window size, keeping focus visible.
func (n *Navigator) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.height = height
	n.view.Fit(len(n.nodes), n.height)
}

// ListNavigate moves focus by shift rows.
func (n *Navigator) ListNavigate(shift int) {
	n.view.Shift(shift, len(n.nodes), n.height)
	n.notify(ChangeFocus)
}

// ListNavigateTo focuses an absolute index.
func (n *Navigator) ListNavigateTo(index int) {
	n.view.MoveTo(index, len(n.nodes), n.height)
	n.notify(ChangeFocus)
}

// Click handles a press on a window row. Pressing the focused directory
// enters it; pressing the focused leaf does nothing.
func (n *Navigator) Click(row int) {
	index, activate := n.view.Click(row)
	if activate {
		if n.Focused().IsDir() {
			n.DirNavigate(Descend)
		}
		return
	}
	n.ListNavigateTo(index)
}

// DirNavigate enters the focused directory or leaves the current one and
// reports whether the shown directory changed.
func (n *Navigator) DirNavigate(d Direction) bool {
	n.cache.SetCursor(n.path, n.view.Focus)

	next := n.path
	switch d {
	case Descend:
		focused := n.Focused()
		if !focused.IsDir() {
			return false
		}
		next = tree.Join(n.path, focused.Name)
	case Ascend:
		if n.path == "" {
			return false
		}
		next = tree.Parent(n.path)
	}

	logger.Debug("navigate: /%s -> /%s", n.path, next)
	n.path = next
	n.load()
	n.view.Reset(n.cache.Cursor(n.path), len(n.nodes), n.height)
	n.notify(ChangeView)
	return true
}

// Focus moves the cursor to index, used after an entry was inserted.
func (n *Navigator) Focus(index int) {
	n.view.MoveTo(index, len(n.nodes), n.height)
	n.notify(ChangeFocus)
}

// Reload refills the listing from the cache after it was patched.
func (n *Navigator) Reload() {
	n.load()
	n.view.Fit(len(n.nodes), n.height)
	n.cache.SetCursor(n.path, n.view.Focus)
	n.notify(ChangeView)
}

// batch runs fn with notifications held, then tells subscribers once that
// the focused content must be fetched again.
func (n *Navigator) batch(fn func()) {
	n.held = true
	fn()
	n.held = false
	n.notify(ChangeContent)
}

func (n *Navigator) load() {
	n.nodes = append(n.nodes[:0], n.cache.Nodes(n.path)...)
	if len(n.nodes) == 0 {
		n.nodes = append(n.nodes, tree.Empty())
	}
}

package browser

import (
	"fmt"
	"strings"

	"github.com/LFroesch/cpass/internal/store"
	"github.com/LFroesch/cpass/internal/tree"
)

// Op is a mutating store operation.
type Op int

const (
	OpInsert Op = iota
	OpGenerate
	OpEdit
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpGenerate:
		return "generate"
	case OpEdit:
		return "edit"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Request is an operation resolved against the directory it was issued in.
type Request struct {
	Op       Op
	Root     string // directory shown when the request was made
	Name     string // entry name inside Root, may be nested for insert/generate
	Path     string // store path handed to the store
	Password string // insert only
	Index    int    // delete only, position of Name in Root
	IsDir    bool   // delete only
}

// Outcome is what the operator is told once a request finished.
type Outcome struct {
	Succeeded bool
	Message   string
	Alert     bool
}

// Coordinator runs store operations and patches the cache when they
// succeed.
type Coordinator struct {
	store store.Store
	nav   *Navigator
	opts  store.GenerateOptions
}

// NewCoordinator wires a store to the navigator whose cache it keeps in
// sync.
func NewCoordinator(st store.Store, nav *Navigator, opts store.GenerateOptions) *Coordinator {
	return &Coordinator{store: st, nav: nav, opts: opts}
}

// Insert prepares storing password under name in the current directory.
// It refuses names that don't resolve to an entry below it.
func (c *Coordinator) Insert(name, password string) (Request, bool) {
	if !ValidName(name) {
		return Request{}, false
	}
	return c.request(OpInsert, name, password), true
}

// Generate prepares generating a secret under name in the current
// directory.
func (c *Coordinator) Generate(name string) (Request, bool) {
	if !ValidName(name) {
		return Request{}, false
	}
	return c.request(OpGenerate, name, ""), true
}

// ValidName reports whether name is a relative entry path: one or more
// segments, none of them empty, "." or "..".
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "", ".", "..":
			return false
		}
	}
	return true
}

// Edit prepares editing the focused leaf.
func (c *Coordinator) Edit() (Request, bool) {
	focused := c.nav.Focused()
	if !focused.IsLeaf() {
		return Request{}, false
	}
	return c.request(OpEdit, focused.Name, ""), true
}

// Delete prepares removing the focused entry, recursively for directories.
func (c *Coordinator) Delete() (Request, bool) {
	focused := c.nav.Focused()
	if focused.IsEmpty() {
		return Request{}, false
	}
	req := c.request(OpDelete, focused.Name, "")
	req.Index = c.nav.Viewport().Focus
	req.IsDir = focused.IsDir()
	return req, true
}

func (c *Coordinator) request(op Op, name, password string) Request {
	root := c.nav.Path()
	return Request{
		Op:       op,
		Root:     root,
		Name:     name,
		Path:     tree.Join(root, name),
		Password: password,
	}
}

// Call invokes the store for req. It may take over the terminal.
func (c *Coordinator) Call(req Request) store.Result {
	switch req.Op {
	case OpInsert:
		return c.store.Insert(req.Path, req.Password)
	case OpGenerate:
		return c.store.Generate(req.Path, c.opts)
	case OpEdit:
		return c.store.Edit(req.Path)
	case OpDelete:
		if req.IsDir {
			// pass resolves "b" to b.gpg when both b/ and b.gpg exist
			return c.store.Delete(req.Path + "/")
		}
		return c.store.Delete(req.Path)
	}
	return store.Result{Error: "unknown operation " + req.Op.String()}
}

// Apply reconciles the cache with the store's answer to req. Failed
// requests leave every piece of state untouched.
func (c *Coordinator) Apply(req Request, res store.Result) Outcome {
	if !res.Succeeded {
		msg := flatten(res.Error)
		if msg == "" {
			msg = fmt.Sprintf("%s failed", req.Op)
		}
		return Outcome{Message: msg, Alert: true}
	}

	var msg string
	c.nav.batch(func() { msg = c.patch(req) })
	return Outcome{Succeeded: true, Message: msg}
}

// patch applies a successful req to the cache and the shown listing.
func (c *Coordinator) patch(req Request) string {
	cache := c.nav.cache
	shown := c.nav.Path() == req.Root
	var msg string

	switch req.Op {
	case OpInsert, OpGenerate:
		idx := cache.InsertPath(req.Root, req.Name)
		if shown {
			c.nav.Reload()
			if idx >= 0 {
				c.nav.Focus(idx)
			}
		}
		verb := "Insert"
		if req.Op == OpGenerate {
			verb = "Generate"
		}
		msg = fmt.Sprintf("%s: /%s", verb, req.Path)

	case OpEdit:
		msg = fmt.Sprintf("Edit: /%s", req.Path)

	case OpDelete:
		if idx := c.locate(req); idx >= 0 {
			cache.Remove(req.Root, idx)
		}
		if shown {
			c.nav.Reload()
		}
		msg = fmt.Sprintf("Deleting %s", req.Path)
	}
	return msg
}

// Do runs req to completion.
func (c *Coordinator) Do(req Request) Outcome {
	return c.Apply(req, c.Call(req))
}

// locate finds the node a delete request refers to.
func (c *Coordinator) locate(req Request) int {
	kind := tree.KindLeaf
	if req.IsDir {
		kind = tree.KindDir
	}
	nodes := c.nav.cache.Nodes(req.Root)
	if req.Index >= 0 && req.Index < len(nodes) {
		if n := nodes[req.Index]; n.Name == req.Name && n.Kind == kind {
			return req.Index
		}
	}
	for i, n := range nodes {
		if n.Name == req.Name && n.Kind == kind {
			return i
		}
	}
	return -1
}

// flatten makes store output fit a one line status message.
func flatten(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}

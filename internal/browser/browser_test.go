package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/cpass/internal/store"
	"github.com/LFroesch/cpass/internal/tree"
)

type call struct {
	op       string
	path     string
	password string
	opts     store.GenerateOptions
}

// fakeStore records calls and answers with res.
type fakeStore struct {
	calls []call
	res   store.Result
}

func (f *fakeStore) record(c call) store.Result {
	f.calls = append(f.calls, c)
	return f.res
}

func (f *fakeStore) Show(path string) store.Result {
	return f.record(call{op: "show", path: path})
}
func (f *fakeStore) Edit(path string) store.Result {
	return f.record(call{op: "edit", path: path})
}
func (f *fakeStore) Insert(path, password string) store.Result {
	return f.record(call{op: "insert", path: path, password: password})
}
func (f *fakeStore) Generate(path string, opts store.GenerateOptions) store.Result {
	return f.record(call{op: "generate", path: path, opts: opts})
}
func (f *fakeStore) Delete(path string) store.Result {
	return f.record(call{op: "delete", path: path})
}

func labels(nodes []tree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label())
	}
	return out
}

// fixture: root holds dirs "b" (with 12 items) and "c" (empty), leaf "a".
func fixture() *tree.Cache {
	var items []string
	for _, s := range "abcdefghijkl" {
		items = append(items, "item-"+string(s))
	}
	return tree.Build([]tree.Listing{
		{Path: "b", Items: items},
		{Path: "c"},
		{Path: "", Dirs: []string{"b", "c"}, Items: []string{"a"}},
	})
}

func setup(res store.Result) (*Navigator, *Coordinator, *fakeStore) {
	nav := NewNavigator(fixture())
	nav.SetHeight(5)
	st := &fakeStore{res: res}
	return nav, NewCoordinator(st, nav, store.GenerateOptions{NoSymbols: true}), st
}

func TestDescendAscendRestoresCursor(t *testing.T) {
	nav, _, _ := setup(store.Result{})

	require.True(t, nav.DirNavigate(Descend))
	assert.Equal(t, "b", nav.Path())
	assert.Equal(t, 0, nav.Viewport().Focus)

	nav.ListNavigate(7)
	require.True(t, nav.DirNavigate(Ascend))
	assert.Equal(t, "", nav.Path())
	assert.Equal(t, 0, nav.Viewport().Focus)

	nav.ListNavigate(2)
	require.False(t, nav.DirNavigate(Descend), "descending into a leaf is a no-op")
	nav.ListNavigate(-2)

	require.True(t, nav.DirNavigate(Descend))
	assert.Equal(t, 7, nav.Viewport().Focus)
	assert.Equal(t, "b/item-h", nav.FocusedPath())
}

func TestAscendAtRootIsNoop(t *testing.T) {
	nav, _, _ := setup(store.Result{})
	nav.ListNavigate(1)
	assert.False(t, nav.DirNavigate(Ascend))
	assert.Equal(t, "", nav.Path())
	assert.Equal(t, 1, nav.Viewport().Focus)
}

func TestDescendIntoEmptyAndSentinel(t *testing.T) {
	nav, _, _ := setup(store.Result{})
	nav.ListNavigateTo(1)
	require.True(t, nav.DirNavigate(Descend))
	assert.Equal(t, []string{tree.EmptyLabel}, labels(nav.Nodes()))
	assert.False(t, nav.DirNavigate(Descend))

	nav.ListNavigate(5)
	assert.Equal(t, 0, nav.Viewport().Focus)
}

func TestNotifications(t *testing.T) {
	nav, _, _ := setup(store.Result{})
	var got []Change
	nav.OnChange(func(c Change) { got = append(got, c) })

	nav.ListNavigate(1)
	nav.DirNavigate(Ascend)
	nav.ListNavigateTo(0)
	nav.DirNavigate(Descend)
	assert.Equal(t, []Change{ChangeFocus, ChangeFocus, ChangeView}, got)
}

func TestClick(t *testing.T) {
	nav, _, _ := setup(store.Result{})

	nav.Click(2)
	assert.Equal(t, 2, nav.Viewport().Focus)

	// focused leaf: nothing happens
	nav.Click(2)
	assert.Equal(t, "", nav.Path())

	nav.Click(0)
	nav.Click(0)
	assert.Equal(t, "b", nav.Path())

	// rows past the end clamp to the last item
	nav.DirNavigate(Ascend)
	nav.Click(4)
	assert.Equal(t, 2, nav.Viewport().Focus)
}

func TestSwapKeepsListingIdentity(t *testing.T) {
	nav, _, _ := setup(store.Result{})
	nav.DirNavigate(Descend)
	before := &nav.Nodes()[0]
	nav.DirNavigate(Ascend)
	nav.DirNavigate(Descend)
	assert.Same(t, before, &nav.Nodes()[0])
}

func TestInsertSuccess(t *testing.T) {
	nav, coord, st := setup(store.Result{Succeeded: true})
	var changes []Change
	nav.OnChange(func(c Change) { changes = append(changes, c) })

	req, ok := coord.Insert("site", "xyz")
	require.True(t, ok)
	out := coord.Do(req)
	require.True(t, out.Succeeded)
	assert.False(t, out.Alert)
	assert.Equal(t, "Insert: /site", out.Message)

	require.Len(t, st.calls, 1)
	assert.Equal(t, call{op: "insert", path: "site", password: "xyz"}, st.calls[0])

	assert.Equal(t, []string{"b", "c", "a", "site"}, labels(nav.Nodes()))
	assert.Equal(t, 3, nav.Viewport().Focus)
	assert.Equal(t, []Change{ChangeContent}, changes, "one refresh per mutation")
}

func TestGenerateNestedInSubdirectory(t *testing.T) {
	nav, coord, st := setup(store.Result{Succeeded: true})
	nav.ListNavigateTo(1)
	nav.DirNavigate(Descend)

	req, ok := coord.Generate("mail/work")
	require.True(t, ok)
	out := coord.Do(req)
	require.True(t, out.Succeeded)
	assert.Equal(t, "Generate: /c/mail/work", out.Message)
	assert.Equal(t, store.GenerateOptions{NoSymbols: true}, st.calls[0].opts)
	assert.Equal(t, "c/mail/work", st.calls[0].path)

	assert.Equal(t, []string{"mail"}, labels(nav.Nodes()))
	assert.True(t, nav.Focused().IsDir())

	nav.DirNavigate(Ascend)
	assert.Equal(t, 1, nav.Nodes()[1].Count)
}

func TestInsertExistingNameKeepsListing(t *testing.T) {
	nav, coord, _ := setup(store.Result{Succeeded: true})
	before := labels(nav.Nodes())

	req, ok := coord.Insert("a", "pw")
	require.True(t, ok)
	coord.Do(req)
	assert.Equal(t, before, labels(nav.Nodes()))
	assert.Equal(t, 2, nav.Viewport().Focus)
}

func TestDeleteSuccess(t *testing.T) {
	nav, coord, st := setup(store.Result{Succeeded: true})

	req, ok := coord.Delete()
	require.True(t, ok)
	assert.True(t, req.IsDir)

	out := coord.Do(req)
	assert.Equal(t, "Deleting b", out.Message)
	assert.Equal(t, call{op: "delete", path: "b/"}, st.calls[0], "directories are removed by their slashed path")
	assert.Equal(t, []string{"c", "a"}, labels(nav.Nodes()))

	for i := 0; i < 2; i++ {
		req, ok = coord.Delete()
		require.True(t, ok)
		coord.Do(req)
	}
	assert.Equal(t, []string{tree.EmptyLabel}, labels(nav.Nodes()))
	assert.Equal(t, "a", st.calls[2].path)

	_, ok = coord.Delete()
	assert.False(t, ok, "the sentinel can't be deleted")
}

func TestRejectsNamesOutsideDirectory(t *testing.T) {
	nav, coord, st := setup(store.Result{Succeeded: true})
	nav.ListNavigateTo(1)
	nav.DirNavigate(Descend)

	for _, name := range []string{"", "/", "mail/", "/mail", "a//b", ".", "..", "../x"} {
		_, ok := coord.Generate(name)
		assert.False(t, ok, "generate %q", name)
		_, ok = coord.Insert(name, "pw")
		assert.False(t, ok, "insert %q", name)
	}
	assert.Empty(t, st.calls)
	assert.Equal(t, []string{tree.EmptyLabel}, labels(nav.Nodes()))
}

func TestDeleteDirNextToLeaf(t *testing.T) {
	cache := tree.Build([]tree.Listing{
		{Path: "b", Items: []string{"x"}},
		{Path: "", Dirs: []string{"b"}, Items: []string{"b"}},
	})
	st := &fakeStore{res: store.Result{Succeeded: true}}
	nav := NewNavigator(cache)
	coord := NewCoordinator(st, nav, store.GenerateOptions{})

	req, ok := coord.Delete()
	require.True(t, ok)
	require.True(t, req.IsDir)
	coord.Do(req)
	assert.Equal(t, "b/", st.calls[0].path)
	assert.Equal(t, []string{"b"}, labels(nav.Nodes()))
	assert.True(t, nav.Focused().IsLeaf())

	req, ok = coord.Delete()
	require.True(t, ok)
	coord.Do(req)
	assert.Equal(t, "b", st.calls[1].path)
}

func TestDeleteFailureLeavesState(t *testing.T) {
	nav, coord, _ := setup(store.Result{Error: "Error: b is not in the password store."})
	nav.ListNavigate(1)
	var changes []Change
	nav.OnChange(func(c Change) { changes = append(changes, c) })

	req, ok := coord.Delete()
	require.True(t, ok)
	out := coord.Do(req)

	assert.False(t, out.Succeeded)
	assert.True(t, out.Alert)
	assert.Equal(t, "Error: b is not in the password store.", out.Message)
	assert.Len(t, nav.Nodes(), 3)
	assert.Equal(t, 1, nav.Viewport().Focus)
	assert.Empty(t, changes)
}

func TestFailureWithoutText(t *testing.T) {
	_, coord, _ := setup(store.Result{})
	req, ok := coord.Generate("x")
	require.True(t, ok)
	out := coord.Do(req)
	assert.Equal(t, "generate failed", out.Message)
	assert.True(t, out.Alert)
}

func TestEdit(t *testing.T) {
	nav, coord, st := setup(store.Result{Succeeded: true})

	_, ok := coord.Edit()
	assert.False(t, ok, "directories can't be edited")

	nav.ListNavigateTo(2)
	var changes []Change
	nav.OnChange(func(c Change) { changes = append(changes, c) })

	req, ok := coord.Edit()
	require.True(t, ok)
	out := coord.Do(req)
	assert.Equal(t, "Edit: /a", out.Message)
	assert.Equal(t, "edit", st.calls[0].op)
	assert.Equal(t, []Change{ChangeContent}, changes)
	assert.Len(t, nav.Nodes(), 3)
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "one two", flatten("one\ntwo\n"))
}

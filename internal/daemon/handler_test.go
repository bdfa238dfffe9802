package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/pastepal/internal/activation"
	"github.com/berrythewa/pastepal/pkg/format"
	"github.com/berrythewa/pastepal/internal/clipboard"
	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/internal/storage"
	"github.com/berrythewa/pastepal/internal/store"
	"github.com/berrythewa/pastepal/internal/types"
)

type handlerFixture struct {
	pb      *clipboard.Memory
	store   *store.ClipboardStore
	handler ipc.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	pb := clipboard.NewMemory()
	st, err := store.New(pb, storage.NewMemoryStorage(), activation.NewManual())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return &handlerFixture{pb: pb, store: st, handler: NewHandler(st)}
}

func (f *handlerFixture) call(t *testing.T, command string, args map[string]interface{}) *ipc.Response {
	t.Helper()
	resp := f.handler(ipc.NewRequest(command, args))
	require.NotNil(t, resp)
	return resp
}

func TestHandlerPing(t *testing.T) {
	f := newHandlerFixture(t)
	resp := f.call(t, ipc.CmdPing, nil)
	assert.NoError(t, resp.Err())
	assert.Equal(t, "pong", resp.Message)
}

func TestHandlerAddAndList(t *testing.T) {
	f := newHandlerFixture(t)

	for _, c := range []string{"Hello", "world", "HELLO again"} {
		resp := f.call(t, ipc.CmdClipAdd, map[string]interface{}{"content": c, "copied_from": "Terminal"})
		require.NoError(t, resp.Err())
	}

	var all []types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdHistoryList, nil).Decode(&all))
	require.Len(t, all, 3)
	assert.Equal(t, "HELLO again", all[0].Content)
	assert.Equal(t, "Terminal", all[0].CopiedFrom)

	var matched []types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdHistoryList, map[string]interface{}{"query": "hello"}).Decode(&matched))
	require.Len(t, matched, 2)
	assert.Equal(t, "HELLO again", matched[0].Content)
	assert.Equal(t, "Hello", matched[1].Content)
	assert.Empty(t, f.store.SearchQuery(), "listing must not change the store query")

	var limited []types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdHistoryList, map[string]interface{}{"limit": 1}).Decode(&limited))
	assert.Len(t, limited, 1)
}

func TestHandlerListEmpty(t *testing.T) {
	f := newHandlerFixture(t)
	resp := f.call(t, ipc.CmdHistoryList, nil)
	require.NoError(t, resp.Err())
	assert.JSONEq(t, `[]`, string(resp.Data))
}

func TestHandlerAddRejectsEmpty(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Error(t, f.call(t, ipc.CmdClipAdd, nil).Err())
	assert.Empty(t, f.store.Items())
}

func TestHandlerShowAndCopy(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("secret", "")
	id := f.store.Items()[0].ID

	var shown types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdHistoryShow, map[string]interface{}{"id": id}).Decode(&shown))
	assert.Equal(t, "secret", shown.Content)

	resp := f.call(t, ipc.CmdClipCopy, map[string]interface{}{"id": id})
	require.NoError(t, resp.Err())
	text, err := f.pb.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "secret", text)
	assert.Len(t, f.store.Items(), 1)

	resp = f.call(t, ipc.CmdHistoryShow, map[string]interface{}{"id": "nope"})
	assert.ErrorContains(t, resp.Err(), store.ErrItemNotFound.Error())
	resp = f.call(t, ipc.CmdClipCopy, map[string]interface{}{"id": "nope"})
	assert.Error(t, resp.Err())
}

func TestHandlerDelete(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("a", "")
	f.store.AddOrTouch("b", "")
	id := f.store.Items()[0].ID

	var res DeleteResult
	require.NoError(t, f.call(t, ipc.CmdHistoryDelete, map[string]interface{}{"ids": []string{id, "ghost"}}).Decode(&res))
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, []string{"ghost"}, res.Missing)
	require.Len(t, f.store.Items(), 1)
	assert.Equal(t, "a", f.store.Items()[0].Content)

	assert.Error(t, f.call(t, ipc.CmdHistoryDelete, nil).Err())
}

func TestHandlerClearAndStats(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("one", "Safari")
	f.store.AddOrTouch("two", "")

	var stats types.Stats
	require.NoError(t, f.call(t, ipc.CmdHistoryStats, nil).Decode(&stats))
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, int64(6), stats.TotalBytes)

	var removed map[string]int
	require.NoError(t, f.call(t, ipc.CmdHistoryClear, nil).Decode(&removed))
	assert.Equal(t, 2, removed["removed"])
	assert.Empty(t, f.store.Items())
	assert.Empty(t, f.store.FilteredItems())
}

func TestHandlerActivate(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.call(t, ipc.CmdClipActivate, nil)
	require.NoError(t, resp.Err())
	assert.Empty(t, resp.Data)
	assert.Empty(t, f.store.Items())

	require.NoError(t, f.pb.WriteString("from pasteboard"))
	var item types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdClipActivate, nil).Decode(&item))
	assert.Equal(t, "from pasteboard", item.Content)
	assert.Empty(t, item.CopiedFrom)
}

func TestHandlerActivateEmptyPasteboardKeepsHistory(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("older", "")

	resp := f.call(t, ipc.CmdClipActivate, nil)
	require.NoError(t, resp.Err())
	assert.Empty(t, resp.Data, "nothing was recorded, so no item is reported")
	assert.Equal(t, "pasteboard holds no string", resp.Message)
	assert.Len(t, f.store.Items(), 1)
}

func TestHandlerAddReturnsRecordedItem(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("first", "")

	var added types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdClipAdd, map[string]interface{}{"content": "second", "copied_from": "Mail"}).Decode(&added))
	assert.Equal(t, "second", added.Content)
	assert.Equal(t, "Mail", added.CopiedFrom)

	// Touching an existing entry reports that entry.
	var touched types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdClipAdd, map[string]interface{}{"content": "first"}).Decode(&touched))
	assert.Equal(t, "first", touched.Content)
	assert.Len(t, f.store.Items(), 2)
}

func TestHandlerShortIDs(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("keep", "")
	target := f.store.AddOrTouch("short", "")
	short := format.ShortID(target.ID)
	require.NotEqual(t, target.ID, short)

	var shown types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdHistoryShow, map[string]interface{}{"id": short}).Decode(&shown))
	assert.Equal(t, target.ID, shown.ID)

	require.NoError(t, f.call(t, ipc.CmdClipCopy, map[string]interface{}{"id": short}).Err())
	text, err := f.pb.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "short", text)

	var res DeleteResult
	require.NoError(t, f.call(t, ipc.CmdHistoryDelete, map[string]interface{}{"ids": []string{short}}).Decode(&res))
	assert.Equal(t, 1, res.Deleted)
	assert.Empty(t, res.Missing)
	require.Len(t, f.store.Items(), 1)
	assert.Equal(t, "keep", f.store.Items()[0].Content)
}

func TestHandlerRejectsEmptyID(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.AddOrTouch("a", "")

	// An empty ref would prefix-match everything.
	resp := f.call(t, ipc.CmdHistoryShow, map[string]interface{}{"id": ""})
	assert.ErrorContains(t, resp.Err(), store.ErrItemNotFound.Error())

	var res DeleteResult
	require.NoError(t, f.call(t, ipc.CmdHistoryDelete, map[string]interface{}{"ids": []string{""}}).Decode(&res))
	assert.Zero(t, res.Deleted)
	assert.Len(t, f.store.Items(), 1)
}

func TestHandlerSearchSetsLiveQuery(t *testing.T) {
	f := newHandlerFixture(t)
	for _, c := range []string{"alpha", "beta", "Alphabet"} {
		f.store.AddOrTouch(c, "")
	}

	var res SearchResult
	require.NoError(t, f.call(t, ipc.CmdHistorySearch, map[string]interface{}{"query": "alpha"}).Decode(&res))
	assert.Equal(t, "alpha", res.Query)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "alpha", f.store.SearchQuery())

	// history.list without a query follows the live filter, including new items.
	f.store.AddOrTouch("alphanumeric", "")
	var listed []types.ClipboardItem
	require.NoError(t, f.call(t, ipc.CmdHistoryList, nil).Decode(&listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "alphanumeric", listed[0].Content)

	// An empty query resets the view.
	require.NoError(t, f.call(t, ipc.CmdHistorySearch, map[string]interface{}{"query": ""}).Decode(&res))
	assert.Len(t, res.Items, 4)
	require.NoError(t, f.call(t, ipc.CmdHistoryList, nil).Decode(&listed))
	assert.Len(t, listed, 4)
}

func TestHandlerUnknownCommand(t *testing.T) {
	f := newHandlerFixture(t)
	assert.EqualError(t, f.call(t, "history.flush", nil).Err(), "daemon: unknown command: history.flush")
}

package daemon

import (
	"github.com/berrythewa/pastepal/internal/ipc"
	"github.com/berrythewa/pastepal/internal/store"
	"github.com/berrythewa/pastepal/internal/types"
)

// DeleteResult is the payload of history.delete.
type DeleteResult struct {
	Deleted int      `json:"deleted"`
	Missing []string `json:"missing,omitempty"`
}

// SearchResult is the payload of history.search.
type SearchResult struct {
	Query string                `json:"query"`
	Items []types.ClipboardItem `json:"items"`
}

// NewHandler answers IPC requests against st. Item ids may be given in full
// or as a unique prefix.
func NewHandler(st *store.ClipboardStore) ipc.Handler {
	return func(req *ipc.Request) *ipc.Response {
		switch req.Command {
		case ipc.CmdPing:
			return ipc.OK("pong", nil)

		case ipc.CmdHistoryList:
			// Without an explicit query the live filtered view is listed.
			items := st.FilteredItems()
			if q := req.String("query"); q != "" {
				items = st.Search(q)
			}
			return ipc.OK("", limitItems(items, req.Int("limit", 0)))

		case ipc.CmdHistorySearch:
			query := req.String("query")
			items := st.ApplySearchQuery(query)
			return ipc.OK("", SearchResult{Query: query, Items: limitItems(items, req.Int("limit", 0))})

		case ipc.CmdHistoryShow:
			item, err := st.Resolve(req.String("id"))
			if err != nil {
				return ipc.Errorf("%v", err)
			}
			return ipc.OK("", item)

		case ipc.CmdHistoryDelete:
			refs := req.Strings("ids")
			if len(refs) == 0 {
				return ipc.Errorf("no ids given")
			}
			var res DeleteResult
			for _, ref := range refs {
				item, err := st.Resolve(ref)
				if err == nil && st.DeleteID(item.ID) {
					res.Deleted++
				} else {
					res.Missing = append(res.Missing, ref)
				}
			}
			return ipc.OK("", res)

		case ipc.CmdHistoryClear:
			n := len(st.Items())
			st.Clear()
			return ipc.OK("history cleared", map[string]int{"removed": n})

		case ipc.CmdHistoryStats:
			return ipc.OK("", st.Stats())

		case ipc.CmdClipAdd:
			content := req.String("content")
			if content == "" {
				return ipc.Errorf("content is empty")
			}
			return ipc.OK("", st.AddOrTouch(content, req.String("copied_from")))

		case ipc.CmdClipCopy:
			item, err := st.Resolve(req.String("id"))
			if err != nil {
				return ipc.Errorf("%v", err)
			}
			if err := st.CopyToClipboard(item.Content); err != nil {
				return ipc.Errorf("%v", err)
			}
			return ipc.OK("copied to clipboard", item)

		case ipc.CmdClipActivate:
			item, ok := st.Activate()
			if !ok {
				return ipc.OK("pasteboard holds no string", nil)
			}
			return ipc.OK("", item)

		default:
			return ipc.Errorf("unknown command: %s", req.Command)
		}
	}
}

func limitItems(items []types.ClipboardItem, limit int) []types.ClipboardItem {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []types.ClipboardItem{}
	}
	return items
}

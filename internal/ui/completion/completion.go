// Package completion produces the ordered suggestion list for the command
// palette. Ordering is a deliberate UX contract: explicit priorities first,
// fuzzy rank as the tie-break, and quit pinned to the bottom.
package completion

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Item is one palette suggestion. Items are rebuilt from the query on every
// keystroke and never persisted.
type Item struct {
	Label       string
	Description string
	Insert      string
	IsCommand   bool
}

// Context carries the session facts that decide which commands exist at all.
type Context struct {
	// Initialized hides the first-run command once setup has completed.
	Initialized bool
}

// Command labels, also used by the router to recognize a committed command.
const (
	CmdHelp     = "/help"
	CmdFeatures = "/features"
	CmdInit     = "/init"
	CmdAuth     = "/auth"
	CmdReset    = "/reset"
	CmdQuit     = "/quit"
)

// priority fixes the relative order for a subset of commands. Anything absent
// falls back to fuzzy rank. Quit is handled separately and always sorts last.
var priority = map[string]int{
	CmdHelp:     0,
	CmdFeatures: 1,
	CmdInit:     2,
	CmdAuth:     3,
}

// Commands returns the contextual command set in declared order.
func Commands(ctx Context) []Item {
	items := []Item{
		{Label: CmdHelp, Description: "show keybindings and commands", Insert: CmdHelp, IsCommand: true},
		{Label: CmdFeatures, Description: "refresh the feature list", Insert: CmdFeatures, IsCommand: true},
	}
	if !ctx.Initialized {
		items = append(items, Item{Label: CmdInit, Description: "first-run setup wizard", Insert: CmdInit, IsCommand: true})
	}
	items = append(items,
		Item{Label: CmdAuth, Description: "configure credentials", Insert: CmdAuth, IsCommand: true},
		Item{Label: CmdReset, Description: "delete all local tracker state", Insert: CmdReset, IsCommand: true},
		Item{Label: CmdQuit, Description: "exit", Insert: CmdQuit, IsCommand: true},
	)
	return items
}

// Suggest filters and orders the contextual set for the given query. An empty
// query returns the full set verbatim.
func Suggest(query string, ctx Context) []Item {
	items := Commands(ctx)
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(query), "/"))
	if trimmed == "" {
		return items
	}

	type scored struct {
		item Item
		rank int
	}
	matched := make([]scored, 0, len(items))
	for _, item := range items {
		target := strings.TrimPrefix(item.Label, "/")
		r := fuzzy.RankMatchNormalizedFold(trimmed, target)
		if r < 0 {
			continue
		}
		matched = append(matched, scored{item: item, rank: r})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if (a.item.Label == CmdQuit) != (b.item.Label == CmdQuit) {
			return b.item.Label == CmdQuit
		}
		pa, oka := priority[a.item.Label]
		pb, okb := priority[b.item.Label]
		switch {
		case oka && okb:
			return pa < pb
		case oka:
			return true
		case okb:
			return false
		default:
			return a.rank < b.rank
		}
	})

	out := make([]Item, len(matched))
	for i, s := range matched {
		out[i] = s.item
	}
	return out
}

// Exact reports whether the query names a known command outright.
func Exact(query string, ctx Context) (Item, bool) {
	trimmed := strings.TrimSpace(query)
	for _, item := range Commands(ctx) {
		if strings.EqualFold(item.Label, trimmed) {
			return item, true
		}
	}
	return Item{}, false
}

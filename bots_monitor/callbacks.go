package bot

// Callback payloads are opaque strings on the wire. They are decoded
// exactly once, here, into a closed set of typed actions; nothing else
// in the bot pattern-matches raw payloads.

import (
	"strconv"
	"strings"

	"wordspotr/internal/features/filters"
)

const (
	cbMenuMain       = "menu_main"
	cbMenuSearch     = "menu_search"
	cbMenuFilters    = "menu_filters"
	cbMenuWords      = "menu_words"
	cbMenuStats      = "menu_stats"
	cbMenuHelp       = "menu_help"
	cbSearchExamples = "show_search_examples"

	cbSetFilterPrefix = "set_filter_"
	cbFilterDone      = "set_filter_done"
	cbFilterBack      = "set_filter_back"
	cbFilterChain     = "set_filter_blockchain"
	cbClearFilters    = "clear_all_filters"

	cbChainPrefix     = "choose_chain_"
	cbNumFilterPrefix = "numfilter_"

	cbViewWords         = "view_saved_words"
	cbAddWords          = "add_more_words"
	cbWordsHelp         = "save_words_help"
	cbClearWords        = "clear_saved_words"
	cbConfirmClearWords = "confirm_clear_words"

	cbPagePrefix = "page_"
)

type actionKind int

const (
	actionNone actionKind = iota
	actionMainMenu
	actionSearchMenu
	actionFiltersMenu
	actionWordsMenu
	actionStatsMenu
	actionHelpMenu
	actionSearchExamples
	actionFilterSelect
	actionFilterDone
	actionFilterBack
	actionChainMenu
	actionChooseChain
	actionNumPreset
	actionNumCustom
	actionClearFilters
	actionViewWords
	actionWordsHelp
	actionClearWords
	actionConfirmClearWords
	actionPage
)

// callbackAction is the decoded form of one button press.
type callbackAction struct {
	Kind      actionKind
	FilterKey string
	Op        filters.Op
	Value     float64
	Chain     string
	Page      int
}

// decodeCallback maps a payload to its typed action. Unknown payloads
// report ok=false and are ignored by the handler.
func decodeCallback(data string) (callbackAction, bool) {
	switch data {
	case cbMenuMain:
		return callbackAction{Kind: actionMainMenu}, true
	case cbMenuSearch:
		return callbackAction{Kind: actionSearchMenu}, true
	case cbMenuFilters:
		return callbackAction{Kind: actionFiltersMenu}, true
	case cbMenuWords:
		return callbackAction{Kind: actionWordsMenu}, true
	case cbMenuStats:
		return callbackAction{Kind: actionStatsMenu}, true
	case cbMenuHelp:
		return callbackAction{Kind: actionHelpMenu}, true
	case cbSearchExamples:
		return callbackAction{Kind: actionSearchExamples}, true
	case cbFilterDone:
		return callbackAction{Kind: actionFilterDone}, true
	case cbFilterBack:
		return callbackAction{Kind: actionFilterBack}, true
	case cbFilterChain:
		return callbackAction{Kind: actionChainMenu}, true
	case cbClearFilters:
		return callbackAction{Kind: actionClearFilters}, true
	case cbViewWords:
		return callbackAction{Kind: actionViewWords}, true
	case cbAddWords, cbWordsHelp:
		return callbackAction{Kind: actionWordsHelp}, true
	case cbClearWords:
		return callbackAction{Kind: actionClearWords}, true
	case cbConfirmClearWords:
		return callbackAction{Kind: actionConfirmClearWords}, true
	}

	if page, ok := strings.CutPrefix(data, cbPagePrefix); ok {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return callbackAction{}, false
		}
		return callbackAction{Kind: actionPage, Page: n}, true
	}

	if chain, ok := strings.CutPrefix(data, cbChainPrefix); ok {
		if chain == "" {
			return callbackAction{}, false
		}
		return callbackAction{Kind: actionChooseChain, Chain: chain}, true
	}

	if rest, ok := strings.CutPrefix(data, cbNumFilterPrefix); ok {
		return decodeNumFilter(rest)
	}

	if key, ok := strings.CutPrefix(data, cbSetFilterPrefix); ok {
		if !isNumericKey(key) {
			return callbackAction{}, false
		}
		return callbackAction{Kind: actionFilterSelect, FilterKey: key}, true
	}

	return callbackAction{}, false
}

// decodeNumFilter parses "<key>_gt_<value>", "<key>_lt_<value>" or
// "<key>_custom".
func decodeNumFilter(rest string) (callbackAction, bool) {
	parts := strings.Split(rest, "_")
	if len(parts) < 2 {
		return callbackAction{}, false
	}
	key := parts[0]
	if !isNumericKey(key) {
		return callbackAction{}, false
	}

	if parts[1] == "custom" {
		return callbackAction{Kind: actionNumCustom, FilterKey: key}, true
	}
	if len(parts) != 3 {
		return callbackAction{}, false
	}

	var op filters.Op
	switch parts[1] {
	case "gt":
		op = filters.OpGreater
	case "lt":
		op = filters.OpLess
	default:
		return callbackAction{}, false
	}

	value, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return callbackAction{}, false
	}
	return callbackAction{Kind: actionNumPreset, FilterKey: key, Op: op, Value: value}, true
}

func isNumericKey(key string) bool {
	for _, k := range filters.NumericKeys {
		if k == key {
			return true
		}
	}
	return false
}

func encodePage(page int) string {
	return cbPagePrefix + strconv.Itoa(page)
}

func encodeNumPreset(key, op string, value int) string {
	return cbNumFilterPrefix + key + "_" + op + "_" + strconv.Itoa(value)
}

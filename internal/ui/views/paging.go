package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/lccn-predictor/lazyrating/internal/pagination"
)

// pageKeys moves between server-side pages.
type pageKeys struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
}

func defaultPageKeys() pageKeys {
	return pageKeys{
		Prev:  helpBinding([]string{"["}, "[", "previous page"),
		Next:  helpBinding([]string{"]"}, "]", "next page"),
		First: helpBinding([]string{"<"}, "<", "first page"),
		Last:  helpBinding([]string{">"}, ">", "last page"),
	}
}

func (k pageKeys) bindings() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.First, k.Last}
}

// target resolves a key press to the page it navigates to. Disabled links
// and the active page are not targets.
func (k pageKeys) target(msg tea.KeyMsg, links pagination.Links) (int, bool) {
	if len(links.Items) == 0 {
		return 0, false
	}

	var page int
	switch {
	case key.Matches(msg, k.Prev):
		page = links.Current - 1
	case key.Matches(msg, k.Next):
		page = links.Current + 1
	case key.Matches(msg, k.First):
		if !links.First().Navigable() {
			return 0, false
		}
		page = links.First().Page
	case key.Matches(msg, k.Last):
		if !links.Last().Navigable() {
			return 0, false
		}
		page = links.Last().Page
	default:
		return 0, false
	}

	if page < 1 || page > links.MaxPage || page == links.Current {
		return 0, false
	}
	return page, true
}

// pageSkip converts a 1-based page into a row offset.
func pageSkip(page, pageSize int) int {
	return max(page-1, 0) * pageSize
}

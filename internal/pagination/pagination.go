// Package pagination computes the bounded set of page links shown around the
// current page.
package pagination

import (
	"strconv"
	"strings"

	"github.com/lccn-predictor/lazyrating/internal/mathutil"
)

// Span is the number of numbered pages reachable on each side of the current page.
const Span = 4

// Kind identifies the role of a link.
type Kind int

const (
	// KindFirst jumps to page 1.
	KindFirst Kind = iota
	// KindPage is a navigable page number.
	KindPage
	// KindActive is the current, non-navigable page.
	KindActive
	// KindLast jumps to the last page.
	KindLast
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFirst:
		return "first"
	case KindPage:
		return "page"
	case KindActive:
		return "active"
	case KindLast:
		return "last"
	default:
		return "unknown"
	}
}

// Link is a single page descriptor.
type Link struct {
	Kind     Kind
	Page     int
	Disabled bool
}

// Navigable reports whether following the link changes the page.
func (l Link) Navigable() bool {
	return l.Kind != KindActive && !l.Disabled
}

// Href expands a URL pattern containing "{page}" for link-based navigation.
func (l Link) Href(pattern string) string {
	return strings.ReplaceAll(pattern, "{page}", strconv.Itoa(l.Page))
}

// Links is an ordered page window: first jump, numbered pages, last jump.
type Links struct {
	MaxPage int
	Current int
	Items   []Link
}

// First returns the jump-to-first link.
func (l Links) First() Link {
	return l.Items[0]
}

// Last returns the jump-to-last link.
func (l Links) Last() Link {
	return l.Items[len(l.Items)-1]
}

// Pages returns the numbered links, including the active one.
func (l Links) Pages() []Link {
	return l.Items[1 : len(l.Items)-1]
}

// MaxPage returns ceil(totalCount / pageSize), never less than 1.
func MaxPage(totalCount, pageSize int) int {
	return max(1, mathutil.CeilDiv(totalCount, pageSize))
}

// Window builds the page links for the current page. currentPage is used as
// given; a value beyond the last page is not corrected.
func Window(totalCount, pageSize, currentPage int) Links {
	maxPage := MaxPage(totalCount, pageSize)
	c := currentPage

	items := make([]Link, 0, 2*Span+3)
	items = append(items, Link{Kind: KindFirst, Page: 1, Disabled: c == 1})

	inRange := func(p int) bool { return p >= 1 && p <= maxPage }
	page := func(p int) {
		items = append(items, Link{Kind: KindPage, Page: p})
	}

	// Extra history near the last page compensates for missing forward slots.
	if inRange(c-4) && c >= maxPage {
		page(c - 4)
	}
	if inRange(c-3) && c >= maxPage-1 {
		page(c - 3)
	}
	if inRange(c - 2) {
		page(c - 2)
	}
	if inRange(c - 1) {
		page(c - 1)
	}

	items = append(items, Link{Kind: KindActive, Page: c})

	if inRange(c + 1) {
		page(c + 1)
	}
	if inRange(c + 2) {
		page(c + 2)
	}
	if inRange(c+3) && c <= 2 {
		page(c + 3)
	}
	if inRange(c+4) && c <= 1 {
		page(c + 4)
	}

	items = append(items, Link{Kind: KindLast, Page: maxPage, Disabled: c == maxPage})

	return Links{MaxPage: maxPage, Current: c, Items: items}
}

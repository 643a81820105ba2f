// Package dashboard holds the pure view logic the admin pages share:
// page arithmetic over {data, total} envelopes and the client-side filters
// applied to an already fetched page.
package dashboard

import "fmt"

const DefaultPerPage = 10

// Pager tracks a 1-based page over a server-side offset/limit list.
type Pager struct {
	Page    int
	PerPage int
}

func NewPager(page int) Pager {
	return Pager{Page: page, PerPage: DefaultPerPage}
}

func (p Pager) page() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p Pager) Limit() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

func (p Pager) Offset() int {
	return (p.page() - 1) * p.Limit()
}

// TotalPages is ceil(total / limit); 0 when there is nothing to show.
func (p Pager) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	limit := int64(p.Limit())
	return int((total + limit - 1) / limit)
}

func (p Pager) HasPrev() bool {
	return p.page() > 1
}

func (p Pager) HasNext(total int64) bool {
	return int64(p.page()*p.Limit()) < total
}

func (p Pager) Next() Pager {
	return Pager{Page: p.page() + 1, PerPage: p.PerPage}
}

func (p Pager) Prev() Pager {
	if !p.HasPrev() {
		return Pager{Page: p.page(), PerPage: p.PerPage}
	}
	return Pager{Page: p.page() - 1, PerPage: p.PerPage}
}

// Label renders "Page 1 of 3".
func (p Pager) Label(total int64) string {
	return fmt.Sprintf("Page %d of %d", p.page(), p.TotalPages(total))
}

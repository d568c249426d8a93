package orders

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed number of orders per admin listing page.
const PageSize = 10

type SortField string

const (
	SortByID       SortField = "id"
	SortByCustomer SortField = "customer"
	SortByDate     SortField = "date"
	SortByStatus   SortField = "status"
	SortByAmount   SortField = "amount"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByID, SortByCustomer, SortByDate, SortByStatus, SortByAmount:
		return true
	}
	return false
}

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

type SortSpec struct {
	Field SortField
	Dir   SortDir
}

type DateRange string

const (
	DateAll       DateRange = "all"
	DateToday     DateRange = "today"
	DateYesterday DateRange = "yesterday"
	DateLast7     DateRange = "last7days"
	DateLast30    DateRange = "last30days"
)

func (d DateRange) Valid() bool {
	switch d {
	case DateAll, DateToday, DateYesterday, DateLast7, DateLast30:
		return true
	}
	return false
}

// StatusAll is the sentinel filter value that matches every status.
const StatusAll = "all"

// Query is the full listing state: filters, sort and page.
type Query struct {
	Search string
	Status string // StatusAll or a Status value
	Date   DateRange
	Sort   SortSpec
	Page   int // 1-based
}

func DefaultQuery() Query {
	return Query{
		Status: StatusAll,
		Date:   DateAll,
		Sort:   SortSpec{Field: SortByDate, Dir: SortDesc},
		Page:   1,
	}
}

// PageView is the derived slice of orders presented to the admin table.
type PageView struct {
	Orders     []Order
	Page       int
	TotalPages int
	Total      int // matches after filtering, before pagination
}

// Derive computes the visible page from the authoritative order set and the
// listing state. Pure: same inputs, same output. now and loc fix the
// day-granularity boundaries of the date filter.
func Derive(src []Order, q Query, now time.Time, loc *time.Location) PageView {
	if loc == nil {
		loc = time.UTC
	}

	filtered := make([]Order, 0, len(src))
	for _, o := range src {
		if !matchesSearch(o, q.Search) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && string(o.Status) != q.Status {
			continue
		}
		if !inDateRange(o.CreatedAt, q.Date, now, loc) {
			continue
		}
		filtered = append(filtered, o)
	}

	sortOrders(filtered, q.Sort)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	return PageView{
		Orders:     filtered[lo:hi],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// matchesSearch: case-insensitive substring over customer, id and email,
// plain substring over phone. Any hit is a match; empty term matches all.
func matchesSearch(o Order, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(o.Customer), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(o.ID), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Email), lower) {
		return true
	}
	return strings.Contains(o.Phone, term)
}

func inDateRange(t time.Time, r DateRange, now time.Time, loc *time.Location) bool {
	switch r {
	case "", DateAll:
		return true
	}

	t = t.In(loc)
	today := midnight(now.In(loc))

	switch r {
	case DateToday:
		return !t.Before(today)
	case DateYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return !t.Before(yesterday) && t.Before(today)
	case DateLast7:
		return !t.Before(today.AddDate(0, 0, -7))
	case DateLast30:
		return !t.Before(today.AddDate(0, 0, -30))
	default:
		// Unknown range behaves as "all" rather than hiding everything.
		return true
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sortOrders sorts in place, stable. date and amount compare numerically;
// id, customer and status compare with a Russian-locale collator.
func sortOrders(items []Order, s SortSpec) {
	if !s.Field.Valid() {
		return
	}

	var cmp func(a, b Order) int
	switch s.Field {
	case SortByDate:
		cmp = func(a, b Order) int {
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			}
			return 0
		}
	case SortByAmount:
		cmp = func(a, b Order) int {
			switch {
			case a.AmountCents < b.AmountCents:
				return -1
			case a.AmountCents > b.AmountCents:
				return 1
			}
			return 0
		}
	default:
		col := collate.New(language.Russian)
		key := func(o Order) string {
			switch s.Field {
			case SortByCustomer:
				return o.Customer
			case SortByStatus:
				return string(o.Status)
			default:
				return o.ID
			}
		}
		cmp = func(a, b Order) int { return col.CompareString(key(a), key(b)) }
	}

	sign := 1
	if s.Dir == SortDesc {
		sign = -1
	}
	sort.SliceStable(items, func(i, j int) bool {
		return sign*cmp(items[i], items[j]) < 0
	})
}

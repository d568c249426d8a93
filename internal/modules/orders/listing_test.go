package orders_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/modules/orders"
)

var msk = time.FixedZone("MSK", 3*60*60)

func mkOrder(id, customer, email, phone string, status orders.Status, amountCents int64, created time.Time) orders.Order {
	return orders.Order{
		ID:            id,
		Customer:      customer,
		Email:         email,
		Phone:         phone,
		Address:       "Москва, ул. Набережная, 1",
		PaymentMethod: "card",
		Status:        status,
		AmountCents:   amountCents,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func testOrders(now time.Time) []orders.Order {
	return []orders.Order{
		mkOrder("ORD-001", "Иван Петров", "ivan@example.com", "+7 900 111-22-33", orders.StatusPaid, 45900_00, now.Add(-2*time.Hour)),
		mkOrder("ORD-002", "Anna Smirnova", "anna@example.com", "+7 900 444-55-66", orders.StatusAwaitingPayment, 28900_00, now.AddDate(0, 0, -1)),
		mkOrder("ORD-003", "Пётр Сидоров", "petr@mail.ru", "+7 911 777-88-99", orders.StatusShipping, 61900_00, now.AddDate(0, 0, -5)),
		mkOrder("ORD-004", "Мария Кузнецова", "maria@mail.ru", "+7 921 000-11-22", orders.StatusCompleted, 19900_00, now.AddDate(0, 0, -12)),
		mkOrder("ORD-005", "Олег Волков", "oleg@example.com", "+7 931 333-44-55", orders.StatusCancelled, 8900_00, now.AddDate(0, 0, -40)),
	}
}

func derive(src []orders.Order, q orders.Query, now time.Time) orders.PageView {
	return orders.Derive(src, q, now, msk)
}

func TestDerive_SearchMatchesAnyField(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 15, 0, 0, 0, msk)
	src := testOrders(now)

	cases := []struct {
		name string
		term string
		want []string
	}{
		{"empty term matches all", "", []string{"ORD-001", "ORD-002", "ORD-003", "ORD-004", "ORD-005"}},
		{"customer case-insensitive", "иван", []string{"ORD-001"}},
		{"customer latin case-insensitive", "ANNA", []string{"ORD-002"}},
		{"id case-insensitive", "ord-003", []string{"ORD-003"}},
		{"email substring", "@mail.ru", []string{"ORD-003", "ORD-004"}},
		{"phone plain substring", "777-88", []string{"ORD-003"}},
		{"no match", "нет такого", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := orders.DefaultQuery()
			q.Search = tc.term
			got := derive(src, q, now)

			ids := make([]string, 0, len(got.Orders))
			for _, o := range got.Orders {
				ids = append(ids, o.ID)
			}
			require.ElementsMatch(t, tc.want, ids)
		})
	}
}

func TestDerive_StatusFilterExactMatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 3, 12, 0, 0, 0, msk)
	src := []orders.Order{
		mkOrder("A1", "Клиент Один", "one@example.com", "+7 900 000-00-01", orders.StatusPaid, 100_00, time.Date(2024, 1, 1, 10, 0, 0, 0, msk)),
		mkOrder("A2", "Клиент Два", "two@example.com", "+7 900 000-00-02", orders.StatusCancelled, 200_00, time.Date(2024, 1, 2, 10, 0, 0, 0, msk)),
	}

	q := orders.DefaultQuery()
	q.Status = string(orders.StatusPaid)
	got := derive(src, q, now)

	require.Len(t, got.Orders, 1)
	require.Equal(t, "A1", got.Orders[0].ID)
	require.Equal(t, 1, got.Total)
}

func TestDerive_DateRanges(t *testing.T) {
	t.Parallel()

	// Fixed "now" late in the day so same-day offsets stay within the day.
	now := time.Date(2024, 6, 10, 23, 0, 0, 0, msk)
	src := testOrders(now)

	cases := []struct {
		rng  orders.DateRange
		want []string
	}{
		{orders.DateAll, []string{"ORD-001", "ORD-002", "ORD-003", "ORD-004", "ORD-005"}},
		{orders.DateToday, []string{"ORD-001"}},
		{orders.DateYesterday, []string{"ORD-002"}},
		{orders.DateLast7, []string{"ORD-001", "ORD-002", "ORD-003"}},
		{orders.DateLast30, []string{"ORD-001", "ORD-002", "ORD-003", "ORD-004"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.rng), func(t *testing.T) {
			t.Parallel()
			q := orders.DefaultQuery()
			q.Date = tc.rng
			got := derive(src, q, now)

			ids := make([]string, 0, len(got.Orders))
			for _, o := range got.Orders {
				ids = append(ids, o.ID)
			}
			require.ElementsMatch(t, tc.want, ids)
		})
	}
}

func TestDerive_TodayResultsNotBeforeMidnight(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 9, 30, 0, 0, msk)
	midnight := time.Date(2024, 6, 10, 0, 0, 0, 0, msk)

	src := []orders.Order{
		mkOrder("T1", "Сегодня Рано", "a@example.com", "1", orders.StatusPaid, 1, midnight),
		mkOrder("T2", "Вчера Поздно", "b@example.com", "2", orders.StatusPaid, 1, midnight.Add(-time.Minute)),
		mkOrder("T3", "Сегодня", "c@example.com", "3", orders.StatusPaid, 1, now.Add(-time.Hour)),
	}

	q := orders.DefaultQuery()
	q.Date = orders.DateToday
	got := derive(src, q, now)

	require.Equal(t, 2, got.Total)
	for _, o := range got.Orders {
		require.False(t, o.CreatedAt.In(msk).Before(midnight), "order %s dated before midnight", o.ID)
	}
}

func TestDerive_AmountSortDoubleReverse(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, msk)
	src := testOrders(now)

	asc := orders.DefaultQuery()
	asc.Sort = orders.SortSpec{Field: orders.SortByAmount, Dir: orders.SortAsc}
	desc := asc
	desc.Sort.Dir = orders.SortDesc

	up := derive(src, asc, now)
	down := derive(src, desc, now)

	require.Equal(t, len(up.Orders), len(down.Orders))
	n := len(up.Orders)
	for i := 0; i < n; i++ {
		require.Equal(t, up.Orders[i].ID, down.Orders[n-1-i].ID, "descending must be the exact reverse")
	}
	for i := 1; i < n; i++ {
		require.LessOrEqual(t, up.Orders[i-1].AmountCents, up.Orders[i].AmountCents)
	}
}

func TestDerive_SortByCustomerLocaleAware(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, msk)
	src := []orders.Order{
		mkOrder("C1", "Ёлкин Борис", "e@example.com", "1", orders.StatusPaid, 1, now),
		mkOrder("C2", "Абрамов Юрий", "a@example.com", "2", orders.StatusPaid, 1, now),
		mkOrder("C3", "Жуков Антон", "zh@example.com", "3", orders.StatusPaid, 1, now),
	}

	q := orders.DefaultQuery()
	q.Sort = orders.SortSpec{Field: orders.SortByCustomer, Dir: orders.SortAsc}
	got := derive(src, q, now)

	// Russian collation: А < Ё < Ж (byte order would put Ё after Я).
	require.Equal(t, []string{"C2", "C1", "C3"}, []string{got.Orders[0].ID, got.Orders[1].ID, got.Orders[2].ID})
}

func TestDerive_SortIsStable(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, msk)
	src := []orders.Order{
		mkOrder("S1", "Дубль", "a@example.com", "1", orders.StatusPaid, 100, now),
		mkOrder("S2", "Дубль", "b@example.com", "2", orders.StatusPaid, 100, now),
		mkOrder("S3", "Дубль", "c@example.com", "3", orders.StatusPaid, 100, now),
	}

	q := orders.DefaultQuery()
	q.Sort = orders.SortSpec{Field: orders.SortByAmount, Dir: orders.SortAsc}
	got := derive(src, q, now)

	require.Equal(t, []string{"S1", "S2", "S3"}, []string{got.Orders[0].ID, got.Orders[1].ID, got.Orders[2].ID})
}

func TestDerive_Pagination(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, msk)
	src := make([]orders.Order, 0, 23)
	for i := 0; i < 23; i++ {
		src = append(src, mkOrder(
			fmt.Sprintf("P-%02d", i),
			fmt.Sprintf("Клиент %02d", i),
			fmt.Sprintf("c%02d@example.com", i),
			fmt.Sprintf("+7 900 %02d", i),
			orders.StatusPaid, int64(i), now.Add(-time.Duration(i)*time.Minute),
		))
	}

	q := orders.DefaultQuery() // date desc
	got := derive(src, q, now)
	require.Equal(t, 10, len(got.Orders))
	require.Equal(t, 3, got.TotalPages)
	require.Equal(t, 23, got.Total)

	q.Page = 3
	got = derive(src, q, now)
	require.Equal(t, 3, len(got.Orders))
	require.Equal(t, "P-20", got.Orders[0].ID)

	// Page past the end clamps instead of returning nothing.
	q.Page = 99
	got = derive(src, q, now)
	require.Equal(t, 3, got.Page)
	require.Equal(t, 3, len(got.Orders))
}

func TestDerive_EmptySetHasOnePage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, msk)
	got := derive(nil, orders.DefaultQuery(), now)

	require.Equal(t, 1, got.TotalPages)
	require.Equal(t, 1, got.Page)
	require.Empty(t, got.Orders)
}

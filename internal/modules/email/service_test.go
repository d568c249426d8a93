package email_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/mailer"
	"volnasup.ru/shop/internal/modules/email"
	"volnasup.ru/shop/internal/modules/orders"
)

func TestSendOrderConfirmation(t *testing.T) {
	t.Parallel()

	mock := &mailer.Mock{}
	svc := email.NewService(mock, "no-reply@volnasup.ru", "VolnaSUP")

	o := orders.Order{
		ID:          "3f1c2d40-aaaa-bbbb-cccc-000000000001",
		Customer:    "Анна Морозова",
		Email:       "anna@example.com",
		Status:      orders.StatusAwaitingPayment,
		AmountCents: 4599000,
		CreatedAt:   time.Now(),
		Items: []orders.OrderItem{
			{Name: "Доска SUP Волна 10.6 (SUP-106)", PriceCents: 4599000, Quantity: 1},
		},
	}

	require.NoError(t, svc.SendOrderConfirmation(context.Background(), o))
	require.Len(t, mock.Sent, 1)

	sent := mock.Sent[0]
	require.Equal(t, []string{"anna@example.com"}, sent.To)
	require.Equal(t, "no-reply@volnasup.ru", sent.From)
	require.Contains(t, sent.Subject, "3F1C2D40")
	require.Contains(t, sent.TextBody, "Анна Морозова")
	require.Contains(t, sent.TextBody, "45990.00 ₽")
	require.Contains(t, sent.TextBody, "Ожидает оплаты")
	require.NotEmpty(t, sent.HTMLBody)
}

package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"volnasup.ru/shop/internal/mailer"
	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/pkg/view"
)

// Service composes transactional mail for the shop and hands it to the
// mailer.
type Service struct {
	mail     mailer.Service
	from     string
	fromName string
}

func NewService(mail mailer.Service, from, fromName string) *Service {
	return &Service{mail: mail, from: from, fromName: fromName}
}

func (s *Service) SendOrderConfirmation(ctx context.Context, o orders.Order) error {
	subject := fmt.Sprintf("VolnaSUP — заказ №%s принят", shortID(o.ID))
	total := view.MoneyFromCents(o.AmountCents, "RUB")

	var text strings.Builder
	fmt.Fprintf(&text, "Здравствуйте, %s!\n\n", o.Customer)
	fmt.Fprintf(&text, "Мы приняли ваш заказ №%s.\n\n", shortID(o.ID))
	text.WriteString("Состав заказа:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&text, "  %s — %d шт. × %s\n",
			it.Name, it.Quantity, view.MoneyFromCents(it.PriceCents, "RUB"))
	}
	fmt.Fprintf(&text, "\nИтого: %s\n", total)
	text.WriteString("\nСтатус заказа: " + o.Status.String() + "\n")
	text.WriteString("Мы сообщим, когда заказ будет передан в доставку.\n\n")
	text.WriteString("Команда VolnaSUP\n")

	var htmlBody strings.Builder
	htmlBody.WriteString(`<html><body style="font-family: sans-serif;">`)
	fmt.Fprintf(&htmlBody, "<h2>Заказ №%s принят</h2>", shortID(o.ID))
	fmt.Fprintf(&htmlBody, "<p>Здравствуйте, %s!</p>", html.EscapeString(o.Customer))
	htmlBody.WriteString("<ul>")
	for _, it := range o.Items {
		fmt.Fprintf(&htmlBody, "<li>%s — %d шт. × %s</li>",
			html.EscapeString(it.Name), it.Quantity, view.MoneyFromCents(it.PriceCents, "RUB"))
	}
	htmlBody.WriteString("</ul>")
	fmt.Fprintf(&htmlBody, "<p><strong>Итого:</strong> %s</p>", total)
	htmlBody.WriteString("<p>Команда VolnaSUP</p></body></html>")

	return s.mail.Send(ctx, mailer.Email{
		FromName: s.fromName,
		From:     s.from,
		To:       []string{o.Email},
		Subject:  subject,
		TextBody: text.String(),
		HTMLBody: htmlBody.String(),
	})
}

// shortID keeps subjects readable: the first uuid block is enough to
// identify an order in support mail.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return id
}

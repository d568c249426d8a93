package view

type OrderItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Line     string `json:"line"`
}

type OrderDetail struct {
	ID            string      `json:"id"`
	Customer      string      `json:"customer"`
	Status        string      `json:"status"`
	StatusBadge   string      `json:"statusBadge"`
	PaymentMethod string      `json:"paymentMethod"`
	Amount        string      `json:"amount"`
	CreatedAt     string      `json:"createdAt"`
	Items         []OrderItem `json:"items"`
}

package view

// View models for the admin order pages. These are the prop contracts the
// admin frontend renders from; all formatting happens server-side.

type AdminOrderListItem struct {
	ID          string `json:"id"`
	Customer    string `json:"customer"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	StatusBadge string `json:"statusBadge"`
	StatusIcon  string `json:"statusIcon"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"createdAt"`
}

// AdminOrdersPage carries the derived page plus the committed filter/sort
// state, so the filter bar and table render exactly what was applied.
type AdminOrdersPage struct {
	Items []AdminOrderListItem `json:"items"`

	Search       string `json:"search"`
	StatusFilter string `json:"statusFilter"`
	DateFilter   string `json:"dateFilter"`
	SortField    string `json:"sortField"`
	SortDir      string `json:"sortDir"`

	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`

	Statuses []string `json:"statuses"` // chooser options, workflow order
	LoadErr  string   `json:"loadError,omitempty"`
}

type AdminOrderItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Line     string `json:"line"`
}

type AdminOrderEvent struct {
	Actor string `json:"actor"`
	From  string `json:"from"`
	To    string `json:"to"`
	Note  string `json:"note,omitempty"`
	At    string `json:"at"`
}

type AdminOrderDetail struct {
	ID            string `json:"id"`
	Customer      string `json:"customer"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
	StatusBadge   string `json:"statusBadge"`
	StatusIcon    string `json:"statusIcon"`
	Amount        string `json:"amount"`
	CreatedAt     string `json:"createdAt"`

	Items  []AdminOrderItem  `json:"items"`
	Events []AdminOrderEvent `json:"events"`
}

// AdminStatusEditor mirrors the status-change modal contract: which order
// is being edited, the chooser options and the last submit error, if any.
type AdminStatusEditor struct {
	Phase    string   `json:"phase"`
	OrderID  string   `json:"orderId,omitempty"`
	Statuses []string `json:"statuses"`
	Error    string   `json:"error,omitempty"`
}

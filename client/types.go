package client

// Product mirrors the backend product entity. Time fields are kept as the
// raw strings sent by the server; the display layer is responsible for
// parsing them tolerantly.
type Product struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand,omitempty"`
	Price         float64  `json:"price"`
	Status        int      `json:"status"`
	Description   string   `json:"description"`
	Images        []string `json:"images,omitempty"`
	TotalStock    int      `json:"totalStock"`
	RealTimeStock int      `json:"realTimeStock"`
	SaleCount     int64    `json:"saleCount"`
	ViewCount     int64    `json:"viewCount"`
	CreateTime    string   `json:"createTime,omitempty"`
	UpdateTime    string   `json:"updateTime,omitempty"`
}

// Product status codes.
const (
	ProductUnlisted = 0
	ProductListed   = 1
)

// ProductStatusLabel maps a product status code to its fixed display label.
func ProductStatusLabel(status int) string {
	if status == ProductListed {
		return "listed"
	}
	return "unlisted"
}

// Stock returns the best known stock figure for the product, preferring the
// real-time value over the static total.
func (p *Product) Stock() int {
	if p.RealTimeStock > 0 {
		return p.RealTimeStock
	}
	return p.TotalStock
}

// FirstImage returns the first image URL or the empty string.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// OrderStatus is the closed set of order states used by the backend.
type OrderStatus int

const (
	OrderAwaitingPayment  OrderStatus = 1
	OrderAwaitingShipment OrderStatus = 2
	OrderShipped          OrderStatus = 3
	OrderCompleted        OrderStatus = 4
	OrderCanceled         OrderStatus = 5
)

// String returns the fixed display label of the status.
func (s OrderStatus) String() string {
	switch s {
	case OrderAwaitingPayment:
		return "awaiting payment"
	case OrderAwaitingShipment:
		return "awaiting shipment"
	case OrderShipped:
		return "shipped"
	case OrderCompleted:
		return "completed"
	case OrderCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal returns true when the order can no longer advance.
func (s OrderStatus) Terminal() bool {
	return s >= OrderCompleted
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// Order mirrors the backend order entity.
type Order struct {
	OrderID      string      `json:"orderId"`
	UserID       string      `json:"userId"`
	TotalAmount  float64     `json:"totalAmount"`
	ActualAmount float64     `json:"actualAmount"`
	Status       OrderStatus `json:"status"`
	PayMethod    string      `json:"payMethod,omitempty"`
	Receiver     string      `json:"receiver,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	CreateTime   string      `json:"createTime,omitempty"`
	PayTime      string      `json:"payTime,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
}

// CartItem is a single entry of a user's cart.
type CartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Selected    bool    `json:"selected"`
	AddTime     int64   `json:"addTime,omitempty"`
}

// Amount returns the line total of the item.
func (ci *CartItem) Amount() float64 {
	return ci.Price * float64(ci.Quantity)
}

// User status codes.
const (
	UserDisabled = 0
	UserActive   = 1
)

// UserStatusLabel maps a user status code to its fixed display label.
func UserStatusLabel(status int) string {
	if status == UserActive {
		return "active"
	}
	return "disabled"
}

// User mirrors the backend user entity.
type User struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Nickname     string `json:"nickname"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Gender       string `json:"gender,omitempty"`
	Birthday     string `json:"birthday,omitempty"`
	RegisterTime string `json:"registerTime,omitempty"`
	Status       int    `json:"status"`
}

// DisplayName returns the best human-readable name for the user.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.UserID
}

// DashboardStats is the aggregate view returned by the analysis dashboard
// and realtime dashboard endpoints.
type DashboardStats struct {
	TotalAmount float64 `json:"totalAmount"`
	OrderCount  int64   `json:"orderCount"`
	UserCount   int64   `json:"userCount"`
	AvgPrice    float64 `json:"avgPrice"`
}

// DailyStats is the per-day sales analysis record.
type DailyStats struct {
	Date         string  `json:"date,omitempty"`
	SaleCount    int64   `json:"saleCount"`
	SaleAmount   float64 `json:"saleAmount"`
	RefundCount  int64   `json:"refundCount"`
	RefundAmount float64 `json:"refundAmount"`
}

// RankingEntry is one position of a product ranking.
type RankingEntry struct {
	Rank      int
	ProductID string
}

package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Chờ xử lý",
	OrderStatusProcessing: "Đang xử lý",
	OrderStatusShipped:    "Đang giao",
	OrderStatusDelivered:  "Đã giao",
	OrderStatusCancelled:  "Đã hủy",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseOrderStatus normalises user input; unknown values fail with ErrValidation.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrValidation
	}
	return s, nil
}

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentBank PaymentMethod = "bank"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCOD:
		return "Thanh toán khi nhận hàng"
	case PaymentBank:
		return "Chuyển khoản"
	case PaymentCard:
		return "Thẻ"
	}
	return string(p)
}

type Order struct {
	ID            FlexString    `json:"id"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	Customer      Customer      `json:"customer"`
	Items         []OrderItem   `json:"items"`
	TotalAmount   OptInt        `json:"totalAmount"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// Created parses CreatedAt; servers send RFC3339 with or without fractions.
func (o *Order) Created() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, o.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type OrderItem struct {
	ID        FlexString `json:"id,omitempty"`
	ProductID FlexString `json:"productId,omitempty"`
	Name      string     `json:"name,omitempty"`
	Category  string     `json:"category,omitempty"`
	Price     OptInt     `json:"price"`
	Quantity  OptInt     `json:"quantity"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
	Image     string     `json:"image,omitempty"`
}

// Key is the product id the line refers to: id, falling back to productId.
func (it OrderItem) Key() string {
	if it.ID != "" {
		return string(it.ID)
	}
	return string(it.ProductID)
}

// Qty is the sanitised quantity; absent or negative counts as zero.
func (it OrderItem) Qty() int { return int(it.Quantity.Or(0)) }

// EnrichedOrderItem is an order line joined with the cached product. Never persisted.
type EnrichedOrderItem struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Category  string `json:"category"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Image     string `json:"image,omitempty"`
	LineTotal Money  `json:"lineTotal"`
}

// OrderDetail is the display-ready order.
type OrderDetail struct {
	Order         Order               `json:"order"`
	Items         []EnrichedOrderItem `json:"items"`
	TotalQuantity int                 `json:"totalQuantity"`
	Total         Money               `json:"total"`
}

type DashboardStats struct {
	TotalOrders      int   `json:"totalOrders"`
	TodayOrders      int   `json:"todayOrders"`
	TotalRevenue     Money `json:"totalRevenue"`
	TodayRevenue     Money `json:"todayRevenue"`
	PendingOrders    int   `json:"pendingOrders"`
	TotalProducts    int   `json:"totalProducts"`
	LowStockProducts int   `json:"lowStockProducts"`
}

package domain

import "time"

// OrderStatus representa o status de um pedido na tabela de pedidos
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderEvent representa um evento de pedido imutável vindo da loja
type OrderEvent struct {
	OrderID    string
	CustomerID string
	CreatedAt  time.Time
	Total      float64
	Status     OrderStatus
}

// Qualifies indica se o pedido entra no cálculo de RFM
func (o OrderEvent) Qualifies() bool {
	return o.Status != OrderStatusCancelled
}

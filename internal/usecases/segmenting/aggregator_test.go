package segmenting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-rfm-api/internal/domain"
)

func TestBuildCustomerAggregates(t *testing.T) {
	runDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		events   []*domain.OrderEvent
		validate func(t *testing.T, result []*domain.CustomerAggregate)
	}{
		{
			name: "Deve somar valor e contar pedidos por cliente, mantendo a data do último pedido",
			events: []*domain.OrderEvent{
				{OrderID: "O1", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -30), Total: 100.0, Status: domain.OrderStatusCompleted},
				{OrderID: "O2", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -10), Total: 50.5, Status: domain.OrderStatusShipped},
				{OrderID: "O3", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -20), Total: 25.0, Status: domain.OrderStatusPending},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 1)
				assert.Equal(t, "C001", result[0].CustomerID)
				assert.Equal(t, 3, result[0].FrequencyOrders)
				assert.Equal(t, 175.5, result[0].MonetaryValue)
				assert.Equal(t, runDate.AddDate(0, 0, -10), result[0].LastOrderDate)
			},
		},
		{
			name: "Pedidos cancelados não devem contar para nenhuma métrica",
			events: []*domain.OrderEvent{
				{OrderID: "O1", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -30), Total: 100.0, Status: domain.OrderStatusCompleted},
				{OrderID: "O2", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -5), Total: 999.0, Status: domain.OrderStatusCancelled},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 1)
				assert.Equal(t, 1, result[0].FrequencyOrders)
				assert.Equal(t, 100.0, result[0].MonetaryValue)
				// O pedido cancelado mais recente não pode puxar a data do último pedido
				assert.Equal(t, runDate.AddDate(0, 0, -30), result[0].LastOrderDate)
			},
		},
		{
			name: "Cliente que só tem pedidos cancelados deve ficar fora do resultado",
			events: []*domain.OrderEvent{
				{OrderID: "O1", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -30), Total: 100.0, Status: domain.OrderStatusCompleted},
				{OrderID: "O2", CustomerID: "C002", CreatedAt: runDate.AddDate(0, 0, -5), Total: 200.0, Status: domain.OrderStatusCancelled},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 1)
				assert.Equal(t, "C001", result[0].CustomerID)
			},
		},
		{
			name: "Pedidos posteriores à data de execução devem ficar fora da janela",
			events: []*domain.OrderEvent{
				{OrderID: "O1", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -1), Total: 100.0, Status: domain.OrderStatusCompleted},
				{OrderID: "O2", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, 3), Total: 500.0, Status: domain.OrderStatusCompleted},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 1)
				assert.Equal(t, 1, result[0].FrequencyOrders)
				assert.Equal(t, 100.0, result[0].MonetaryValue)
			},
		},
		{
			name: "Pedido no próprio dia da execução deve entrar na janela",
			events: []*domain.OrderEvent{
				{OrderID: "O1", CustomerID: "C001", CreatedAt: runDate.Add(15 * time.Hour), Total: 80.0, Status: domain.OrderStatusCompleted},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 1)
				assert.Equal(t, 1, result[0].FrequencyOrders)
			},
		},
		{
			name: "Resultado deve vir ordenado por cliente",
			events: []*domain.OrderEvent{
				{OrderID: "O1", CustomerID: "C003", CreatedAt: runDate.AddDate(0, 0, -1), Total: 10.0, Status: domain.OrderStatusCompleted},
				{OrderID: "O2", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -2), Total: 20.0, Status: domain.OrderStatusCompleted},
				{OrderID: "O3", CustomerID: "C002", CreatedAt: runDate.AddDate(0, 0, -3), Total: 30.0, Status: domain.OrderStatusCompleted},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 3)
				assert.Equal(t, "C001", result[0].CustomerID)
				assert.Equal(t, "C002", result[1].CustomerID)
				assert.Equal(t, "C003", result[2].CustomerID)
			},
		},
		{
			name:   "Sem eventos o resultado deve ser vazio",
			events: []*domain.OrderEvent{},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Empty(t, result)
			},
		},
		{
			name: "Eventos nulos devem ser ignorados",
			events: []*domain.OrderEvent{
				nil,
				{OrderID: "O1", CustomerID: "C001", CreatedAt: runDate.AddDate(0, 0, -1), Total: 10.0, Status: domain.OrderStatusCompleted},
			},
			validate: func(t *testing.T, result []*domain.CustomerAggregate) {
				assert.Len(t, result, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildCustomerAggregates(tt.events, runDate)
			tt.validate(t, result)
		})
	}
}

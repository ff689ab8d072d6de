// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/customer-rfm-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-rfm-api/internal/domain"
	"github.com/vfg2006/customer-rfm-api/pkg/utils"
)

const (
	ordersTable = "ecom.orders o"
)

// OrderRepository é a porta de leitura da tabela de pedidos.
// O filtro de pedidos cancelados fica no agregador; aqui só se limita
// a janela temporal até o fim da data de execução.
type OrderRepository interface {
	ListOrderEvents(runDate time.Time) ([]*domain.OrderEvent, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) ListOrderEvents(runDate time.Time) ([]*domain.OrderEvent, error) {
	cutoff := utils.TruncateToDate(runDate).AddDate(0, 0, 1)

	query, args, err := squirrel.
		Select("o.order_id, o.customer_id, o.created_at, o.total, o.status").
		From(ordersTable).
		Where(squirrel.Lt{"o.created_at": cutoff.Format(time.DateOnly)}).
		OrderBy("o.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.OrderEvent, 0)
	for rows.Next() {
		event, err := r.scanOrderEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear evento de pedido: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}

func (r *orderRepository) scanOrderEvent(rows *sql.Rows) (*domain.OrderEvent, error) {
	event := &domain.OrderEvent{}
	var status string

	err := rows.Scan(
		&event.OrderID,
		&event.CustomerID,
		&event.CreatedAt,
		&event.Total,
		&status,
	)
	if err != nil {
		return nil, err
	}

	event.Status = domain.OrderStatus(status)

	return event, nil
}

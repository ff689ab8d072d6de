package segmenting

import (
	"sort"
	"time"

	"github.com/vfg2006/customer-rfm-api/internal/domain"
	"github.com/vfg2006/customer-rfm-api/pkg/utils"
)

// BuildCustomerAggregates reduz os eventos de pedido em um agregado por cliente:
// data do último pedido, quantidade de pedidos e valor total gasto.
// Pedidos cancelados e pedidos posteriores à data de execução ficam de fora.
// Clientes sem nenhum pedido qualificado não entram no resultado.
func BuildCustomerAggregates(events []*domain.OrderEvent, runDate time.Time) []*domain.CustomerAggregate {
	cutoff := utils.TruncateToDate(runDate)

	byCustomer := make(map[string]*domain.CustomerAggregate)
	for _, event := range events {
		if event == nil || !event.Qualifies() {
			continue
		}
		if utils.TruncateToDate(event.CreatedAt).After(cutoff) {
			continue
		}

		aggregate, ok := byCustomer[event.CustomerID]
		if !ok {
			aggregate = &domain.CustomerAggregate{CustomerID: event.CustomerID}
			byCustomer[event.CustomerID] = aggregate
		}

		aggregate.FrequencyOrders++
		aggregate.MonetaryValue += event.Total
		if event.CreatedAt.After(aggregate.LastOrderDate) {
			aggregate.LastOrderDate = event.CreatedAt
		}
	}

	aggregates := make([]*domain.CustomerAggregate, 0, len(byCustomer))
	for _, aggregate := range byCustomer {
		aggregates = append(aggregates, aggregate)
	}

	// Ordenação estável por cliente para que execuções repetidas
	// produzam exatamente o mesmo resultado
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].CustomerID < aggregates[j].CustomerID
	})

	return aggregates
}

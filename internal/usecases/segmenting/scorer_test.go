package segmenting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/customer-rfm-api/internal/domain"
)

// buildAggregates cria n clientes com recência, frequência e valor
// estritamente crescentes: o cliente i é melhor que o i-1 nas três dimensões
func buildAggregates(runDate time.Time, n int) []*domain.CustomerAggregate {
	aggregates := make([]*domain.CustomerAggregate, 0, n)
	for i := 1; i <= n; i++ {
		aggregates = append(aggregates, &domain.CustomerAggregate{
			CustomerID:      fmt.Sprintf("C%03d", i),
			LastOrderDate:   runDate.AddDate(0, 0, -(n + 1 - i)),
			FrequencyOrders: i,
			MonetaryValue:   float64(100 * i),
		})
	}
	return aggregates
}

func recordsByCustomer(records []*domain.RfmRecord) map[string]*domain.RfmRecord {
	byCustomer := make(map[string]*domain.RfmRecord, len(records))
	for _, record := range records {
		byCustomer[record.CustomerID] = record
	}
	return byCustomer
}

func TestScoreAggregates(t *testing.T) {
	runDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Com população divisível por 5 cada quintil deve ter o mesmo tamanho", func(t *testing.T) {
		records := ScoreAggregates(runDate, buildAggregates(runDate, 10))
		require.Len(t, records, 10)

		binCounts := make(map[int]int)
		for _, record := range records {
			binCounts[record.FScore]++
		}

		for bin := 1; bin <= 5; bin++ {
			assert.Equal(t, 2, binCounts[bin], "quintil %d deveria ter 2 clientes", bin)
		}
	})

	t.Run("Com resto da divisão os primeiros quintis devem ficar maiores", func(t *testing.T) {
		records := ScoreAggregates(runDate, buildAggregates(runDate, 7))
		require.Len(t, records, 7)

		binCounts := make(map[int]int)
		for _, record := range records {
			binCounts[record.MScore]++
		}

		// 7 = 2 + 2 + 1 + 1 + 1
		assert.Equal(t, 2, binCounts[1])
		assert.Equal(t, 2, binCounts[2])
		assert.Equal(t, 1, binCounts[3])
		assert.Equal(t, 1, binCounts[4])
		assert.Equal(t, 1, binCounts[5])
	})

	t.Run("Pontuações devem ficar entre 1 e 5 e a composta deve ser a soma", func(t *testing.T) {
		records := ScoreAggregates(runDate, buildAggregates(runDate, 13))

		for _, record := range records {
			assert.GreaterOrEqual(t, record.RScore, 1)
			assert.LessOrEqual(t, record.RScore, 5)
			assert.GreaterOrEqual(t, record.FScore, 1)
			assert.LessOrEqual(t, record.FScore, 5)
			assert.GreaterOrEqual(t, record.MScore, 1)
			assert.LessOrEqual(t, record.MScore, 5)
			assert.Equal(t, record.RScore+record.FScore+record.MScore, record.RfmScore)
		}
	})

	t.Run("Cliente mais recente deve receber a maior pontuação de recência", func(t *testing.T) {
		records := recordsByCustomer(ScoreAggregates(runDate, buildAggregates(runDate, 10)))

		best := records["C010"]
		require.NotNil(t, best)
		assert.Equal(t, 5, best.RScore)
		assert.Equal(t, 1, best.RecencyDays)

		worst := records["C001"]
		require.NotNil(t, worst)
		assert.Equal(t, 1, worst.RScore)
		assert.Equal(t, 10, worst.RecencyDays)
	})

	t.Run("Cliente melhor em tudo deve virar Champions em Loyal Customers", func(t *testing.T) {
		records := recordsByCustomer(ScoreAggregates(runDate, buildAggregates(runDate, 10)))

		best := records["C010"]
		require.NotNil(t, best)
		assert.Equal(t, 15, best.RfmScore)
		assert.Equal(t, SegmentLoyalCustomers, best.RfmSegment)
		assert.Equal(t, CommentChampions, best.Comments)

		worst := records["C001"]
		require.NotNil(t, worst)
		assert.Equal(t, 3, worst.RfmScore)
		assert.Equal(t, SegmentHibernating, worst.RfmSegment)
		assert.Equal(t, CommentHibernating, worst.Comments)
	})

	t.Run("Com menos de 5 clientes cada um deve cair em um quintil distinto", func(t *testing.T) {
		records := recordsByCustomer(ScoreAggregates(runDate, buildAggregates(runDate, 3)))
		require.Len(t, records, 3)

		assert.Equal(t, 1, records["C001"].FScore)
		assert.Equal(t, 2, records["C002"].FScore)
		assert.Equal(t, 3, records["C003"].FScore)
	})

	t.Run("Empates devem ser desfeitos pelo identificador do cliente", func(t *testing.T) {
		aggregates := []*domain.CustomerAggregate{}
		for _, id := range []string{"C-E", "C-A", "C-C", "C-B", "C-D"} {
			aggregates = append(aggregates, &domain.CustomerAggregate{
				CustomerID:      id,
				LastOrderDate:   runDate.AddDate(0, 0, -7),
				FrequencyOrders: 2,
				MonetaryValue:   50.0,
			})
		}

		records := recordsByCustomer(ScoreAggregates(runDate, aggregates))

		assert.Equal(t, 1, records["C-A"].FScore)
		assert.Equal(t, 2, records["C-B"].FScore)
		assert.Equal(t, 3, records["C-C"].FScore)
		assert.Equal(t, 4, records["C-D"].FScore)
		assert.Equal(t, 5, records["C-E"].FScore)
	})

	t.Run("Duas execuções com a mesma entrada devem produzir o mesmo resultado", func(t *testing.T) {
		aggregates := buildAggregates(runDate, 17)

		first := ScoreAggregates(runDate, aggregates)
		second := ScoreAggregates(runDate, aggregates)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i], second[i])
		}
	})

	t.Run("Registros devem carregar a data de execução truncada e a proveniência", func(t *testing.T) {
		records := ScoreAggregates(runDate.Add(10*time.Hour), buildAggregates(runDate, 5))

		for _, record := range records {
			assert.Equal(t, runDate, record.RunDate)
			assert.Equal(t, domain.RfmProvenanceSource, record.Logs.Source)
		}
	})
}

package segmenting

import (
	"sort"
	"time"

	"github.com/vfg2006/customer-rfm-api/internal/domain"
	"github.com/vfg2006/customer-rfm-api/pkg/utils"
)

const quantileBins = 5

// ScoreAggregates converte os agregados de uma execução em registros de RFM:
// pontuações 1..5 por quintil para recência, frequência e valor gasto,
// pontuação composta e rótulos de segmento.
//
// A semântica dos quintis é a de NTILE(5): ordena-se pelo critério, a
// população é dividida em 5 grupos de tamanho o mais igual possível (o resto
// vai para os primeiros grupos) e o índice do grupo é a pontuação. Empates
// são desfeitos pelo customer_id para que o resultado seja reprodutível.
func ScoreAggregates(runDate time.Time, aggregates []*domain.CustomerAggregate) []*domain.RfmRecord {
	recencyDays := make(map[string]int, len(aggregates))
	for _, aggregate := range aggregates {
		recencyDays[aggregate.CustomerID] = utils.DaysBetween(aggregate.LastOrderDate, runDate)
	}

	// NTILE(5) OVER (ORDER BY recency_days DESC): o cliente mais recente
	// cai no último grupo e por isso recebe a maior pontuação
	rScores := ntileScores(aggregates, func(a, b *domain.CustomerAggregate) bool {
		return recencyDays[a.CustomerID] > recencyDays[b.CustomerID]
	})
	fScores := ntileScores(aggregates, func(a, b *domain.CustomerAggregate) bool {
		return a.FrequencyOrders < b.FrequencyOrders
	})
	mScores := ntileScores(aggregates, func(a, b *domain.CustomerAggregate) bool {
		return a.MonetaryValue < b.MonetaryValue
	})

	records := make([]*domain.RfmRecord, 0, len(aggregates))
	for _, aggregate := range aggregates {
		rScore := rScores[aggregate.CustomerID]
		fScore := fScores[aggregate.CustomerID]
		mScore := mScores[aggregate.CustomerID]
		rfmScore := rScore + fScore + mScore

		records = append(records, &domain.RfmRecord{
			RunDate:         utils.TruncateToDate(runDate),
			CustomerID:      aggregate.CustomerID,
			RecencyDays:     recencyDays[aggregate.CustomerID],
			FrequencyOrders: aggregate.FrequencyOrders,
			MonetaryValue:   aggregate.MonetaryValue,
			RScore:          rScore,
			FScore:          fScore,
			MScore:          mScore,
			RfmScore:        rfmScore,
			RfmSegment:      SegmentForScore(rfmScore),
			Comments:        CommentForScores(rScore, fScore, mScore),
			Logs:            domain.RfmProvenance{Source: domain.RfmProvenanceSource},
		})
	}

	return records
}

// ntileScores atribui a cada cliente o índice (1..5) do seu grupo na
// ordenação definida por less, com desempate pelo customer_id
func ntileScores(aggregates []*domain.CustomerAggregate, less func(a, b *domain.CustomerAggregate) bool) map[string]int {
	ordered := make([]*domain.CustomerAggregate, len(aggregates))
	copy(ordered, aggregates)

	sort.SliceStable(ordered, func(i, j int) bool {
		if less(ordered[i], ordered[j]) {
			return true
		}
		if less(ordered[j], ordered[i]) {
			return false
		}
		return ordered[i].CustomerID < ordered[j].CustomerID
	})

	scores := make(map[string]int, len(ordered))

	total := len(ordered)
	baseSize := total / quantileBins
	remainder := total % quantileBins

	position := 0
	for bin := 1; bin <= quantileBins; bin++ {
		size := baseSize
		if bin <= remainder {
			size++
		}
		for i := 0; i < size && position < total; i++ {
			scores[ordered[position].CustomerID] = bin
			position++
		}
	}

	return scores
}

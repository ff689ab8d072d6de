package segmenting

// Rótulos de segmento derivados da faixa do rfm_score
const (
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentPromisingCustomers = "Promising Customers"
	SegmentAtRisk             = "At Risk"
	SegmentHibernating        = "Hibernating"
	SegmentOthers             = "Others"
)

// Rótulos finos derivados do trio (r_score, f_score, m_score)
const (
	CommentChampions          = "Champions"
	CommentLoyalHighSpenders  = "Loyal High Spenders"
	CommentLoyalBudget        = "Loyal Budget Spenders"
	CommentBigSpenders        = "Big Spenders"
	CommentNewHighValue       = "New High Value Customers"
	CommentNewCustomers       = "New Customers"
	CommentPotentialLoyalists = "Potential Loyalists"
	CommentPromising          = "Promising Customers"
	CommentLoyalAtRisk        = "Loyal At Risk"
	CommentBigSpendersAtRisk  = "Big Spenders At Risk"
	CommentAboutToChurn       = "About to Churn"
	CommentHibernating        = "Hibernating"
	CommentOneTimeBuyers      = "One-time Buyers"
	CommentBargainHunters     = "Bargain Hunters"
	CommentLowValue           = "Low Value Customers"
	CommentOthers             = "Others"
)

type segmentRule struct {
	MinScore int
	Segment  string
}

// Faixas do rfm_score, avaliadas de cima para baixo; a primeira que casar vence
var segmentRules = []segmentRule{
	{MinScore: 10, Segment: SegmentLoyalCustomers},
	{MinScore: 8, Segment: SegmentPotentialLoyalists},
	{MinScore: 6, Segment: SegmentPromisingCustomers},
	{MinScore: 4, Segment: SegmentAtRisk},
	{MinScore: 3, Segment: SegmentHibernating},
}

type commentRule struct {
	Matches func(r, f, m int) bool
	Label   string
}

// Regras finas sobre o trio de pontuações, avaliadas em ordem de prioridade.
// A ordem faz parte do contrato: várias condições se sobrepõem e é a posição
// na lista que decide o rótulo. Não reordenar.
var commentRules = []commentRule{
	{Matches: func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }, Label: CommentChampions},
	{Matches: func(r, f, m int) bool { return f >= 4 && m >= 4 && r < 4 }, Label: CommentLoyalHighSpenders},
	{Matches: func(r, f, m int) bool { return f >= 4 && m <= 3 }, Label: CommentLoyalBudget},
	{Matches: func(r, f, m int) bool { return m >= 4 && f <= 3 && r >= 3 }, Label: CommentBigSpenders},
	{Matches: func(r, f, m int) bool { return r == 5 && f <= 2 && m >= 4 }, Label: CommentNewHighValue},
	{Matches: func(r, f, m int) bool { return r == 5 && f <= 2 && m <= 2 }, Label: CommentNewCustomers},
	{Matches: func(r, f, m int) bool { return r >= 4 && f == 3 && m == 3 }, Label: CommentPotentialLoyalists},
	{Matches: func(r, f, m int) bool { return r == 4 && f == 2 && m == 2 }, Label: CommentPromising},
	{Matches: func(r, f, m int) bool { return r <= 2 && f >= 4 }, Label: CommentLoyalAtRisk},
	{Matches: func(r, f, m int) bool { return r <= 2 && m >= 4 }, Label: CommentBigSpendersAtRisk},
	{Matches: func(r, f, m int) bool { return r == 2 && f <= 2 && m <= 2 }, Label: CommentAboutToChurn},
	{Matches: func(r, f, m int) bool { return r == 1 && f <= 2 && m <= 2 }, Label: CommentHibernating},
	{Matches: func(r, f, m int) bool { return f == 1 && m <= 2 }, Label: CommentOneTimeBuyers},
	{Matches: func(r, f, m int) bool { return f >= 3 && m == 1 }, Label: CommentBargainHunters},
	{Matches: func(r, f, m int) bool { return r <= 3 && f <= 2 && m <= 2 }, Label: CommentLowValue},
}

// SegmentForScore retorna o segmento para a pontuação composta (3..15)
func SegmentForScore(rfmScore int) string {
	for _, rule := range segmentRules {
		if rfmScore >= rule.MinScore {
			return rule.Segment
		}
	}
	return SegmentOthers
}

// CommentForScores retorna o rótulo fino para o trio de pontuações
func CommentForScores(rScore, fScore, mScore int) string {
	for _, rule := range commentRules {
		if rule.Matches(rScore, fScore, mScore) {
			return rule.Label
		}
	}
	return CommentOthers
}

package domain

import "time"

// RfmProvenanceSource identifica a origem dos registros gravados pelo pipeline diário
const RfmProvenanceSource = "daily_rfm_pipeline"

// CustomerAggregate é o agregado por cliente calculado em cada execução.
// Existe apenas durante a execução do pipeline; nunca é persistido.
type CustomerAggregate struct {
	CustomerID      string
	LastOrderDate   time.Time
	FrequencyOrders int
	MonetaryValue   float64
}

// RfmProvenance é gravada na coluna logs do snapshot
type RfmProvenance struct {
	Source string `json:"source"`
}

// RfmRecord é uma linha do snapshot diário de RFM.
// A chave lógica é (RunDate, CustomerID): reprocessar a mesma data
// atualiza a linha existente em vez de criar duplicata.
type RfmRecord struct {
	RunDate         time.Time     `json:"run_date"`
	CustomerID      string        `json:"customer_id"`
	RecencyDays     int           `json:"recency_days"`
	FrequencyOrders int           `json:"frequency_orders"`
	MonetaryValue   float64       `json:"monetary_value"`
	RScore          int           `json:"r_score"`
	FScore          int           `json:"f_score"`
	MScore          int           `json:"m_score"`
	RfmScore        int           `json:"rfm_score"`
	RfmSegment      string        `json:"rfm_segment"`
	Comments        string        `json:"comments"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Logs            RfmProvenance `json:"logs"`
}

// RfmSnapshotResponse é a resposta da consulta de snapshot por data
type RfmSnapshotResponse struct {
	RunDate time.Time    `json:"run_date"`
	Records []*RfmRecord `json:"records"`
	Total   int          `json:"total"`
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/customer-rfm-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-rfm-api/internal/domain"
)

const (
	customerRfmTable = "ecom.customer_rfm_daily cr"

	// Limite de linhas por statement para não estourar o número máximo
	// de placeholders do Postgres; todos os chunks rodam na mesma transação
	upsertChunkSize = 500
)

// CustomerRfmRepository é a porta de escrita e leitura do snapshot diário.
// SaveOrUpdateBatch é tudo-ou-nada: insere linhas novas e sobrescreve as
// existentes para a mesma chave (run_date, customer_id), preservando o
// created_at original e renovando o updated_at.
type CustomerRfmRepository interface {
	SaveOrUpdateBatch(records []*domain.RfmRecord) error
	GetByRunDate(runDate time.Time) ([]*domain.RfmRecord, error)
	CountByRunDate(runDate time.Time) (int, error)
}

type customerRfmRepository struct {
	conn *postgres.Connection
}

func NewCustomerRfmRepository(conn *postgres.Connection) CustomerRfmRepository {
	return &customerRfmRepository{
		conn: conn,
	}
}

func (r *customerRfmRepository) SaveOrUpdateBatch(records []*domain.RfmRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for start := 0; start < len(records); start += upsertChunkSize {
			end := start + upsertChunkSize
			if end > len(records) {
				end = len(records)
			}

			if err := r.upsertChunk(tx, records[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *customerRfmRepository) upsertChunk(tx *sql.Tx, records []*domain.RfmRecord) error {
	query := squirrel.StatementBuilder.
		Insert("ecom.customer_rfm_daily").
		Columns(
			"run_date",
			"customer_id",
			"recency_days",
			"frequency_orders",
			"monetary_value",
			"r_score",
			"f_score",
			"m_score",
			"rfm_score",
			"rfm_segment",
			"comments",
			"logs",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		logsJSON, err := json.Marshal(record.Logs)
		if err != nil {
			return fmt.Errorf("erro ao serializar a proveniência para JSON: %w", err)
		}

		query = query.Values(
			record.RunDate.Format(time.DateOnly),
			record.CustomerID,
			record.RecencyDays,
			record.FrequencyOrders,
			record.MonetaryValue,
			record.RScore,
			record.FScore,
			record.MScore,
			record.RfmScore,
			record.RfmSegment,
			record.Comments,
			logsJSON,
		)
	}

	// Comportamento de conflito (upsert): sobrescreve as colunas calculadas,
	// mantém o created_at original e renova o updated_at
	query = query.Suffix(`
		ON CONFLICT (run_date, customer_id) DO UPDATE SET
			recency_days = EXCLUDED.recency_days,
			frequency_orders = EXCLUDED.frequency_orders,
			monetary_value = EXCLUDED.monetary_value,
			r_score = EXCLUDED.r_score,
			f_score = EXCLUDED.f_score,
			m_score = EXCLUDED.m_score,
			rfm_score = EXCLUDED.rfm_score,
			rfm_segment = EXCLUDED.rfm_segment,
			comments = EXCLUDED.comments,
			logs = EXCLUDED.logs,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = tx.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *customerRfmRepository) GetByRunDate(runDate time.Time) ([]*domain.RfmRecord, error) {
	query, args, err := squirrel.
		Select(
			"cr.run_date",
			"cr.customer_id",
			"cr.recency_days",
			"cr.frequency_orders",
			"cr.monetary_value",
			"cr.r_score",
			"cr.f_score",
			"cr.m_score",
			"cr.rfm_score",
			"cr.rfm_segment",
			"cr.comments",
			"cr.logs",
			"cr.created_at",
			"cr.updated_at",
		).
		From(customerRfmTable).
		Where(squirrel.Eq{"cr.run_date": runDate.Format(time.DateOnly)}).
		OrderBy("cr.customer_id ASC").
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

	records := make([]*domain.RfmRecord, 0)
	for rows.Next() {
		record, err := r.scanRfmRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de RFM: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *customerRfmRepository) CountByRunDate(runDate time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(customerRfmTable).
		Where(squirrel.Eq{"cr.run_date": runDate.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar registros do snapshot: %w", err)
	}

	return count, nil
}

func (r *customerRfmRepository) scanRfmRecord(rows *sql.Rows) (*domain.RfmRecord, error) {
	record := &domain.RfmRecord{}
	var logsJSON []byte

	err := rows.Scan(
		&record.RunDate,
		&record.CustomerID,
		&record.RecencyDays,
		&record.FrequencyOrders,
		&record.MonetaryValue,
		&record.RScore,
		&record.FScore,
		&record.MScore,
		&record.RfmScore,
		&record.RfmSegment,
		&record.Comments,
		&logsJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if logsJSON != nil {
		if err := json.Unmarshal(logsJSON, &record.Logs); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de logs: %w", err)
		}
	}

	return record, nil
}

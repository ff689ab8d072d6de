package segmenting

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-rfm-api/infrastructure/repository"
	"github.com/vfg2006/customer-rfm-api/internal/domain"
	"github.com/vfg2006/customer-rfm-api/pkg/utils"
)

// Etapas do pipeline, usadas no contexto dos erros e dos logs
const (
	StageSource      = "source"
	StageAggregation = "aggregation"
	StagePersistence = "persistence"
)

// Segmenter é a interface do pipeline diário de segmentação RFM
type Segmenter interface {
	// Run executa o pipeline completo para uma data e retorna a quantidade
	// de registros gravados no snapshot
	Run(runDate time.Time) (int, error)

	// Snapshot retorna o snapshot persistido de uma data
	Snapshot(runDate time.Time) (*domain.RfmSnapshotResponse, error)
}

type Service struct {
	orderRepo repository.OrderRepository
	rfmRepo   repository.CustomerRfmRepository
}

func NewService(
	orderRepo repository.OrderRepository,
	rfmRepo repository.CustomerRfmRepository,
) *Service {
	return &Service{
		orderRepo: orderRepo,
		rfmRepo:   rfmRepo,
	}
}

// Run executa as três etapas em sequência: agregação dos pedidos, pontuação
// por quintis e gravação do snapshot. Qualquer erro aborta a execução sem
// deixar escrita parcial visível; agregação vazia é tratada como falha de
// disponibilidade de dados, não como resultado válido.
func (s *Service) Run(runDate time.Time) (int, error) {
	runDate = utils.TruncateToDate(runDate)
	logger := logrus.WithField("run_date", runDate.Format(time.DateOnly))

	events, err := s.orderRepo.ListOrderEvents(runDate)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar eventos de pedido para a segmentação RFM")
		return 0, NewPipelineError(ErrSourceUnavailable, StageSource, runDate, err.Error())
	}

	aggregates := BuildCustomerAggregates(events, runDate)
	if len(aggregates) == 0 {
		logger.Warn("Nenhum cliente com pedido qualificado; abortando a execução sem gravar")
		return 0, NewPipelineError(ErrEmptyResult, StageAggregation, runDate, "")
	}

	logger.WithFields(logrus.Fields{
		"order_events": len(events),
		"customers":    len(aggregates),
	}).Info("Agregados por cliente calculados")

	records := ScoreAggregates(runDate, aggregates)

	if err := s.rfmRepo.SaveOrUpdateBatch(records); err != nil {
		logger.WithError(err).Error("Erro ao gravar o snapshot de RFM; transação revertida")
		return 0, NewPipelineError(ErrWriteFailed, StagePersistence, runDate, err.Error())
	}

	// Leitura de confirmação: a contagem persistida precisa bater com o lote
	persisted, err := s.rfmRepo.CountByRunDate(runDate)
	if err != nil {
		logger.WithError(err).Warn("Não foi possível confirmar a contagem do snapshot")
	} else if persisted != len(records) {
		logger.WithFields(logrus.Fields{
			"expected":  len(records),
			"persisted": persisted,
		}).Warn("Contagem do snapshot diverge do lote gravado")
	}

	logger.WithField("records", len(records)).Info("Snapshot de RFM gravado com sucesso")

	return len(records), nil
}

// Snapshot lê de volta o snapshot persistido de uma data
func (s *Service) Snapshot(runDate time.Time) (*domain.RfmSnapshotResponse, error) {
	runDate = utils.TruncateToDate(runDate)

	records, err := s.rfmRepo.GetByRunDate(runDate)
	if err != nil {
		return nil, err
	}

	return &domain.RfmSnapshotResponse{
		RunDate: runDate,
		Records: records,
		Total:   len(records),
	}, nil
}

package handler

import (
	"errors"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-rfm-api/internal/scheduler"
	"github.com/vfg2006/customer-rfm-api/internal/usecases/segmenting"
	"github.com/vfg2006/customer-rfm-api/pkg/apiErrors"
	"github.com/vfg2006/customer-rfm-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RfmRunner expõe as operações do agendador necessárias para a execução
// manual do pipeline
type RfmRunner interface {
	RunForDate(runDate time.Time) (int, error)
	GetStatus() map[string]any
}

// RunRfmPipeline executa o pipeline de RFM de forma síncrona para a data
// informada no parâmetro "date" (YYYY-MM-DD). Sem o parâmetro, usa a data
// corrente. Reprocessar uma data já gravada apenas atualiza o snapshot.
func RunRfmPipeline(runner RfmRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunRfmPipeline")

		runDate := time.Now()

		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := utils.ParseDate(dateStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Formato esperado: YYYY-MM-DD", nil)
				return
			}
			runDate = *parsed
		}

		count, err := runner.RunForDate(runDate)
		if err != nil {
			writePipelineError(w, err)
			return
		}

		response := map[string]any{
			"message":  "Pipeline de RFM executado com sucesso",
			"run_date": utils.TruncateToDate(runDate).Format(time.DateOnly),
			"records":  count,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetRfmStatus retorna o status do agendador e da última execução
func GetRfmStatus(runner RfmRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRfmStatus")

		json.NewEncoder(w).Encode(runner.GetStatus())
	}
}

// GetRfmSnapshot retorna o snapshot de segmentação persistido para a data
// informada no parâmetro "date" (YYYY-MM-DD). Sem o parâmetro, usa a data
// corrente.
func GetRfmSnapshot(segmenter segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRfmSnapshot")

		snapshotDate := time.Now()

		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := utils.ParseDate(dateStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Formato esperado: YYYY-MM-DD", nil)
				return
			}
			snapshotDate = *parsed
		}

		snapshot, err := segmenter.Snapshot(snapshotDate)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar o snapshot de RFM")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar o snapshot de segmentação", nil)
			return
		}

		json.NewEncoder(w).Encode(snapshot)
	}
}

// writePipelineError traduz os erros do pipeline para a resposta da API.
// A mensagem é genérica de propósito: o detalhe da falha fica nos logs.
func writePipelineError(w http.ResponseWriter, err error) {
	const failureMessage = "Pipeline de RFM falhou. Consulte os logs."

	switch {
	case errors.Is(err, scheduler.ErrSyncAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrPipelineBusy, "Já existe uma execução do pipeline em andamento", nil)
	case errors.Is(err, segmenting.ErrEmptyResult):
		apiErrors.WriteError(w, apiErrors.ErrPipelineEmptyResult, failureMessage, nil)
	case errors.Is(err, segmenting.ErrSourceUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrPipelineSource, failureMessage, nil)
	case errors.Is(err, segmenting.ErrWriteFailed):
		apiErrors.WriteError(w, apiErrors.ErrPipelineWrite, failureMessage, nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, failureMessage, nil)
	}
}

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-rfm-api/internal/config"
	"github.com/vfg2006/customer-rfm-api/internal/usecases/segmenting"
	"github.com/vfg2006/customer-rfm-api/pkg/utils"
)

// ErrSyncAlreadyRunning indica que já existe uma execução do pipeline em andamento
var ErrSyncAlreadyRunning = errors.New("rfm sync already running")

// RfmSyncConfig representa a configuração do agendador do pipeline de RFM
type RfmSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RfmSyncService gerencia o agendamento e a execução do pipeline diário de RFM
type RfmSyncService struct {
	scheduler *gocron.Scheduler
	config    RfmSyncConfig
	segmenter segmenting.Segmenter

	syncRunning bool
	syncMutex   sync.Mutex

	lastRunID          string
	lastRunDate        time.Time
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunRecords     int
	lastRunError       string
}

// NewRfmSyncService cria uma nova instância do agendador do pipeline de RFM
func NewRfmSyncService(segmenter segmenting.Segmenter, appConfig *config.Config) *RfmSyncService {
	syncConfig := RfmSyncConfig{
		CronSchedule: appConfig.RfmSync.CronSchedule,
		SyncEnabled:  appConfig.RfmSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do pipeline de RFM carregada")

	return &RfmSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		segmenter:   segmenter,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *RfmSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Pipeline diário de RFM desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do pipeline de RFM")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDailySegmentation()
	})
	if err != nil {
		return errors.Wrap(err, "erro ao agendar o pipeline diário de RFM")
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do pipeline de RFM")
		s.scheduler.Stop()
	}()

	return nil
}

// runDailySegmentation executa o pipeline para a data corrente
func (s *RfmSyncService) runDailySegmentation() {
	if _, err := s.RunForDate(time.Now()); err != nil {
		if errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.Info("Pipeline de RFM já em andamento, ignorando execução agendada")
			return
		}
		logrus.WithError(err).Error("Execução agendada do pipeline de RFM falhou. Consulte os logs acima.")
	}
}

// RunForDate executa o pipeline para uma data específica, garantindo uma
// única execução por vez. Re-executar a mesma data é seguro: o snapshot é
// idempotente na chave (run_date, customer_id).
func (s *RfmSyncService) RunForDate(runDate time.Time) (int, error) {
	runDate = utils.TruncateToDate(runDate)

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return 0, ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao gerar o identificador da execução")
	}

	// Os campos de status são lidos por GetStatus em outra goroutine;
	// toda escrita precisa segurar o mutex
	startTime := time.Now()
	s.syncMutex.Lock()
	s.lastRunID = runID
	s.lastRunDate = runDate
	s.lastRunStartedAt = startTime
	s.lastRunError = ""
	s.syncMutex.Unlock()

	logger := logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"run_date": runDate.Format(time.DateOnly),
	})
	logger.Info("Iniciando execução do pipeline de RFM")

	count, err := s.segmenter.Run(runDate)

	s.syncMutex.Lock()
	s.lastRunCompletedAt = time.Now()
	s.lastRunRecords = count
	if err != nil {
		s.lastRunError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logger.WithError(err).Error("Execução do pipeline de RFM falhou")
		return 0, err
	}

	logger.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"records":  count,
	}).Info("Execução do pipeline de RFM concluída")

	return count, nil
}

// GetStatus retorna o status atual do agendador
func (s *RfmSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":          s.config.SyncEnabled,
		"sync_cron":             s.config.CronSchedule,
		"sync_running":          s.syncRunning,
		"last_run_id":           s.lastRunID,
		"last_run_date":         s.lastRunDate,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_records":      s.lastRunRecords,
		"last_run_error":        s.lastRunError,
	}
}

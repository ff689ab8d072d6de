package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/customer-rfm-api/internal/config"
	"github.com/vfg2006/customer-rfm-api/internal/domain"
)

// segmenterStub implementa segmenting.Segmenter para os testes do agendador
type segmenterStub struct {
	runFunc func(runDate time.Time) (int, error)
}

func (s *segmenterStub) Run(runDate time.Time) (int, error) {
	return s.runFunc(runDate)
}

func (s *segmenterStub) Snapshot(runDate time.Time) (*domain.RfmSnapshotResponse, error) {
	return nil, nil
}

func newTestService(runFunc func(runDate time.Time) (int, error)) *RfmSyncService {
	cfg := &config.Config{
		RfmSync: config.RfmSync{
			CronSchedule: "0 5 * * *",
			Enabled:      true,
		},
	}

	return NewRfmSyncService(&segmenterStub{runFunc: runFunc}, cfg)
}

func TestRfmSyncService_RunForDate(t *testing.T) {
	runDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Execução com sucesso deve atualizar o status com a contagem", func(t *testing.T) {
		service := newTestService(func(d time.Time) (int, error) {
			assert.Equal(t, runDate, d)
			return 42, nil
		})

		count, err := service.RunForDate(runDate)
		require.NoError(t, err)
		assert.Equal(t, 42, count)

		status := service.GetStatus()
		assert.Equal(t, 42, status["last_run_records"])
		assert.Equal(t, runDate, status["last_run_date"])
		assert.Equal(t, "", status["last_run_error"])
		assert.False(t, status["sync_running"].(bool))
		assert.NotEmpty(t, status["last_run_id"])
	})

	t.Run("Hora do dia não deve vazar para a data da execução no status", func(t *testing.T) {
		service := newTestService(func(d time.Time) (int, error) {
			// O segmentador também deve receber a data já truncada
			assert.Equal(t, runDate, d)
			return 7, nil
		})

		_, err := service.RunForDate(runDate.Add(18*time.Hour + 42*time.Minute))
		require.NoError(t, err)

		status := service.GetStatus()
		assert.Equal(t, runDate, status["last_run_date"])
	})

	t.Run("Execução com falha deve registrar o erro no status", func(t *testing.T) {
		service := newTestService(func(d time.Time) (int, error) {
			return 0, errors.New("rfm aggregation returned no data")
		})

		count, err := service.RunForDate(runDate)
		require.Error(t, err)
		assert.Equal(t, 0, count)

		status := service.GetStatus()
		assert.Equal(t, "rfm aggregation returned no data", status["last_run_error"])
	})

	t.Run("Consultar o status durante uma execução deve ser seguro", func(t *testing.T) {
		service := newTestService(func(d time.Time) (int, error) {
			return 5, nil
		})

		stop := make(chan struct{})
		readerDone := make(chan struct{})

		// Leitor concorrente simulando o endpoint de status; o detector de
		// corrida acusa qualquer escrita de status feita sem o mutex
		go func() {
			defer close(readerDone)
			for {
				select {
				case <-stop:
					return
				default:
					_ = service.GetStatus()
				}
			}
		}()

		for i := 0; i < 50; i++ {
			_, err := service.RunForDate(runDate)
			require.NoError(t, err)
		}

		close(stop)
		<-readerDone

		status := service.GetStatus()
		assert.Equal(t, 5, status["last_run_records"])
	})

	t.Run("Segunda execução concorrente deve ser rejeitada", func(t *testing.T) {
		var once sync.Once
		started := make(chan struct{})
		release := make(chan struct{})

		service := newTestService(func(d time.Time) (int, error) {
			once.Do(func() { close(started) })
			<-release
			return 10, nil
		})

		firstDone := make(chan error, 1)
		go func() {
			_, err := service.RunForDate(runDate)
			firstDone <- err
		}()

		<-started

		_, err := service.RunForDate(runDate)
		assert.ErrorIs(t, err, ErrSyncAlreadyRunning)

		close(release)
		require.NoError(t, <-firstDone)

		status := service.GetStatus()
		assert.False(t, status["sync_running"].(bool))
		assert.Equal(t, 10, status["last_run_records"])

		// Depois de liberar, uma nova execução deve voltar a ser aceita
		count, err := service.RunForDate(runDate)
		require.NoError(t, err)
		assert.Equal(t, 10, count)
	})
}

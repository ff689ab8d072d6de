package segmenting

import (
	"errors"
	"fmt"
	"time"
)

// Erros específicos do pipeline de segmentação
var (
	// Erros de disponibilidade de dados
	ErrEmptyResult       = errors.New("rfm aggregation returned no data")
	ErrSourceUnavailable = errors.New("error fetching order events from database")

	// Erros de gravação
	ErrWriteFailed = errors.New("error persisting rfm snapshot")
)

// PipelineError é um erro com contexto adicional de uma execução do pipeline
type PipelineError struct {
	Err     error     // Erro base
	Stage   string    // Etapa do pipeline em que o erro ocorreu
	RunDate time.Time // Data de execução afetada
	Details string    // Detalhes adicionais (causa subjacente)
}

// Error implementa a interface error
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError cria um novo PipelineError
func NewPipelineError(err error, stage string, runDate time.Time, details string) *PipelineError {
	return &PipelineError{
		Err:     err,
		Stage:   stage,
		RunDate: runDate,
		Details: details,
	}
}

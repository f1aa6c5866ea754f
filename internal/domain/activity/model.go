package activity

import "time"

// Entry es una línea del journal de comandos enviados desde este cliente.
// No es cache de vacas: la fuente de verdad sigue siendo el contrato.
type Entry struct {
	ID string

	Kind    Kind
	Account string

	// CowRef es el identificador tal como lo envió el usuario (sin validar).
	CowRef string
	Detail string
	TxHash string

	Outcome    Outcome
	RecordedAt time.Time
}

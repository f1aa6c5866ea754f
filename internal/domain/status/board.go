package status

import (
	"sync"
	"time"
)

type Kind string

const (
	KindIdle    Kind = "idle"
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message es el único mensaje visible del canal de estado.
type Message struct {
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
	Seq       uint64    `json:"seq"`
}

// Board es el canal lateral de estado (progreso + errores).
// Cada update sobrescribe el anterior; nunca se acumula historial.
type Board struct {
	mu  sync.RWMutex
	cur Message
	now func() time.Time
}

func NewBoard() *Board {
	return &Board{
		cur: Message{Kind: KindIdle},
		now: time.Now,
	}
}

func (b *Board) Info(text string)    { b.set(KindInfo, text) }
func (b *Board) Success(text string) { b.set(KindSuccess, text) }

// Fail muestra el error tal cual (err.Error()), sin clasificar ni sanitizar.
func (b *Board) Fail(err error) {
	if err == nil {
		return
	}
	b.set(KindError, err.Error())
}

func (b *Board) Current() Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cur
}

func (b *Board) set(kind Kind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cur = Message{
		Kind:      kind,
		Text:      text,
		UpdatedAt: b.now(),
		Seq:       b.cur.Seq + 1,
	}
}

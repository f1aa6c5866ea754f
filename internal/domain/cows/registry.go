package cows

import "context"

// Reader son las consultas (view) del contrato CowOwnership que usa la sincronización.
type Reader interface {
	CowsByOwner(ctx context.Context, owner string) ([]uint64, error)
	IndexByCowNum(ctx context.Context, number uint64) (uint64, error)
	Cow(ctx context.Context, index uint64) (Cow, error)
	CowURI(ctx context.Context, number uint64) (string, error)
}

// Writer son las operaciones que mutan estado (requieren tx minada).
type Writer interface {
	RecordBirth(ctx context.Context, from string, in BirthInput) (Tx, error)
	LinkMedia(ctx context.Context, from string, in MediaLink) (Tx, error)
	TransferAdmin(ctx context.Context, from, newAdmin string) (Tx, error)
}

// Registry es el proxy completo del contrato.
type Registry interface {
	Reader
	Writer

	CountByOwner(ctx context.Context, owner string) (uint64, error)
	CowOwner(ctx context.Context, index uint64) (string, error)
	OwnerByCow(ctx context.Context, number uint64) (string, error)
	Admin(ctx context.Context) (string, error)
}

// Unbound devuelve un Registry que falla siempre con err.
// Se usa cuando el binding del contrato falló en el arranque: la app sigue levantada
// y cada operación reporta el mismo error por el canal de estado.
func Unbound(err error) Registry {
	return unboundRegistry{err: err}
}

type unboundRegistry struct {
	err error
}

func (u unboundRegistry) CowsByOwner(context.Context, string) ([]uint64, error) { return nil, u.err }
func (u unboundRegistry) IndexByCowNum(context.Context, uint64) (uint64, error) { return 0, u.err }
func (u unboundRegistry) Cow(context.Context, uint64) (Cow, error)              { return Cow{}, u.err }
func (u unboundRegistry) CowURI(context.Context, uint64) (string, error)        { return "", u.err }
func (u unboundRegistry) CountByOwner(context.Context, string) (uint64, error)  { return 0, u.err }
func (u unboundRegistry) CowOwner(context.Context, uint64) (string, error)      { return "", u.err }
func (u unboundRegistry) OwnerByCow(context.Context, uint64) (string, error)    { return "", u.err }
func (u unboundRegistry) Admin(context.Context) (string, error)                 { return "", u.err }

func (u unboundRegistry) RecordBirth(context.Context, string, BirthInput) (Tx, error) {
	return Tx{}, u.err
}

func (u unboundRegistry) LinkMedia(context.Context, string, MediaLink) (Tx, error) {
	return Tx{}, u.err
}

func (u unboundRegistry) TransferAdmin(context.Context, string, string) (Tx, error) {
	return Tx{}, u.err
}

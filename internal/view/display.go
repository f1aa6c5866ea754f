package view

import (
	"sync"

	"cow-registry/internal/domain/cows"
	"cow-registry/internal/platform/logger"
)

// Display es el contenedor de tarjetas. Replace arma la lista nueva completa
// y recién ahí la intercambia; un lector nunca ve una lista a medias.
type Display struct {
	renderer *Renderer
	log      logger.Logger

	mu    sync.RWMutex
	frags []Fragment
}

func NewDisplay(renderer *Renderer, log logger.Logger) *Display {
	if log == nil {
		log = logger.Nop()
	}
	return &Display{renderer: renderer, log: log}
}

func (d *Display) Replace(list []cows.Cow) {
	next := d.Cards(list)

	d.mu.Lock()
	d.frags = next
	d.mu.Unlock()
}

// Cards renderiza list sin tocar el contenedor. Una tarjeta que falla se omite.
func (d *Display) Cards(list []cows.Cow) []Fragment {
	out := make([]Fragment, 0, len(list))
	for _, c := range list {
		f, err := d.renderer.Card(c)
		if err != nil {
			d.log.Error("render card failed", map[string]any{"cow": c.Number, "err": err})
			continue
		}
		out = append(out, f)
	}
	return out
}

func (d *Display) Fragments() []Fragment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Fragment(nil), d.frags...)
}

func (d *Display) CowNumbers() []uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]uint64, 0, len(d.frags))
	for _, f := range d.frags {
		out = append(out, f.CowNumber)
	}
	return out
}

var _ cows.Display = (*Display)(nil)

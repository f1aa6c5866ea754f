package cows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cow-registry/internal/platform/logger"
	"cow-registry/internal/platform/metrics"
	"cow-registry/internal/ports/contentstore"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

// Display recibe la lista completa ya resuelta y la reemplaza de una vez.
type Display interface {
	Replace(cows []Cow)
}

// StatusSink es el canal lateral de estado (un solo mensaje, sobrescrito).
type StatusSink interface {
	Info(text string)
	Success(text string)
	Fail(err error)
}

// RecordError es la falla de resolución de una vaca puntual.
type RecordError struct {
	Number uint64
	Err    error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("cow %d: %v", e.Number, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// PartialSyncError indica que algunas vacas no se pudieron resolver.
// Las que sí se resolvieron quedan renderizadas.
type PartialSyncError struct {
	Failed int
	Total  int
	First  RecordError
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("%d of %d records could not be loaded: %s", e.Failed, e.Total, e.First.Error())
}

func (e *PartialSyncError) Unwrap() error { return e.First.Err }

type Result struct {
	Owner    string
	Owned    []uint64
	Cows     []Cow
	Failures []RecordError
}

type SyncOptions struct {
	// GatewayURL es el prefijo del gateway IPFS (https://<host>); vacío = sin MediaURL.
	GatewayURL  string
	Concurrency int

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// Synchronizer trae las vacas de una cuenta y reemplaza el display.
// Las corridas se serializan: dos Sync solapados nunca intercalan resultados.
type Synchronizer struct {
	mu sync.Mutex

	reader  Reader
	display Display
	status  StatusSink

	gateway     string
	concurrency int
	log         logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewSynchronizer(reader Reader, display Display, status StatusSink, opts SyncOptions) *Synchronizer {
	n := opts.Concurrency
	if n <= 0 {
		n = DefaultConcurrency
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Synchronizer{
		reader:      reader,
		display:     display,
		status:      status,
		gateway:     opts.GatewayURL,
		concurrency: n,
		log:         log,
		metrics:     opts.Metrics,
		now:         time.Now,
	}
}

// Sync devuelve *PartialSyncError (con Result válido) si solo fallaron algunas vacas.
// Si falla la consulta de ids no se toca el display.
func (s *Synchronizer) Sync(ctx context.Context, owner string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	res, err := s.run(ctx, owner)
	s.metrics.ObserveSync(s.now().Sub(start), err == nil, len(res.Failures), len(res.Cows))
	return res, err
}

func (s *Synchronizer) run(ctx context.Context, owner string) (Result, error) {
	log := s.log.With(map[string]any{"owner": owner})

	res, err := s.Collect(ctx, owner)
	if err != nil {
		s.status.Fail(errors.Unwrap(err))
		log.Error("cows by owner failed", map[string]any{"err": err})
		return res, err
	}

	s.display.Replace(res.Cows)

	if len(res.Failures) > 0 {
		perr := &PartialSyncError{
			Failed: len(res.Failures),
			Total:  len(res.Owned),
			First:  res.Failures[0],
		}
		s.status.Fail(perr)
		log.Warn("partial sync", map[string]any{"failed": perr.Failed, "total": perr.Total, "err": perr.First.Err})
		return res, perr
	}

	log.Debug("sync done", map[string]any{"rendered": len(res.Cows)})
	return res, nil
}

// Collect resuelve las vacas de owner sin tocar display ni estado.
// Solo falla si falla la consulta de ids; las fallas por vaca quedan en Result.Failures.
func (s *Synchronizer) Collect(ctx context.Context, owner string) (Result, error) {
	res := Result{Owner: owner}

	ids, err := s.reader.CowsByOwner(ctx, owner)
	if err != nil {
		return res, fmt.Errorf("cows by owner: %w", err)
	}
	res.Owned = ids
	if len(ids) == 0 {
		return res, nil
	}

	// Una tarea por vaca; los errores no cancelan a las demás.
	resolved := make([]*Cow, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, num := range ids {
		g.Go(func() error {
			c, err := s.resolve(ctx, num)
			if err != nil {
				errs[i] = err
				return nil
			}
			resolved[i] = &c
			return nil
		})
	}
	_ = g.Wait()

	// Orden final = orden de ids del contrato.
	res.Cows = make([]Cow, 0, len(ids))
	for i, num := range ids {
		if errs[i] != nil {
			res.Failures = append(res.Failures, RecordError{Number: num, Err: errs[i]})
			continue
		}
		res.Cows = append(res.Cows, *resolved[i])
	}
	return res, nil
}

func (s *Synchronizer) resolve(ctx context.Context, num uint64) (Cow, error) {
	idx, err := s.reader.IndexByCowNum(ctx, num)
	if err != nil {
		return Cow{}, fmt.Errorf("index by cow num: %w", err)
	}

	c, err := s.reader.Cow(ctx, idx)
	if err != nil {
		return Cow{}, fmt.Errorf("cow at index %d: %w", idx, err)
	}
	c.Index = idx

	hash, err := s.reader.CowURI(ctx, num)
	if err != nil {
		return Cow{}, fmt.Errorf("cow uri: %w", err)
	}
	if hash != "" {
		c.ContentHash = hash
		if s.gateway != "" {
			c.MediaURL = contentstore.GatewayURL(s.gateway, hash)
		}
	}
	return c, nil
}

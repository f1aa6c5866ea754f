package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	Kind    Kind
	Account string
	CowRef  string
	Detail  string
	TxHash  string
	Outcome Outcome
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Entry, error) {
	if !in.Kind.Valid() {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Account) == "" {
		return Entry{}, ErrInvalidInput
	}

	out := in.Outcome
	if out == "" {
		out = OutcomeOK
	}

	e := Entry{
		ID:         uuid.NewString(),
		Kind:       in.Kind,
		Account:    normalizeAccount(in.Account),
		CowRef:     strings.TrimSpace(in.CowRef),
		Detail:     strings.TrimSpace(in.Detail),
		TxHash:     strings.TrimSpace(in.TxHash),
		Outcome:    out,
		RecordedAt: s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByAccount(ctx context.Context, account string, filter ListFilter) ([]Entry, error) {
	account = normalizeAccount(account)
	if account == "" {
		return nil, ErrInvalidInput
	}
	filter.Limit = NormalizeLimit(filter.Limit)
	return s.repo.ListByAccount(ctx, account, filter)
}

// Las direcciones hex llegan con checksum mixto; el journal las guarda en minúsculas.
func normalizeAccount(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

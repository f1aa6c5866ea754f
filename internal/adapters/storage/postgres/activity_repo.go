package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cow-registry/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Create(ctx context.Context, e activity.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cow_activity (
			id, kind, account,
			cow_ref, detail, tx_hash,
			outcome, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		string(e.Kind),
		e.Account,
		e.CowRef,
		e.Detail,
		e.TxHash,
		string(e.Outcome),
		e.RecordedAt,
	)
	return err
}

func (r *ActivityRepo) ListByAccount(ctx context.Context, account string, filter activity.ListFilter) ([]activity.Entry, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, kind, account,
			cow_ref, detail, tx_hash,
			outcome, recorded_at
		FROM cow_activity
		WHERE account = $1
	`)

	args := []any{account}
	argN := 2

	if len(filter.Kinds) > 0 {
		ph := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			ph = append(ph, fmt.Sprintf("$%d", argN))
			args = append(args, string(k))
			argN++
		}
		sb.WriteString(" AND kind IN (" + strings.Join(ph, ",") + ")")
	}

	sb.WriteString(fmt.Sprintf(" ORDER BY recorded_at DESC LIMIT $%d", argN))
	args = append(args, activity.NormalizeLimit(filter.Limit))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		var kind, outcome string
		if err := rows.Scan(
			&e.ID,
			&kind,
			&e.Account,
			&e.CowRef,
			&e.Detail,
			&e.TxHash,
			&outcome,
			&e.RecordedAt,
		); err != nil {
			return nil, err
		}
		e.Kind = activity.Kind(kind)
		e.Outcome = activity.Outcome(outcome)
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ activity.Repository = (*ActivityRepo)(nil)

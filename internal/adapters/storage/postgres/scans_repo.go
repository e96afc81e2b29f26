package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pawsense/internal/domain/history"
)

type ScansRepo struct {
	db *sql.DB
}

func NewScansRepo(db *sql.DB) *ScansRepo {
	return &ScansRepo{db: db}
}

func (r *ScansRepo) Create(ctx context.Context, e history.ScanEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_scans (
			id, pet_id, owner_user_id,
			kind, media_kind, endpoint,
			label, confidence, advice,
			escalated, scanned_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		e.ID,
		e.PetID,
		e.OwnerUserID,
		string(e.Kind),
		e.MediaKind,
		e.Endpoint,
		e.Label,
		e.Confidence,
		e.Advice,
		e.Escalated,
		e.ScannedAt,
	)
	return err
}

func (r *ScansRepo) ListByPet(ctx context.Context, petID string, filter history.ListFilter) ([]history.ScanEntry, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id, owner_user_id,
			kind, media_kind, endpoint,
			label, confidence, advice,
			escalated, scanned_at
		FROM pet_scans
		WHERE pet_id = $1
	`)

	args := []any{petID}
	argN := 2

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(k))
			argN++
		}
		sb.WriteString(" AND kind IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND scanned_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND scanned_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY scanned_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.ScanEntry, 0)
	for rows.Next() {
		var e history.ScanEntry
		var kind string
		if err := rows.Scan(
			&e.ID,
			&e.PetID,
			&e.OwnerUserID,
			&kind,
			&e.MediaKind,
			&e.Endpoint,
			&e.Label,
			&e.Confidence,
			&e.Advice,
			&e.Escalated,
			&e.ScannedAt,
		); err != nil {
			return nil, err
		}
		e.Kind = history.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Package repo provides postgres access for api keys
package repo

import (
	"context"

	"codesift/internal/modkit/repokit"
	perr "codesift/internal/platform/errors"
	"codesift/internal/services/apikeys/domain"
)

// Repo defines the repository contract for api keys
type Repo interface {
	All(ctx context.Context) ([]domain.APIKey, error)
	SecretFor(ctx context.Context, pub string) (string, bool, error)
	Insert(ctx context.Context, k domain.APIKey) error
	Delete(ctx context.Context, pub string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) All(ctx context.Context) ([]domain.APIKey, error) {
	rows, err := r.q.Query(ctx, `select public_key, private_key, created_at::text from api_key order by created_at`)
	if err != nil {
		return nil, perr.FromPostgres(err, "api key list")
	}
	defer rows.Close()
	var out []domain.APIKey
	for rows.Next() {
		var k domain.APIKey
		if err := rows.Scan(&k.PublicKey, &k.PrivateKey, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *queries) SecretFor(ctx context.Context, pub string) (string, bool, error) {
	rows, err := r.q.Query(ctx, `select private_key from api_key where public_key = $1`, pub)
	if err != nil {
		return "", false, perr.FromPostgres(err, "api key lookup")
	}
	defer rows.Close()
	if !rows.Next() {
		return "", false, rows.Err()
	}
	var secret string
	if err := rows.Scan(&secret); err != nil {
		return "", false, err
	}
	return secret, true, rows.Err()
}

func (r *queries) Insert(ctx context.Context, k domain.APIKey) error {
	_, err := r.q.Exec(ctx,
		`insert into api_key (public_key, private_key, created_at) values ($1, $2, now())`,
		k.PublicKey, k.PrivateKey)
	return perr.FromPostgresWithField(err, "api key insert")
}

func (r *queries) Delete(ctx context.Context, pub string) error {
	_, err := r.q.Exec(ctx, `delete from api_key where public_key = $1`, pub)
	return perr.FromPostgres(err, "api key delete")
}

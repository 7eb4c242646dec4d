// Package repo provides postgres access for repository descriptors
package repo

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5"

	"codesift/internal/modkit/repokit"
	perr "codesift/internal/platform/errors"
	"codesift/internal/services/repos/domain"
)

// Repo defines the repository contract for repo descriptors
type Repo interface {
	All(ctx context.Context) ([]domain.RepoDescriptor, error)
	ByName(ctx context.Context, name string) (*domain.RepoDescriptor, error)
	Insert(ctx context.Context, d domain.RepoDescriptor) error
	Delete(ctx context.Context, name string) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, text string) ([]domain.RepoDescriptor, error)
	Paged(ctx context.Context, offset, limit int) ([]domain.RepoDescriptor, error)
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

const descriptorCols = `name, scm, url, username, password, source, branch`

func (r *queries) All(ctx context.Context) ([]domain.RepoDescriptor, error) {
	return r.list(ctx, `select `+descriptorCols+` from repo order by name`)
}

func (r *queries) ByName(ctx context.Context, name string) (*domain.RepoDescriptor, error) {
	row := r.q.QueryRow(ctx, `select `+descriptorCols+` from repo where name = $1`, name)
	var d domain.RepoDescriptor
	if err := row.Scan(&d.Name, &d.SCM, &d.URL, &d.Username, &d.Password, &d.Source, &d.Branch); err != nil {
		if stderrs.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, perr.FromPostgres(err, "repo by name")
	}
	return &d, nil
}

func (r *queries) Insert(ctx context.Context, d domain.RepoDescriptor) error {
	const sql = `
insert into repo (name, scm, url, username, password, source, branch)
values ($1, $2, $3, $4, $5, $6, $7)
on conflict (name) do nothing
`
	tag, err := r.q.Exec(ctx, sql, d.Name, d.SCM, d.URL, d.Username, d.Password, d.Source, d.Branch)
	if err != nil {
		return perr.FromPostgresWithField(err, "repo insert")
	}
	if tag.RowsAffected() == 0 {
		return perr.DuplicateKeyf("repository name already exists")
	}
	return nil
}

func (r *queries) Delete(ctx context.Context, name string) error {
	_, err := r.q.Exec(ctx, `delete from repo where name = $1`, name)
	return perr.FromPostgres(err, "repo delete")
}

func (r *queries) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `select count(*) from repo`).Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "repo count")
	}
	return n, nil
}

func (r *queries) Search(ctx context.Context, text string) ([]domain.RepoDescriptor, error) {
	const sql = `
select ` + descriptorCols + ` from repo
where name ilike '%' || $1 || '%' or url ilike '%' || $1 || '%'
order by name
limit 100
`
	return r.list(ctx, sql, text)
}

func (r *queries) Paged(ctx context.Context, offset, limit int) ([]domain.RepoDescriptor, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return r.list(ctx, `select `+descriptorCols+` from repo order by name offset $1 limit $2`, offset, limit)
}

func (r *queries) list(ctx context.Context, sql string, args ...any) ([]domain.RepoDescriptor, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "repo list")
	}
	defer rows.Close()
	var out []domain.RepoDescriptor
	for rows.Next() {
		var d domain.RepoDescriptor
		if err := rows.Scan(&d.Name, &d.SCM, &d.URL, &d.Username, &d.Password, &d.Source, &d.Branch); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

package credential_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"modelgate/internal/apperror"
	"modelgate/internal/domain/credential"
	"modelgate/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgCredentialRepo is the postgres-backed credential store.
type PgCredentialRepo struct {
	repo
}

func NewPgCredentialRepo(pg *postgres.Postgres) credential.Store {
	return &PgCredentialRepo{
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) Create(ctx context.Context, cred credential.Credential) error {
	values, err := json.Marshal(cred.Values)
	if err != nil {
		return fmt.Errorf("marshal credential values: %w", err)
	}
	info, err := json.Marshal(cred.Info)
	if err != nil {
		return fmt.Errorf("marshal credential info: %w", err)
	}

	query, args, err := r.builder.Insert("credentials").
		Columns("credential_name", "credential_values", "credential_info").
		Values(cred.Name, values, info).
		Suffix("ON CONFLICT (credential_name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert credential query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAlreadyExists
	}
	return nil
}

func (r *repo) GetAll(ctx context.Context) ([]credential.Credential, error) {
	query, args, err := r.selectCredentials().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select credentials query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	return parseCredentialRows(rows)
}

func (r *repo) Get(ctx context.Context, name string) (credential.Credential, error) {
	query, args, err := r.selectCredentials().
		Where(squirrel.Eq{"credential_name": name}).
		ToSql()
	if err != nil {
		return credential.Credential{}, fmt.Errorf("build select credential query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("query credential: %w", err)
	}
	defer rows.Close()

	creds, err := parseCredentialRows(rows)
	if err != nil {
		return credential.Credential{}, err
	}
	if len(creds) == 0 {
		return credential.Credential{}, apperror.ErrNotFound
	}
	return creds[0], nil
}

func (r *repo) Delete(ctx context.Context, name string) error {
	query, args, err := r.builder.Delete("credentials").
		Where(squirrel.Eq{"credential_name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete credential query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *repo) selectCredentials() squirrel.SelectBuilder {
	return r.builder.Select(
		"credential_name",
		"credential_values",
		"credential_info",
		"created_at",
		"updated_at",
	).From("credentials").OrderBy("credential_name")
}

func parseCredentialRows(rows pgx.Rows) ([]credential.Credential, error) {
	creds := make([]credential.Credential, 0)
	for rows.Next() {
		var (
			cred   credential.Credential
			values []byte
			info   []byte
		)
		if err := rows.Scan(&cred.Name, &values, &info, &cred.CreatedAt, &cred.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credential row: %w", err)
		}
		if err := json.Unmarshal(values, &cred.Values); err != nil {
			return nil, fmt.Errorf("unmarshal credential values: %w", err)
		}
		if err := json.Unmarshal(info, &cred.Info); err != nil {
			return nil, fmt.Errorf("unmarshal credential info: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate credential rows: %w", err)
	}
	return creds, nil
}

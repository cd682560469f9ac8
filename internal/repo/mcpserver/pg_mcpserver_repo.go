package mcpserver_repo

import (
	"context"
	"errors"
	"fmt"

	"modelgate/internal/apperror"
	"modelgate/internal/domain/mcpserver"
	"modelgate/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgMcpServerRepo is the postgres-backed MCP server registry.
type PgMcpServerRepo struct {
	repo
}

func NewPgMcpServerRepo(pg *postgres.Postgres) mcpserver.Registry {
	return &PgMcpServerRepo{
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) Create(ctx context.Context, server mcpserver.McpServer) error {
	query, args, err := r.builder.Insert("mcp_servers").
		Columns("server_id", "alias", "description", "url", "transport", "auth_type").
		Values(server.ServerID, server.Alias, server.Description, server.URL, server.Transport, server.AuthType).
		Suffix("ON CONFLICT (server_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert mcp server query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert mcp server: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAlreadyExists
	}
	return nil
}

func (r *repo) GetAll(ctx context.Context) ([]mcpserver.McpServer, error) {
	query, args, err := r.selectServers().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select mcp servers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mcp servers: %w", err)
	}
	defer rows.Close()

	return parseServerRows(rows)
}

func (r *repo) Get(ctx context.Context, serverID string) (mcpserver.McpServer, error) {
	query, args, err := r.selectServers().
		Where(squirrel.Eq{"server_id": serverID}).
		ToSql()
	if err != nil {
		return mcpserver.McpServer{}, fmt.Errorf("build select mcp server query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return mcpserver.McpServer{}, fmt.Errorf("query mcp server: %w", err)
	}
	defer rows.Close()

	servers, err := parseServerRows(rows)
	if err != nil {
		return mcpserver.McpServer{}, err
	}
	if len(servers) == 0 {
		return mcpserver.McpServer{}, apperror.ErrNotFound
	}
	return servers[0], nil
}

func (r *repo) Delete(ctx context.Context, serverID string) error {
	query, args, err := r.builder.Delete("mcp_servers").
		Where(squirrel.Eq{"server_id": serverID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete mcp server query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete mcp server: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *repo) selectServers() squirrel.SelectBuilder {
	return r.builder.Select(
		"server_id",
		"alias",
		"description",
		"url",
		"transport",
		"auth_type",
		"created_at",
		"updated_at",
	).From("mcp_servers").OrderBy("alias")
}

func parseServerRows(rows pgx.Rows) ([]mcpserver.McpServer, error) {
	servers := make([]mcpserver.McpServer, 0)
	for rows.Next() {
		var s mcpserver.McpServer
		if err := rows.Scan(&s.ServerID, &s.Alias, &s.Description, &s.URL, &s.Transport, &s.AuthType, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mcp server row: %w", err)
		}
		servers = append(servers, s)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate mcp server rows: %w", err)
	}
	return servers, nil
}

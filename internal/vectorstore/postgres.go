package vectorstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

type chunkRow struct {
	bun.BaseModel `bun:"table:contract_chunks,alias:cc"`
	ID            int64     `bun:"id,pk,autoincrement"`
	DocID         string    `bun:"doc_id,notnull"`
	Content       string    `bun:"content,notnull"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(1536)"`
	SourceFile    string    `bun:"source_file,notnull"`
	PageNumber    int       `bun:"page_number,notnull"`
	ChunkID       int       `bun:"chunk_id,notnull"`
}

// PostgresStore keeps the index in a Postgres table with a pgvector column.
// Requires the pgvector extension and a vector(1536) dimension matching
// text-embedding-3-small.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(dsn string, debug bool) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres store requires store.postgres_dsn to be set")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	store := &PostgresStore{db: db}
	if err := store.init(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("enabling pgvector extension: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*chunkRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("creating contract_chunks table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]chunkRow, len(entries))
	for i, e := range entries {
		rows[i] = chunkRow{
			DocID:      e.ID,
			Content:    e.Content,
			Embedding:  e.Embedding,
			SourceFile: e.SourceFilename,
			PageNumber: e.PageNumber,
			ChunkID:    e.ChunkID,
		}
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("storing %d entries: %w", len(entries), err)
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, embedding []float32, k int) ([]Result, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyIndex
	}
	if k > count {
		k = count
	}

	var rows []chunkRow
	err = s.db.NewSelect().
		Model(&rows).
		Column("content", "source_file", "page_number").
		OrderExpr("embedding <-> ?", embedding).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching by similarity: %w", err)
	}

	results := make([]Result, len(rows))
	for i, row := range rows {
		results[i] = Result{
			Content:        row.Content,
			SourceFilename: row.SourceFile,
			PageNumber:     row.PageNumber,
		}
	}
	return results, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*chunkRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Drop removes the whole table, used by index rebuilds.
func (s *PostgresStore) Drop(ctx context.Context) error {
	if _, err := s.db.NewDropTable().Model((*chunkRow)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("dropping contract_chunks table: %w", err)
	}
	return s.init(ctx)
}

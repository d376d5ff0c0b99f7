package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/fourp/smartchat/internal/domain/chat"
	"github.com/fourp/smartchat/internal/domain/seeding"
	"github.com/fourp/smartchat/internal/infra/vectorstore"
)

// Store implements the retrieval provider on Postgres with pgvector.
// Expected schema:
//
//	chat_faqs(id uuid primary key, question text, answer text, tenant text, embedding vector)
//	chat_features(id uuid primary key, name text, description text, tags text[], tenant text, embedding vector)
//	chat_estimates(id uuid primary key, category text, item text, description text, price_range text, tenant text, embedding vector)
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs the store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SearchFAQs returns the nearest FAQ answers.
func (s *Store) SearchFAQs(ctx context.Context, vector []float32, limit int) ([]chat.RetrievedItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT question, answer
		FROM chat_faqs
		ORDER BY embedding <-> $1
		LIMIT $2
	`, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []chat.RetrievedItem
	for rows.Next() {
		var question, answer string
		if err := rows.Scan(&question, &answer); err != nil {
			return nil, err
		}
		if answer == "" {
			continue
		}
		items = append(items, vectorstore.FAQItem(question, answer))
	}
	return items, rows.Err()
}

// SearchEstimates returns the nearest estimate entries.
func (s *Store) SearchEstimates(ctx context.Context, vector []float32, limit int) ([]chat.RetrievedItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category, item, description, price_range
		FROM chat_estimates
		ORDER BY embedding <-> $1
		LIMIT $2
	`, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []chat.RetrievedItem
	for rows.Next() {
		var category, item, description, priceRange string
		if err := rows.Scan(&category, &item, &description, &priceRange); err != nil {
			return nil, err
		}
		if priceRange == "" {
			continue
		}
		items = append(items, vectorstore.EstimateItem(category, item, description, priceRange))
	}
	return items, rows.Err()
}

// FeaturesByTag returns the tenant's features carrying the given tag.
func (s *Store) FeaturesByTag(ctx context.Context, tag, tenant string) ([]chat.RetrievedItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, description
		FROM chat_features
		WHERE $1 = ANY(tags) AND tenant = $2
	`, tag, tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []chat.RetrievedItem
	for rows.Next() {
		var name, description string
		if err := rows.Scan(&name, &description); err != nil {
			return nil, err
		}
		items = append(items, vectorstore.FeatureItem(name, description))
	}
	return items, rows.Err()
}

// Upsert performs an existence check then a conditional insert or update,
// mirroring the REST provider's semantics.
func (s *Store) Upsert(ctx context.Context, class string, rec seeding.SeedRecord) (bool, error) {
	table, columns, values, err := upsertTarget(class, rec)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), rec.ID,
	).Scan(&exists); err != nil {
		return false, err
	}

	if exists {
		assignments := ""
		for i, col := range columns {
			if i > 0 {
				assignments += ", "
			}
			assignments += fmt.Sprintf("%s = $%d", col, i+2)
		}
		args := append([]any{rec.ID}, values...)
		_, err := s.pool.Exec(ctx,
			fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1`, table, assignments), args...)
		return false, err
	}

	placeholders := "$1"
	for i := range columns {
		placeholders += fmt.Sprintf(", $%d", i+2)
	}
	args := append([]any{rec.ID}, values...)
	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, %s) VALUES (%s)`, table, joinColumns(columns), placeholders), args...)
	return true, err
}

func upsertTarget(class string, rec seeding.SeedRecord) (table string, columns []string, values []any, err error) {
	embedding := pgvector.NewVector(rec.Vector)
	switch class {
	case seeding.ClassFAQ:
		return "chat_faqs",
			[]string{"question", "answer", "tenant", "embedding"},
			[]any{rec.Fields["question"], rec.Fields["answer"], rec.Fields["clientId"], embedding},
			nil
	case seeding.ClassFeature:
		return "chat_features",
			[]string{"name", "description", "tags", "tenant", "embedding"},
			[]any{rec.Fields["name"], rec.Fields["description"], rec.Tags, rec.Fields["clientId"], embedding},
			nil
	case seeding.ClassEstimate:
		return "chat_estimates",
			[]string{"category", "item", "description", "price_range", "tenant", "embedding"},
			[]any{rec.Fields["category"], rec.Fields["item"], rec.Fields["description"], rec.Fields["priceRange"], rec.Fields["clientId"], embedding},
			nil
	}
	return "", nil, nil, fmt.Errorf("unknown seed class %q", class)
}

func joinColumns(columns []string) string {
	out := ""
	for i, col := range columns {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}

var (
	_ chat.Retriever   = (*Store)(nil)
	_ seeding.Upserter = (*Store)(nil)
)

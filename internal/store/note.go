package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
)

// searchSeparator joins field values in the search column so a match
// cannot span two fields.
const searchSeparator = "\x1f"

// noteTypeRepo implements NoteTypeRepo.
type noteTypeRepo struct {
	q querier
}

func (r *noteTypeRepo) Create(ctx context.Context, nt NoteType) (int64, error) {
	fields, err := json.Marshal(nt.Fields)
	if err != nil {
		return 0, fmt.Errorf("marshal fields: %w", err)
	}
	templates, err := json.Marshal(nt.Templates)
	if err != nil {
		return 0, fmt.Errorf("marshal templates: %w", err)
	}
	query, args := builder.Insert("notetypes").
		Columns("name", "fields", "templates").
		Values(nt.Name, string(fields), string(templates)).
		Query()
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create note type %q: %w", nt.Name, err)
	}
	return res.LastInsertId()
}

func (r *noteTypeRepo) Get(ctx context.Context, id int64) (*NoteType, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *noteTypeRepo) ByName(ctx context.Context, name string) (*NoteType, error) {
	return r.one(ctx, entsql.EQ("name", name))
}

func (r *noteTypeRepo) one(ctx context.Context, p *entsql.Predicate) (*NoteType, error) {
	query, args := builder.Select("id", "name", "fields", "templates").
		From(builder.Table("notetypes")).
		Where(p).
		Limit(1).
		Query()

	var (
		nt                NoteType
		fields, templates string
	)
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&nt.ID, &nt.Name, &fields, &templates)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query note type: %w", err)
	}
	if err := json.Unmarshal([]byte(fields), &nt.Fields); err != nil {
		return nil, fmt.Errorf("note type %d fields: %w", nt.ID, err)
	}
	if err := json.Unmarshal([]byte(templates), &nt.Templates); err != nil {
		return nil, fmt.Errorf("note type %d templates: %w", nt.ID, err)
	}
	return &nt, nil
}

// noteRepo implements NoteRepo.
type noteRepo struct {
	q querier
}

func (r *noteRepo) Create(ctx context.Context, n Note, fieldOrder []string) (int64, error) {
	fields, err := json.Marshal(n.Fields)
	if err != nil {
		return 0, fmt.Errorf("marshal note fields: %w", err)
	}
	values := make([]string, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		values = append(values, strings.ToLower(n.Fields[name]))
	}
	query, args := builder.Insert("notes").
		Columns("notetype_id", "fields", "tags", "search_text").
		Values(n.NoteTypeID, string(fields), strings.Join(n.Tags, " "), strings.Join(values, searchSeparator)).
		Query()
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}
	return res.LastInsertId()
}

func (r *noteRepo) Get(ctx context.Context, id int64) (*Note, error) {
	query, args := builder.Select("id", "notetype_id", "fields", "tags").
		From(builder.Table("notes")).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		n            Note
		fields, tags string
	)
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.NoteTypeID, &fields, &tags)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query note %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(fields), &n.Fields); err != nil {
		return nil, fmt.Errorf("note %d fields: %w", id, err)
	}
	n.Tags = strings.Fields(tags)
	return &n, nil
}

func (r *noteRepo) Search(ctx context.Context, text string) ([]int64, error) {
	query, args := builder.Select("id").
		From(builder.Table("notes")).
		Where(entsql.ContainsFold("search_text", strings.ToLower(text))).
		OrderBy("id").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_persona_store.go -package=mocks persona-admin/internal/storage PersonaStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned by AppendIfAbsent when the persona already has a record.
	ErrAlreadyExists = errors.New("record already exists")
)

// PersonaStore defines the append-only storage operations for persona prompts.
type PersonaStore interface {
	// Append always inserts a new record and returns its ID.
	Append(ctx context.Context, personaCode string, promptType PromptType, promptText string) (int64, error)
	// AppendIfAbsent inserts the first record for a persona in one statement.
	// Returns ErrAlreadyExists if any record exists for the code and type.
	AppendIfAbsent(ctx context.Context, personaCode string, promptType PromptType, promptText string) (int64, error)
	// Latest returns the record with the highest ID. Returns ErrNotFound if none exists.
	Latest(ctx context.Context, personaCode string, promptType PromptType) (*PersonaRecord, error)
	// LatestAll returns the latest record of every persona, ordered by persona code.
	LatestAll(ctx context.Context, promptType PromptType) ([]PersonaRecord, error)
	// History returns up to limit records newest first. limit <= 0 means no limit.
	History(ctx context.Context, personaCode string, promptType PromptType, limit int) ([]PersonaRecord, error)
	// Count returns the number of records, history included.
	Count(ctx context.Context, personaCode string, promptType PromptType) (int, error)
	// Exists reports whether at least one record exists.
	Exists(ctx context.Context, personaCode string, promptType PromptType) (bool, error)
	// PruneHistory deletes all but the keep most recent records and returns the deleted count.
	PruneHistory(ctx context.Context, personaCode string, promptType PromptType, keep int) (int, error)
	// SearchLatest returns latest records whose code or text contains keyword, case-insensitive.
	SearchLatest(ctx context.Context, keyword string, promptType PromptType) ([]PersonaRecord, error)
	// Codes returns the distinct persona codes, sorted.
	Codes(ctx context.Context, promptType PromptType) ([]string, error)
	// InRange returns records created within [start, end], newest first.
	InRange(ctx context.Context, start, end time.Time, promptType PromptType) ([]PersonaRecord, error)
}

// PersonaRepo provides methods for persona prompt operations.
// It implements the PersonaStore interface.
type PersonaRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewPersonaRepo creates a new PersonaRepo.
func NewPersonaRepo(db *sql.DB) *PersonaRepo {
	return &PersonaRepo{db: db, now: time.Now}
}

const personaColumns = "prompt_id, persona_code, prompt_type, prompt, created_at"

// Append inserts a new record. There is no uniqueness constraint on persona_code.
func (r *PersonaRepo) Append(ctx context.Context, personaCode string, promptType PromptType, promptText string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO persona_prompts (persona_code, prompt_type, prompt, created_at) VALUES (?, ?, ?, ?)",
		personaCode, string(promptType), promptText, formatTime(r.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert persona prompt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted prompt id: %w", err)
	}
	return id, nil
}

// AppendIfAbsent inserts the first record for a persona.
// The existence check and insert run as one statement, so two concurrent
// creators of the same code cannot both succeed.
func (r *PersonaRepo) AppendIfAbsent(ctx context.Context, personaCode string, promptType PromptType, promptText string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO persona_prompts (persona_code, prompt_type, prompt, created_at)
		 SELECT ?, ?, ?, ?
		 WHERE NOT EXISTS (
			SELECT 1 FROM persona_prompts WHERE persona_code = ? AND prompt_type = ?
		 )`,
		personaCode, string(promptType), promptText, formatTime(r.now()),
		personaCode, string(promptType),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert persona prompt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return 0, ErrAlreadyExists
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted prompt id: %w", err)
	}
	return id, nil
}

// Latest returns the current record of a persona.
// Returns nil and ErrNotFound if not found.
func (r *PersonaRepo) Latest(ctx context.Context, personaCode string, promptType PromptType) (*PersonaRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+personaColumns+" FROM persona_prompts WHERE persona_code = ? AND prompt_type = ? ORDER BY prompt_id DESC LIMIT 1",
		personaCode, string(promptType),
	)

	rec, err := scanPersona(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest persona prompt: %w", err)
	}
	return rec, nil
}

// LatestAll returns the latest record of every persona ordered by persona code.
func (r *PersonaRepo) LatestAll(ctx context.Context, promptType PromptType) ([]PersonaRecord, error) {
	return r.queryPersonas(ctx,
		`SELECT p.prompt_id, p.persona_code, p.prompt_type, p.prompt, p.created_at
		 FROM persona_prompts p
		 JOIN (
			SELECT MAX(prompt_id) AS max_id FROM persona_prompts WHERE prompt_type = ? GROUP BY persona_code
		 ) l ON p.prompt_id = l.max_id
		 ORDER BY p.persona_code`,
		string(promptType),
	)
}

// History returns records newest first.
func (r *PersonaRepo) History(ctx context.Context, personaCode string, promptType PromptType, limit int) ([]PersonaRecord, error) {
	if limit <= 0 {
		// SQLite treats a negative LIMIT as no limit
		limit = -1
	}
	return r.queryPersonas(ctx,
		"SELECT "+personaColumns+" FROM persona_prompts WHERE persona_code = ? AND prompt_type = ? ORDER BY prompt_id DESC LIMIT ?",
		personaCode, string(promptType), limit,
	)
}

// Count returns the number of records for a persona, history included.
func (r *PersonaRepo) Count(ctx context.Context, personaCode string, promptType PromptType) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM persona_prompts WHERE persona_code = ? AND prompt_type = ?",
		personaCode, string(promptType),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count persona prompts: %w", err)
	}
	return count, nil
}

// Exists reports whether the persona has at least one record.
func (r *PersonaRepo) Exists(ctx context.Context, personaCode string, promptType PromptType) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM persona_prompts WHERE persona_code = ? AND prompt_type = ?)",
		personaCode, string(promptType),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check persona existence: %w", err)
	}
	return exists == 1, nil
}

// PruneHistory deletes all but the keep most recent records of a persona.
// keep must be at least 1 so the latest record is never removed.
func (r *PersonaRepo) PruneHistory(ctx context.Context, personaCode string, promptType PromptType, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM persona_prompts
		 WHERE persona_code = ? AND prompt_type = ?
		 AND prompt_id NOT IN (
			SELECT prompt_id FROM persona_prompts
			WHERE persona_code = ? AND prompt_type = ?
			ORDER BY prompt_id DESC LIMIT ?
		 )`,
		personaCode, string(promptType), personaCode, string(promptType), keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune persona history: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(deleted), nil
}

// SearchLatest returns the latest record of every persona whose code or
// current prompt text contains keyword.
func (r *PersonaRepo) SearchLatest(ctx context.Context, keyword string, promptType PromptType) ([]PersonaRecord, error) {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	return r.queryPersonas(ctx,
		`SELECT p.prompt_id, p.persona_code, p.prompt_type, p.prompt, p.created_at
		 FROM persona_prompts p
		 JOIN (
			SELECT MAX(prompt_id) AS max_id FROM persona_prompts WHERE prompt_type = ? GROUP BY persona_code
		 ) l ON p.prompt_id = l.max_id
		 WHERE LOWER(p.persona_code) LIKE ? ESCAPE '\' OR LOWER(p.prompt) LIKE ? ESCAPE '\'
		 ORDER BY p.persona_code`,
		string(promptType), pattern, pattern,
	)
}

// Codes returns the distinct persona codes, sorted.
func (r *PersonaRepo) Codes(ctx context.Context, promptType PromptType) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT persona_code FROM persona_prompts WHERE prompt_type = ? ORDER BY persona_code",
		string(promptType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query persona codes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan persona code: %w", err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return codes, nil
}

// InRange returns records created within [start, end], newest first.
func (r *PersonaRepo) InRange(ctx context.Context, start, end time.Time, promptType PromptType) ([]PersonaRecord, error) {
	return r.queryPersonas(ctx,
		"SELECT "+personaColumns+" FROM persona_prompts WHERE prompt_type = ? AND created_at >= ? AND created_at <= ? ORDER BY prompt_id DESC",
		string(promptType), formatTime(start), formatTime(end),
	)
}

func (r *PersonaRepo) queryPersonas(ctx context.Context, query string, args ...any) ([]PersonaRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query persona prompts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []PersonaRecord
	for rows.Next() {
		rec, err := scanPersona(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona prompt: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPersona(row rowScanner) (*PersonaRecord, error) {
	var rec PersonaRecord
	var promptType, createdAtStr string
	if err := row.Scan(&rec.RecordID, &rec.PersonaCode, &promptType, &rec.PromptText, &createdAtStr); err != nil {
		return nil, err
	}
	rec.PromptType = PromptType(promptType)

	createdAt, err := parseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	rec.CreatedAt = createdAt
	return &rec, nil
}

// escapeLike escapes LIKE wildcards so keywords match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_conversation_store.go -package=mocks persona-admin/internal/storage ConversationStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ConversationStore defines read access to the conversation log plus the
// insert used by the chat frontend and tests.
type ConversationStore interface {
	// Insert appends a conversation. ID is assigned and CreatedAt defaults to now.
	Insert(ctx context.Context, conv *ConversationRecord) error
	// List returns conversations matching filter, newest first, using offset/limit pagination.
	List(ctx context.Context, filter ConversationFilter, offset, limit int) ([]ConversationRecord, error)
	// Count returns the number of conversations matching filter.
	Count(ctx context.Context, filter ConversationFilter) (int64, error)
}

// ConversationRepo provides methods for conversation operations.
// It implements the ConversationStore interface.
type ConversationRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewConversationRepo creates a new ConversationRepo.
func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db, now: time.Now}
}

// Insert appends a conversation record.
func (r *ConversationRepo) Insert(ctx context.Context, conv *ConversationRecord) error {
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = r.now()
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO conversations (persona_code, user_query, ai_response, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		conv.PersonaCode, conv.UserQuery, conv.AIResponse, conv.UserID, formatTime(conv.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted conversation id: %w", err)
	}
	conv.ID = id
	return nil
}

// List returns conversations newest first.
func (r *ConversationRepo) List(ctx context.Context, filter ConversationFilter, offset, limit int) ([]ConversationRecord, error) {
	where, args := filter.whereClause()
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, persona_code, user_query, ai_response, user_id, created_at FROM conversations"+
			where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var convs []ConversationRecord
	for rows.Next() {
		var conv ConversationRecord
		var createdAtStr string
		if err := rows.Scan(&conv.ID, &conv.PersonaCode, &conv.UserQuery, &conv.AIResponse, &conv.UserID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conv.CreatedAt, err = parseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		convs = append(convs, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return convs, nil
}

// Count returns the number of conversations matching filter.
func (r *ConversationRepo) Count(ctx context.Context, filter ConversationFilter) (int64, error) {
	where, args := filter.whereClause()

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversations"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return count, nil
}

func (f ConversationFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.PersonaCode != "" {
		conds = append(conds, "persona_code = ?")
		args = append(args, f.PersonaCode)
	}
	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Start != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, formatTime(*f.Start))
	}
	if f.End != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, formatTime(*f.End))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

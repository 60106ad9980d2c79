package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Memory は思い出の品の記録。墓参記録と同様にメディアを所有する。
type Memory struct {
	// ID は思い出の品の一意識別子。
	ID string
	// CommunityID は品が属するコミュニティのID。
	CommunityID string
	// Title は品のタイトル。
	Title string
	// Description は品の説明。
	Description sql.NullString
	// CreatedBy は登録者の名前。
	CreatedBy sql.NullString
	// CreatedAt は作成日時。
	CreatedAt time.Time
}

// CreateMemoryParams は思い出の品作成の入力。
type CreateMemoryParams struct {
	ID          string
	CommunityID string
	Title       string
	Description *string
	CreatedBy   *string
	// Media は保存済みメディアの関連付け（添付順）。
	Media []MediaItem
}

// CreateMemory は思い出の品とメディアの関連付けを1つのトランザクションで保存する。
func (s *Store) CreateMemory(ctx context.Context, p CreateMemoryParams) (Memory, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Memory{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memories (id, community_id, title, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.CommunityID, p.Title, nullString(p.Description), nullString(p.CreatedBy), formatTime(now))
	if err != nil {
		return Memory{}, fmt.Errorf("思い出の品の保存に失敗: %w", err)
	}

	if err := attachMedia(ctx, tx, p.ID, p.Media); err != nil {
		return Memory{}, err
	}

	if err := tx.Commit(); err != nil {
		return Memory{}, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}

	return Memory{
		ID:          p.ID,
		CommunityID: p.CommunityID,
		Title:       p.Title,
		Description: nullString(p.Description),
		CreatedBy:   nullString(p.CreatedBy),
		CreatedAt:   now,
	}, nil
}

// ListMemories は指定コミュニティの思い出の品を作成の新しい順に一覧取得する。
func (s *Store) ListMemories(ctx context.Context, communityID string) ([]Memory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, community_id, title, description, created_by, created_at
		FROM memories
		WHERE community_id = ?
		ORDER BY created_at DESC
	`, communityID)
	if err != nil {
		return nil, fmt.Errorf("思い出の品の一覧取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	memories := make([]Memory, 0)
	for rows.Next() {
		var m Memory
		var createdAt string
		if err := rows.Scan(&m.ID, &m.CommunityID, &m.Title, &m.Description, &m.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("思い出の品の読み取りに失敗: %w", err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MemoryComment は思い出の品へのコメント。
type MemoryComment struct {
	// ID はコメントの一意識別子。
	ID string
	// CommunityID は参照先の思い出の品から導出したコミュニティID。
	CommunityID string
	// MemoryID は参照先の思い出の品のID。
	MemoryID string
	// AuthorName はコメント投稿者の名前。
	AuthorName sql.NullString
	// Message はコメント本文。
	Message string
	// CreatedAt は作成日時。
	CreatedAt time.Time
}

// CreateMemoryCommentParams はコメント作成の入力。
// CommunityIDは受け取らない。参照先の思い出の品から導出する。
type CreateMemoryCommentParams struct {
	ID         string
	MemoryID   string
	AuthorName *string
	Message    string
}

// CreateMemoryComment はコメントを保存する。
// 参照先の思い出の品の検索とcommunity_idの導出・書き込みを
// 同一トランザクション内で行う。品が存在しない場合はErrNotFoundを返し、
// 何も保存しない。
func (s *Store) CreateMemoryComment(ctx context.Context, p CreateMemoryCommentParams) (MemoryComment, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MemoryComment{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var communityID string
	err = tx.QueryRowContext(ctx, `SELECT community_id FROM memories WHERE id = ?`, p.MemoryID).Scan(&communityID)
	if errors.Is(err, sql.ErrNoRows) {
		return MemoryComment{}, fmt.Errorf("思い出の品 %s: %w", p.MemoryID, ErrNotFound)
	}
	if err != nil {
		return MemoryComment{}, fmt.Errorf("思い出の品の検索に失敗: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memory_comments (id, community_id, memory_id, author_name, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, communityID, p.MemoryID, nullString(p.AuthorName), p.Message, formatTime(now))
	if err != nil {
		return MemoryComment{}, fmt.Errorf("コメントの保存に失敗: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return MemoryComment{}, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}

	return MemoryComment{
		ID:          p.ID,
		CommunityID: communityID,
		MemoryID:    p.MemoryID,
		AuthorName:  nullString(p.AuthorName),
		Message:     p.Message,
		CreatedAt:   now,
	}, nil
}

// ListMemoryComments は指定コミュニティのコメントを一覧取得する。
// 他の一覧と異なり、スレッド表示のため作成の古い順に並べる。
func (s *Store) ListMemoryComments(ctx context.Context, communityID string) ([]MemoryComment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, community_id, memory_id, author_name, message, created_at
		FROM memory_comments
		WHERE community_id = ?
		ORDER BY created_at ASC
	`, communityID)
	if err != nil {
		return nil, fmt.Errorf("コメントの一覧取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]MemoryComment, 0)
	for rows.Next() {
		var mc MemoryComment
		var createdAt string
		if err := rows.Scan(&mc.ID, &mc.CommunityID, &mc.MemoryID, &mc.AuthorName, &mc.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("コメントの読み取りに失敗: %w", err)
		}
		if mc.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		comments = append(comments, mc)
	}
	return comments, rows.Err()
}

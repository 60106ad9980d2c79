package store

import (
	"database/sql"
	"fmt"
)

// スキーマ定義。メディアの関連付けは親行へのJSON埋め込みではなく、
// 正規化した子テーブル media_items で持つ。
const schema = `
CREATE TABLE IF NOT EXISTS visits (
    -- 墓参記録の一意識別子
    id TEXT PRIMARY KEY,
    -- 記録が属するコミュニティのID
    community_id TEXT NOT NULL,
    -- 墓参した日付（クライアント指定の文字列をそのまま保持する）
    visit_date TEXT NOT NULL,
    -- 墓参した人の名前
    visitor_name TEXT NOT NULL,
    -- 記録の種別（"visit" または "diary"。任意の文字列を受け付ける）
    kind TEXT NOT NULL,
    -- 任意のメッセージ
    message TEXT,
    -- 作成日時（UTC・固定長テキスト）
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS donations (
    -- 寄付メモの一意識別子
    id TEXT PRIMARY KEY,
    -- 参照先の墓参記録から導出したコミュニティID
    community_id TEXT NOT NULL,
    -- 参照先の墓参記録のID
    visit_id TEXT NOT NULL,
    -- 寄付者の名前（任意）
    donor_name TEXT,
    -- 寄付額（金銭の移動は伴わないメモ）
    amount INTEGER NOT NULL,
    -- 任意のメッセージ
    message TEXT,
    -- 作成日時（UTC・固定長テキスト）
    created_at TEXT NOT NULL,
    FOREIGN KEY (visit_id) REFERENCES visits(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS memories (
    -- 思い出の品の一意識別子
    id TEXT PRIMARY KEY,
    -- 品が属するコミュニティのID
    community_id TEXT NOT NULL,
    -- 品のタイトル
    title TEXT NOT NULL,
    -- 品の説明（任意）
    description TEXT,
    -- 登録者の名前（任意）
    created_by TEXT,
    -- 作成日時（UTC・固定長テキスト）
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS memory_comments (
    -- コメントの一意識別子
    id TEXT PRIMARY KEY,
    -- 参照先の思い出の品から導出したコミュニティID
    community_id TEXT NOT NULL,
    -- 参照先の思い出の品のID
    memory_id TEXT NOT NULL,
    -- コメント投稿者の名前（任意）
    author_name TEXT,
    -- コメント本文
    message TEXT NOT NULL,
    -- 作成日時（UTC・固定長テキスト）
    created_at TEXT NOT NULL,
    FOREIGN KEY (memory_id) REFERENCES memories(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS media_items (
    -- 所有エンティティ（墓参記録または思い出の品）のID
    owner_id TEXT NOT NULL,
    -- 添付順（0始まり）
    position INTEGER NOT NULL,
    -- メディア種別（"image" または "video"）
    media_type TEXT NOT NULL,
    -- 保存ファイル名（取得用URLのキー）
    file_name TEXT NOT NULL,
    PRIMARY KEY (owner_id, position)
);

-- コミュニティ単位の一覧取得を高速化するインデックス。
CREATE INDEX IF NOT EXISTS idx_visits_community_id
    ON visits(community_id);
CREATE INDEX IF NOT EXISTS idx_donations_community_id
    ON donations(community_id);
CREATE INDEX IF NOT EXISTS idx_memories_community_id
    ON memories(community_id);
CREATE INDEX IF NOT EXISTS idx_memory_comments_community_id
    ON memory_comments(community_id);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}

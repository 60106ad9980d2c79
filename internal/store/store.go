package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	// SQLiteドライバ（driver名 "sqlite"）を副作用インポートする。
	_ "modernc.org/sqlite"
)

// ErrNotFound は参照先のレコードが存在しないことを示す。
// 寄付メモやコメントの作成時に、親となる記録が見つからない場合に返す。
var ErrNotFound = errors.New("レコードが見つかりません")

// timeLayout はcreated_atをデータベースに保存する際の形式。
// UTC固定・ナノ秒までゼロ埋めの固定長文字列のため、
// 文字列比較によるORDER BYが時系列順と一致する。
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store は墓参会の全エンティティを保存するSQLiteリポジトリ。
type Store struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// Open はSQLiteデータベースを開き、スキーマを適用してStoreを生成する。
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return &Store{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

// formatTime は時刻を保存形式の文字列に変換する。
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime は保存形式の文字列を時刻に戻す。
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("created_atの解析に失敗: %w", err)
	}
	return t, nil
}

// nullString はオプション項目のポインタをsql.NullStringに変換する。
// nilはNULLとして保存される。
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

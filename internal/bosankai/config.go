package bosankai

import (
	"os"
	"strings"
)

// Config はサーバー起動に必要な設定値。
// グローバル変数や環境変数をハンドラ内で直接読まず、
// mainで組み立ててNewServerに注入する。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string
	// DBPath はSQLiteデータベースファイルのパス。
	DBPath string
	// UploadDir はアップロードファイルの保存先ルートディレクトリ。
	UploadDir string
	// AllowedOrigins はCORSで許可するオリジン。"*" は全オリジンを許可する。
	AllowedOrigins []string
}

// ConfigFromEnv は環境変数からConfigを組み立てる。
// 未設定の項目はローカル開発用の既定値を使う。
func ConfigFromEnv() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("BOSANKAI_DB")
	if dbPath == "" {
		dbPath = "bosankai.db"
	}

	uploadDir := os.Getenv("BOSANKAI_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	allowed := make([]string, 0)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		Port:           port,
		DBPath:         dbPath,
		UploadDir:      uploadDir,
		AllowedOrigins: allowed,
	}
}

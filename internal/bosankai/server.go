package bosankai

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/bosankai/internal/mediastore"
	"github.com/nao1215/bosankai/internal/store"
	"github.com/nao1215/bosankai/pkg/middleware"
)

// maxUploadSize はマルチパートフォームで受け付ける最大サイズ（50MB）。
var maxUploadSize int64 = 50 << 20

// defaultCommunityID はcommunity_id未指定時に使うコミュニティ。
const defaultCommunityID = "default"

// timeFormat はレスポンスのcreated_atの表記形式。
const timeFormat = "2006-01-02T15:04:05Z"

// Server は墓参会APIサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store は全エンティティのSQLiteリポジトリ。
	store *store.Store
	// media はアップロードファイルのメディアストア。
	media *mediastore.Store
	// uploadDir は静的配信のマウント元ディレクトリ。
	uploadDir string
}

// NewServer は新しい墓参会APIサーバーを生成する。
// SQLiteデータベースとメディア保存ディレクトリの初期化も行う。
func NewServer(cfg Config) (*Server, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("ストアの初期化に失敗: %w", err)
	}

	ms, err := mediastore.New(cfg.UploadDir)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("メディアストアの初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// マルチパートフォームの最大メモリを設定する。
	router.MaxMultipartMemory = maxUploadSize

	s := &Server{
		router:    router,
		port:      cfg.Port,
		store:     st,
		media:     ms,
		uploadDir: cfg.UploadDir,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Shutdown はデータベース接続を閉じる。
func (s *Server) Shutdown() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		// 墓参記録
		api.GET("/visits", s.handleListVisits())
		api.POST("/visits", s.handleCreateVisit())
		// 寄付メモ
		api.GET("/donations", s.handleListDonations())
		api.POST("/donations", s.handleCreateDonation())
		// 思い出の品
		api.GET("/memories", s.handleListMemories())
		api.POST("/memories", s.handleCreateMemory())
		// 思い出の品へのコメント
		api.GET("/memory_comments", s.handleListMemoryComments())
		api.POST("/memory_comments", s.handleCreateMemoryComment())
		// コミュニティのアバター画像（唯一の上書き更新）
		api.POST("/community_avatar", s.handleUploadAvatar())
	}

	// 保存済みメディアの静的配信。作成時に返したURLのパスと一致する。
	s.router.Static("/uploads", s.uploadDir)

	// 死活監視
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "bosankai"})
	})
}

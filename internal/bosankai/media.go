package bosankai

import (
	"database/sql"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/bosankai/internal/store"
)

// mediaResponse は添付メディア1件のJSONレスポンス構造。
type mediaResponse struct {
	// MediaType はメディア種別（"image" または "video"）。
	MediaType string `json:"media_type"`
	// URL はメディアの取得用パス。
	URL string `json:"url"`
}

// toMediaResponses は関連付けの一覧をレスポンス形式に変換する。
// 添付メディアが無い場合もnullではなく空配列を返す。
func toMediaResponses(items []store.MediaItem) []mediaResponse {
	responses := make([]mediaResponse, 0, len(items))
	for _, m := range items {
		responses = append(responses, mediaResponse{
			MediaType: m.MediaType,
			URL:       "/uploads/" + m.FileName,
		})
	}
	return responses
}

// saveUploadedMedia はマルチパートフォームのmedia[]フィールドを保存し、
// リポジトリに渡す関連付けの一覧を返す。メディアが無いリクエストも正常。
func (s *Server) saveUploadedMedia(c *gin.Context, prefix string) ([]store.MediaItem, error) {
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["media"]
	}

	saved, err := s.media.SaveAll(files, prefix)
	if err != nil {
		return nil, err
	}

	items := make([]store.MediaItem, 0, len(saved))
	for _, f := range saved {
		items = append(items, store.MediaItem{
			MediaType: f.MediaType,
			FileName:  f.Name,
		})
	}
	return items, nil
}

// optionalForm はフォームの任意項目を取得する。項目が送られていない場合はnilを返す。
func optionalForm(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// nullableString はNULL許容のカラム値をレスポンス用のポインタに変換する。
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

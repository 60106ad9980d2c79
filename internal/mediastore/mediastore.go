// Package mediastore はアップロードされたメディアファイルのディスク保存と、
// メディア種別（画像/動画）の推定を行う。内容の検査は行わず、
// 宣言されたContent-Typeと拡張子だけで判定する。
package mediastore

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// メディア種別。
const (
	// KindImage は画像。
	KindImage = "image"
	// KindVideo は動画。
	KindVideo = "video"
)

// videoExtensions は動画とみなす拡張子の一覧。
// ここに無い拡張子はすべて画像として扱う。
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".webm": {},
	".m4v":  {},
	".avi":  {},
}

// DetectKind は宣言されたContent-Typeとファイル名からメディア種別を推定する。
// Content-Typeが video/ で始まる場合は動画と判定し、
// 無い場合は拡張子を videoExtensions と照合する。どちらにも該当しなければ画像。
func DetectKind(filename, contentType string) string {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return KindVideo
	}
	if _, ok := videoExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return KindVideo
	}
	return KindImage
}

// avatarDir はコミュニティのアバター画像を保存するサブディレクトリ名。
const avatarDir = "avatars"

// ErrInvalidCommunityID はcommunity_idが保存名として使えないことを示す。
var ErrInvalidCommunityID = errors.New("community_idは保存名に使えません")

// Store はアップロードファイルをディスクに保存するメディアストア。
type Store struct {
	// root は保存先ルートディレクトリ。静的配信のマウント元と一致させる。
	root string
}

// New は保存先ルートディレクトリを初期化してStoreを生成する。
// ディレクトリが既に存在する場合は何もしない。
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, avatarDir), 0o755); err != nil {
		return nil, fmt.Errorf("メディア保存ディレクトリの作成に失敗: %w", err)
	}
	return &Store{root: root}, nil
}

// SavedFile は保存済みファイル1件の情報。
type SavedFile struct {
	// Name はルートからの相対パス。取得用URLのキーになる。
	Name string
	// MediaType はメディア種別（"image" または "video"）。
	MediaType string
}

// SaveAll は複数のアップロードファイルを受け取った順に保存する。
// 保存名はprefixとランダムなUUIDから合成するため、既存ファイルを上書きしない。
// 拡張子が無いファイルは .bin を補う。ファイル名が空の要素は読み飛ばす。
// 途中で保存に失敗した場合、書き込み済みのファイルは削除せずそのまま残る。
func (s *Store) SaveAll(files []*multipart.FileHeader, prefix string) ([]SavedFile, error) {
	saved := make([]SavedFile, 0, len(files))
	for _, fh := range files {
		if fh == nil || fh.Filename == "" {
			continue
		}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext == "" {
			ext = ".bin"
		}
		name := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)

		if err := s.write(fh, filepath.Join(s.root, name)); err != nil {
			return nil, err
		}

		saved = append(saved, SavedFile{
			Name:      name,
			MediaType: DetectKind(fh.Filename, fh.Header.Get("Content-Type")),
		})
	}
	return saved, nil
}

// SaveAvatar はコミュニティのアバター画像を保存する。
// 保存先は community_id から決まる固定パスで、再アップロード時は同じパスに上書きする。
// 保存したファイルのルートからの相対パスを返す。
func (s *Store) SaveAvatar(communityID string, fh *multipart.FileHeader) (string, error) {
	// 保存名に使うためパス区切りを含むIDは受け付けない。
	if communityID == "" || communityID == "." || communityID == ".." ||
		strings.ContainsAny(communityID, `/\`) {
		return "", fmt.Errorf("community_id %q: %w", communityID, ErrInvalidCommunityID)
	}

	if err := s.write(fh, filepath.Join(s.root, avatarDir, communityID)); err != nil {
		return "", err
	}
	return path.Join(avatarDir, communityID), nil
}

// write はアップロードファイル1件をdstに書き込む。既存ファイルは上書きされる。
func (s *Store) write(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("アップロードファイルのオープンに失敗: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("保存先ファイルの作成に失敗: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗: %w", err)
	}
	return nil
}

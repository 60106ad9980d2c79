package bosankai

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"
)

// TestUploadAvatar はコミュニティアバターの登録を検証する。
func TestUploadAvatar(t *testing.T) {
	t.Parallel()

	t.Run("アバターを登録しURLから取得できること", func(t *testing.T) {
		t.Parallel()

		_, router := setupTestServer(t)

		photo := []byte("avatar-image-bytes")
		w := doMultipartRequest(t, router, "/api/community_avatar",
			map[string]string{"community_id": "yamada-family"},
			[]uploadFile{
				{field: "photo", name: "avatar.png", contentType: "image/png", content: photo},
			})

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["community_id"] != "yamada-family" {
			t.Errorf("community_id = %v, want yamada-family", result["community_id"])
		}
		u, ok := result["url"].(string)
		if !ok || u != "/uploads/avatars/yamada-family" {
			t.Fatalf("url = %v, want /uploads/avatars/yamada-family", result["url"])
		}

		res := doGet(router, u)
		if res.Code != http.StatusOK {
			t.Fatalf("アバター取得: ステータスコード = %d, want %d", res.Code, http.StatusOK)
		}
		if !bytes.Equal(res.Body.Bytes(), photo) {
			t.Error("アバターの内容が保存時と一致しません")
		}
	})

	t.Run("再アップロードで同じURLのまま内容が上書きされること", func(t *testing.T) {
		t.Parallel()

		_, router := setupTestServer(t)

		first := []byte("first-avatar")
		second := []byte("second-avatar")

		w1 := doMultipartRequest(t, router, "/api/community_avatar",
			map[string]string{"community_id": "tanaka"},
			[]uploadFile{{field: "photo", name: "old.jpg", contentType: "image/jpeg", content: first}})
		if w1.Code != http.StatusOK {
			t.Fatalf("1回目のステータスコード = %d, want %d", w1.Code, http.StatusOK)
		}

		w2 := doMultipartRequest(t, router, "/api/community_avatar",
			map[string]string{"community_id": "tanaka"},
			[]uploadFile{{field: "photo", name: "new.png", contentType: "image/png", content: second}})
		if w2.Code != http.StatusOK {
			t.Fatalf("2回目のステータスコード = %d, want %d", w2.Code, http.StatusOK)
		}

		url1 := parseJSON(t, w1)["url"]
		url2 := parseJSON(t, w2)["url"]
		if url1 != url2 {
			t.Errorf("URLが変化しました: 1回目=%v, 2回目=%v", url1, url2)
		}

		res := doGet(router, url2.(string))
		if !bytes.Equal(res.Body.Bytes(), second) {
			t.Error("アバターが2回目の内容で上書きされていません")
		}
	})

	t.Run("community_idが無い場合はBadRequestになること", func(t *testing.T) {
		t.Parallel()

		_, router := setupTestServer(t)

		w := doMultipartRequest(t, router, "/api/community_avatar",
			map[string]string{},
			[]uploadFile{{field: "photo", name: "avatar.png", contentType: "image/png", content: []byte("img")}})

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("photoファイルが無い場合はBadRequestになること", func(t *testing.T) {
		t.Parallel()

		_, router := setupTestServer(t)

		w := doFormRequest(router, "/api/community_avatar", url.Values{
			"community_id": {"yamada-family"},
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("パス区切りを含むcommunity_idはBadRequestになること", func(t *testing.T) {
		t.Parallel()

		_, router := setupTestServer(t)

		for _, id := range []string{"../evil", "a/b", `a\b`, ".", ".."} {
			w := doMultipartRequest(t, router, "/api/community_avatar",
				map[string]string{"community_id": id},
				[]uploadFile{{field: "photo", name: "avatar.png", contentType: "image/png", content: []byte("img")}})
			if w.Code != http.StatusBadRequest {
				t.Errorf("community_id=%q: ステータスコード = %d, want %d", id, w.Code, http.StatusBadRequest)
			}
		}
	})
}

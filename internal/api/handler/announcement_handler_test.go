package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"orbitex/internal/model"
	"orbitex/internal/service"
	"orbitex/pkg/apperror"
	"orbitex/pkg/logger"
	"orbitex/pkg/pagination"
	"orbitex/pkg/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	announcements []model.Announcement
	byID          map[int64]*model.Announcement
}

func (s *stubStore) List(ctx context.Context, enabled *bool, filter *search.Filter, pag *pagination.Offset) ([]model.Announcement, error) {
	result := []model.Announcement{}
	for _, a := range s.announcements {
		if enabled != nil && a.Enabled != *enabled {
			continue
		}
		if pag.Iter() {
			break
		}
		result = append(result, a)
	}
	return result, nil
}

func (s *stubStore) GetByID(ctx context.Context, annoid int64) (*model.Announcement, error) {
	if a, ok := s.byID[annoid]; ok {
		return a, nil
	}
	return nil, apperror.NotFound(fmt.Sprintf("公告 %d 不存在", annoid))
}

func (s *stubStore) Create(ctx context.Context, rec *model.AnnouncementRecord) (int64, error) {
	return 0, nil
}

func (s *stubStore) Update(ctx context.Context, annoid int64, req *model.EditAnnouncementRequest) error {
	return nil
}

func (s *stubStore) Delete(ctx context.Context, annoid int64) error {
	return nil
}

func newTestRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewLogger("error")
	svc := service.NewAnnouncementService(store, nil, log, 50, 500)
	h := NewAnnouncementHandler(svc, log)

	router := gin.New()
	router.GET("/announcements", h.GetAnnouncements)
	router.GET("/announcements/:annoid", h.GetAnnouncementByID)
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestGetAnnouncements(t *testing.T) {
	body := "正文"
	store := &stubStore{announcements: []model.Announcement{
		{AnnoID: 3, Path: "c", Title: "三", Excerpt: "e", Enabled: true, Body: &body},
		{AnnoID: 2, Path: "b", Title: "二", Excerpt: "e", Enabled: true},
		{AnnoID: 1, Path: "a", Title: "一", Excerpt: "e", Enabled: false},
	}}
	router := newTestRouter(store)

	t.Run("lists enabled without body", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements")
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		announcements := data["announcements"].([]any)
		require.Len(t, announcements, 2)

		first := announcements[0].(map[string]any)
		assert.Equal(t, true, first["readMore"])
		_, hasBody := first["body"]
		assert.False(t, hasBody, "列表不应返回正文")
		assert.Equal(t, false, data["more"])
	})

	t.Run("limit one reports more", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements?limit=1")
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		assert.Len(t, data["announcements"].([]any), 1)
		assert.Equal(t, true, data["more"])
	})

	t.Run("bad offset", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements?offset=abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp["error"])
	})

	t.Run("negative limit", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements?limit=-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp["error"])
	})
}

func TestGetAnnouncementByID(t *testing.T) {
	body := "详细内容"
	store := &stubStore{byID: map[int64]*model.Announcement{
		1: {AnnoID: 1, Path: "a", Title: "一", Excerpt: "e", Enabled: true, Body: &body},
		2: {AnnoID: 2, Path: "b", Title: "二", Excerpt: "e", Enabled: false},
	}}
	router := newTestRouter(store)

	t.Run("body omitted by default", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements/1")
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		assert.Equal(t, true, data["readMore"])
		_, hasBody := data["body"]
		assert.False(t, hasBody)
	})

	t.Run("full includes body", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements/1?full=1")
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		assert.Equal(t, "详细内容", data["body"])
	})

	t.Run("disabled is forbidden", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements/2")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", resp["error"])
	})

	t.Run("unknown id", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements/99")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", resp["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w, resp := doGet(t, router, "/announcements/abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp["error"])
	})
}

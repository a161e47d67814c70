package service

import (
	"context"
	"testing"

	"orbitex/internal/model"
	"orbitex/pkg/apperror"
	"orbitex/pkg/logger"
	"orbitex/pkg/pagination"
	"orbitex/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 记录调用参数并返回预设结果
type fakeStore struct {
	announcements []model.Announcement
	listErr       error
	getResult     *model.Announcement
	getErr        error
	createID      int64
	createErr     error
	updateErr     error
	deleteErr     error

	lastEnabled *bool
	lastRecord  *model.AnnouncementRecord
	lastAnnoID  int64
	lastEdit    *model.EditAnnouncementRequest
	deleted     []int64
}

func (f *fakeStore) List(ctx context.Context, enabled *bool, filter *search.Filter, pag *pagination.Offset) ([]model.Announcement, error) {
	f.lastEnabled = enabled
	if f.listErr != nil {
		return nil, f.listErr
	}
	// 模拟逐行读取，触发多取一行的探测逻辑
	result := []model.Announcement{}
	for _, a := range f.announcements {
		if pag.Iter() {
			break
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeStore) GetByID(ctx context.Context, annoid int64) (*model.Announcement, error) {
	f.lastAnnoID = annoid
	return f.getResult, f.getErr
}

func (f *fakeStore) Create(ctx context.Context, rec *model.AnnouncementRecord) (int64, error) {
	f.lastRecord = rec
	return f.createID, f.createErr
}

func (f *fakeStore) Update(ctx context.Context, annoid int64, req *model.EditAnnouncementRequest) error {
	f.lastAnnoID = annoid
	f.lastEdit = req
	return f.updateErr
}

func (f *fakeStore) Delete(ctx context.Context, annoid int64) error {
	f.deleted = append(f.deleted, annoid)
	return f.deleteErr
}

func newAnnouncementService(store *fakeStore) *AnnouncementService {
	return NewAnnouncementService(store, nil, logger.NewLogger("error"), 50, 500)
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func makeAnnouncements(n int) []model.Announcement {
	result := make([]model.Announcement, n)
	for i := range result {
		result[i] = model.Announcement{AnnoID: int64(i + 1), Path: "p", Title: "t", Excerpt: "e"}
	}
	return result
}

func TestListMoreDetection(t *testing.T) {
	t.Run("rows beyond limit set more", func(t *testing.T) {
		store := &fakeStore{announcements: makeAnnouncements(4)}
		svc := newAnnouncementService(store)

		result, err := svc.List(context.Background(), nil, nil, nil, intPtr(3))
		require.NoError(t, err)
		assert.Len(t, result.Announcements, 3)
		assert.True(t, result.More)
	})

	t.Run("rows exactly at limit", func(t *testing.T) {
		store := &fakeStore{announcements: makeAnnouncements(3)}
		svc := newAnnouncementService(store)

		result, err := svc.List(context.Background(), nil, nil, nil, intPtr(3))
		require.NoError(t, err)
		assert.Len(t, result.Announcements, 3)
		assert.False(t, result.More)
	})

	t.Run("enabled filter passed through", func(t *testing.T) {
		store := &fakeStore{}
		svc := newAnnouncementService(store)

		_, err := svc.List(context.Background(), boolPtr(true), nil, nil, nil)
		require.NoError(t, err)
		require.NotNil(t, store.lastEnabled)
		assert.True(t, *store.lastEnabled)
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		svc := newAnnouncementService(&fakeStore{})

		_, err := svc.List(context.Background(), nil, nil, intPtr(-1), nil)
		assert.True(t, apperror.IsKind(err, apperror.KindValidationError))
	})
}

func TestGet(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		svc := newAnnouncementService(&fakeStore{})

		_, err := svc.Get(context.Background(), 0)
		assert.True(t, apperror.IsKind(err, apperror.KindValidationError))
	})

	t.Run("not found passed through", func(t *testing.T) {
		store := &fakeStore{getErr: apperror.NotFound("公告 7 不存在")}
		svc := newAnnouncementService(store)

		_, err := svc.Get(context.Background(), 7)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestCreateValidation(t *testing.T) {
	valid := func() *model.CreateAnnouncementRequest {
		return &model.CreateAnnouncementRequest{
			Path:    strPtr("release-notes"),
			Title:   strPtr("标题"),
			Excerpt: strPtr("摘要"),
		}
	}

	tests := []struct {
		name        string
		mutate      func(*model.CreateAnnouncementRequest)
		wantKind    string
		wantDetails string
	}{
		{
			name:        "missing path",
			mutate:      func(r *model.CreateAnnouncementRequest) { r.Path = nil },
			wantKind:    apperror.KindMissingData,
			wantDetails: "path",
		},
		{
			name:        "missing title",
			mutate:      func(r *model.CreateAnnouncementRequest) { r.Title = nil },
			wantKind:    apperror.KindMissingData,
			wantDetails: "title",
		},
		{
			name:        "missing excerpt",
			mutate:      func(r *model.CreateAnnouncementRequest) { r.Excerpt = nil },
			wantKind:    apperror.KindMissingData,
			wantDetails: "excerpt",
		},
		{
			name:        "path with uppercase",
			mutate:      func(r *model.CreateAnnouncementRequest) { r.Path = strPtr("Release") },
			wantKind:    apperror.KindValidationError,
			wantDetails: "path",
		},
		{
			name:        "negative time",
			mutate:      func(r *model.CreateAnnouncementRequest) { r.Time = int64Ptr(-1) },
			wantKind:    apperror.KindValidationError,
			wantDetails: "time",
		},
		{
			name: "missing data checked before format",
			mutate: func(r *model.CreateAnnouncementRequest) {
				r.Path = strPtr("Bad Path")
				r.Title = nil
			},
			wantKind:    apperror.KindMissingData,
			wantDetails: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAnnouncementService(&fakeStore{})
			req := valid()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			appErr := apperror.From(err)
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantDetails, appErr.Details)
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	store := &fakeStore{createID: 42}
	svc := newAnnouncementService(store)

	annoid, err := svc.Create(context.Background(), &model.CreateAnnouncementRequest{
		Path:    strPtr("maintenance"),
		Title:   strPtr("维护公告"),
		Excerpt: strPtr("摘要"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), annoid)

	require.NotNil(t, store.lastRecord)
	assert.False(t, store.lastRecord.Enabled, "未指定enabled时默认禁用")
	assert.Nil(t, store.lastRecord.Time)
	assert.Nil(t, store.lastRecord.Body)
}

func TestEdit(t *testing.T) {
	t.Run("empty request rejected", func(t *testing.T) {
		svc := newAnnouncementService(&fakeStore{})

		err := svc.Edit(context.Background(), 1, &model.EditAnnouncementRequest{})
		assert.True(t, apperror.IsKind(err, apperror.KindMissingData))
	})

	t.Run("explicit null counts as present", func(t *testing.T) {
		store := &fakeStore{}
		svc := newAnnouncementService(store)

		req := &model.EditAnnouncementRequest{
			Body: model.OptString{Set: true, Value: nil},
		}
		err := svc.Edit(context.Background(), 1, req)
		require.NoError(t, err)
		require.NotNil(t, store.lastEdit)
		assert.True(t, store.lastEdit.Body.Set)
		assert.Nil(t, store.lastEdit.Body.Value)
	})

	t.Run("invalid path rejected", func(t *testing.T) {
		svc := newAnnouncementService(&fakeStore{})

		err := svc.Edit(context.Background(), 1, &model.EditAnnouncementRequest{Path: strPtr("Bad Path")})
		assert.True(t, apperror.IsKind(err, apperror.KindValidationError))
	})

	t.Run("not found passed through", func(t *testing.T) {
		store := &fakeStore{updateErr: apperror.NotFound("公告 9 不存在")}
		svc := newAnnouncementService(store)

		err := svc.Edit(context.Background(), 9, &model.EditAnnouncementRequest{Title: strPtr("新标题")})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestDelete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		svc := newAnnouncementService(&fakeStore{})

		err := svc.Delete(context.Background(), -1)
		assert.True(t, apperror.IsKind(err, apperror.KindValidationError))
	})

	t.Run("delegates to store", func(t *testing.T) {
		store := &fakeStore{}
		svc := newAnnouncementService(store)

		require.NoError(t, svc.Delete(context.Background(), 5))
		assert.Equal(t, []int64{5}, store.deleted)
	})

	t.Run("not found passed through", func(t *testing.T) {
		store := &fakeStore{deleteErr: apperror.NotFound("公告 6 不存在")}
		svc := newAnnouncementService(store)

		err := svc.Delete(context.Background(), 6)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

package rpc

import (
	"context"
	"encoding/json"

	"orbitex/internal/model"
	"orbitex/internal/service"
	"orbitex/pkg/apperror"
	"orbitex/pkg/bus"
)

// listAnnouncementsParams getAnnouncements 方法参数
type listAnnouncementsParams struct {
	Enabled *bool   `json:"enabled"`
	Search  *string `json:"search"`
	Offset  *int    `json:"offset"`
	Limit   *int    `json:"limit"`
}

// annoidParams 只携带公告ID的方法参数
type annoidParams struct {
	AnnoID *int64 `json:"annoid"`
}

// editAnnouncementParams editAnnouncement 方法参数
type editAnnouncementParams struct {
	AnnoID *int64 `json:"annoid"`
	model.EditAnnouncementRequest
}

// RegisterAnnouncements 在总线服务端注册公告管理方法。
// 这些方法供内部后台服务调用，不经过公开HTTP接口。
func RegisterAnnouncements(server *bus.Server, svc *service.AnnouncementService) {
	server.Method("getAnnouncements", func(ctx context.Context, params json.RawMessage) (any, error) {
		var p listAnnouncementsParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		result, err := svc.List(ctx, p.Enabled, p.Search, p.Offset, p.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"announcements": result.Announcements,
			"more":          result.More,
		}, nil
	})

	server.Method("getAnnouncement", func(ctx context.Context, params json.RawMessage) (any, error) {
		var p annoidParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		if p.AnnoID == nil {
			return nil, apperror.MissingData("annoid")
		}
		return svc.Get(ctx, *p.AnnoID)
	})

	server.Method("createAnnouncement", func(ctx context.Context, params json.RawMessage) (any, error) {
		var req model.CreateAnnouncementRequest
		if err := unmarshalParams(params, &req); err != nil {
			return nil, err
		}
		annoid, err := svc.Create(ctx, &req)
		if err != nil {
			return nil, err
		}
		return map[string]any{"annoid": annoid}, nil
	})

	server.Method("editAnnouncement", func(ctx context.Context, params json.RawMessage) (any, error) {
		var p editAnnouncementParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		if p.AnnoID == nil {
			return nil, apperror.MissingData("annoid")
		}
		return nil, svc.Edit(ctx, *p.AnnoID, &p.EditAnnouncementRequest)
	})

	server.Method("deleteAnnouncement", func(ctx context.Context, params json.RawMessage) (any, error) {
		var p annoidParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		if p.AnnoID == nil {
			return nil, apperror.MissingData("annoid")
		}
		return nil, svc.Delete(ctx, *p.AnnoID)
	})
}

// unmarshalParams 解析方法参数，格式错误统一返回校验错误
func unmarshalParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return apperror.Validation("params")
	}
	return nil
}

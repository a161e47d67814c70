package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"orbitex/internal/model"
	"orbitex/internal/repository"
	"orbitex/pkg/apperror"
	"orbitex/pkg/logger"
	"orbitex/pkg/pagination"
	"orbitex/pkg/search"

	"github.com/redis/go-redis/v9"
)

// pathPattern 公告路径约束：小写字母、数字、连字符
var pathPattern = regexp.MustCompile(`^[a-z0-9-]{1,255}$`)

// AnnouncementStore 公告存储接口
type AnnouncementStore interface {
	List(ctx context.Context, enabled *bool, filter *search.Filter, pag *pagination.Offset) ([]model.Announcement, error)
	GetByID(ctx context.Context, annoid int64) (*model.Announcement, error)
	Create(ctx context.Context, rec *model.AnnouncementRecord) (int64, error)
	Update(ctx context.Context, annoid int64, req *model.EditAnnouncementRequest) error
	Delete(ctx context.Context, annoid int64) error
}

// AnnouncementService 公告服务
type AnnouncementService struct {
	store        AnnouncementStore
	redisClient  *redis.Client
	logger       *logger.Logger
	defaultLimit int
	maxLimit     int
}

// NewAnnouncementService 创建公告服务实例
func NewAnnouncementService(store AnnouncementStore, redisClient *redis.Client, logger *logger.Logger, defaultLimit, maxLimit int) *AnnouncementService {
	return &AnnouncementService{
		store:        store,
		redisClient:  redisClient,
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List 获取分页公告列表，可按启用状态过滤、按关键词模糊搜索
func (s *AnnouncementService) List(ctx context.Context, enabled *bool, searchTerm *string, offset, limit *int) (*model.PaginatedAnnouncements, error) {
	pag, err := pagination.New(s.defaultLimit, s.maxLimit, offset, limit)
	if err != nil {
		return nil, err
	}

	term := ""
	if searchTerm != nil {
		term = *searchTerm
	}

	// 不带搜索词的列表走缓存
	cacheKey := ""
	if term == "" && s.redisClient != nil {
		cacheKey = fmt.Sprintf("announcements:list:%s:%d:%d", enabledCacheKey(enabled), pag.Offset, pag.Limit)
		if data, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached model.PaginatedAnnouncements
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	filter := search.New(term, repository.SearchColumns)
	announcements, err := s.store.List(ctx, enabled, filter, pag)
	if err != nil {
		s.logger.Error("获取公告列表失败", "error", err)
		return nil, err
	}

	result := &model.PaginatedAnnouncements{
		Announcements: announcements,
		More:          pag.More,
	}

	// 将结果存入缓存
	if cacheKey != "" {
		if data, err := json.Marshal(result); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return result, nil
}

// Get 根据ID获取公告，不存在时返回NOT_FOUND
func (s *AnnouncementService) Get(ctx context.Context, annoid int64) (*model.Announcement, error) {
	if annoid <= 0 {
		return nil, apperror.Validation("annoid")
	}
	return s.store.GetByID(ctx, annoid)
}

// Create 校验并创建公告，返回新公告ID。
// 按固定顺序检查字段，遇到第一个问题立即返回。
func (s *AnnouncementService) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (int64, error) {
	if req.Path == nil {
		return 0, apperror.MissingData("path")
	}
	if req.Title == nil {
		return 0, apperror.MissingData("title")
	}
	if req.Excerpt == nil {
		return 0, apperror.MissingData("excerpt")
	}

	if !pathPattern.MatchString(*req.Path) {
		return 0, apperror.Validation("path")
	}
	if len(*req.Title) > 255 {
		return 0, apperror.Validation("title")
	}

	if req.Time != nil && *req.Time < 0 {
		return 0, apperror.Validation("time")
	}
	if req.FeaturedImg != nil && len(*req.FeaturedImg) > 255 {
		return 0, apperror.Validation("featuredImg")
	}

	rec := &model.AnnouncementRecord{
		Time:        req.Time,
		Path:        *req.Path,
		Title:       *req.Title,
		Excerpt:     *req.Excerpt,
		FeaturedImg: req.FeaturedImg,
		Body:        req.Body,
	}
	if req.Enabled != nil {
		rec.Enabled = *req.Enabled // 未指定时默认禁用
	}

	annoid, err := s.store.Create(ctx, rec)
	if err != nil {
		s.logger.Error("创建公告失败", "error", err)
		return 0, err
	}

	s.invalidateCache(ctx)
	return annoid, nil
}

// Edit 部分更新公告，只修改出现的字段
func (s *AnnouncementService) Edit(ctx context.Context, annoid int64, req *model.EditAnnouncementRequest) error {
	if annoid <= 0 {
		return apperror.Validation("annoid")
	}
	if req.Empty() {
		return apperror.MissingData("没有需要修改的字段")
	}

	if req.Time != nil && *req.Time < 0 {
		return apperror.Validation("time")
	}
	if req.Path != nil && !pathPattern.MatchString(*req.Path) {
		return apperror.Validation("path")
	}
	if req.Title != nil && len(*req.Title) > 255 {
		return apperror.Validation("title")
	}
	if req.FeaturedImg.Set && req.FeaturedImg.Value != nil && len(*req.FeaturedImg.Value) > 255 {
		return apperror.Validation("featuredImg")
	}

	if err := s.store.Update(ctx, annoid, req); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// Delete 删除公告
func (s *AnnouncementService) Delete(ctx context.Context, annoid int64) error {
	if annoid <= 0 {
		return apperror.Validation("annoid")
	}

	if err := s.store.Delete(ctx, annoid); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// invalidateCache 公告发生变更后清空全部公告缓存
func (s *AnnouncementService) invalidateCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}

	iter := s.redisClient.Scan(ctx, 0, "announcements:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Error("删除缓存失败", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("清理公告缓存失败", "error", err)
	}
}

// enabledCacheKey 启用状态过滤条件的缓存键片段
func enabledCacheKey(enabled *bool) string {
	if enabled == nil {
		return "all"
	}
	return fmt.Sprintf("%t", *enabled)
}

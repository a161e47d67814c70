package handler

import (
	"net/http"
	"strconv"

	"orbitex/internal/model"
	"orbitex/internal/service"
	"orbitex/pkg/apperror"
	"orbitex/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AnnouncementHandler 面向未登录用户的公告处理器，只暴露已启用的公告
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	logger              *logger.Logger
}

// NewAnnouncementHandler 创建公告处理器实例
func NewAnnouncementHandler(announcementService *service.AnnouncementService, logger *logger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		logger:              logger,
	}
}

// GetAnnouncements 获取公告列表
// @Summary 获取公告列表
// @Description 按发布时间倒序返回已启用的公告，支持偏移分页，正文省略
// @Tags 公告
// @Produce json
// @Param offset query int false "偏移量，默认0"
// @Param limit query int false "每页条数，超过上限时按上限截断"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/announcements [get]
func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	offset, err := queryInt(c, "offset")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	enabled := true
	result, err := h.announcementService.List(c.Request.Context(), &enabled, nil, offset, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// 公开视图省略正文，用readMore标记正文是否存在
	announcements := make([]model.PublicAnnouncement, 0, len(result.Announcements))
	for _, a := range result.Announcements {
		announcements = append(announcements, publicView(&a, false))
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "success",
		"data": gin.H{
			"announcements": announcements,
			"more":          result.More,
		},
	})
}

// GetAnnouncementByID 获取公告详情
// @Summary 获取公告详情
// @Description 根据ID获取已启用的公告，full=1时附带正文
// @Tags 公告
// @Produce json
// @Param annoid path int true "公告ID"
// @Param full query bool false "是否返回正文"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/announcements/{annoid} [get]
func (h *AnnouncementHandler) GetAnnouncementByID(c *gin.Context) {
	annoid, err := strconv.ParseInt(c.Param("annoid"), 10, 64)
	if err != nil {
		respondError(c, h.logger, apperror.Validation("annoid"))
		return
	}

	announcement, err := h.announcementService.Get(c.Request.Context(), annoid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// 未启用的公告对未登录用户不可见
	if !announcement.Enabled {
		respondError(c, h.logger, apperror.Forbidden("公告未启用"))
		return
	}

	full := c.Query("full") == "1" || c.Query("full") == "true"

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "success",
		"data": publicView(announcement, full),
	})
}

// publicView 构造公开视图，withBody控制是否附带正文
func publicView(a *model.Announcement, withBody bool) model.PublicAnnouncement {
	view := model.PublicAnnouncement{
		AnnoID:      a.AnnoID,
		Time:        a.Time,
		Path:        a.Path,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		FeaturedImg: a.FeaturedImg,
		ReadMore:    a.Body != nil,
	}
	if withBody {
		view.Body = a.Body
	}
	return view
}

// queryInt 解析可选的整数查询参数，出现但不可解析时返回校验错误
func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validation(name)
	}
	return &value, nil
}

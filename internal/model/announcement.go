package model

import "encoding/json"

// Announcement 公告
type Announcement struct {
	AnnoID      int64   `db:"annoid" json:"annoid"`
	Time        int64   `db:"time" json:"time"` // 发布时间，Unix秒
	Path        string  `db:"path" json:"path"`
	Title       string  `db:"title" json:"title"`
	Excerpt     string  `db:"excerpt" json:"excerpt"`
	FeaturedImg *string `db:"featured_img" json:"featuredImg"`
	Body        *string `db:"body" json:"body"`
	Enabled     bool    `db:"enabled" json:"enabled"`
}

// PaginatedAnnouncements 分页公告结果
type PaginatedAnnouncements struct {
	Announcements []Announcement `json:"announcements"`
	More          bool           `json:"more"`
}

// PublicAnnouncement 面向未登录用户的公告视图。
// 正文默认省略，只返回readMore标记；full获取时附带正文。
type PublicAnnouncement struct {
	AnnoID      int64   `json:"annoid"`
	Time        int64   `json:"time"`
	Path        string  `json:"path"`
	Title       string  `json:"title"`
	Excerpt     string  `json:"excerpt"`
	FeaturedImg *string `json:"featuredImg"`
	ReadMore    bool    `json:"readMore"`
	Body        *string `json:"body,omitempty"`
}

// OptString 区分JSON中字段缺失与显式null：
// 字段缺失时Set为false；显式null时Set为true且Value为nil
type OptString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 实现json.Unmarshaler
func (o *OptString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// CreateAnnouncementRequest 创建公告参数，指针字段区分缺失与存在
type CreateAnnouncementRequest struct {
	Path        *string `json:"path"`
	Title       *string `json:"title"`
	Excerpt     *string `json:"excerpt"`
	Time        *int64  `json:"time"`
	FeaturedImg *string `json:"featuredImg"`
	Body        *string `json:"body"`
	Enabled     *bool   `json:"enabled"`
}

// EditAnnouncementRequest 编辑公告参数，只更新出现的字段。
// featuredImg和body显式传null表示清空，缺失表示保持不变。
type EditAnnouncementRequest struct {
	Time        *int64    `json:"time"`
	Path        *string   `json:"path"`
	Title       *string   `json:"title"`
	Excerpt     *string   `json:"excerpt"`
	FeaturedImg OptString `json:"featuredImg"`
	Body        OptString `json:"body"`
	Enabled     *bool     `json:"enabled"`
}

// Empty 是否一个可识别字段都没有出现
func (r *EditAnnouncementRequest) Empty() bool {
	return r.Time == nil &&
		r.Path == nil &&
		r.Title == nil &&
		r.Excerpt == nil &&
		!r.FeaturedImg.Set &&
		!r.Body.Set &&
		r.Enabled == nil
}

// AnnouncementRecord 插入公告的完整字段，未指定的可选字段已填入默认值
type AnnouncementRecord struct {
	Time        *int64 // nil时由数据库填入当前时间
	Path        string
	Title       string
	Excerpt     string
	FeaturedImg *string
	Body        *string
	Enabled     bool
}

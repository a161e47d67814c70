package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orbitex/internal/model"
	"orbitex/pkg/apperror"
	"orbitex/pkg/pagination"
	"orbitex/pkg/search"

	"github.com/jmoiron/sqlx"
)

// SearchColumns 公告支持模糊搜索的列
var SearchColumns = []string{"path", "title", "excerpt", "body"}

// AnnouncementRepository 公告存储库
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository 创建公告存储库实例
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// buildListQuery 按可选条件动态拼接列表查询。
// 各条件片段自带绑定参数，拼接顺序与参数顺序一致。
func buildListQuery(enabled *bool, filter *search.Filter, pag *pagination.Offset) (string, []any) {
	query := `SELECT annoid,
		       UNIX_TIMESTAMP(time) AS time,
		       path,
		       title,
		       excerpt,
		       featured_img,
		       body,
		       enabled
		FROM announcements
		WHERE 1=1`
	args := []any{}

	if enabled != nil {
		query += " AND enabled = ?"
		args = append(args, *enabled)
	}

	if clause, searchArgs := filter.Clause(); clause != "" {
		query += " AND " + clause
		args = append(args, searchArgs...)
	}

	query += " ORDER BY time DESC"

	clause, pagArgs := pag.Clause()
	query += clause
	args = append(args, pagArgs...)

	return query, args
}

// List 获取公告列表，按发布时间倒序。
// 多取的探测行在迭代中丢弃，读取完成后pag.More可用。
func (r *AnnouncementRepository) List(ctx context.Context, enabled *bool, filter *search.Filter, pag *pagination.Offset) ([]model.Announcement, error) {
	query, args := buildListQuery(enabled, filter, pag)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := []model.Announcement{}
	for rows.Next() {
		var a model.Announcement
		if err := rows.StructScan(&a); err != nil {
			return nil, err
		}
		if pag.Iter() {
			break
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// GetByID 根据ID获取公告
func (r *AnnouncementRepository) GetByID(ctx context.Context, annoid int64) (*model.Announcement, error) {
	var a model.Announcement
	query := `SELECT annoid,
		       UNIX_TIMESTAMP(time) AS time,
		       path,
		       title,
		       excerpt,
		       featured_img,
		       body,
		       enabled
		FROM announcements
		WHERE annoid = ?`
	err := r.db.GetContext(ctx, &a, query, annoid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound(fmt.Sprintf("公告 %d 不存在", annoid))
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create 插入公告并返回新ID。
// 未指定发布时间时由数据库默认填入当前时间。
func (r *AnnouncementRepository) Create(ctx context.Context, rec *model.AnnouncementRecord) (int64, error) {
	timeExpr := "DEFAULT"
	args := []any{}
	if rec.Time != nil {
		timeExpr = "FROM_UNIXTIME(?)"
		args = append(args, *rec.Time)
	}

	query := fmt.Sprintf(`INSERT INTO announcements(
			time,
			path,
			title,
			excerpt,
			featured_img,
			body,
			enabled
		) VALUES (%s, ?, ?, ?, ?, ?, ?)`, timeExpr)
	args = append(args, rec.Path, rec.Title, rec.Excerpt, rec.FeaturedImg, rec.Body, rec.Enabled)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// buildUpdateQuery 按出现的字段拼接部分更新语句。
// featured_img和body区分显式null（清空）与缺失（保持不变）。
func buildUpdateQuery(annoid int64, req *model.EditAnnouncementRequest) (string, []any) {
	// 起始的无操作赋值让后续字段统一以逗号拼接
	query := "UPDATE announcements SET annoid = annoid"
	args := []any{}

	if req.Time != nil {
		query += ", time = FROM_UNIXTIME(?)"
		args = append(args, *req.Time)
	}
	if req.Path != nil {
		query += ", path = ?"
		args = append(args, *req.Path)
	}
	if req.Title != nil {
		query += ", title = ?"
		args = append(args, *req.Title)
	}
	if req.Excerpt != nil {
		query += ", excerpt = ?"
		args = append(args, *req.Excerpt)
	}
	if req.FeaturedImg.Set {
		query += ", featured_img = ?"
		args = append(args, req.FeaturedImg.Value)
	}
	if req.Body.Set {
		query += ", body = ?"
		args = append(args, req.Body.Value)
	}
	if req.Enabled != nil {
		query += ", enabled = ?"
		args = append(args, *req.Enabled)
	}

	query += " WHERE annoid = ?"
	args = append(args, annoid)

	return query, args
}

// Update 部分更新公告，只修改出现的字段，单条语句完成
func (r *AnnouncementRepository) Update(ctx context.Context, annoid int64, req *model.EditAnnouncementRequest) error {
	query, args := buildUpdateQuery(annoid, req)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound(fmt.Sprintf("公告 %d 不存在", annoid))
	}
	return nil
}

// Delete 删除公告
func (r *AnnouncementRepository) Delete(ctx context.Context, annoid int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM announcements WHERE annoid = ?", annoid)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound(fmt.Sprintf("公告 %d 不存在", annoid))
	}
	return nil
}

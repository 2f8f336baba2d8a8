package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"home-services-admin/internal/domain"
	"home-services-admin/pkg/utils"
)

type CreateJobCategoryInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	JobsCount   FlexInt   `json:"jobsCount" binding:"min=0"`
	AvgPrice    FlexFloat `json:"avgPrice" binding:"min=0"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Tags        []string  `json:"tags"`
}

type UpdateJobCategoryInput struct {
	Name        *string    `json:"name" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	JobsCount   *FlexInt   `json:"jobsCount" binding:"omitempty,min=0"`
	AvgPrice    *FlexFloat `json:"avgPrice" binding:"omitempty,min=0"`
	Icon        *string    `json:"icon"`
	Color       *string    `json:"color"`
	Tags        *[]string  `json:"tags"`
}

type JobCategoryQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	Search string `form:"search"`
	ListParams
}

var jobCategorySortColumns = map[string]string{
	"name":      "name",
	"jobsCount": "jobs_count",
	"avgPrice":  "avg_price",
	"createdAt": "created_at",
}

type JobCategoryService struct {
	db *gorm.DB
}

func NewJobCategoryService(db *gorm.DB) *JobCategoryService {
	return &JobCategoryService{db: db}
}

// replaceCategoryTags 独占子表，整体删掉重建（不同于用户的共享标签）
func replaceCategoryTags(tx *gorm.DB, categoryID string, names []string) error {
	if err := tx.Where("job_category_id = ?", categoryID).
		Delete(&domain.JobCategoryTag{}).Error; err != nil {
		return Internal("delete category tags failed", err)
	}
	for _, name := range names {
		t := domain.JobCategoryTag{ID: utils.NewID(), JobCategoryID: categoryID, Name: name}
		if err := tx.Create(&t).Error; err != nil {
			return Internal("create category tag failed", err)
		}
	}
	return nil
}

func (s *JobCategoryService) Create(ctx context.Context, in CreateJobCategoryInput) (*domain.JobCategory, error) {
	id := utils.NewID()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jc := domain.JobCategory{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Status:      domain.JobCategoryStatus(in.Status),
			JobsCount:   int(in.JobsCount),
			AvgPrice:    float64(in.AvgPrice),
			Icon:        in.Icon,
			Color:       in.Color,
		}
		if jc.Status == "" {
			jc.Status = domain.JobCategoryStatusActive
		}
		if err := tx.Create(&jc).Error; err != nil {
			return Internal("create job category failed", err)
		}
		if len(in.Tags) > 0 {
			return replaceCategoryTags(tx, id, in.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *JobCategoryService) FindAll(ctx context.Context, in JobCategoryQuery) (*ListResult[domain.JobCategory], error) {
	q := s.db.WithContext(ctx).Model(&domain.JobCategory{})
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}
	if in.Search != "" {
		l := like(in.Search)
		q = q.Where(ilike("name")+" OR "+ilike("description"), l, l)
	}

	q = q.Preload("Tags")
	var items []domain.JobCategory
	order := in.orderClause(jobCategorySortColumns, "created_at DESC")
	total, err := paginate(q, in.ListParams, order, &items)
	if err != nil {
		return nil, Internal("list job categories failed", err)
	}
	return newListResult(items, in.ListParams, total), nil
}

func (s *JobCategoryService) FindByID(ctx context.Context, id string) (*domain.JobCategory, error) {
	var jc domain.JobCategory
	err := s.db.WithContext(ctx).Preload("Tags").First(&jc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Job category not found")
	}
	if err != nil {
		return nil, Internal("load job category failed", err)
	}
	return &jc, nil
}

func (s *JobCategoryService) Update(ctx context.Context, id string, in UpdateJobCategoryInput) (*domain.JobCategory, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jc domain.JobCategory
		if err := tx.First(&jc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Job category not found")
			}
			return Internal("load job category failed", err)
		}

		updates := map[string]any{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if in.JobsCount != nil {
			updates["jobs_count"] = int(*in.JobsCount)
		}
		if in.AvgPrice != nil {
			updates["avg_price"] = float64(*in.AvgPrice)
		}
		if in.Icon != nil {
			updates["icon"] = *in.Icon
		}
		if in.Color != nil {
			updates["color"] = *in.Color
		}
		if len(updates) > 0 {
			if err := tx.Model(&jc).Updates(updates).Error; err != nil {
				return Internal("update job category failed", err)
			}
		}

		if in.Tags != nil {
			return replaceCategoryTags(tx, id, *in.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// SetStatus archive/activate 快捷操作共用
func (s *JobCategoryService) SetStatus(ctx context.Context, id string, status domain.JobCategoryStatus) (*domain.JobCategory, error) {
	res := s.db.WithContext(ctx).Model(&domain.JobCategory{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, Internal("update job category failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, NotFound("Job category not found")
	}
	return s.FindByID(ctx, id)
}

func (s *JobCategoryService) SoftDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.JobCategory{})
	if res.Error != nil {
		return Internal("delete job category failed", res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.db.WithContext(ctx).Unscoped().Model(&domain.JobCategory{}).
			Where("id = ?", id).Count(&n).Error; err != nil {
			return Internal("delete job category failed", err)
		}
		if n == 0 {
			return NotFound("Job category not found")
		}
	}
	return nil
}

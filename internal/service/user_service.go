package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"home-services-admin/internal/domain"
	"home-services-admin/pkg/utils"
)

type WorkExperienceInput struct {
	Company          string   `json:"company" binding:"required"`
	Position         string   `json:"position" binding:"required"`
	StartDate        string   `json:"startDate" binding:"required"`
	EndDate          string   `json:"endDate"`
	IsCurrent        bool     `json:"isCurrent"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
}

type CreateUserInput struct {
	Name            string                `json:"name" binding:"required"`
	Address         string                `json:"address"`
	Age             FlexInt               `json:"age" binding:"min=0"`
	Status          string                `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	JobTitle        string                `json:"jobTitle"`
	JobCategory     string                `json:"jobCategory" binding:"omitempty,oneof=MAINTENANCE OPERATIONS OTHER"`
	YearsExperience FlexInt               `json:"yearsExperience" binding:"min=0"`
	Bio             string                `json:"bio"`
	Description     string                `json:"description"`
	Tags            []string              `json:"tags"`
	WorkExperience  []WorkExperienceInput `json:"workExperience" binding:"omitempty,dive"`
}

// UpdateUserInput 指针区分「没传」和「传了空」：Tags/WorkExperience
// 只有显式出现在载荷里（哪怕是空数组）才触发整体替换
type UpdateUserInput struct {
	Name            *string                `json:"name" binding:"omitempty,min=1"`
	Address         *string                `json:"address"`
	Age             *FlexInt               `json:"age" binding:"omitempty,min=0"`
	Status          *string                `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	JobTitle        *string                `json:"jobTitle"`
	JobCategory     *string                `json:"jobCategory" binding:"omitempty,oneof=MAINTENANCE OPERATIONS OTHER"`
	YearsExperience *FlexInt               `json:"yearsExperience" binding:"omitempty,min=0"`
	Bio             *string                `json:"bio"`
	Description     *string                `json:"description"`
	Tags            *[]string              `json:"tags"`
	WorkExperience  *[]WorkExperienceInput `json:"workExperience" binding:"omitempty,dive"`
}

type UserQuery struct {
	Status      string `form:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	JobCategory string `form:"jobCategory" binding:"omitempty,oneof=MAINTENANCE OPERATIONS OTHER"`
	Search      string `form:"search"`
	ListParams
}

var userSortColumns = map[string]string{
	"name":            "name",
	"age":             "age",
	"yearsExperience": "years_experience",
	"createdAt":       "created_at",
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

// parseMonth 接受 YYYY-MM；前端偶尔送完整日期串，也一并接受
func parseMonth(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if strings.ContainsRune(s, 'T') {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// upsertTags 按 name 创建或复用共享标签，返回解析后的行
func upsertTags(tx *gorm.DB, names []string) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		tag := domain.Tag{Name: name}
		err := tx.Where(domain.Tag{Name: name}).
			Attrs(domain.Tag{ID: utils.NewID()}).
			FirstOrCreate(&tag).Error
		if err != nil {
			// 并发兜底：唯一冲突后再查一次
			if isDupKey(err) {
				if e2 := tx.Where("name = ?", name).First(&tag).Error; e2 != nil {
					return nil, Internal("resolve tag failed", e2)
				}
			} else {
				return nil, Internal("resolve tag failed", err)
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}

// createWorkExperience 先校验全部 startDate 再落库，非法月份是校验错误
func createWorkExperience(tx *gorm.DB, userID string, list []WorkExperienceInput) error {
	for i, wx := range list {
		start, err := parseMonth(wx.StartDate)
		if err != nil || start == nil {
			return Validation(FieldError{
				Field:   fmt.Sprintf("workExperience[%d].startDate", i),
				Message: fmt.Sprintf("invalid month %q, expected YYYY-MM", wx.StartDate),
			})
		}
		end, err := parseMonth(wx.EndDate)
		if err != nil {
			return Validation(FieldError{
				Field:   fmt.Sprintf("workExperience[%d].endDate", i),
				Message: fmt.Sprintf("invalid month %q, expected YYYY-MM", wx.EndDate),
			})
		}
		// 在职的经历强制 endDate 为空，忽略传入值
		if wx.IsCurrent {
			end = nil
		}

		rec := domain.WorkExperience{
			ID:          utils.NewID(),
			UserID:      userID,
			Company:     wx.Company,
			Position:    wx.Position,
			StartDate:   *start,
			EndDate:     end,
			IsCurrent:   wx.IsCurrent,
			Description: wx.Description,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return Internal("create work experience failed", err)
		}
		for _, title := range wx.Responsibilities {
			r := domain.Responsibility{ID: utils.NewID(), WorkExperienceID: rec.ID, Title: title}
			if err := tx.Create(&r).Error; err != nil {
				return Internal("create responsibility failed", err)
			}
		}
	}
	return nil
}

// dropWorkExperience 整体替换的前半程：删孙再删子，不留孤儿
func dropWorkExperience(tx *gorm.DB, userID string) error {
	var wxIDs []string
	if err := tx.Model(&domain.WorkExperience{}).
		Where("user_id = ?", userID).
		Pluck("id", &wxIDs).Error; err != nil {
		return Internal("load work experience failed", err)
	}
	if len(wxIDs) == 0 {
		return nil
	}
	if err := tx.Where("work_experience_id IN ?", wxIDs).
		Delete(&domain.Responsibility{}).Error; err != nil {
		return Internal("delete responsibilities failed", err)
	}
	if err := tx.Where("id IN ?", wxIDs).
		Delete(&domain.WorkExperience{}).Error; err != nil {
		return Internal("delete work experience failed", err)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	id := utils.NewID()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := domain.User{
			ID:              id,
			Name:            in.Name,
			Address:         in.Address,
			Age:             int(in.Age),
			Status:          domain.UserStatus(in.Status),
			JobTitle:        in.JobTitle,
			JobCategory:     domain.JobCategoryKind(in.JobCategory),
			YearsExperience: int(in.YearsExperience),
			Bio:             in.Bio,
			Description:     in.Description,
		}
		if u.Status == "" {
			u.Status = domain.UserStatusActive
		}
		if err := tx.Create(&u).Error; err != nil {
			return Internal("create user failed", err)
		}

		if len(in.Tags) > 0 {
			tags, err := upsertTags(tx, in.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&u).Association("Tags").Append(tags); err != nil {
				return Internal("attach tags failed", err)
			}
		}
		return createWorkExperience(tx, id, in.WorkExperience)
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *UserService) FindAll(ctx context.Context, in UserQuery) (*ListResult[domain.User], error) {
	q := s.db.WithContext(ctx).Model(&domain.User{})
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}
	if in.JobCategory != "" {
		q = q.Where("job_category = ?", in.JobCategory)
	}
	if in.Search != "" {
		l := like(in.Search)
		// 标签名走子查询，避免 join 产生重复行
		q = q.Where(
			ilike("users.name")+" OR "+ilike("users.address")+" OR "+ilike("users.job_title")+
				" OR "+ilike("users.bio")+
				" OR users.id IN (SELECT ut.user_id FROM user_tags ut JOIN tags t ON t.id = ut.tag_id WHERE "+ilike("t.name")+")",
			l, l, l, l, l,
		)
	}

	q = q.Preload("Tags").Preload("WorkExperience.Responsibilities")
	var items []domain.User
	order := in.orderClause(userSortColumns, "created_at DESC")
	total, err := paginate(q, in.ListParams, order, &items)
	if err != nil {
		return nil, Internal("list users failed", err)
	}
	return newListResult(items, in.ListParams, total), nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("WorkExperience", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("WorkExperience.Responsibilities").
		First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("User not found")
	}
	if err != nil {
		return nil, Internal("load user failed", err)
	}
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("User not found")
			}
			return Internal("load user failed", err)
		}

		updates := map[string]any{}
		setStr := func(col string, v *string) {
			if v != nil {
				updates[col] = *v
			}
		}
		setStr("name", in.Name)
		setStr("address", in.Address)
		setStr("status", in.Status)
		setStr("job_title", in.JobTitle)
		setStr("job_category", in.JobCategory)
		setStr("bio", in.Bio)
		setStr("description", in.Description)
		if in.Age != nil {
			updates["age"] = int(*in.Age)
		}
		if in.YearsExperience != nil {
			updates["years_experience"] = int(*in.YearsExperience)
		}
		if len(updates) > 0 {
			if err := tx.Model(&u).Updates(updates).Error; err != nil {
				return Internal("update user failed", err)
			}
		}

		// 关系字段显式出现才替换，空数组意味着清空
		if in.Tags != nil {
			tags, err := upsertTags(tx, *in.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&u).Association("Tags").Replace(tags); err != nil {
				return Internal("replace tags failed", err)
			}
		}
		if in.WorkExperience != nil {
			if err := dropWorkExperience(tx, id); err != nil {
				return err
			}
			if err := createWorkExperience(tx, id, *in.WorkExperience); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return Internal("delete user failed", res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.db.WithContext(ctx).Unscoped().Model(&domain.User{}).
			Where("id = ?", id).Count(&n).Error; err != nil {
			return Internal("delete user failed", err)
		}
		if n == 0 {
			return NotFound("User not found")
		}
	}
	return nil
}

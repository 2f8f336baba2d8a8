package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"home-services-admin/internal/core/cache"
	"home-services-admin/internal/domain"
	"home-services-admin/pkg/utils"
)

type CreateServiceInput struct {
	Name           string    `json:"name" binding:"required"`
	Category       string    `json:"category" binding:"required"`
	Price          FlexFloat `json:"price" binding:"min=0"`
	Duration       string    `json:"duration" binding:"required"`
	Status         string    `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Description    string    `json:"description"`
	ProvidersCount FlexInt   `json:"providersCount" binding:"min=0"`
}

type UpdateServiceInput struct {
	Name           *string    `json:"name" binding:"omitempty,min=1"`
	Category       *string    `json:"category" binding:"omitempty,min=1"`
	Price          *FlexFloat `json:"price" binding:"omitempty,min=0"`
	Duration       *string    `json:"duration" binding:"omitempty,min=1"`
	Status         *string    `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Description    *string    `json:"description"`
	ProvidersCount *FlexInt   `json:"providersCount" binding:"omitempty,min=0"`
}

type ServiceQuery struct {
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Search   string `form:"search"`
	ListParams
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type ServiceStats struct {
	TotalServices    int64           `json:"totalServices"`
	ActiveServices   int64           `json:"activeServices"`
	InactiveServices int64           `json:"inactiveServices"`
	TotalBookings    int64           `json:"totalBookings"`
	Categories       []CategoryCount `json:"categories"`
}

var serviceSortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

type ServiceService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewServiceService(db *gorm.DB, ch *cache.Cache) *ServiceService {
	return &ServiceService{db: db, cache: ch}
}

func (s *ServiceService) Create(ctx context.Context, in CreateServiceInput) (*domain.Service, error) {
	svc := domain.Service{
		ID:             utils.NewID(),
		Name:           in.Name,
		Category:       in.Category,
		Price:          float64(in.Price),
		Duration:       in.Duration,
		Status:         domain.ServiceStatus(in.Status),
		Description:    in.Description,
		ProvidersCount: int(in.ProvidersCount),
	}
	if svc.Status == "" {
		svc.Status = domain.ServiceStatusActive
	}
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return nil, Internal("create service failed", err)
	}
	return &svc, nil
}

func (s *ServiceService) FindAll(ctx context.Context, in ServiceQuery) (*ListResult[domain.Service], error) {
	q := s.db.WithContext(ctx).Model(&domain.Service{})
	if in.Category != "" {
		q = q.Where(ilike("category"), like(in.Category))
	}
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}
	if in.Search != "" {
		l := like(in.Search)
		q = q.Where(ilike("name")+" OR "+ilike("description")+" OR "+ilike("category"), l, l, l)
	}

	var items []domain.Service
	order := in.orderClause(serviceSortColumns, "created_at DESC")
	total, err := paginate(q, in.ListParams, order, &items)
	if err != nil {
		return nil, Internal("list services failed", err)
	}
	return newListResult(items, in.ListParams, total), nil
}

func (s *ServiceService) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	var svc domain.Service
	err := s.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Service not found")
	}
	if err != nil {
		return nil, Internal("load service failed", err)
	}
	return &svc, nil
}

func (s *ServiceService) Update(ctx context.Context, id string, in UpdateServiceInput) (*domain.Service, error) {
	tx := s.db.WithContext(ctx)

	var svc domain.Service
	if err := tx.First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Service not found")
		}
		return nil, Internal("load service failed", err)
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Price != nil {
		updates["price"] = float64(*in.Price)
	}
	if in.Duration != nil {
		updates["duration"] = *in.Duration
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.ProvidersCount != nil {
		updates["providers_count"] = int(*in.ProvidersCount)
	}

	if len(updates) > 0 {
		if err := tx.Model(&svc).Updates(updates).Error; err != nil {
			return nil, Internal("update service failed", err)
		}
	}
	return s.FindByID(ctx, id)
}

func (s *ServiceService) SoftDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Service{})
	if res.Error != nil {
		return Internal("delete service failed", res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.db.WithContext(ctx).Unscoped().Model(&domain.Service{}).
			Where("id = ?", id).Count(&n).Error; err != nil {
			return Internal("delete service failed", err)
		}
		if n == 0 {
			return NotFound("Service not found")
		}
	}
	return nil
}

func (s *ServiceService) Stats(ctx context.Context) (*ServiceStats, error) {
	if s.cache != nil {
		return cache.GetOrLoadJSON(s.cache, ctx, "stats:services", cache.StatsTTL, s.loadStats)
	}
	return s.loadStats(ctx)
}

func (s *ServiceService) loadStats(ctx context.Context) (*ServiceStats, error) {
	tx := s.db.WithContext(ctx)
	var st ServiceStats

	if err := tx.Model(&domain.Service{}).Count(&st.TotalServices).Error; err != nil {
		return nil, Internal("service stats failed", err)
	}
	if err := tx.Model(&domain.Service{}).
		Where("status = ?", domain.ServiceStatusActive).
		Count(&st.ActiveServices).Error; err != nil {
		return nil, Internal("service stats failed", err)
	}
	st.InactiveServices = st.TotalServices - st.ActiveServices

	if err := tx.Model(&domain.Booking{}).Count(&st.TotalBookings).Error; err != nil {
		return nil, Internal("service stats failed", err)
	}

	if err := tx.Model(&domain.Service{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&st.Categories).Error; err != nil {
		return nil, Internal("service stats failed", err)
	}
	if st.Categories == nil {
		st.Categories = []CategoryCount{}
	}
	return &st, nil
}

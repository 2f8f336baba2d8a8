package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"home-services-admin/internal/core/cache"
	"home-services-admin/internal/domain"
	"home-services-admin/pkg/utils"
)

type CreateBookingInput struct {
	ServiceID     string    `json:"serviceId" binding:"required"`
	ServiceName   string    `json:"serviceName" binding:"required"`
	CustomerName  string    `json:"customerName" binding:"required"`
	CustomerPhone string    `json:"customerPhone" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	Time          string    `json:"time" binding:"required"`
	Status        string    `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	Provider      string    `json:"provider" binding:"required"`
	Price         FlexFloat `json:"price" binding:"min=0"`
	Address       string    `json:"address" binding:"required"`
}

type UpdateBookingInput struct {
	ServiceID     *string    `json:"serviceId" binding:"omitempty,min=1"`
	ServiceName   *string    `json:"serviceName" binding:"omitempty,min=1"`
	CustomerName  *string    `json:"customerName" binding:"omitempty,min=1"`
	CustomerPhone *string    `json:"customerPhone" binding:"omitempty,min=1"`
	Date          *string    `json:"date" binding:"omitempty,min=1"`
	Time          *string    `json:"time" binding:"omitempty,min=1"`
	Status        *string    `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	Provider      *string    `json:"provider" binding:"omitempty,min=1"`
	Price         *FlexFloat `json:"price" binding:"omitempty,min=0"`
	Address       *string    `json:"address" binding:"omitempty,min=1"`
}

type BookingQuery struct {
	ServiceID    string `form:"serviceId"`
	Status       string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	CustomerName string `form:"customerName"`
	Provider     string `form:"provider"`
	DateFrom     string `form:"dateFrom"`
	DateTo       string `form:"dateTo"`
	Search       string `form:"search"`
	ListParams
}

type StatusCount struct {
	Status domain.BookingStatus `json:"status"`
	Count  int64                `json:"count"`
}

type BookingStats struct {
	TotalBookings      int64            `json:"totalBookings"`
	PendingBookings    int64            `json:"pendingBookings"`
	ConfirmedBookings  int64            `json:"confirmedBookings"`
	InProgressBookings int64            `json:"inProgressBookings"`
	CompletedBookings  int64            `json:"completedBookings"`
	CancelledBookings  int64            `json:"cancelledBookings"`
	StatusDistribution []StatusCount    `json:"statusDistribution"`
	RecentBookings     []domain.Booking `json:"recentBookings"`
}

var bookingSortColumns = map[string]string{
	"date":         "date",
	"customerName": "customer_name",
	"serviceName":  "service_name",
	"createdAt":    "created_at",
}

type BookingService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBookingService(db *gorm.DB, ch *cache.Cache) *BookingService {
	return &BookingService{db: db, cache: ch}
}

// requireLiveService 预约只能指向未软删的服务，违规是业务错误而不是库约束
func requireLiveService(tx *gorm.DB, serviceID string) error {
	var svc domain.Service
	err := tx.First(&svc, "id = ?", serviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Domain("Service not found")
	}
	if err != nil {
		return Internal("load service failed", err)
	}
	return nil
}

func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	tx := s.db.WithContext(ctx)
	if err := requireLiveService(tx, in.ServiceID); err != nil {
		return nil, err
	}

	b := domain.Booking{
		ID:            utils.NewID(),
		ServiceID:     in.ServiceID,
		ServiceName:   in.ServiceName,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Date:          in.Date,
		Time:          in.Time,
		Status:        domain.BookingStatus(in.Status),
		Provider:      in.Provider,
		Price:         float64(in.Price),
		Address:       in.Address,
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	if err := tx.Create(&b).Error; err != nil {
		return nil, Internal("create booking failed", err)
	}
	return s.FindByID(ctx, b.ID)
}

func (s *BookingService) FindAll(ctx context.Context, in BookingQuery) (*ListResult[domain.Booking], error) {
	q := s.db.WithContext(ctx).Model(&domain.Booking{})
	if in.ServiceID != "" {
		q = q.Where("service_id = ?", in.ServiceID)
	}
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}
	if in.CustomerName != "" {
		q = q.Where(ilike("customer_name"), like(in.CustomerName))
	}
	if in.Provider != "" {
		q = q.Where(ilike("provider"), like(in.Provider))
	}
	// 区间过滤要求两端都给，闭区间
	if in.DateFrom != "" && in.DateTo != "" {
		q = q.Where("date >= ? AND date <= ?", in.DateFrom, in.DateTo)
	}
	if in.Search != "" {
		l := like(in.Search)
		q = q.Where(
			ilike("customer_name")+" OR "+ilike("service_name")+" OR "+ilike("provider")+
				" OR "+ilike("address")+" OR "+ilike("customer_phone"),
			l, l, l, l, l,
		)
	}

	var items []domain.Booking
	order := in.orderClause(bookingSortColumns, "created_at DESC")
	total, err := paginate(q.Preload("Service"), in.ListParams, order, &items)
	if err != nil {
		return nil, Internal("list bookings failed", err)
	}
	return newListResult(items, in.ListParams, total), nil
}

func (s *BookingService) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := s.db.WithContext(ctx).
		// 服务即便已软删也要随预约带出，供详情页展示
		Preload("Service", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Booking not found")
	}
	if err != nil {
		return nil, Internal("load booking failed", err)
	}
	return &b, nil
}

func (s *BookingService) Update(ctx context.Context, id string, in UpdateBookingInput) (*domain.Booking, error) {
	tx := s.db.WithContext(ctx)

	var b domain.Booking
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Booking not found")
		}
		return nil, Internal("load booking failed", err)
	}

	// serviceId 变更时重新校验指向的服务仍然存活
	if in.ServiceID != nil {
		if err := requireLiveService(tx, *in.ServiceID); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setStr("service_id", in.ServiceID)
	setStr("service_name", in.ServiceName)
	setStr("customer_name", in.CustomerName)
	setStr("customer_phone", in.CustomerPhone)
	setStr("date", in.Date)
	setStr("time", in.Time)
	setStr("status", in.Status)
	setStr("provider", in.Provider)
	setStr("address", in.Address)
	if in.Price != nil {
		updates["price"] = float64(*in.Price)
	}

	if len(updates) > 0 {
		if err := tx.Model(&b).Updates(updates).Error; err != nil {
			return nil, Internal("update booking failed", err)
		}
	}
	return s.FindByID(ctx, id)
}

func (s *BookingService) SoftDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Booking{})
	if res.Error != nil {
		return Internal("delete booking failed", res.Error)
	}
	if res.RowsAffected == 0 {
		// 已软删的重复删除保持幂等；完全不存在才是 404
		var n int64
		if err := s.db.WithContext(ctx).Unscoped().Model(&domain.Booking{}).
			Where("id = ?", id).Count(&n).Error; err != nil {
			return Internal("delete booking failed", err)
		}
		if n == 0 {
			return NotFound("Booking not found")
		}
	}
	return nil
}

func (s *BookingService) ByService(ctx context.Context, serviceID string) ([]domain.Booking, error) {
	var items []domain.Booking
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, Internal("list bookings by service failed", err)
	}
	if items == nil {
		items = []domain.Booking{}
	}
	return items, nil
}

func (s *BookingService) Stats(ctx context.Context) (*BookingStats, error) {
	if s.cache != nil {
		return cache.GetOrLoadJSON(s.cache, ctx, "stats:bookings", cache.StatsTTL, s.loadStats)
	}
	return s.loadStats(ctx)
}

func (s *BookingService) loadStats(ctx context.Context) (*BookingStats, error) {
	var dist []StatusCount
	err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&dist).Error
	if err != nil {
		return nil, Internal("booking stats failed", err)
	}

	if dist == nil {
		dist = []StatusCount{}
	}
	st := BookingStats{StatusDistribution: dist, RecentBookings: []domain.Booking{}}
	for _, d := range dist {
		st.TotalBookings += d.Count
		switch d.Status {
		case domain.BookingStatusPending:
			st.PendingBookings = d.Count
		case domain.BookingStatusConfirmed:
			st.ConfirmedBookings = d.Count
		case domain.BookingStatusInProgress:
			st.InProgressBookings = d.Count
		case domain.BookingStatusCompleted:
			st.CompletedBookings = d.Count
		case domain.BookingStatusCancelled:
			st.CancelledBookings = d.Count
		}
	}

	err = s.db.WithContext(ctx).
		Preload("Service").
		Order("created_at DESC").
		Limit(5).
		Find(&st.RecentBookings).Error
	if err != nil {
		return nil, Internal("booking stats failed", err)
	}
	return &st, nil
}

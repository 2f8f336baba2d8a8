package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"home-services-admin/internal/core/config"
	"home-services-admin/internal/core/database"
	"home-services-admin/internal/core/logger"
	"home-services-admin/internal/domain"
	"home-services-admin/internal/service"
)

// 往配置的数据库里灌演示数据，走 service 层以便标签 upsert 等逻辑生效
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.WorkExperience{},
		&domain.Responsibility{},
		&domain.Tag{},
		&domain.JobCategory{},
		&domain.JobCategoryTag{},
		&domain.Service{},
		&domain.Booking{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx := context.Background()

	// 已有数据就不重复灌
	var n int64
	if err := db.Model(&domain.Service{}).Count(&n).Error; err != nil {
		log.Fatal("count services", zap.Error(err))
	}
	if n > 0 {
		log.Info("seed skipped, data already present", zap.Int64("services", n))
		return
	}

	categories := service.NewJobCategoryService(db)
	users := service.NewUserService(db)
	services := service.NewServiceService(db, nil)
	bookings := service.NewBookingService(db, nil)

	for _, in := range []service.CreateJobCategoryInput{
		{Name: "Cleaning", Description: "Residential and office cleaning", JobsCount: 24, AvgPrice: 75, Icon: "broom", Color: "#4CAF50", Tags: []string{"indoor", "recurring"}},
		{Name: "Plumbing", Description: "Pipes, fittings, leaks", JobsCount: 13, AvgPrice: 120, Icon: "wrench", Color: "#2196F3", Tags: []string{"urgent"}},
		{Name: "Electrical", Status: "ARCHIVED", JobsCount: 7, AvgPrice: 150, Icon: "bolt", Color: "#FFC107"},
	} {
		if _, err := categories.Create(ctx, in); err != nil {
			log.Fatal("seed job category", zap.String("name", in.Name), zap.Error(err))
		}
	}

	for _, in := range []service.CreateUserInput{
		{
			Name: "Maria Lopez", Address: "123 Maple St", Age: 34,
			JobTitle: "Senior Plumber", JobCategory: "MAINTENANCE", YearsExperience: 9,
			Bio:  "Certified plumber, residential focus",
			Tags: []string{"plumbing", "licensed"},
			WorkExperience: []service.WorkExperienceInput{
				{
					Company: "PipeWorks", Position: "Plumber", StartDate: "2018-03",
					IsCurrent:        true,
					Responsibilities: []string{"Emergency callouts", "Fixture installation"},
				},
				{
					Company: "AquaFix", Position: "Apprentice", StartDate: "2015-06", EndDate: "2018-02",
				},
			},
		},
		{
			Name: "James Carter", Address: "9 Birch Ave", Age: 41,
			JobTitle: "Cleaning Crew Lead", JobCategory: "OPERATIONS", YearsExperience: 12,
			Tags: []string{"cleaning", "licensed"},
		},
	} {
		if _, err := users.Create(ctx, in); err != nil {
			log.Fatal("seed user", zap.String("name", in.Name), zap.Error(err))
		}
	}

	cleaning, err := services.Create(ctx, service.CreateServiceInput{
		Name: "House Cleaning", Category: "Cleaning", Price: 80, Duration: "2 hours",
		Description: "Standard two-bedroom clean", ProvidersCount: 4,
	})
	if err != nil {
		log.Fatal("seed service", zap.Error(err))
	}
	plumbing, err := services.Create(ctx, service.CreateServiceInput{
		Name: "Leak Repair", Category: "Plumbing", Price: 120, Duration: "1 hour",
	})
	if err != nil {
		log.Fatal("seed service", zap.Error(err))
	}

	for _, in := range []service.CreateBookingInput{
		{
			ServiceID: cleaning.ID, ServiceName: cleaning.Name,
			CustomerName: "Sarah Kim", CustomerPhone: "555-0001",
			Date: "2024-09-02", Time: "10:00", Provider: "Maria Lopez",
			Price: 80, Address: "123 Maple St",
		},
		{
			ServiceID: plumbing.ID, ServiceName: plumbing.Name,
			CustomerName: "Tom Reed", CustomerPhone: "555-0113",
			Date: "2024-09-05", Time: "14:30", Status: "CONFIRMED",
			Provider: "Maria Lopez", Price: 120, Address: "77 Oak Rd",
		},
	} {
		if _, err := bookings.Create(ctx, in); err != nil {
			log.Fatal("seed booking", zap.Error(err))
		}
	}

	log.Info("seed done")
}

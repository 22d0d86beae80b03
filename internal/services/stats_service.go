// internal/services/stats_service.go
package services

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type StatsService struct {
	products   repository.ProductRepository
	cache      cache.Cache
	feePercent float64
	ttl        time.Duration
}

func NewStatsService(products repository.ProductRepository, c cache.Cache, feePercent float64, ttl time.Duration) *StatsService {
	return &StatsService{
		products:   products,
		cache:      c,
		feePercent: feePercent,
		ttl:        ttl,
	}
}

// Dashboard never fails: a broken store yields zeroed figures.
func (s *StatsService) Dashboard(ctx context.Context) models.DashboardStats {
	var stats models.DashboardStats
	if found, err := s.cache.Get(ctx, cache.StatsKey, &stats); err != nil {
		logrus.WithError(err).Warn("Stats cache read failed")
	} else if found {
		return stats
	}

	totals, err := s.products.Totals(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to aggregate dashboard stats")
		return models.DashboardStats{}
	}

	stats = models.DashboardStats{
		NetSales:    roundCents(totals.NetSales),
		Earnings:    roundCents(totals.NetSales * (1 - s.feePercent/100)),
		PageViews:   totals.PageViews,
		TotalOrders: totals.TotalOrders,
	}

	if err := s.cache.Set(ctx, cache.StatsKey, stats, s.ttl); err != nil {
		logrus.WithError(err).Warn("Stats cache write failed")
	}
	return stats
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

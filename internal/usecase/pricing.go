package usecase

import (
	"context"
	"fmt"

	"github.com/stitchworks/imagelib/internal/domain"
)

// LoadPricing — загрузка прайса (кэш-first, путь чтения без ошибки наружу).
func (s *LibraryService) LoadPricing(ctx context.Context, forceRefresh bool) {
	if p, ok := s.pricingCache.GetFromCache(forceRefresh); ok {
		s.setPricing(p)
		s.recordErr(nil)
		return
	}

	p, err := s.pricing.Get(ctx)
	if err != nil {
		s.log.Errorf(ctx, "load pricing failed: %v", err)
		s.recordErr(err)
		return
	}

	s.pricingCache.SetCache(p, forceRefresh)
	s.setPricing(p)
	s.recordErr(nil)
}

// Pricing — текущий прайс и флаг его наличия.
func (s *LibraryService) Pricing() (domain.PricingData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pricingData, s.pricingLoaded
}

func (s *LibraryService) setPricing(p domain.PricingData) {
	s.mu.Lock()
	s.pricingData = p
	s.pricingLoaded = true
	s.mu.Unlock()
}

// UpdatePricing — типизированное частичное обновление прайса.
func (s *LibraryService) UpdatePricing(ctx context.Context, update domain.PricingUpdate) (domain.PricingData, error) {
	p, err := s.pricing.Update(ctx, update)
	if err != nil {
		err = fmt.Errorf("update pricing: %w", err)
		s.recordErr(err)
		return domain.PricingData{}, err
	}

	s.setPricing(p)
	s.pricingCache.SetCache(p, false)
	s.recordErr(nil)
	return p, nil
}

// ResetPricing — сброс прайса к значениям по умолчанию.
func (s *LibraryService) ResetPricing(ctx context.Context) (domain.PricingData, error) {
	p, err := s.pricing.Reset(ctx)
	if err != nil {
		err = fmt.Errorf("reset pricing: %w", err)
		s.recordErr(err)
		return domain.PricingData{}, err
	}

	s.setPricing(p)
	s.pricingCache.InvalidateDomain()
	s.pricingCache.SetCache(p, false)
	s.recordErr(nil)
	return p, nil
}

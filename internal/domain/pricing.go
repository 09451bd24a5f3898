package domain

import "time"

// IncludedItems — что входит в базовую цену куртки.
type IncludedItems struct {
	FrontItems     int `json:"frontItems"`
	BackItems      int `json:"backItems"`
	LeftSideItems  int `json:"leftSideItems"`
	RightSideItems int `json:"rightSideItems"`
}

// AdditionalCosts — доплаты за элементы сверх включённых.
type AdditionalCosts struct {
	FrontExtraItem     float64 `json:"frontExtraItem"`
	RightSideThirdLogo float64 `json:"rightSideThirdLogo"`
	LeftSideThirdLogo  float64 `json:"leftSideThirdLogo"`
}

// PricingData — прайс развертывания (одна запись на деплой).
type PricingData struct {
	BasePrice       float64         `json:"basePrice"`
	IncludedItems   IncludedItems   `json:"includedItems"`
	AdditionalCosts AdditionalCosts `json:"additionalCosts"`
	LastUpdated     time.Time       `json:"lastUpdated"`
	UpdatedBy       string          `json:"updatedBy"`
}

// PricingUpdate — типизированное частичное обновление прайса.
// Заменяет строковые пути вида "additionalCosts.frontExtraItem" из
// исходного контракта: каждое изменяемое поле адресуется явно.
type PricingUpdate struct {
	BasePrice          *float64 `json:"basePrice,omitempty"`
	FrontExtraItem     *float64 `json:"frontExtraItem,omitempty"`
	RightSideThirdLogo *float64 `json:"rightSideThirdLogo,omitempty"`
	LeftSideThirdLogo  *float64 `json:"leftSideThirdLogo,omitempty"`
}

// Apply — накладывает частичное обновление на копию прайса.
func (u PricingUpdate) Apply(p PricingData) PricingData {
	if u.BasePrice != nil {
		p.BasePrice = *u.BasePrice
	}
	if u.FrontExtraItem != nil {
		p.AdditionalCosts.FrontExtraItem = *u.FrontExtraItem
	}
	if u.RightSideThirdLogo != nil {
		p.AdditionalCosts.RightSideThirdLogo = *u.RightSideThirdLogo
	}
	if u.LeftSideThirdLogo != nil {
		p.AdditionalCosts.LeftSideThirdLogo = *u.LeftSideThirdLogo
	}
	return p
}

package models

import "time"

// Property is a tax-auction property record as supplied by the persistence
// layer. Nullable fields use pointers to distinguish zero values from NULL.
type Property struct {
	ID            int64    `gorm:"primaryKey" json:"id"`
	ParcelID      string   `gorm:"index" json:"parcel_id"`
	County        string   `gorm:"index" json:"county"`
	Amount        float64  `json:"amount"`
	Acreage       *float64 `json:"acreage"`
	Description   string   `json:"description"`
	AssessedValue *float64 `json:"assessed_value"`
	WaterScore    *float64 `json:"water_score"`

	InvestmentScore *float64 `json:"investment_score"`
	Rank            *int     `json:"rank"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AcreageValue returns the acreage or 0 when unset.
func (p *Property) AcreageValue() float64 {
	if p.Acreage == nil {
		return 0
	}
	return *p.Acreage
}

// AssessedValueValue returns the assessed value or 0 when unset.
func (p *Property) AssessedValueValue() float64 {
	if p.AssessedValue == nil {
		return 0
	}
	return *p.AssessedValue
}

// WaterScoreValue returns the pre-computed water score or 0 when unset.
func (p *Property) WaterScoreValue() float64 {
	if p.WaterScore == nil {
		return 0
	}
	return *p.WaterScore
}

// InvestmentScoreValue returns the stored investment score or 0 when unset.
func (p *Property) InvestmentScoreValue() float64 {
	if p.InvestmentScore == nil {
		return 0
	}
	return *p.InvestmentScore
}

// PricePerAcre returns the bid amount divided by acreage, with acreage
// floored at 0.01 to guard against division by zero.
func (p *Property) PricePerAcre() float64 {
	acres := p.AcreageValue()
	if acres < 0.01 {
		acres = 0.01
	}
	return p.Amount / acres
}

// ScoreUpdate carries the recomputed scores for one property. Writes are
// idempotent per property id, so an interrupted batch run can be resumed.
type ScoreUpdate struct {
	PropertyID int64

	Description PropertyIntelligence
	County      CountyIntelligence

	InvestmentScore float64
}

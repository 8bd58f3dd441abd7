package response

import (
	"time"

	"scan2plan/internal/domain/entities"
)

// Monetary values are serialized as decimal strings: the breakdown keeps
// full precision and clients must not re-round it.
type BreakdownResponse struct {
	ScanningTotal      string            `json:"scanning_total"`
	BIMTotals          map[string]string `json:"bim_totals"`
	BIMTotal           string            `json:"bim_total"`
	TravelTotal        string            `json:"travel_total"`
	AddOnsTotal        string            `json:"add_ons_total"`
	RiskSurchargeTotal string            `json:"risk_surcharge_total"`
	Total              string            `json:"total"`
}

type QuoteResponse struct {
	ID               string            `json:"id"`
	LeadID           string            `json:"lead_id"`
	QuoteNumber      string            `json:"quote_number"`
	VersionNumber    int               `json:"version_number"`
	ParentQuoteID    string            `json:"parent_quote_id,omitempty"`
	IsLatest         bool              `json:"is_latest"`
	MatrixKind       string            `json:"matrix_kind"`
	PricingBreakdown BreakdownResponse `json:"pricing_breakdown"`
	TotalPrice       string            `json:"total_price"`
	PaymentTerms     string            `json:"payment_terms,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	bim := make(map[string]string, len(q.PricingBreakdown.BIMTotals))
	for d, v := range q.PricingBreakdown.BIMTotals {
		bim[string(d)] = v.String()
	}
	return QuoteResponse{
		ID:            q.ID,
		LeadID:        q.LeadID,
		QuoteNumber:   q.QuoteNumber,
		VersionNumber: q.VersionNumber,
		ParentQuoteID: q.ParentQuoteID,
		IsLatest:      q.IsLatest,
		MatrixKind:    string(q.MatrixKind),
		PricingBreakdown: BreakdownResponse{
			ScanningTotal:      q.PricingBreakdown.ScanningTotal.String(),
			BIMTotals:          bim,
			BIMTotal:           q.PricingBreakdown.BIMTotal().String(),
			TravelTotal:        q.PricingBreakdown.TravelTotal.String(),
			AddOnsTotal:        q.PricingBreakdown.AddOnsTotal.String(),
			RiskSurchargeTotal: q.PricingBreakdown.RiskSurchargeTotal.String(),
			Total:              q.PricingBreakdown.Total.String(),
		},
		TotalPrice:   q.TotalPrice.String(),
		PaymentTerms: q.PaymentTerms,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

type LineItemResponse struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Quantity    string `json:"qty"`
	Unit        string `json:"unit"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

func FromLineItems(items []entities.ProposalLineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			Item:        it.Item,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Unit:        it.Unit,
			Rate:        it.Rate.String(),
			Amount:      it.Amount.String(),
		})
	}
	return out
}

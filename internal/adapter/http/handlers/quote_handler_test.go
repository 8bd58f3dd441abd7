package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"scan2plan/internal/adapter/http/handlers/mocks"
	"scan2plan/internal/domain/entities"
	"scan2plan/internal/pricing"
	"scan2plan/internal/usecase"
)

func newQuoteRouter(uc usecase.IQuoteUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewQuoteHandler(uc)
	r.POST("/v1/quotes", h.CreateQuote)
	r.GET("/v1/quotes/:id", h.GetQuote)
	r.PATCH("/v1/quotes/:id", h.RecalculateQuote)
	r.POST("/v1/quotes/:id/versions", h.CreateQuoteVersion)
	r.GET("/v1/quotes/:id/line-items", h.GetQuoteLineItems)
	r.GET("/v1/leads/:lead_id/quotes", h.ListLeadQuotes)
	r.GET("/v1/leads/:lead_id/quotes/latest", h.GetLeadLatestQuote)
	return r
}

const validQuoteBody = `{
	"lead_id": "lead-1",
	"areas": [{
		"building_type": "office",
		"square_feet": 10000,
		"disciplines": ["architecture"],
		"default_lod": "300"
	}]
}`

func sampleQuote() entities.Quote {
	return entities.Quote{
		ID:            "q1",
		LeadID:        "lead-1",
		QuoteNumber:   "S2P-2026-0007",
		VersionNumber: 1,
		IsLatest:      true,
		PricingBreakdown: entities.PricingBreakdown{
			ScanningTotal: decimal.NewFromInt(2000),
			BIMTotals: map[entities.Discipline]decimal.Decimal{
				entities.DisciplineArchitecture: decimal.NewFromInt(5000),
			},
			Total: decimal.NewFromInt(7000),
		},
		TotalPrice: decimal.NewFromInt(7000),
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("malformed error body: %v", err)
	}
	return body.Code
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("success returns 201 with the created quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(sampleQuote(), nil)

		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
		var resp struct {
			QuoteNumber string `json:"quote_number"`
			Version     int    `json:"version_number"`
			TotalPrice  string `json:"total_price"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("malformed body: %v", err)
		}
		if resp.QuoteNumber != "S2P-2026-0007" || resp.Version != 1 || resp.TotalPrice != "7000" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)

		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", `{"lead_id":`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if code := errorCode(t, w); code != "INVALID_QUOTE_INPUT" {
			t.Fatalf("code = %s, want INVALID_QUOTE_INPUT", code)
		}
	})

	t.Run("missing lead_id is a 400 before the use case runs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)

		body := `{"areas":[{"building_type":"office","square_feet":100,"disciplines":["architecture"],"default_lod":"300"}]}`
		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if code := errorCode(t, w); code != "INVALID_REQUEST" {
			t.Fatalf("code = %s, want INVALID_REQUEST", code)
		}
	})

	t.Run("negative custom travel cost fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)

		body := strings.TrimSuffix(validQuoteBody, "}") + `,"travel":{"custom_travel_cost":-50}}`
		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if code := errorCode(t, w); code != "INVALID_QUOTE_INPUT" {
			t.Fatalf("code = %s, want INVALID_QUOTE_INPUT", code)
		}
	})

	t.Run("missing areas fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)

		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", `{"lead_id":"lead-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("existing quote maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrQuoteAlreadyExists)

		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
		if code := errorCode(t, w); code != "QUOTE_ALREADY_EXISTS" {
			t.Fatalf("code = %s, want QUOTE_ALREADY_EXISTS", code)
		}
	})

	t.Run("missing matrix entry maps to 422 with the full key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{}, &pricing.MatrixEntryNotFoundError{
			MatrixKind:   entities.MatrixStandard,
			BuildingType: "warehouse",
			AreaTier:     entities.TierMedium,
			Discipline:   entities.DisciplineArchitecture,
			LOD:          entities.LOD300,
		})

		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes", validQuoteBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", w.Code)
		}
		if code := errorCode(t, w); code != "MATRIX_ENTRY_NOT_FOUND" {
			t.Fatalf("code = %s, want MATRIX_ENTRY_NOT_FOUND", code)
		}
		if !strings.Contains(w.Body.String(), "warehouse") {
			t.Fatalf("missing key not surfaced: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_CreateQuoteVersion(t *testing.T) {
	t.Run("missing expected_version fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)

		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes/q1/versions", validQuoteBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("version conflict maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().
			CreateVersion(gomock.Any(), "q1", 1, gomock.Any()).
			Return(entities.Quote{}, usecase.ErrVersionConflict)

		body := strings.TrimSuffix(validQuoteBody, "}") + `,"expected_version":1}`
		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes/q1/versions", body)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
		if code := errorCode(t, w); code != "VERSION_CONFLICT" {
			t.Fatalf("code = %s, want VERSION_CONFLICT", code)
		}
	})

	t.Run("success returns 201", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		q := sampleQuote()
		q.ID = "q2"
		q.VersionNumber = 2
		q.ParentQuoteID = "q1"
		uc.EXPECT().CreateVersion(gomock.Any(), "q1", 1, gomock.Any()).Return(q, nil)

		body := strings.TrimSuffix(validQuoteBody, "}") + `,"expected_version":1}`
		w := doRequest(newQuoteRouter(uc), http.MethodPost, "/v1/quotes/q1/versions", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
	})
}

func TestQuoteHandler_RecalculateQuote(t *testing.T) {
	t.Run("non-latest quote maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().
			RecalculateLatest(gomock.Any(), "q1", gomock.Any()).
			Return(entities.Quote{}, usecase.ErrQuoteNotLatest)

		w := doRequest(newQuoteRouter(uc), http.MethodPatch, "/v1/quotes/q1", validQuoteBody)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
		if code := errorCode(t, w); code != "QUOTE_NOT_LATEST" {
			t.Fatalf("code = %s, want QUOTE_NOT_LATEST", code)
		}
	})

	t.Run("success returns the recalculated quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().RecalculateLatest(gomock.Any(), "q1", gomock.Any()).Return(sampleQuote(), nil)

		w := doRequest(newQuoteRouter(uc), http.MethodPatch, "/v1/quotes/q1", validQuoteBody)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})
}

func TestQuoteHandler_Reads(t *testing.T) {
	t.Run("unknown quote id maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := doRequest(newQuoteRouter(uc), http.MethodGet, "/v1/quotes/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if code := errorCode(t, w); code != "QUOTE_NOT_FOUND" {
			t.Fatalf("code = %s, want QUOTE_NOT_FOUND", code)
		}
	})

	t.Run("lead history returns all versions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		v1 := sampleQuote()
		v2 := sampleQuote()
		v2.ID = "q2"
		v2.VersionNumber = 2
		uc.EXPECT().ListByLeadID(gomock.Any(), "lead-1").Return([]entities.Quote{v1, v2}, nil)

		w := doRequest(newQuoteRouter(uc), http.MethodGet, "/v1/leads/lead-1/quotes", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var resp []json.RawMessage
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("malformed body: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("got %d quotes, want 2", len(resp))
		}
	})

	t.Run("latest lookup returns 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().GetLatestByLeadID(gomock.Any(), "lead-1").Return(sampleQuote(), nil)

		w := doRequest(newQuoteRouter(uc), http.MethodGet, "/v1/leads/lead-1/quotes/latest", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("line items returns the proposal rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		uc.EXPECT().LineItems(gomock.Any(), "q1").Return([]entities.ProposalLineItem{
			{Item: "3D Laser Scanning", Quantity: decimal.NewFromInt(10000), Unit: "sqft", Rate: decimal.NewFromFloat(0.2), Amount: decimal.NewFromInt(2000)},
		}, nil)

		w := doRequest(newQuoteRouter(uc), http.MethodGet, "/v1/quotes/q1/line-items", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), "3D Laser Scanning") {
			t.Fatalf("missing scanning row: %s", w.Body.String())
		}
	})
}

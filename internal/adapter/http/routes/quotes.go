package routes

import (
	"scan2plan/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes = "/quotes"
	PathLeads  = "/leads"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id", quoteHandler.RecalculateQuote)
		quotes.POST("/:id/versions", quoteHandler.CreateQuoteVersion)
		quotes.GET("/:id/line-items", quoteHandler.GetQuoteLineItems)
	}

	leads := rg.Group(PathLeads)
	{
		leads.GET("/:lead_id/quotes", quoteHandler.ListLeadQuotes)
		leads.GET("/:lead_id/quotes/latest", quoteHandler.GetLeadLatestQuote)
	}
}

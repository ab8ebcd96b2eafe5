package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"guardrail-quote/calc"
	"guardrail-quote/database"
	"guardrail-quote/metrics"
	"guardrail-quote/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const restrictedCustomer = "Restricted"

// SaveQuote stores a quote. Line weights and prices are recomputed here from
// the submitted dimensions and current rates.
func (h *Handler) SaveQuote(c *gin.Context) {
	var req types.QuoteSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	rates, err := database.GetRates()
	if err != nil {
		h.internalError(c, "save quote", err)
		return
	}

	q := types.Quote{
		QuoteNumber:  req.QuoteNumber,
		CustomerName: req.CustomerName,
		ProjectName:  req.ProjectName,
		CreatedBy:    currentUser(c),
	}
	for i, item := range req.Items {
		pc, in, err := checkCalcRequest(item)
		if err != nil {
			var ie *inputError
			if errors.As(err, &ie) {
				h.fail(c, http.StatusBadRequest, fmt.Sprintf("items[%d]: %s", i, ie.Error()))
				return
			}
			h.internalError(c, "save quote", err)
			return
		}

		weights := calc.Compute(pc, in)
		price := calc.Price(weights, rates, item.Quantity)
		q.Items = append(q.Items, types.QuoteItem{
			PartType:      string(pc.Type),
			ThicknessMm:   in.ThicknessMm,
			LengthMm:      in.LengthMm,
			CoatingGsm:    in.CoatingGsm,
			Quantity:      price.Quantity,
			BlackWeightKg: weights.BlackMaterialWeightKg,
			ZincWeightKg:  weights.ZincWeightKg,
			TotalWeightKg: weights.TotalWeightKg,
			UnitPrice:     calc.Round2(price.UnitPrice),
			LineTotal:     calc.Round2(price.Total),
		})
		q.TotalWeightKg += price.TotalWeightKg
		q.TotalCost += price.Total
	}
	q.TotalWeightKg = calc.Round2(q.TotalWeightKg)
	q.TotalCost = calc.Round2(q.TotalCost)

	err = database.SaveQuote(c.Request.Context(), &q)
	switch {
	case errors.Is(err, database.ErrDuplicateVersion):
		h.fail(c, http.StatusConflict, "No changes detected (same total and project as previous version)")
		return
	case errors.Is(err, database.ErrNotFound):
		h.fail(c, http.StatusNotFound, fmt.Sprintf("quote %d not found", req.QuoteNumber))
		return
	case err != nil:
		h.internalError(c, "save quote", err)
		return
	}

	kind := "new"
	if q.Version > 1 {
		kind = "version"
	}
	metrics.RecordQuoteSaved(kind)
	h.activity.Log(q.CreatedBy, "quote_saved", fmt.Sprintf("Q%d v%d", q.QuoteNumber, q.Version))
	h.log.Info("Quote saved",
		zap.Int("quote_number", q.QuoteNumber),
		zap.Int("version", q.Version),
		zap.Float64("total_cost", q.TotalCost),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"id":            q.ID,
		"quoteNumber":   q.QuoteNumber,
		"version":       q.Version,
		"totalCost":     q.TotalCost,
		"totalWeightKg": q.TotalWeightKg,
	})
}

// ListQuotes returns the history grouped by quote number. Customer names are
// masked for non-admins.
func (h *Handler) ListQuotes(c *gin.Context) {
	groups, err := database.ListQuotes(c.Request.Context())
	if err != nil {
		h.internalError(c, "list quotes", err)
		return
	}

	if !isAdmin(c) {
		for i := range groups {
			groups[i].Latest.CustomerName = restrictedCustomer
			for j := range groups[i].History {
				groups[i].History[j].CustomerName = restrictedCustomer
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) LoadQuote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	q, err := database.GetQuote(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, "load quote", err)
		return
	}
	if !isAdmin(c) {
		q.CustomerName = ""
	}
	c.JSON(http.StatusOK, q)
}

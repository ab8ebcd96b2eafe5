package handlers

import (
	"errors"
	"net/http"

	"guardrail-quote/calc"
	"guardrail-quote/database"
	"guardrail-quote/metrics"
	"guardrail-quote/types"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Parts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parts": calc.Parts()})
}

// Calculate weighs and prices one part line.
func (h *Handler) Calculate(c *gin.Context) {
	var req types.CalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	pc, in, err := checkCalcRequest(req)
	if err != nil {
		h.rejectInput(c, "calculate", err)
		return
	}

	rates, err := database.GetRates()
	if err != nil {
		h.internalError(c, "calculate", err)
		return
	}

	weights := calc.Compute(pc, in)
	metrics.RecordCalculation(string(pc.Type))
	h.activity.Log(currentUser(c), "calculate", string(pc.Type))

	c.JSON(http.StatusOK, types.CalcResponse{
		Part:    pc,
		Weights: weights,
		Legacy:  weights.LegacyFields(),
		Price:   calc.Price(weights, rates, req.Quantity),
	})
}

// Weights answers with the per-part field names only, e.g.
// {blackMaterialWeightKg, zincWeightKg, totalPostWeightKg}.
func (h *Handler) Weights(c *gin.Context) {
	pt, err := calc.ParsePartType(c.Param("part"))
	if err != nil {
		h.fail(c, http.StatusNotFound, err.Error())
		return
	}
	pc, _ := calc.Lookup(pt)

	var req types.WeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	in, err := checkWeightInput(pc, req.ThicknessMm, req.LengthMm, req.CoatingGsm)
	if err != nil {
		var ie *inputError
		if errors.As(err, &ie) {
			metrics.RecordValidationFailure(string(pt), ie.Field)
		}
		h.rejectInput(c, "weights", err)
		return
	}

	weights := calc.Compute(pc, in)
	metrics.RecordCalculation(string(pt))
	c.JSON(http.StatusOK, weights.LegacyFields())
}

func (h *Handler) rejectInput(c *gin.Context, op string, err error) {
	var ie *inputError
	if errors.As(err, &ie) {
		h.fail(c, http.StatusBadRequest, ie.Error())
		return
	}
	h.internalError(c, op, err)
}

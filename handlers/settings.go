package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"guardrail-quote/calc"
	"guardrail-quote/database"
	"guardrail-quote/types"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowSettings(c *gin.Context) {
	s, err := database.LoadSettings()
	if err != nil {
		h.internalError(c, "show settings", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) UpdateRates(c *gin.Context) {
	var req types.RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	r := calc.Rates{SteelPerKg: *req.SteelPerKg, ZincPerKg: *req.ZincPerKg, TaxPercent: *req.TaxPercent}
	if err := database.UpdateRates(r); err != nil {
		h.internalError(c, "update rates", err)
		return
	}
	h.activity.Log(currentUser(c), "rates_updated",
		fmt.Sprintf("steel=%g zinc=%g tax=%g", r.SteelPerKg, r.ZincPerKg, r.TaxPercent))
	c.JSON(http.StatusOK, r)
}

func (h *Handler) AddCoating(c *gin.Context) {
	var g types.CoatingGrade
	if err := c.ShouldBindJSON(&g); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := database.AddCoatingGrade(g); err != nil {
		h.internalError(c, "add coating", err)
		return
	}
	h.activity.Log(currentUser(c), "coating_added", fmt.Sprintf("%g", g.Gsm))
	c.Status(http.StatusCreated)
}

func (h *Handler) DeleteCoating(c *gin.Context) {
	gsm, err := strconv.ParseFloat(c.Param("gsm"), 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "invalid gsm")
		return
	}
	if err := database.DeleteCoatingGrade(gsm); err != nil {
		h.storeError(c, "delete coating", err)
		return
	}
	h.activity.Log(currentUser(c), "coating_removed", fmt.Sprintf("%g", gsm))
	c.Status(http.StatusNoContent)
}

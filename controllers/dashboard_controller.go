package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/service"
	"github.com/azzam1122112-dot/grocery-system/utils"
)

// Dashboard aggregates sales totals, profit, top/bottom sellers and stock
// alerts for the manager. Read-only; recomputed on every request.
func Dashboard(c *gin.Context) {
	f := service.DashboardFilter{
		Start: getDateQ(c, "start"),
		End:   getDateQ(c, "end"),
	}

	svc := service.NewService(config.DB)
	report, err := svc.Dashboard(c.Request.Context(), f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to build dashboard", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

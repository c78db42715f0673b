package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/azzam1122112-dot/grocery-system/cart"
)

// Carts holds every user's pending cart for the lifetime of the process.
var Carts = cart.NewStore()

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id invalid")
	}
	return id, nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on postgres. sqlite (used by the
// test suite) has no FOR UPDATE clause; its single-writer lock already
// serializes the transaction.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// getDateQ parses an ISO date query param (2006-01-02).
func getDateQ(c *gin.Context, key string) *time.Time {
	if s := strings.TrimSpace(c.Query(key)); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
	}
	return nil
}

// applyDateRange filters created_at to [start, end] inclusive of the whole
// end day.
func applyDateRange(q *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		q = q.Where(column+" >= ?", *start)
	}
	if end != nil {
		q = q.Where(column+" < ?", end.AddDate(0, 0, 1))
	}
	return q
}

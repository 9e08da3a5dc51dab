package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"bizhub/internal/domain"
	ordersvc "bizhub/internal/service/order"

	"github.com/gin-gonic/gin"
)

const maxOrderListLimit = 1000

type listOrdersQuery struct {
	Status  string `form:"status"`
	Channel string `form:"channel"`
	From    string `form:"from"`
	To      string `form:"to"`
	Limit   string `form:"limit"`
}

func (q listOrdersQuery) filter() (domain.OrderFilter, error) {
	f := domain.OrderFilter{Status: q.Status, Channel: domain.Channel(q.Channel)}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{q.From, &f.From}, {q.To, &f.To}} {
		if p.raw == "" {
			continue
		}
		t, err := parseTime(p.raw)
		if err != nil {
			return f, err
		}
		*p.dst = &t
	}
	if q.Limit != "" {
		n, err := strconv.Atoi(q.Limit)
		if err != nil || n <= 0 {
			return f, errInvalidLimit
		}
		if n > maxOrderListLimit {
			n = maxOrderListLimit
		}
		f.Limit = n
	}
	return f, nil
}

func (h *handlers) listOrders(c *gin.Context) {
	var q listOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter, err := q.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, err := h.deps.OrderSvc.List(c.Request.Context(), storeFrom(c).ID, filter)
	if err != nil {
		writeError(c, h.logger, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) createOrder(c *gin.Context) {
	var in ordersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}
	store := storeFrom(c)
	if in.PriceCurrency == "" {
		in.PriceCurrency = store.Currency
	}
	created, err := h.deps.OrderSvc.Create(c.Request.Context(), store.ID, in)
	if err != nil {
		writeError(c, h.logger, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          created.ID,
		"orderNumber": created.OrderNumber,
		"message":     "Order created successfully",
	})
}

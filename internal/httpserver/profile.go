package httpserver

import (
	"net/http"
	"strings"
	"time"

	"bizhub/internal/domain"
	"bizhub/internal/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type profileResponse struct {
	Person personResponse `json:"person"`
	Stats  statsResponse  `json:"stats"`
}

type personResponse struct {
	Type string `json:"@type"`
	domain.Person
}

type statsResponse struct {
	domain.ProfileStats
	TotalSpendFormatted    string `json:"totalSpendFormatted"`
	LastOrderDateFormatted string `json:"lastOrderDateFormatted"`
}

type profileSummary struct {
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
}

type profileListResponse struct {
	Customers   []profileResponse `json:"customers"`
	Summary     profileSummary    `json:"summary"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

func toProfileListResponse(profiles []domain.Profile, now time.Time) profileListResponse {
	out := profileListResponse{
		Customers:   make([]profileResponse, 0, len(profiles)),
		GeneratedAt: now,
	}
	for _, p := range profiles {
		out.Customers = append(out.Customers, profileResponse{
			Person: personResponse{Type: "Person", Person: p.Person},
			Stats: statsResponse{
				ProfileStats:           p.Stats,
				TotalSpendFormatted:    profile.FormatMoney(p.Stats.Currency, p.Stats.TotalSpend),
				LastOrderDateFormatted: profile.FormatDate(p.Stats.LastOrderDate),
			},
		})
		out.Summary.Orders += p.Stats.OrderCount
	}
	out.Summary.Customers = len(profiles)
	return out
}

func (h *handlers) listProfiles(c *gin.Context) {
	store := storeFrom(c)
	profiles, err := h.deps.DirectorySvc.List(c.Request.Context(), *store, strings.TrimSpace(c.Query("q")))
	if err != nil {
		writeError(c, h.logger, "Failed to fetch customers", err)
		return
	}
	c.JSON(http.StatusOK, toProfileListResponse(profiles, time.Now().UTC()))
}

func (h *handlers) exportProfiles(c *gin.Context) {
	store := storeFrom(c)
	f, filename, err := h.deps.DirectorySvc.Export(c.Request.Context(), *store, strings.TrimSpace(c.Query("q")))
	if err != nil {
		writeError(c, h.logger, "Failed to export customers", err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("write export", zap.String("store_id", store.ID), zap.Error(err))
	}
}

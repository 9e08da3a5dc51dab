package httpserver

import (
	"net/http"

	"bizhub/internal/domain"
	customersvc "bizhub/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type createCustomerRequest struct {
	Name      string                    `json:"name" binding:"required"`
	Telephone string                    `json:"telephone"`
	Email     string                    `json:"email"`
	Address   *customersvc.AddressInput `json:"address"`
}

type customerResponse struct {
	Context string `json:"@context"`
	Type    string `json:"@type"`
	domain.Customer
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{Context: "https://schema.org", Type: "Person", Customer: c}
}

func (h *handlers) listCustomers(c *gin.Context) {
	store := storeFrom(c)
	customers, err := h.deps.CustomerSvc.List(c.Request.Context(), store.ID)
	if err != nil {
		writeError(c, h.logger, "Failed to fetch customers", err)
		return
	}
	out := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, gin.H{"customers": out})
}

func (h *handlers) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name"})
		return
	}
	store := storeFrom(c)
	created, err := h.deps.CustomerSvc.Create(c.Request.Context(), store.ID, customersvc.CreateInput{
		Name:      req.Name,
		Telephone: req.Telephone,
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		writeError(c, h.logger, "Failed to create customer", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       created.ID,
		"message":  "Customer created successfully",
		"customer": toCustomerResponse(*created),
	})
}

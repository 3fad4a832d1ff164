package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-reservation/models"
	"github.com/yeremiapane/hotel-reservation/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

type customerRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// GetAllCustomers -> every customer ordered by id
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers := []models.Customer{}
	if err := cc.DB.WithContext(c.Request.Context()).Order("id ASC").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := cc.find(c, id)
	if err != nil {
		cc.respondLookupError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		LoyaltyPoints: req.LoyaltyPoints,
	}
	if err := cc.DB.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New customer created (ID=%d)", customer.ID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// UpdateCustomer overwrites all editable fields with the request body.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.find(c, id)
	if err != nil {
		cc.respondLookupError(c, err)
		return
	}

	customer.FullName = req.FullName
	customer.Email = req.Email
	customer.PhoneNumber = req.PhoneNumber
	customer.LoyaltyPoints = req.LoyaltyPoints
	if err := cc.DB.WithContext(c.Request.Context()).Save(customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d updated", customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result := cc.DB.WithContext(c.Request.Context()).Delete(&models.Customer{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrCustomerNotFound)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", id)
	c.Status(http.StatusNoContent)
}

func (cc *CustomerController) find(c *gin.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := cc.DB.WithContext(c.Request.Context()).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (cc *CustomerController) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, ErrCustomerNotFound)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}

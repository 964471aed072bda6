package v1

import (
	"net/http"
	"strconv"

	"urswat-backend/internal/delivery/http/response"
	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(r *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := r.Group("/companies")
	{
		companies.POST("", handler.Register)
		companies.GET("", handler.List)
		companies.PUT("/:id", handler.Update)
		companies.DELETE("/:id", handler.Delete)
	}
}

type RegisterCompanyRequest struct {
	CompanyName   string  `json:"companyName" binding:"required"`
	ContactPerson string  `json:"contactPerson" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone" binding:"required"`
	Industry      *string `json:"industry"`
	Requirements  *string `json:"requirements"`
}

type UpdateCompanyRequest struct {
	CompanyName   *string `json:"companyName"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Industry      *string `json:"industry"`
	Requirements  *string `json:"requirements"`
	Status        *string `json:"status" binding:"omitempty,oneof=lead contacted client discarded"`
}

// Register godoc
// @Summary      Register a company
// @Description  Public company registration
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body  RegisterCompanyRequest  true  "Company JSON"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      400  {object}  response.Response
// @Router       /companies [post]
func (h *CompanyHandler) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company := &domain.Company{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Industry:      req.Industry,
		Requirements:  req.Requirements,
	}

	created, err := h.companyUC.Register(c.Request.Context(), company)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company registered successfully", created)
}

// List godoc
// @Summary      List companies
// @Description  All company records, newest first
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Company}
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Companies fetched", companies)
}

// Update godoc
// @Summary      Update a company
// @Description  Partial update of contact fields and pipeline status
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "Company ID"
// @Param        company  body  UpdateCompanyRequest  true  "Fields to update"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid company id"))
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patch := &domain.CompanyPatch{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Industry:      req.Industry,
		Requirements:  req.Requirements,
		Status:        req.Status,
	}

	company, err := h.companyUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company updated successfully", company)
}

// Delete godoc
// @Summary      Delete a company
// @Tags         companies
// @Produce      json
// @Param        id  path  int  true  "Company ID"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid company id"))
		return
	}

	company, err := h.companyUC.Delete(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company deleted successfully", company)
}

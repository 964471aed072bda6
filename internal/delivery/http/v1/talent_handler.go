package v1

import (
	"errors"
	"net/http"
	"strconv"

	"urswat-backend/internal/delivery/http/response"
	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type TalentHandler struct {
	talentUC domain.TalentUsecase
}

func NewTalentHandler(r *gin.RouterGroup, talentUC domain.TalentUsecase) {
	handler := &TalentHandler{talentUC: talentUC}

	talents := r.Group("/talents")
	{
		talents.POST("", handler.Register)
		talents.GET("", handler.List)
		talents.PUT("/:id", handler.Update)
		talents.DELETE("/:id", handler.Delete)
	}
}

type RegisterTalentRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Phone    string `form:"phone" binding:"required"`
}

type UpdateTalentRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status" binding:"omitempty,oneof=lead contacted client discarded"`
}

// Register godoc
// @Summary      Register a talent
// @Description  Public talent registration with an optional PDF CV (max 5MB)
// @Tags         talents
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName  formData  string  true   "Full name"
// @Param        email     formData  string  true   "Email"
// @Param        phone     formData  string  true   "Phone"
// @Param        cv        formData  file    false  "CV file (PDF)"
// @Success      200  {object}  response.Response{data=domain.Talent}
// @Failure      400  {object}  response.Response
// @Router       /talents [post]
func (h *TalentHandler) Register(c *gin.Context) {
	var req RegisterTalentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	var cv *domain.CVUpload
	fileHeader, err := c.FormFile("cv")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			c.Error(apperror.Internal(openErr))
			return
		}
		defer file.Close()
		cv = &domain.CVUpload{
			Reader:      file,
			Size:        fileHeader.Size,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// CV is optional
	default:
		c.Error(apperror.BadRequest("Invalid cv upload"))
		return
	}

	talent := &domain.Talent{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	created, err := h.talentUC.Register(c.Request.Context(), talent, cv)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Talent registered successfully", created)
}

// List godoc
// @Summary      List talents
// @Description  All talent records, newest first
// @Tags         talents
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Talent}
// @Router       /talents [get]
func (h *TalentHandler) List(c *gin.Context) {
	talents, err := h.talentUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Talents fetched", talents)
}

// Update godoc
// @Summary      Update a talent
// @Description  Partial update of contact fields and pipeline status
// @Tags         talents
// @Accept       json
// @Produce      json
// @Param        id      path  int                  true  "Talent ID"
// @Param        talent  body  UpdateTalentRequest  true  "Fields to update"
// @Success      200  {object}  response.Response{data=domain.Talent}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /talents/{id} [put]
func (h *TalentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid talent id"))
		return
	}

	var req UpdateTalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patch := &domain.TalentPatch{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   req.Status,
	}

	talent, err := h.talentUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Talent updated successfully", talent)
}

// Delete godoc
// @Summary      Delete a talent
// @Tags         talents
// @Produce      json
// @Param        id  path  int  true  "Talent ID"
// @Success      200  {object}  response.Response{data=domain.Talent}
// @Failure      404  {object}  response.Response
// @Router       /talents/{id} [delete]
func (h *TalentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid talent id"))
		return
	}

	talent, err := h.talentUC.Delete(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Talent deleted successfully", talent)
}

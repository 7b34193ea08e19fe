package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

// DeleteUser godoc
// @Summary  Delete a user account; their bookings are purged by the orphan sweep
// @Tags     admin
// @Produce  json
// @Param    id path int true "user id"
// @Success  200 {object} dto.MessageResponse
// @Failure  400 {object} response.ErrorBody
// @Failure  404 {object} response.ErrorBody
// @Router   /admin/users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := uc.auth.DeleteUser(c.Request.Context(), middleware.Requester(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "User deleted successfully."})
}

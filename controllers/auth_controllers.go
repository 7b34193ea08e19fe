package controllers

import (
	"net/http"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth         *services.AuthService
	secureCookie bool
}

func NewAuthController(auth *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{auth: auth, secureCookie: secureCookie}
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AuthCookieName, token, maxAge, "/", "", ac.secureCookie, true)
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	user, token, err := ac.auth.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	ac.setTokenCookie(c, token, int(ac.auth.TokenTTL().Seconds()))
	response.Created(c, dto.AuthResponse{User: dto.NewUserResponse(user), Token: token})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	user, token, err := ac.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	ac.setTokenCookie(c, token, int(ac.auth.TokenTTL().Seconds()))
	response.Success(c, dto.AuthResponse{User: dto.NewUserResponse(user), Token: token})
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.setTokenCookie(c, "", -1)
	response.Success(c, dto.MessageResponse{Message: "Logged out successfully."})
}

func (ac *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

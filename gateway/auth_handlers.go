package gateway

import (
	"net/http"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (g *Gateway) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := g.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (g *Gateway) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := g.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (g *Gateway) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := g.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		g.respondError(c, err)
		return
	}
	// Same answer whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset code has been sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

func (g *Gateway) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := g.auth.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (g *Gateway) getProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := g.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone string `json:"phone" binding:"omitempty,min=7,max=15"`
}

func (g *Gateway) updateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := g.auth.UpdateProfile(c.Request.Context(), userID, req.Name, req.Phone)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type addressRequest struct {
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Pincode   string `json:"pincode" binding:"required,min=4,max=10"`
	IsDefault bool   `json:"isDefault"`
}

func (r addressRequest) toModel() models.Address {
	return models.Address{
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Country:   r.Country,
		Pincode:   r.Pincode,
		IsDefault: r.IsDefault,
	}
}

func (g *Gateway) addAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req addressRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := g.auth.AddAddress(c.Request.Context(), userID, req.toModel())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (g *Gateway) updateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "addressId")
	if !ok {
		return
	}
	var req addressRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := g.auth.UpdateAddress(c.Request.Context(), userID, addressID, req.toModel())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) deleteAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "addressId")
	if !ok {
		return
	}

	user, err := g.auth.DeleteAddress(c.Request.Context(), userID, addressID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) setDefaultAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "addressId")
	if !ok {
		return
	}

	user, err := g.auth.SetDefaultAddress(c.Request.Context(), userID, addressID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

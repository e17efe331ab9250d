package server

import (
	"errors"
	"net/http"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (s *Server) updateProfile(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.auth.UpdateProfile(c.Request.Context(), userID, req.FirstName, req.LastName, req.Phone); err != nil {
		s.logger.Error("Update profile error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
	})
}

func (s *Server) listAddresses(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	addresses, err := s.store.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error("Get addresses error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"addresses": addresses,
	})
}

type addressRequest struct {
	Type         string `json:"type"`
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
}

func (s *Server) addAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" || req.AddressLine1 == "" || req.City == "" || req.State == "" || req.ZipCode == "" {
		fail(c, http.StatusBadRequest, "Required fields: fullName, addressLine1, city, state, zipCode")
		return
	}
	if req.Type == "" {
		req.Type = "home"
	}
	if req.Country == "" {
		req.Country = "India"
	}

	address := &models.Address{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         req.Type,
		FullName:     req.FullName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
	if err := s.store.CreateAddress(c.Request.Context(), address); err != nil {
		s.logger.Error("Add address error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to add address")
		return
	}

	s.logger.Info("Address added",
		zap.String("address_id", address.ID),
		zap.String("user_id", userID))

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Address added successfully",
		"addressId": address.ID,
	})
}

func (s *Server) updateAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	addressID := c.Param("id")

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	address := &models.Address{
		ID:           addressID,
		UserID:       userID,
		Type:         req.Type,
		FullName:     req.FullName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
	if err := s.store.UpdateAddress(c.Request.Context(), address); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Address not found")
			return
		}
		s.logger.Error("Update address error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to update address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address updated successfully",
	})
}

func (s *Server) deleteAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	addressID := c.Param("id")

	if err := s.store.DeleteAddress(c.Request.Context(), addressID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Address not found")
			return
		}
		s.logger.Error("Delete address error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to delete address")
		return
	}

	s.logger.Info("Address deleted",
		zap.String("address_id", addressID),
		zap.String("user_id", userID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address deleted successfully",
	})
}

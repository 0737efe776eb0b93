package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"turnia/models"
	professionalService "turnia/services/professional"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfessionalHandler exposes the professional account and catalog endpoints.
type ProfessionalHandler struct {
	ProfessionalService professionalService.ProfessionalService
}

// RegisterProfessionalHandler handles POST /api/professionals/register.
func (h *ProfessionalHandler) RegisterProfessionalHandler(c *gin.Context) {
	logger := getLogger(c)

	var reg models.ProfessionalRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.ProfessionalService.Register(reg)
	if err != nil {
		logger.Error("Professional registration failed", zap.String("email", reg.Email), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateProfessionalHandler handles POST /api/professionals/login.
func (h *ProfessionalHandler) AuthenticateProfessionalHandler(c *gin.Context) {
	logger := getLogger(c)

	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.ProfessionalService.Authenticate(creds)
	if err != nil {
		logger.Warn("Professional authentication failed", zap.String("email", creds.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProfessionalsHandler handles GET /api/professionals. Public; supports
// an optional ?specialty= filter.
func (h *ProfessionalHandler) ListProfessionalsHandler(c *gin.Context) {
	pros, err := h.ProfessionalService.ListProfessionals(c.Query("specialty"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pros)
}

// GetProfessionalByIDHandler handles GET /api/professionals/:id. Public.
func (h *ProfessionalHandler) GetProfessionalByIDHandler(c *gin.Context) {
	id := c.Param("id")
	pro, err := h.ProfessionalService.GetProfessionalByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pro)
}

// UpdateProfessionalHandler handles PUT /api/professionals/me.
func (h *ProfessionalHandler) UpdateProfessionalHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var updateReq models.Professional
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updateReq.ID = id

	updated, err := h.ProfessionalService.UpdateProfessional(updateReq)
	if err != nil {
		logger.Error("Failed to update professional", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProfessionalHandler handles DELETE /api/professionals/me.
func (h *ProfessionalHandler) DeleteProfessionalHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.ProfessionalService.DeleteProfessional(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// RevokeProfessionalAuthTokenHandler handles POST /api/professionals/logout.
func (h *ProfessionalHandler) RevokeProfessionalAuthTokenHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.ProfessionalService.RevokeAuthToken(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session revoked"})
}

// UpdateProfessionalFCMTokenHandler handles PUT /api/professionals/me/fcm-token.
func (h *ProfessionalHandler) UpdateProfessionalFCMTokenHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.ProfessionalService.UpdateFCMToken(id, req.FCMToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fcm token updated"})
}

// AddServiceHandler handles POST /api/professionals/me/services.
func (h *ProfessionalHandler) AddServiceHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var svc models.ServiceOffering
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pro, err := h.ProfessionalService.AddService(id, svc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pro)
}

// RemoveServiceHandler handles DELETE /api/professionals/me/services/:serviceID.
func (h *ProfessionalHandler) RemoveServiceHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pro, err := h.ProfessionalService.RemoveService(id, c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pro)
}

// UploadAvatarHandler handles POST /api/professionals/me/avatar. The file is
// staged on disk before going to the media storage backend.
func (h *ProfessionalHandler) UploadAvatarHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	url, err := h.ProfessionalService.UploadAvatar(id, tempFilePath)
	if err != nil {
		logger.Error("Avatar upload failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

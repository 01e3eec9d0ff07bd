package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardano2vn/group-signup/config"
)

// ConfigHandler exposes the public part of the configuration to the
// front end. Only the reCAPTCHA site key ever leaves the process; the
// secret key, sheet id and credentials stay server-side.
type ConfigHandler struct {
	Cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{Cfg: cfg}
}

func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"verificationSiteKey": h.Cfg.RecaptchaSiteKey,
	})
}

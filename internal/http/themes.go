package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/entities"
	"github.com/rennsz/fansite/internal/utils"
)

// ThemeStore is the slice of the store the controller needs.
type ThemeStore interface {
	ThemeSettings() entities.ThemeSettings
	UpdateThemeSettings(ctx context.Context, patch entities.ThemeSettingsPatch) (entities.ThemeSettings, error)
}

type updateThemeRequest struct {
	Theme       string                `json:"theme" binding:"required"`
	CustomTheme *entities.CustomTheme `json:"customTheme"`
}

type adminThemeRequest struct {
	Theme              string  `json:"theme" binding:"required"`
	MaintenanceMode    bool    `json:"maintenanceMode"`
	MaintenanceMessage *string `json:"maintenanceMessage"`
}

type customThemeRequest struct {
	PrimaryColor    string `json:"primaryColor" binding:"required"`
	SecondaryColor  string `json:"secondaryColor" binding:"required"`
	AccentColor     string `json:"accentColor" binding:"required"`
	BackgroundColor string `json:"backgroundColor" binding:"required"`
	TextColor       string `json:"textColor" binding:"required"`
}

// defaultMaintenanceMessage is shown when maintenance mode is enabled
// without a custom message.
const defaultMaintenanceMessage = "Site is under maintenance. Please check back later."

type ThemesController struct {
	store ThemeStore
	audit *audit.Logger
}

func NewThemesController(store ThemeStore, auditLogger *audit.Logger) *ThemesController {
	return &ThemesController{store: store, audit: auditLogger}
}

// Get serves the current theme. Public: the marketing page reads it on load.
func (controller *ThemesController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, controller.store.ThemeSettings())
}

// Update switches the active theme. Public by design: visitors can pick a
// display theme without an admin session.
func (controller *ThemesController) Update(c *gin.Context) {
	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Theme name is required")
		return
	}

	patch := entities.ThemeSettingsPatch{CurrentTheme: &req.Theme}
	if req.Theme == "custom" && req.CustomTheme != nil {
		if !validCustomTheme(*req.CustomTheme) {
			respondBadRequest(c, "Failed to update theme")
			return
		}
		patch.CustomTheme = req.CustomTheme
	}

	settings, err := controller.store.UpdateThemeSettings(c.Request.Context(), patch)
	if err != nil {
		respondInternalError(c, err, "Failed to update theme")
		return
	}

	controller.audit.Info(c.Request.Context(), fmt.Sprintf("Theme updated: %s", req.Theme), "system")
	c.JSON(http.StatusOK, settings)
}

// AdminGet serves theme settings to the admin panel.
func (controller *ThemesController) AdminGet(c *gin.Context) {
	c.JSON(http.StatusOK, controller.store.ThemeSettings())
}

// AdminUpdate sets the theme plus maintenance mode flags.
func (controller *ThemesController) AdminUpdate(c *gin.Context) {
	var req adminThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Theme name is required")
		return
	}

	message := defaultMaintenanceMessage
	if req.MaintenanceMessage != nil && *req.MaintenanceMessage != "" {
		message = *req.MaintenanceMessage
	}

	settings, err := controller.store.UpdateThemeSettings(c.Request.Context(), entities.ThemeSettingsPatch{
		CurrentTheme:       &req.Theme,
		MaintenanceMode:    &req.MaintenanceMode,
		MaintenanceMessage: &message,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to update theme settings")
		return
	}

	controller.audit.Info(c.Request.Context(), fmt.Sprintf("Admin updated theme: %s", req.Theme), "admin")
	c.JSON(http.StatusOK, settings)
}

// AdminUpdateCustom stores a custom palette and makes it the active theme.
func (controller *ThemesController) AdminUpdateCustom(c *gin.Context) {
	var req customThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Failed to update custom theme")
		return
	}

	customTheme := entities.CustomTheme{
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		AccentColor:     req.AccentColor,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
	}
	if !validCustomTheme(customTheme) {
		respondBadRequest(c, "Failed to update custom theme")
		return
	}

	theme := "custom"
	settings, err := controller.store.UpdateThemeSettings(c.Request.Context(), entities.ThemeSettingsPatch{
		CurrentTheme: &theme,
		CustomTheme:  &customTheme,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to update custom theme")
		return
	}

	controller.audit.Info(c.Request.Context(), "Custom theme created and applied", "admin")
	c.JSON(http.StatusOK, settings)
}

// validCustomTheme checks that every supplied palette colour is a hex value.
func validCustomTheme(theme entities.CustomTheme) bool {
	colors := []string{
		theme.PrimaryColor,
		theme.SecondaryColor,
		theme.AccentColor,
		theme.BackgroundColor,
		theme.TextColor,
	}
	for _, color := range colors {
		if color != "" && !utils.ValidHexColor(color) {
			return false
		}
	}
	return true
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	home     *HomeHandler
	exporter *services.ExportService
}

func NewExportHandler(home *HomeHandler, exporter *services.ExportService) *ExportHandler {
	return &ExportHandler{
		home:     home,
		exporter: exporter,
	}
}

// Export streams the profile and repository statistics of ?username= as an XLSX file
func (h *ExportHandler) Export(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		renderError(c, http.StatusBadRequest, usernameRequiredMessage)
		return
	}
	opts := models.StatsOptions{ExcludeForks: formBool(c.Query("exclude_forks"))}

	profile, ok := h.home.fetchProfile(c, username)
	if !ok {
		return
	}

	stats, err := h.home.stats.Aggregate(c.Request.Context(), username, opts)
	if err != nil {
		c.Error(err)
		stats = nil
	}

	var buf bytes.Buffer
	if err := h.exporter.WriteXLSX(&buf, profile, stats); err != nil {
		c.Error(err)
		renderError(c, http.StatusInternalServerError, "The export could not be created.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-stats.xlsx"`, profile.Login))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

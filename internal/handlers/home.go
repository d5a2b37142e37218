package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	userNotFoundMessage      = "This user was not found."
	githubUnreachableMessage = "GitHub could not be reached. Try again later."
	usernameRequiredMessage  = "Please enter a GitHub username."
)

// ProfileFetcher retrieves a GitHub user profile
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.UserProfile, error)
}

// StatsAggregator computes repository statistics for a GitHub user
type StatsAggregator interface {
	Aggregate(ctx context.Context, username string, opts models.StatsOptions) (*models.RepoStats, error)
}

type HomeHandler struct {
	profiles ProfileFetcher
	stats    StatsAggregator
}

func NewHomeHandler(profiles ProfileFetcher, stats StatsAggregator) *HomeHandler {
	return &HomeHandler{
		profiles: profiles,
		stats:    stats,
	}
}

// Index renders the username form
func (h *HomeHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Title": "Home",
	})
}

// Lookup handles the submitted form: profile first, repository stats only for a found user
func (h *HomeHandler) Lookup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	opts := models.StatsOptions{ExcludeForks: formBool(c.PostForm("exclude_forks"))}

	if username == "" {
		c.HTML(http.StatusBadRequest, "index", gin.H{
			"Title":        "Home",
			"Error":        usernameRequiredMessage,
			"ExcludeForks": opts.ExcludeForks,
		})
		return
	}

	profile, ok := h.fetchProfile(c, username)
	if !ok {
		return
	}

	stats, err := h.stats.Aggregate(c.Request.Context(), username, opts)
	if err != nil {
		// The profile is still worth showing
		c.Error(err)
		stats = nil
	}

	c.HTML(http.StatusOK, "stats", gin.H{
		"Title":   profile.Login,
		"Profile": profile,
		"Stats":   stats,
	})
}

// fetchProfile renders the error view and returns false when the profile cannot be loaded
func (h *HomeHandler) fetchProfile(c *gin.Context, username string) (*models.UserProfile, bool) {
	profile, err := h.profiles.FetchProfile(c.Request.Context(), username)
	if err == nil {
		return profile, true
	}

	c.Error(err)
	switch {
	case errors.Is(err, services.ErrNotFound):
		renderError(c, http.StatusNotFound, userNotFoundMessage)
	case errors.Is(err, services.ErrEmptyUsername):
		renderError(c, http.StatusBadRequest, usernameRequiredMessage)
	default:
		renderError(c, http.StatusBadGateway, githubUnreachableMessage)
	}
	return nil, false
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{
		"Title":   "Error",
		"Message": message,
	})
}

// formBool accepts checkbox ("on") and boolean form values
func formBool(value string) bool {
	if value == "on" {
		return true
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

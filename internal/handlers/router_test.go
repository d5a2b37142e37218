package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) FetchProfile(ctx context.Context, username string) (*models.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

type mockStats struct {
	mock.Mock
}

func (m *mockStats) Aggregate(ctx context.Context, username string, opts models.StatsOptions) (*models.RepoStats, error) {
	args := m.Called(ctx, username, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepoStats), args.Error(1)
}

func setupRouter(t *testing.T) (*gin.Engine, *mockProfiles, *mockStats) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	profiles := new(mockProfiles)
	stats := new(mockStats)

	router, err := NewRouter(profiles, stats, services.NewExportService(), logger)
	require.NoError(t, err)

	return router, profiles, stats
}

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleStats() *models.RepoStats {
	return &models.RepoStats{
		RepoCount:      3,
		StargazerCount: 12,
		ForkCount:      4,
		AvgRepoSize:    2048,
		Languages: []models.LanguageCount{
			{Language: "Go", Count: 2},
			{Language: "Rust", Count: 1},
		},
	}
}

func TestIndexRendersForm(t *testing.T) {
	router, _, _ := setupRouter(t)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="username"`)
	assert.Contains(t, w.Body.String(), `method="post"`)
	assert.NotContains(t, w.Body.String(), "value=")
}

func TestLookupSuccess(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	name := "The Octocat"
	profiles.On("FetchProfile", mock.Anything, "octocat").Return(&models.UserProfile{Login: "octocat", Name: &name}, nil)
	stats.On("Aggregate", mock.Anything, "octocat", models.StatsOptions{}).Return(sampleStats(), nil)

	w := postForm(router, url.Values{"username": {"octocat"}})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "The Octocat")
	assert.Contains(t, body, "<dt>Bio</dt><dd>None</dd>")
	assert.Contains(t, body, "<dt>Total repos</dt><dd>3</dd>")
	assert.Contains(t, body, "<dt>Total stargazers</dt><dd>12</dd>")
	assert.Contains(t, body, "<dt>Average repo size</dt><dd>2.00 KB</dd>")
	assert.Contains(t, body, "<li>Go: 2</li>")
	assert.Less(t, strings.Index(body, "Go: 2"), strings.Index(body, "Rust: 1"))

	profiles.AssertExpectations(t)
	stats.AssertExpectations(t)
}

func TestLookupExcludeForks(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "octocat").Return(&models.UserProfile{Login: "octocat"}, nil)
	excluded := sampleStats()
	excluded.ForksExcluded = true
	stats.On("Aggregate", mock.Anything, "octocat", models.StatsOptions{ExcludeForks: true}).Return(excluded, nil)

	w := postForm(router, url.Values{"username": {"octocat"}, "exclude_forks": {"on"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "(forks excluded)")
	stats.AssertExpectations(t)
}

func TestLookupUserNotFoundSkipsStats(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "ghost").
		Return(nil, &services.StatusError{Endpoint: "/users/ghost", StatusCode: http.StatusNotFound})

	w := postForm(router, url.Values{"username": {"ghost"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "This user was not found.")
	stats.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestLookupGitHubUnreachable(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "octocat").Return(nil, errors.New("dial tcp: connection refused"))

	w := postForm(router, url.Values{"username": {"octocat"}})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "GitHub could not be reached")
	stats.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestLookupBlankUsername(t *testing.T) {
	router, profiles, _ := setupRouter(t)

	w := postForm(router, url.Values{"username": {"   "}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a GitHub username.")
	profiles.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestLookupStatsUnavailable(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "octocat").Return(&models.UserProfile{Login: "octocat"}, nil)
	stats.On("Aggregate", mock.Anything, "octocat", models.StatsOptions{}).
		Return(nil, &services.StatusError{Endpoint: "/users/octocat/repos", StatusCode: http.StatusInternalServerError})

	w := postForm(router, url.Values{"username": {"octocat"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "octocat")
	assert.Contains(t, w.Body.String(), "Repository statistics are unavailable.")
}

func TestLookupNoLanguages(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "newbie").Return(&models.UserProfile{Login: "newbie"}, nil)
	stats.On("Aggregate", mock.Anything, "newbie", models.StatsOptions{}).
		Return(&models.RepoStats{Languages: []models.LanguageCount{}}, nil)

	w := postForm(router, url.Values{"username": {"newbie"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<dt>Total repos</dt><dd>0</dd>")
	assert.Contains(t, w.Body.String(), "<dt>Average repo size</dt><dd>0 B</dd>")
	assert.Contains(t, w.Body.String(), "No languages detected.")
}

func TestExport(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "octocat").Return(&models.UserProfile{Login: "octocat"}, nil)
	stats.On("Aggregate", mock.Anything, "octocat", models.StatsOptions{ExcludeForks: true}).Return(sampleStats(), nil)

	req, _ := http.NewRequest("GET", "/export?username=octocat&exclude_forks=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "octocat-stats.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue("Statistics", "B3")
	require.NoError(t, err)
	assert.Equal(t, "12", value)
}

func TestExportUserNotFound(t *testing.T) {
	router, profiles, stats := setupRouter(t)
	profiles.On("FetchProfile", mock.Anything, "ghost").
		Return(nil, &services.StatusError{Endpoint: "/users/ghost", StatusCode: http.StatusNotFound})

	req, _ := http.NewRequest("GET", "/export?username=ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "This user was not found.")
	stats.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthAndNotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	req, _ = http.NewRequest("GET", "/nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/nope")
	assert.Contains(t, w.Body.String(), "Requested at ")
}

func TestFormBool(t *testing.T) {
	assert.True(t, formBool("on"))
	assert.True(t, formBool("true"))
	assert.True(t, formBool("1"))
	assert.False(t, formBool(""))
	assert.False(t, formBool("off"))
	assert.False(t, formBool("false"))
}

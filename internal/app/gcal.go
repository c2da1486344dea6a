package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ExternalEvent is a read-only event pulled from the user's Google Calendar,
// shown next to local appointments but never persisted.
type ExternalEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
}

// googleOAuthConfig returns nil when the integration is not configured.
func (a *App) googleOAuthConfig() *oauth2.Config {
	if a.Cfg.GoogleClientID == "" || a.Cfg.GoogleClientSecret == "" || a.Cfg.GoogleRedirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     a.Cfg.GoogleClientID,
		ClientSecret: a.Cfg.GoogleClientSecret,
		RedirectURL:  a.Cfg.GoogleRedirectURL,
		Scopes:       []string{gcal.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// GET /api/integrations/google/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	conf := a.googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google calendar integration is not configured"})
		return
	}

	state := fmt.Sprintf("user_%s_%d", currentUserID(c), time.Now().Unix())
	c.JSON(http.StatusOK, gin.H{
		"authUrl": conf.AuthCodeURL(state, oauth2.AccessTypeOffline),
		"state":   state,
	})
}

// GET /oauth2callback
// Open route: Google redirects the browser here with the consent code.
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	conf := a.googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google calendar integration is not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}

	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange authorization code"})
		return
	}

	// The client keeps the token and replays it on event fetches.
	tokenJSON, _ := json.Marshal(token)
	c.JSON(http.StatusOK, gin.H{
		"message": "authorization successful",
		"state":   c.Query("state"),
		"token":   string(tokenJSON),
	})
}

// GET /api/integrations/google/events?timeMin=&timeMax=
// The OAuth token obtained from the callback travels in X-Google-Token.
func (a *App) GoogleEventsHandler(c *gin.Context) {
	conf := a.googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google calendar integration is not configured"})
		return
	}

	tokenStr := c.GetHeader("X-Google-Token")
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Google-Token header required"})
		return
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token format"})
		return
	}

	ctx := c.Request.Context()
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, &token)))
	if err != nil {
		log.Printf("gcal: service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	call := srv.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250)
	if min := c.Query("timeMin"); min != "" {
		call = call.TimeMin(min)
	}
	if max := c.Query("timeMax"); max != "" {
		call = call.TimeMax(max)
	}

	events, err := call.Do()
	if err != nil {
		log.Printf("gcal: events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]ExternalEvent, 0, len(events.Items))
	for _, item := range events.Items {
		out = append(out, ExternalEvent{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			Status:      item.Status,
			StartTime:   parseEventTime(item.Start),
			EndTime:     parseEventTime(item.End),
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out, "count": len(out)})
}

// parseEventTime handles both timed and all-day Google events.
func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

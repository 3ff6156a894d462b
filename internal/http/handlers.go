package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/notification"
	"github.com/spikeware/courtside/internal/pubsub"
	"github.com/spikeware/courtside/internal/roster"
	"github.com/spikeware/courtside/internal/schedule"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// respondJSON writes v as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps domain errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	case errors.Is(err, roster.ErrMatchNotFound),
		errors.Is(err, schedule.ErrMatchNotFound),
		errors.Is(err, identity.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, roster.ErrAlreadyJoined),
		errors.Is(err, roster.ErrNotJoined),
		errors.Is(err, roster.ErrMatchCancelled):
		respondJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.Users.GetAllUsers()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, users)
	}
}

// rosterEntry is one player on a match roster, with the user record joined in.
type rosterEntry struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

// matchView is a match plus its current roster.
type matchView struct {
	*schedule.Match
	ConfirmedCount int           `json:"confirmedCount"`
	Roster         []rosterEntry `json:"roster"`
}

func (s *Server) matchView(match *schedule.Match) (*matchView, error) {
	rsvps, err := s.Roster.RSVPsForMatch(match.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rsvps))
	for _, r := range rsvps {
		ids = append(ids, r.UserID)
	}
	users, err := s.Users.GetUsers(ids)
	if err != nil {
		return nil, err
	}

	view := &matchView{Match: match, Roster: make([]rosterEntry, 0, len(rsvps))}
	for _, r := range rsvps {
		entry := rosterEntry{
			UserID:   r.UserID,
			Status:   r.Status,
			JoinedAt: r.JoinedAt,
		}
		if user, ok := users[r.UserID]; ok {
			entry.Name = user.Name
			entry.Avatar = user.Avatar
		}
		if r.Status == roster.StatusConfirmed {
			view.ConfirmedCount++
		}
		view.Roster = append(view.Roster, entry)
	}
	return view, nil
}

func (s *Server) WeekMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := time.Now()
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := time.Parse(schedule.DateFormat, dateStr)
			if err != nil {
				respondError(w, &ValidationError{Field: "date", Reason: "expected format 2006-01-02"})
				return
			}
			day = parsed
		}

		start, end := schedule.WeekBounds(day)
		matches, err := s.Matches.MatchesInRange(start, end)
		if err != nil {
			respondError(w, err)
			return
		}

		views := make([]*matchView, 0, len(matches))
		for _, match := range matches {
			view, err := s.matchView(match)
			if err != nil {
				respondError(w, err)
				return
			}
			views = append(views, view)
		}
		respondJSON(w, http.StatusOK, views)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	type request struct {
		Date      string `json:"date"`
		TimeSlot  string `json:"timeSlot"`
		StartTime string `json:"startTime"`
		MatchType string `json:"matchType"`
		Capacity  *int   `json:"capacity"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &ValidationError{Field: "body", Reason: "invalid JSON"})
			return
		}
		if _, err := time.Parse(schedule.DateFormat, req.Date); err != nil {
			respondError(w, &ValidationError{Field: "date", Reason: "expected format 2006-01-02"})
			return
		}
		if req.TimeSlot == "" {
			respondError(w, &ValidationError{Field: "timeSlot", Reason: "must not be empty"})
			return
		}
		capacity := schedule.DefaultCapacity
		if req.Capacity != nil {
			if *req.Capacity < 0 {
				respondError(w, &ValidationError{Field: "capacity", Reason: "must not be negative"})
				return
			}
			capacity = *req.Capacity
		}

		match, err := s.Matches.CreateMatch(req.Date, req.TimeSlot, req.StartTime, req.MatchType, capacity)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := s.Matches.GetMatch(r.PathValue("matchID"))
		if err != nil {
			respondError(w, err)
			return
		}
		view, err := s.matchView(match)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// validateName enforces the display name contract for roster requests.
func validateName(name string) *ValidationError {
	if len(name) < 2 || len(name) > 50 {
		return &ValidationError{Field: "name", Reason: "must be between 2 and 50 characters"}
	}
	return nil
}

func (s *Server) JoinMatchHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Team   string `json:"team"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		isDryRun := isDryRunFromContext(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &ValidationError{Field: "body", Reason: "invalid JSON"})
			return
		}

		var user *identity.User
		var err error
		if req.UserID != "" {
			user, err = s.Users.GetUser(req.UserID)
		} else {
			if vErr := validateName(req.Name); vErr != nil {
				respondError(w, vErr)
				return
			}
			user, err = s.Users.ResolveUser(req.Name, req.Team)
		}
		if err != nil {
			respondError(w, err)
			return
		}

		result, err := s.Roster.Join(matchID, user.ID)
		if err != nil {
			respondError(w, err)
			return
		}

		s.Metrics.IncJoins()
		s.MetricsStore.Increment("joins")
		if result.RSVP.Status == roster.StatusWaitlisted {
			s.Metrics.IncWaitlisted()
			s.MetricsStore.Increment("waitlisted")
		}

		if result.MatchFull {
			event := pubsub.RosterEvent{MatchID: matchID, UserID: user.ID, Status: result.RSVP.Status}
			if err := s.pubsub.SendMessage(pubsub.EventMatchFull, event); err != nil {
				log.Error("Failed to publish match-full event", "error", err, "match", matchID)
			}
			if match, err := s.Matches.GetMatch(matchID); err == nil {
				if err := s.Notifier.SendMatchFullNotification(match, isDryRun); err != nil {
					log.Error("Failed to send match-full notification", "error", err, "match", matchID)
				}
			}
		}

		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) LeaveMatchHandler() http.HandlerFunc {
	type request struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		isDryRun := isDryRunFromContext(r)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, &ValidationError{Field: "body", Reason: "invalid JSON"})
			return
		}

		userID := req.UserID
		if userID == "" {
			if vErr := validateName(req.Name); vErr != nil {
				respondError(w, vErr)
				return
			}
			user, err := s.Users.LookupByName(req.Name)
			if errors.Is(err, identity.ErrUserNotFound) {
				// An unknown name cannot have joined anything.
				respondError(w, roster.ErrNotJoined)
				return
			}
			if err != nil {
				respondError(w, err)
				return
			}
			userID = user.ID
		}

		result, err := s.Roster.Leave(matchID, userID)
		if err != nil {
			respondError(w, err)
			return
		}

		s.Metrics.IncLeaves()
		s.MetricsStore.Increment("leaves")

		if result.Promoted != nil {
			s.Metrics.IncPromotions()
			s.MetricsStore.Increment("waitlist_promotions")
			event := pubsub.RosterEvent{MatchID: matchID, UserID: result.Promoted.UserID, Status: result.Promoted.Status}
			if err := s.pubsub.SendMessage(pubsub.EventWaitlistPromoted, event); err != nil {
				log.Error("Failed to publish waitlist-promoted event", "error", err, "match", matchID)
			}
			match, matchErr := s.Matches.GetMatch(matchID)
			promoted, userErr := s.Users.GetUser(result.Promoted.UserID)
			if matchErr == nil && userErr == nil {
				if err := s.Notifier.SendPromotionNotification(match, promoted, isDryRun); err != nil {
					log.Error("Failed to send promotion notification", "error", err, "match", matchID)
				}
			}
		}

		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) CancelMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		if err := s.Matches.CancelMatch(matchID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": schedule.StatusCancelled})
	}
}

// leaderboardWindow resolves the requested period to a date range. The
// default is the trailing 30 days; "week" selects the current Monday-start week.
func leaderboardWindow(period string, now time.Time) (string, string) {
	if period == "week" {
		return schedule.WeekBounds(now)
	}
	return now.AddDate(0, 0, -30).Format(schedule.DateFormat), now.Format(schedule.DateFormat)
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end := leaderboardWindow(r.URL.Query().Get("period"), time.Now())
		standings, err := s.Stats.PlayerStats(start, end)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) UserStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end := schedule.WeekBounds(time.Now())
		userStats, err := s.Stats.UserStats(r.PathValue("userID"), start, end)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, userStats)
	}
}

func (s *Server) ListNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := s.Notifications.ListPending(r.PathValue("userID"), time.Now())
		if err != nil {
			respondError(w, err)
			return
		}
		if pending == nil {
			pending = []*notification.Notification{}
		}
		respondJSON(w, http.StatusOK, pending)
	}
}

func (s *Server) EnsureSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := time.Now()
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := time.Parse(schedule.DateFormat, dateStr)
			if err != nil {
				respondError(w, &ValidationError{Field: "date", Reason: "expected format 2006-01-02"})
				return
			}
			base = parsed
		}

		created, err := s.Matches.EnsureWeeklySlots(base)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"created": created})
	}
}

// NotificationTaskHandler receives pubsub push messages from the reminder
// scheduler and records them as notifications.
func (s *Server) NotificationTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notification task message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var payload notification.NewNotification
		if err := s.pubsub.ProcessMessage(rawData, &payload); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if _, err := s.Notifications.Create(payload); err != nil {
			log.Error("Failed to record notification", "error", err)
			http.Error(w, "Failed to record notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		s.Metrics.IncSlackCommands()

		start, end := leaderboardWindow(r.FormValue("text"), time.Now())
		standings, err := s.Stats.PlayerStats(start, end)
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		s.Metrics.IncSlackCommands()

		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)

		var msg any
		user, err := s.Users.LookupByName(playerName)
		if err != nil {
			log.Warn("Could not find player", "player", playerName, "error", err)
			msg, err = s.Notifier.FormatUserNotFoundResponse(playerName)
		} else {
			start, end := schedule.WeekBounds(time.Now())
			userStats, statsErr := s.Stats.UserStats(user.ID, start, end)
			if statsErr != nil {
				err = statsErr
			} else {
				msg, err = s.Notifier.FormatUserStatsResponse(userStats)
			}
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

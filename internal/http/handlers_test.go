package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/court-queue/internal/config"
	"github.com/mauv0809/court-queue/internal/database"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/metrics"
	"github.com/mauv0809/court-queue/internal/notifier"
	"github.com/mauv0809/court-queue/internal/pubsub"
	"github.com/mauv0809/court-queue/internal/session"
	"github.com/mauv0809/court-queue/internal/settings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with an in-memory database and mock clients.
func setupTestServer(t *testing.T, notifier notifier.Notifier, cfg config.Config) (*Server, *pubsub.MockPubSubClient, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	sess := session.New(history.New(db), metricsSvc)
	ps := pubsub.NewMock()

	server := NewServer(sess, settings.New(db), metricsSvc, metricsHandler, cfg, notifier, ps)
	return server, ps, teardown
}

func do(t *testing.T, server *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap), rr.Body.String())
	return snap
}

func joinPlayers(t *testing.T, server *Server, names ...string) {
	t.Helper()
	for _, name := range names {
		rr := do(t, server, "POST", "/queue", fmt.Sprintf(`{"name":%q,"rank":"N"}`, name))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()

	rr := do(t, server, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestRanksHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()

	rr := do(t, server, "GET", "/ranks", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Ranks   []string `json:"ranks"`
		Default string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Ranks, 21)
	assert.Equal(t, "BG-", body.Ranks[0])
	assert.Equal(t, "A+", body.Ranks[20])
	assert.Equal(t, "BG", body.Default)
}

func TestJoinHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()

	rr := do(t, server, "POST", "/queue", `{"name":" Anna ","rank":"S-"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	snap := decodeState(t, rr)
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, "Anna", snap.Queue[0].Name)
	assert.Equal(t, "S", snap.Queue[0].RankGroup)

	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"too short", `{"name":"A"}`, http.StatusBadRequest, "at least 2 characters"},
		{"duplicate", `{"name":"Anna"}`, http.StatusConflict, "already in the queue"},
		{"bad rank", `{"name":"Ben","rank":"Z"}`, http.StatusBadRequest, "invalid rank"},
		{"bad json", `{"name":`, http.StatusBadRequest, "invalid JSON"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, server, "POST", "/queue", tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tc.wantError)
		})
	}
}

func TestRemovePlayerHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben")

	rr := do(t, server, "DELETE", "/queue/Anna", "")
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decodeState(t, rr)
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, "Ben", snap.Queue[0].Name)
}

func TestCourtFlow(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, ps, teardown := setupTestServer(t, mockNotifier, config.Config{})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben", "Cleo", "Dan", "Eve")

	rr := do(t, server, "POST", "/courts/1/assign", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap := decodeState(t, rr)
	require.Len(t, snap.Courts[0].Players, 4)
	require.Len(t, mockNotifier.CourtCalls(), 1)
	assert.Equal(t, notifier.CourtCall{CourtID: 1, Players: []string{"Anna", "Ben", "Cleo", "Dan"}}, mockNotifier.CourtCalls()[0])
	assert.Empty(t, ps.Types(), "pubsub not configured")

	rr = do(t, server, "POST", "/courts/1/shuttlecocks", `{"direction":"increment"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0.25, decodeState(t, rr).Courts[0].Players[0].ShuttlecockUsage)

	rr = do(t, server, "POST", "/courts/1/checked/0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, server, "POST", "/courts/1/checked/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeState(t, rr).Courts[0].Players[2].Checked)

	rr = do(t, server, "POST", "/courts/1/release", `{"count":2}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap = decodeState(t, rr)
	assert.Len(t, snap.Courts[0].Players, 2)
	require.Len(t, mockNotifier.CourtReleases(), 1)
	release := mockNotifier.CourtReleases()[0]
	assert.Equal(t, []string{"Anna", "Cleo"}, release.Released)
	assert.Equal(t, []string{"Eve", "Anna", "Cleo"}, release.Next)

	rr = do(t, server, "GET", "/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var records []history.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].GamesPlayed)
	assert.Equal(t, 0.25, records[0].FeatherCount)

	rr = do(t, server, "GET", "/history/Anna/games", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var games []history.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, 1, games[0].CourtID)

	rr = do(t, server, "POST", "/courts/1/undo/Ben", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ben", decodeState(t, rr).Queue[0].Name)
}

func TestCourtErrors(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben", "Cleo")
	rr := do(t, server, "POST", "/courts/1/assign", `{"names":["Anna","Ben","Cleo"]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	testCases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"unknown court", "POST", "/courts/9/assign", "", http.StatusNotFound},
		{"non-numeric id", "POST", "/courts/one/release", "", http.StatusBadRequest},
		{"bad release count", "POST", "/courts/1/release", `{"count":3}`, http.StatusBadRequest},
		{"shuttlecocks with 3 players", "POST", "/courts/1/shuttlecocks", `{"direction":"increment"}`, http.StatusBadRequest},
		{"bad direction", "POST", "/courts/1/shuttlecocks", `{"direction":"up"}`, http.StatusBadRequest},
		{"occupied court", "DELETE", "/courts/1", "", http.StatusConflict},
		{"rename to invalid id", "POST", "/courts/1/rename", `{"id":0}`, http.StatusBadRequest},
		{"undo unknown player", "POST", "/courts/1/undo/Zed", "", http.StatusBadRequest},
		{"empty slot", "POST", "/courts/1/checked/3", "", http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, server, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestAddRenameRemoveCourt(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()

	rr := do(t, server, "POST", "/courts", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, decodeState(t, rr).Courts, 2)

	rr = do(t, server, "POST", "/courts/2/rename", `{"id":1}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, server, "POST", "/courts/2/rename", `{"id":5}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, decodeState(t, rr).Courts[1].ID)

	rr = do(t, server, "DELETE", "/courts/5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeState(t, rr).Courts, 1)
}

func TestGroupFlow(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, _, teardown := setupTestServer(t, mockNotifier, config.Config{})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben", "Cleo", "Dan", "Eve")

	rr := do(t, server, "POST", "/groups", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, server, "POST", "/groups/0/fill", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "nothing selected")

	for _, name := range []string{"Eve", "Dan", "Cleo", "Ben"} {
		rr = do(t, server, "POST", "/selection/"+name, "")
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr = do(t, server, "POST", "/selection/Anna", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "selection limit")

	rr = do(t, server, "POST", "/groups/0/fill", "")
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decodeState(t, rr)
	require.Len(t, snap.Groups[0].Members, 4)
	assert.Empty(t, snap.Selected)

	rr = do(t, server, "POST", "/groups/0/commit", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "no court chosen")

	rr = do(t, server, "POST", "/groups/0/court", `{"courtId":1}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, server, "POST", "/groups/0/commit", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap = decodeState(t, rr)
	assert.Empty(t, snap.Groups)
	assert.Len(t, snap.Courts[0].Players, 4)
	require.Len(t, mockNotifier.CourtCalls(), 1)
	assert.Equal(t, []string{"Eve", "Dan", "Cleo", "Ben"}, mockNotifier.CourtCalls()[0].Players)

	rr = do(t, server, "DELETE", "/groups/0", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSettingsAndPricing(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, _, teardown := setupTestServer(t, mockNotifier, config.Config{})
	defer teardown()

	rr := do(t, server, "GET", "/settings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got settings.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, settings.Default(), got)

	rr = do(t, server, "POST", "/history/pricing", "")
	require.Equal(t, http.StatusOK, rr.Code, "regular pricing of an empty ledger")

	rr = do(t, server, "PUT", "/settings", `{"priceMode":"american","americanMode":{"combinedFee":100}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, server, "POST", "/history/pricing", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "american pricing needs players")

	joinPlayers(t, server, "Anna", "Ben", "Cleo", "Dan")
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/assign", "").Code)
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/release", `{"count":4}`).Code)

	rr = do(t, server, "POST", "/history/pricing?dry_run=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var records []history.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 4)
	for _, r := range records {
		require.NotNil(t, r.Price)
		assert.Equal(t, "25.00", *r.Price)
	}
	require.Len(t, mockNotifier.SendPricingCalls, 2)
	assert.Equal(t, history.PriceModeAmerican, mockNotifier.SendPricingCalls[1].Mode)
	assert.Equal(t, 1, mockNotifier.DryRuns)

	rr = do(t, server, "PUT", "/settings", `{"priceMode":"dutch"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHistoryEditing(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben")
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/assign", "").Code)
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/release", "").Code)

	rr := do(t, server, "PUT", "/history/Anna", `{"gamesPlayed":5,"featherCount":2,"rank":"S"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, server, "PUT", "/history/Nobody", `{"gamesPlayed":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, server, "DELETE", "/history/Ben", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, server, "GET", "/history/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var payload history.Payload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, history.PayloadVersion, payload.Version)
	require.Len(t, payload.PlayerHistory, 1)
	assert.Equal(t, 5, payload.PlayerHistory[0].GamesPlayed)
	assert.Equal(t, "S", payload.PlayerHistory[0].Rank)

	rr = do(t, server, "DELETE", "/history", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, server, "GET", "/history", "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestEventsArePublishedWhenPubSubIsConfigured(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, ps, teardown := setupTestServer(t, mockNotifier, config.Config{ProjectID: "test-project"})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben")

	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/assign", "").Code)
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/release", "").Code)

	assert.Equal(t, []pubsub.EventType{
		pubsub.EventPlayerJoined,
		pubsub.EventPlayerJoined,
		pubsub.EventCourtAssigned,
		pubsub.EventCourtReleased,
	}, ps.Types())
	assert.Empty(t, mockNotifier.CourtCalls(), "notifications wait for the push subscription")

	ev := ps.SendMessageCalls[2].Data.(pubsub.Event)
	assert.Equal(t, 1, ev.CourtID)
	assert.Equal(t, []string{"Anna", "Ben"}, ev.Players)
}

func TestEventPushHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, _, teardown := setupTestServer(t, mockNotifier, config.Config{ProjectID: "test-project"})
	defer teardown()

	data, err := msgpack.Marshal(pubsub.Event{
		Type:       pubsub.EventCourtAssigned,
		CourtID:    2,
		Players:    []string{"Anna", "Ben"},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	body := fmt.Sprintf(`{"subscription":"projects/p/subscriptions/s","message":{"data":%q,"messageId":"1"}}`,
		base64.StdEncoding.EncodeToString(data))

	rr := do(t, server, "POST", "/pubsub/events?dry_run=true", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, mockNotifier.CourtCalls(), 1)
	assert.Equal(t, notifier.CourtCall{CourtID: 2, Players: []string{"Anna", "Ben"}}, mockNotifier.CourtCalls()[0])
	assert.Equal(t, 1, mockNotifier.DryRuns)

	rr = do(t, server, "POST", "/pubsub/events", `{"message":{"data":"%%%"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, server, "POST", "/pubsub/events", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	bodyBytes := []byte(form.Encode())
	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(bodyBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func TestQueueCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, _, teardown := setupTestServer(t, mockNotifier, config.Config{Slack: config.SlackConfig{SigningSecret: testSlackSigningSecret}})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben")

	form := url.Values{"command": {"/queue"}, "text": {""}}

	t.Run("valid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/queue", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"text":"queue"}`, rr.Body.String())
		require.NotNil(t, mockNotifier.LastQueueResponseSnapshot)
		assert.Len(t, mockNotifier.LastQueueResponseSnapshot.Queue, 2)
	})

	t.Run("invalid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/queue", form, "wrong-secret")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/queue", form, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMetricsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), config.Config{})
	defer teardown()
	joinPlayers(t, server, "Anna", "Ben")
	require.Equal(t, http.StatusOK, do(t, server, "POST", "/courts/1/assign", "").Code)
	do(t, server, "POST", "/queue", `{"name":"Anna"}`)

	rr := do(t, server, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "court_queue_players_joined_total 2")
	assert.Contains(t, body, "court_queue_court_assignments_total 1")
	assert.Contains(t, body, `court_queue_rejected_actions_total{reason="duplicate_name"} 1`)
	assert.Contains(t, body, "court_queue_occupied_courts 1")
}

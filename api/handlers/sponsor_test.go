package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSponsorCreateAutoApproved(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/sponsors", map[string]interface{}{
		"hackathonId":        1,
		"companyName":        "CloudCorp",
		"contributionAmount": 2500,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "approved", body["status"])
}

func TestSponsorCreateMissingCompanyName(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/sponsors", map[string]interface{}{"hackathonId": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "companyName is required", decodeBody(t, rr)["error"])
}

func TestSponsorStatusUpdate(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/sponsors", map[string]interface{}{
		"hackathonId": 1, "companyName": "CloudCorp",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, a, "PUT", "/api/sponsors/1", map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rejected", decodeBody(t, rr)["status"])

	rr = doJSON(t, a, "GET", "/api/sponsors/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rejected", decodeBody(t, rr)["status"])
}

func TestSponsorUpdateNotFound(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "PUT", "/api/sponsors/5", map[string]interface{}{"status": "rejected"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Sponsor not found", decodeBody(t, rr)["error"])
}

func TestProjectJudgeOverwrite(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/projects", map[string]interface{}{
		"hackathonId": 1, "title": "Demo",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "submitted", decodeBody(t, rr)["status"])

	rr = doJSON(t, a, "POST", "/api/projects/1/judge", map[string]interface{}{
		"judgeId": "a", "scores": map[string]float64{"x": 3, "y": 4},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, a, "POST", "/api/projects/1/judge", map[string]interface{}{
		"judgeId": "b", "scores": map[string]float64{"x": 5, "y": 5},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 8.5, decodeBody(t, rr)["totalScore"].(float64), 1e-9)

	rr = doJSON(t, a, "POST", "/api/projects/1/judge", map[string]interface{}{
		"judgeId": "a", "scores": map[string]float64{"x": 10, "y": 10},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 15.0, decodeBody(t, rr)["totalScore"].(float64), 1e-9)
}

func TestProjectUpdateRefreshesStatus(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/projects", map[string]interface{}{
		"hackathonId": 1, "title": "Demo",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, a, "PUT", "/api/projects/1", map[string]interface{}{"status": "finalist"})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "finalist", body["status"])
	assert.Equal(t, "Demo", body["title"])
}

func TestAnalyticsTrackAndOverview(t *testing.T) {
	a := newTestApp(t)

	seedUsers(t, a, map[string]interface{}{"email": "a@x.com", "username": "a"})

	rr := doJSON(t, a, "POST", "/api/analytics/track", map[string]interface{}{
		"entityType": "hackathon", "entityId": 1, "metric": "views", "value": 3,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	// value defaults to 1 when absent
	rr = doJSON(t, a, "POST", "/api/analytics/track", map[string]interface{}{
		"entityType": "hackathon", "entityId": 1, "metric": "views",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["value"])
	assert.NotNil(t, body["metadata"])

	rr = doJSON(t, a, "GET", "/api/analytics/overview", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	overview := decodeBody(t, rr)
	assert.Equal(t, float64(1), overview["totalUsers"])
	assert.Equal(t, float64(0), overview["totalHackathons"])
	metrics := overview["metrics"].(map[string]interface{})
	assert.Equal(t, float64(4), metrics["views"])
}

func TestCommentCreateDefaults(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/comments", map[string]interface{}{
		"author": "alice", "content": "gg wp",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, float64(0), body["likes"])
	assert.Equal(t, []interface{}{}, body["replies"])
	assert.NotEmpty(t, body["timestamp"])

	rr = doJSON(t, a, "GET", "/api/comments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comments))
	assert.Len(t, comments, 1)
}

func TestNotificationCreateUnread(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/notifications", map[string]interface{}{
		"type": "system", "title": "hello", "content": "world",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, true, decodeBody(t, rr)["unread"])
}

func TestChartDetailByStringID(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.DB.Save("charts", []map[string]interface{}{
		{"id": "visitors", "type": "line"},
	}))

	rr := doJSON(t, a, "GET", "/api/charts/visitors", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "line", decodeBody(t, rr)["type"])

	rr = doJSON(t, a, "GET", "/api/charts/revenue", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Chart not found", decodeBody(t, rr)["error"])
}

func TestJudgeDetailByIntID(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.DB.Save("judges", []map[string]interface{}{
		{"id": 1, "name": "Grace"},
	}))

	rr := doJSON(t, a, "GET", "/api/judges/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Grace", decodeBody(t, rr)["name"])

	rr = doJSON(t, a, "GET", "/api/judges/2", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Judge not found", decodeBody(t, rr)["error"])
}

func TestPassthroughCollection(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.DB.Save("countries", []map[string]interface{}{
		{"code": "NL", "name": "Netherlands"},
	}))

	rr := doJSON(t, a, "GET", "/api/countries", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var countries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &countries))
	require.Len(t, countries, 1)
	assert.Equal(t, "NL", countries[0]["code"])
}

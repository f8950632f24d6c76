package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dehackhq/dehack-api/api/handlers"
	"github.com/dehackhq/dehack-api/config"
)

func newTestApp(t *testing.T) *handlers.App {
	t.Helper()
	a := &handlers.App{}
	a.Config = config.Config{
		Port:      "5000",
		DataDir:   t.TempDir(),
		UploadDir: t.TempDir(),
		BaseURL:   "http://localhost:5000",
	}
	require.NoError(t, a.Initialize())
	return a
}

func doJSON(t *testing.T, a *handlers.App, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHackathonCreateDefaults(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/hackathons", map[string]interface{}{
		"title":       "T",
		"description": "D",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "scheduled", body["status"])
	assert.Equal(t, true, body["isOnline"])
	assert.Equal(t, float64(0), body["currentParticipants"])
	assert.NotEmpty(t, body["createdAt"])
}

func TestHackathonCreateMissingField(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/hackathons", map[string]interface{}{
		"title": "T",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "description is required", decodeBody(t, rr)["error"])
}

func TestHackathonCreateKeepsUnmodeledFields(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/hackathons", map[string]interface{}{
		"title":       "T",
		"description": "D",
		"prizes":      []map[string]interface{}{{"place": 1, "amount": 5000}},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, a, "GET", "/api/hackathons/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Contains(t, body, "prizes")
	prizes := body["prizes"].([]interface{})
	assert.Len(t, prizes, 1)
}

func TestHackathonListFilterAndPagination(t *testing.T) {
	a := newTestApp(t)

	for i, status := range []string{"active", "scheduled", "active", "active"} {
		rr := doJSON(t, a, "POST", "/api/hackathons", map[string]interface{}{
			"title":       fmt.Sprintf("hack-%d", i),
			"description": "D",
			"status":      status,
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := doJSON(t, a, "GET", "/api/hackathons?status=active&page=2&limit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "hack-2", data[0].(map[string]interface{})["title"])

	meta := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, float64(3), meta["pages"])
	assert.Equal(t, float64(2), meta["page"])
}

func TestHackathonConjunctiveFilters(t *testing.T) {
	a := newTestApp(t)

	seeds := []map[string]interface{}{
		{"title": "a", "description": "d", "status": "active", "category": "ai"},
		{"title": "b", "description": "d", "status": "active", "category": "web"},
		{"title": "c", "description": "d", "status": "scheduled", "category": "ai"},
	}
	for _, s := range seeds {
		require.Equal(t, http.StatusCreated, doJSON(t, a, "POST", "/api/hackathons", s).Code)
	}

	rr := doJSON(t, a, "GET", "/api/hackathons?status=active&category=ai", nil)
	body := decodeBody(t, rr)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "a", data[0].(map[string]interface{})["title"])
}

func TestHackathonDetailEnrichment(t *testing.T) {
	a := newTestApp(t)

	require.Equal(t, http.StatusCreated, doJSON(t, a, "POST", "/api/hackathons", map[string]interface{}{
		"title": "T", "description": "D",
	}).Code)

	apps := []map[string]interface{}{
		{"id": 1, "hackathonId": 1, "hackerId": 7, "status": "pending"},
		{"id": 2, "hackathonId": 2, "hackerId": 8, "status": "pending"},
	}
	require.NoError(t, a.DB.Save("applications", apps))

	rr := doJSON(t, a, "GET", "/api/hackathons/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["applicationsCount"])
	embedded := body["applications"].([]interface{})
	require.Len(t, embedded, 1)
	assert.Equal(t, float64(7), embedded[0].(map[string]interface{})["hackerId"])
}

func TestHackathonDetailNotFound(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "GET", "/api/hackathons/99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Hackathon not found", decodeBody(t, rr)["error"])
}

func TestHackathonProjectsSortedByScore(t *testing.T) {
	a := newTestApp(t)

	for _, title := range []string{"low", "high", "mid"} {
		require.Equal(t, http.StatusCreated, doJSON(t, a, "POST", "/api/projects", map[string]interface{}{
			"hackathonId": 1, "title": title,
		}).Code)
	}
	judge := func(id int, score float64) {
		rr := doJSON(t, a, "POST", fmt.Sprintf("/api/projects/%d/judge", id), map[string]interface{}{
			"judgeId": "j1",
			"scores":  map[string]float64{"x": score},
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	judge(1, 2)
	judge(2, 9)
	judge(3, 5)

	rr := doJSON(t, a, "GET", "/api/hackathons/1/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var ranked []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ranked))
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0]["title"])
	assert.Equal(t, "mid", ranked[1]["title"])
	assert.Equal(t, "low", ranked[2]["title"])
}

func TestOverviewReturnsActiveHackathons(t *testing.T) {
	a := newTestApp(t)

	for _, status := range []string{"active", "scheduled"} {
		require.Equal(t, http.StatusCreated, doJSON(t, a, "POST", "/api/hackathons", map[string]interface{}{
			"title": status, "description": "d", "status": status,
		}).Code)
	}

	rr := doJSON(t, a, "GET", "/api/overview", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var active []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &active))
	require.Len(t, active, 1)
	assert.Equal(t, "active", active[0]["status"])
}

func TestHackathonCreateMultipartWithImage(t *testing.T) {
	a := newTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Form Hack"))
	require.NoError(t, mw.WriteField("description", "D"))
	require.NoError(t, mw.WriteField("isOnline", "false"))
	part, err := mw.CreateFormFile("image", "banner.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/hackathons", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := decodeBody(t, rr)
	assert.Equal(t, "Form Hack", body["title"])
	assert.Equal(t, false, body["isOnline"])

	imageURL := body["imageUrl"].(string)
	assert.True(t, strings.HasPrefix(imageURL, "http://localhost:5000/uploads/"))
	assert.True(t, strings.HasSuffix(imageURL, ".png"))
}

func TestUploadBase64RoundTrip(t *testing.T) {
	a := newTestApp(t)

	payload := []byte("not really a png but good enough")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	rr := doJSON(t, a, "POST", "/api/uploads", map[string]interface{}{"image": dataURL})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := decodeBody(t, rr)
	url := body["url"].(string)
	filename := body["filename"].(string)
	assert.True(t, strings.HasSuffix(url, filename))
	assert.True(t, strings.HasSuffix(filename, ".png"))
	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/"))

	stored, err := os.ReadFile(filepath.Join(a.Config.UploadDir, filename))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	// static fetch through the router
	getRR := doJSON(t, a, "GET", "/uploads/"+filename, nil)
	assert.Equal(t, http.StatusOK, getRR.Code)
	assert.Equal(t, payload, getRR.Body.Bytes())
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	a := newTestApp(t)

	dataURL := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>"))
	rr := doJSON(t, a, "POST", "/api/uploads", map[string]interface{}{"image": dataURL})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid file type", decodeBody(t, rr)["error"])
}

func TestUploadRejectsEmptyBody(t *testing.T) {
	a := newTestApp(t)

	rr := doJSON(t, a, "POST", "/api/uploads", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "no image data provided", decodeBody(t, rr)["error"])
}

// AngelaMos | 2026
// handler_test.go

package alert

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/flightalerts/internal/testutil"
	"github.com/carterperez-dev/flightalerts/internal/user"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.NewDB(t)
	userSvc := user.NewService(user.NewRepository(db))
	alertSvc := NewService(NewRepository(db), userSvc)

	r := chi.NewRouter()
	user.NewHandler(userSvc).RegisterRoutes(r)
	NewHandler(alertSvc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createUser(t *testing.T, h http.Handler) string {
	t.Helper()

	rec, env := do(t, h, http.MethodPost, "/users",
		`{"email":"traveler@example.com","name":"Traveler"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var u user.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u.ID
}

const jfkToLax = `{
	"origin": "JFK",
	"destination": "LAX",
	"depart_date": "2025-06-01",
	"max_price": 400,
	"airlines": ["AA", "DL"]
}`

func createAlert(t *testing.T, h http.Handler, userID string) AlertResponse {
	t.Helper()

	rec, env := do(t, h, http.MethodPost, "/alerts/user/"+userID, jfkToLax)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var a AlertResponse
	require.NoError(t, json.Unmarshal(env.Data, &a))
	assert.Equal(t, "/alerts/"+a.ID, rec.Header().Get("Location"))
	return a
}

func getAlert(t *testing.T, h http.Handler, id string) AlertResponse {
	t.Helper()

	rec, env := do(t, h, http.MethodGet, "/alerts/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a AlertResponse
	require.NoError(t, json.Unmarshal(env.Data, &a))
	return a
}

func TestHandlerCreateAndGet(t *testing.T) {
	h := newTestRouter(t)
	userID := createUser(t, h)
	created := createAlert(t, h, userID)

	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Active", created.Status)
	assert.Equal(t, []string{"AA", "DL"}, created.Airlines)

	got := getAlert(t, h, created.ID)
	assert.Equal(t, "JFK", got.Origin)
	assert.Equal(t, "LAX", got.Destination)
	assert.Equal(t, "2025-06-01", got.DepartDate.Format("2006-01-02"))
	assert.Nil(t, got.ReturnDate)
	assert.Equal(t, "400", got.MaxPrice.String())
	assert.Equal(t, []string{"AA", "DL"}, got.Airlines)
	assert.Nil(t, got.CabinClass)
}

func TestHandlerCreateRejects(t *testing.T) {
	h := newTestRouter(t)
	userID := createUser(t, h)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown user", "/alerts/user/" + uuid.NewString(), jfkToLax, http.StatusNotFound},
		{"malformed user id", "/alerts/user/abc", jfkToLax, http.StatusBadRequest},
		{"malformed json", "/alerts/user/" + userID, `{"origin":`, http.StatusBadRequest},
		{"missing origin", "/alerts/user/" + userID,
			`{"destination":"LAX","depart_date":"2025-06-01","max_price":1}`,
			http.StatusBadRequest},
		{"missing max price", "/alerts/user/" + userID,
			`{"origin":"JFK","destination":"LAX","depart_date":"2025-06-01"}`,
			http.StatusBadRequest},
		{"bad date", "/alerts/user/" + userID,
			`{"origin":"JFK","destination":"LAX","depart_date":"June","max_price":1}`,
			http.StatusBadRequest},
		{"negative price", "/alerts/user/" + userID,
			`{"origin":"JFK","destination":"LAX","depart_date":"2025-06-01","max_price":-5}`,
			http.StatusBadRequest},
		{"too many decimal places", "/alerts/user/" + userID,
			`{"origin":"JFK","destination":"LAX","depart_date":"2025-06-01","max_price":"12.345"}`,
			http.StatusBadRequest},
		{"price beyond column range", "/alerts/user/" + userID,
			`{"origin":"JFK","destination":"LAX","depart_date":"2025-06-01","max_price":10000000000}`,
			http.StatusBadRequest},
		{"comma in airline code", "/alerts/user/" + userID,
			`{"origin":"JFK","destination":"LAX","depart_date":"2025-06-01","max_price":1,"airlines":["A,A"]}`,
			http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
		})
	}

	rec, env := do(t, h, http.MethodGet, "/alerts/user/"+userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestHandlerUpdateKeepsAirlinesOnEmptyList(t *testing.T) {
	h := newTestRouter(t)
	created := createAlert(t, h, createUser(t, h))

	rec, _ := do(t, h, http.MethodPut, "/alerts/"+created.ID,
		`{"airlines":[],"cabin_class":"Business","return_date":"2025-06-09"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := getAlert(t, h, created.ID)
	assert.Equal(t, []string{"AA", "DL"}, got.Airlines)
	require.NotNil(t, got.CabinClass)
	assert.Equal(t, "Business", *got.CabinClass)
	require.NotNil(t, got.ReturnDate)
	assert.Equal(t, "2025-06-09", got.ReturnDate.Format("2006-01-02"))
	assert.Equal(t, "JFK", got.Origin)
	assert.False(t, got.UpdatedAt.Before(created.UpdatedAt))

	rec, _ = do(t, h, http.MethodPut, "/alerts/"+created.ID, `{"max_price":"350.25"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got = getAlert(t, h, created.ID)
	assert.Nil(t, got.ReturnDate)
	assert.Equal(t, "350.25", got.MaxPrice.String())
	assert.Equal(t, "Business", *got.CabinClass)
}

func TestHandlerPriceScale(t *testing.T) {
	h := newTestRouter(t)
	created := createAlert(t, h, createUser(t, h))

	rec, env := do(t, h, http.MethodPut, "/alerts/"+created.ID, `{"max_price":"12.345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "max_price must have at most 2 decimal places", env.Error.Message)
	assert.Equal(t, "400", getAlert(t, h, created.ID).MaxPrice.String())

	rec, _ = do(t, h, http.MethodPut, "/alerts/"+created.ID, `{"max_price":"12.340"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12.34", getAlert(t, h, created.ID).MaxPrice.String())
}

func TestHandlerUpdateStatus(t *testing.T) {
	h := newTestRouter(t)
	created := createAlert(t, h, createUser(t, h))

	rec, _ := do(t, h, http.MethodPut, "/alerts/"+created.ID, `{"status":"invalid_value"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Active", getAlert(t, h, created.ID).Status)

	rec, _ = do(t, h, http.MethodPut, "/alerts/"+created.ID, `{"status":"Paused"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paused", getAlert(t, h, created.ID).Status)

	rec, _ = do(t, h, http.MethodPut, "/alerts/"+uuid.NewString(), `{"status":"Paused"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerToggle(t *testing.T) {
	h := newTestRouter(t)
	created := createAlert(t, h, createUser(t, h))

	rec, env := do(t, h, http.MethodPost, "/alerts/"+created.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled ToggleResponse
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.Equal(t, "Paused", toggled.Status)
	assert.Equal(t, "Paused", getAlert(t, h, created.ID).Status)

	_, env = do(t, h, http.MethodPost, "/alerts/"+created.ID+"/toggle", "")
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.Equal(t, "Active", toggled.Status)

	got := getAlert(t, h, created.ID)
	assert.Equal(t, "Active", got.Status)
	assert.Equal(t, []string{"AA", "DL"}, got.Airlines)

	rec, _ = do(t, h, http.MethodPost, "/alerts/"+uuid.NewString()+"/toggle", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerDelete(t *testing.T) {
	h := newTestRouter(t)
	created := createAlert(t, h, createUser(t, h))

	rec, _ := do(t, h, http.MethodDelete, "/alerts/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/alerts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/alerts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerAlertsOutliveTheirUser(t *testing.T) {
	h := newTestRouter(t)
	userID := createUser(t, h)
	createAlert(t, h, userID)
	createAlert(t, h, userID)

	rec, _ := do(t, h, http.MethodDelete, "/users/"+userID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env := do(t, h, http.MethodGet, "/alerts/user/"+userID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []AlertResponse
	require.NoError(t, json.Unmarshal(env.Data, &alerts))
	assert.Len(t, alerts, 2)
}

func TestHandlerMalformedID(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/alerts/xyz", "/alerts/xyz/toggle"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "/toggle") {
			method = http.MethodPost
		}

		rec, env := do(t, h, method, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "invalid alert id", env.Error.Message)
	}
}

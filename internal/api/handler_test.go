package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThakurMayank5/skribbl-rooms/internal/game"
	"github.com/ThakurMayank5/skribbl-rooms/internal/words"
)

type nopConn struct{}

func (nopConn) Send([]byte) error { return nil }
func (nopConn) IsOpen() bool      { return true }
func (nopConn) Close()            {}

func newTestServer(t *testing.T) (*gin.Engine, *game.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settings := game.DefaultSettings()
	reg := game.NewRegistry(settings, words.Default(), 8)
	t.Cleanup(reg.CloseAll)

	server := gin.New()
	server.Use(Session())
	New(reg).Register(server)
	return server, reg
}

func do(t *testing.T, server *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, BasicApiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	var out BasicApiResponse
	_ = json.Unmarshal(res.Body.Bytes(), &out)
	return res, out
}

func TestCreateRoom(t *testing.T) {
	testCases := []struct {
		description  string
		body         string
		expectedCode int
		successful   bool
		message      string
	}{
		{
			description:  "valid room",
			body:         `{"name":"lobby","maxPlayers":4}`,
			expectedCode: http.StatusOK,
			successful:   true,
		},
		{
			description:  "duplicate name",
			body:         `{"name":"taken","maxPlayers":4}`,
			expectedCode: http.StatusOK,
			message:      "Room already exists.",
		},
		{
			description:  "too small",
			body:         `{"name":"solo","maxPlayers":1}`,
			expectedCode: http.StatusOK,
			message:      "The minimum room size is 2.",
		},
		{
			description:  "too large",
			body:         `{"name":"stadium","maxPlayers":9}`,
			expectedCode: http.StatusOK,
			message:      "The maximum room size is 8.",
		},
		{
			description:  "malformed body",
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
		},
		{
			description:  "missing name",
			body:         `{"maxPlayers":4}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			server, reg := newTestServer(t)
			_, err := reg.Create("taken", 4)
			require.NoError(t, err)

			res, out := do(t, server, http.MethodPost, "/api/createRoom", tc.body)

			assert.Equal(t, tc.expectedCode, res.Code)
			if tc.expectedCode != http.StatusOK {
				return
			}
			assert.Equal(t, tc.successful, out.Successful)
			assert.Equal(t, tc.message, out.Message)
		})
	}
}

func TestCreateRoomRegistersRoom(t *testing.T) {
	server, reg := newTestServer(t)

	res, out := do(t, server, http.MethodPost, "/api/createRoom", `{"name":"lobby","maxPlayers":3}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.True(t, out.Successful)

	room, ok := reg.Get("lobby")
	require.True(t, ok)
	assert.Equal(t, 3, room.MaxPlayers())
}

func TestGetRooms(t *testing.T) {
	server, reg := newTestServer(t)
	for _, name := range []string{"Bravo", "alpha", "charlie"} {
		_, err := reg.Create(name, 4)
		require.NoError(t, err)
	}
	room, _ := reg.Get("alpha")
	require.NoError(t, room.Join("c1", "alice", nopConn{}))

	req := httptest.NewRequest(http.MethodGet, "/api/getRooms?searchQuery=A", nil)
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	var rooms []RoomResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &rooms))
	assert.Equal(t, []RoomResponse{
		{Name: "Bravo", MaxPlayers: 4, PlayerCount: 0},
		{Name: "alpha", MaxPlayers: 4, PlayerCount: 1},
		{Name: "charlie", MaxPlayers: 4, PlayerCount: 0},
	}, rooms)

	req = httptest.NewRequest(http.MethodGet, "/api/getRooms?searchQuery=rav", nil)
	res = httptest.NewRecorder()
	server.ServeHTTP(res, req)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "Bravo", rooms[0].Name)

	res, out := do(t, server, http.MethodGet, "/api/getRooms", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.False(t, out.Successful)
}

func TestJoinRoom(t *testing.T) {
	server, reg := newTestServer(t)
	_, err := reg.Create("duo", 2)
	require.NoError(t, err)
	_, err = reg.Create("open", 4)
	require.NoError(t, err)

	duo, _ := reg.Get("duo")
	require.NoError(t, duo.Join("c1", "alice", nopConn{}))
	require.NoError(t, duo.Join("c2", "bob", nopConn{}))
	open, _ := reg.Get("open")
	require.NoError(t, open.Join("c3", "carol", nopConn{}))

	testCases := []struct {
		description  string
		query        string
		expectedCode int
		successful   bool
		message      string
	}{
		{"accepted", "username=dave&roomName=open", http.StatusOK, true, ""},
		{"unknown room", "username=dave&roomName=nope", http.StatusOK, false, "Room not found"},
		{"username taken", "username=carol&roomName=open", http.StatusOK, false, "A player with this username already joined."},
		{"room full", "username=dave&roomName=duo", http.StatusOK, false, "This room is already full."},
		{"missing username", "roomName=open", http.StatusBadRequest, false, "The user name or room name is null"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			res, out := do(t, server, http.MethodGet, "/api/joinRoom?"+tc.query, "")

			assert.Equal(t, tc.expectedCode, res.Code)
			assert.Equal(t, tc.successful, out.Successful)
			assert.Equal(t, tc.message, out.Message)
		})
	}
}

func TestSessionIssuesCookieOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.Use(Session())
	server.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, ClientID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, res.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	res = httptest.NewRecorder()
	server.ServeHTTP(res, req)

	assert.Empty(t, res.Result().Cookies())
	assert.Equal(t, cookies[0].Value, res.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	res = httptest.NewRecorder()
	server.ServeHTTP(res, req)

	require.Len(t, res.Result().Cookies(), 1)
	assert.NotEqual(t, "not-a-uuid", res.Body.String())
}

package bot

import (
	"encoding/json"
	"fine-bot/model"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every Discord API request to a local test server.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

type apiCall struct {
	Method string
	Path   string
	Body   []byte
}

type fakeDiscordAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (f *fakeDiscordAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: r.Method, Path: r.URL.Path, Body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v9/guilds/g1/members/u1":
		io.WriteString(w, `{"user":{"id":"u1","username":"officer"},"roles":["cop","other"]}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/v9/guilds/g1/members/missing":
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Unknown Member","code":10007}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/v9/guilds/g1/channels":
		io.WriteString(w, `[{"id":"c1","name":"general"},{"id":"c2","name":"444"}]`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/v9/guilds/g1/channels":
		io.WriteString(w, `{"id":"c3","name":"444-2","guild_id":"g1"}`)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/v9/channels/c3":
		io.WriteString(w, `{"id":"c3"}`)
	case r.Method == http.MethodPut && r.URL.Path == "/api/v9/applications/app1/guilds/g1/commands":
		io.WriteString(w, `[{"id":"cmd1","application_id":"app1","name":"fine"}]`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/v9/channels/c3/messages":
		io.WriteString(w, `{"id":"m1","channel_id":"c3"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Unknown","code":0}`)
	}
}

func (f *fakeDiscordAPI) last() apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestPlatform(t *testing.T) (*DiscordPlatform, *fakeDiscordAPI) {
	t.Helper()
	api := &fakeDiscordAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: rewriteTransport{target: target}}
	s.MaxRestRetries = 0
	return NewDiscordPlatform(s), api
}

func TestDiscordPlatform_HasRole(t *testing.T) {
	p, _ := newTestPlatform(t)

	ok, err := p.HasRole("g1", "u1", "cop")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.HasRole("g1", "u1", "staff")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = p.HasRole("g1", "missing", "cop")
	assert.Error(t, err)
}

func TestDiscordPlatform_ChannelNames(t *testing.T) {
	p, _ := newTestPlatform(t)

	names, err := p.ChannelNames("g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"general", "444"}, names)
}

func TestDiscordPlatform_CreatePrivateChannel(t *testing.T) {
	p, api := newTestPlatform(t)
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: "g1", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: "u1", Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel},
	}

	ch, err := p.CreatePrivateChannel("g1", "444-2", overwrites)
	require.NoError(t, err)
	assert.Equal(t, "c3", ch.ID)

	var sent struct {
		Name                 string `json:"name"`
		Type                 int    `json:"type"`
		PermissionOverwrites []struct {
			ID   string `json:"id"`
			Type int    `json:"type"`
		} `json:"permission_overwrites"`
	}
	require.NoError(t, json.Unmarshal(api.last().Body, &sent))
	assert.Equal(t, "444-2", sent.Name)
	assert.Equal(t, int(discordgo.ChannelTypeGuildText), sent.Type)
	require.Len(t, sent.PermissionOverwrites, 2)
	assert.Equal(t, "g1", sent.PermissionOverwrites[0].ID)
}

func TestDiscordPlatform_SendAndDelete(t *testing.T) {
	p, api := newTestPlatform(t)

	msg, err := p.SendMessage("c3", &discordgo.MessageSend{Content: "<@444>"})
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)

	require.NoError(t, p.DeleteChannel("c3"))
	assert.Equal(t, http.MethodDelete, api.last().Method)

	assert.Error(t, p.DeleteChannel("unknown"))
}

func TestBot_RefreshCommands(t *testing.T) {
	p, api := newTestPlatform(t)
	b := &Bot{Session: p.session, Platform: p, config: &model.Config{AppID: "app1", GuildID: "g1"}}

	b.RefreshCommands()

	require.Len(t, b.RegisteredCommands, 1)
	assert.Equal(t, "fine", b.RegisteredCommands[0].Name)
	call := api.last()
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Contains(t, string(call.Body), `"name":"fine"`)
}

func TestBot_RefreshCommandsFailureKeepsRunning(t *testing.T) {
	p, _ := newTestPlatform(t)
	b := &Bot{Session: p.session, Platform: p, config: &model.Config{AppID: "unknown-app", GuildID: "g1"}}

	b.RefreshCommands()

	assert.Empty(t, b.RegisteredCommands)
}

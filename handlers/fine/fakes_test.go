package fine

import (
	"fine-bot/model"
	"fine-bot/utils"
	"fine-bot/utils/database/fines"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

const (
	testGuild       = "guild-1"
	testCopRole     = "role-cop"
	testStaffRole   = "role-staff"
	testLogChannel  = "log-channel"
	testOfficerID   = "111"
	testStaffID     = "222"
	testCivilianID  = "333"
	testFinedUserID = "444"
)

type createdChannel struct {
	Name       string
	Overwrites []*discordgo.PermissionOverwrite
}

type sentMessage struct {
	ChannelID string
	Msg       *discordgo.MessageSend
}

type fakePlatform struct {
	mu sync.Mutex

	roles     map[string][]string
	roleErr   error
	names     []string
	listErr   error
	createErr error
	sendErrs  map[string]error
	deleteErr error
	deferErr  error

	created   []createdChannel
	sent      []sentMessage
	deleted   []string
	deferred  int
	edits     []string
	editsByID map[string][]string
	responses []string
	nextID    int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		roles: map[string][]string{
			testOfficerID: {testCopRole},
			testStaffID:   {testStaffRole},
		},
		sendErrs:  make(map[string]error),
		editsByID: make(map[string][]string),
	}
}

func (f *fakePlatform) HasRole(guildID, userID, roleID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return false, f.roleErr
	}
	return utils.HasRole(f.roles[userID], roleID), nil
}

func (f *fakePlatform) ChannelNames(guildID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.names...), nil
}

func (f *fakePlatform) CreatePrivateChannel(guildID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	f.names = append(f.names, name)
	f.created = append(f.created, createdChannel{Name: name, Overwrites: overwrites})
	return &discordgo.Channel{ID: fmt.Sprintf("chan-%d", f.nextID), GuildID: guildID, Name: name}, nil
}

func (f *fakePlatform) DeleteChannel(channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID)
	return f.deleteErr
}

func (f *fakePlatform) SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.sendErrs[channelID]; err != nil {
		return nil, err
	}
	f.sent = append(f.sent, sentMessage{ChannelID: channelID, Msg: msg})
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(f.sent)), ChannelID: channelID}, nil
}

func (f *fakePlatform) Defer(i *discordgo.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deferErr != nil {
		return f.deferErr
	}
	f.deferred++
	return nil
}

func (f *fakePlatform) Edit(i *discordgo.Interaction, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, content)
	f.editsByID[i.ID] = append(f.editsByID[i.ID], content)
	return nil
}

// repliesTo returns the edited replies sent to interactions from userID.
func (f *fakePlatform) repliesTo(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.editsByID["interaction-"+userID]...)
}

func (f *fakePlatform) RespondEphemeral(i *discordgo.Interaction, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, content)
	return nil
}

func (f *fakePlatform) messagesTo(channelID string) []*discordgo.MessageSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*discordgo.MessageSend
	for _, m := range f.sent {
		if m.ChannelID == channelID {
			out = append(out, m.Msg)
		}
	}
	return out
}

type scheduledFunc struct {
	Delay time.Duration
	Fn    func()
}

type scheduler struct {
	mu    sync.Mutex
	funcs []scheduledFunc
}

func (s *scheduler) afterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs = append(s.funcs, scheduledFunc{Delay: d, Fn: f})
}

func (s *scheduler) runAll() {
	s.mu.Lock()
	funcs := s.funcs
	s.funcs = nil
	s.mu.Unlock()
	for _, f := range funcs {
		f.Fn()
	}
}

func (s *scheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.funcs)
}

var testNow = time.Date(2026, 10, 15, 13, 37, 0, 0, time.UTC)

func testConfig() *model.Config {
	return &model.Config{
		GuildID:      testGuild,
		CopRoleID:    testCopRole,
		StaffRoleID:  testStaffRole,
		LogChannelID: testLogChannel,
		CloseDelay:   5 * time.Second,
		Location:     time.UTC,
		EmbedColor:   utils.DefaultEmbedColor,
		PayCommand:   "!pay",
	}
}

type testEnv struct {
	svc      *Service
	platform *fakePlatform
	store    *fines.Store
	sched    *scheduler
}

func newTestEnv(t *testing.T, cfg *model.Config) *testEnv {
	t.Helper()
	store, err := fines.Open(filepath.Join(t.TempDir(), "fines.json"))
	require.NoError(t, err)
	return newTestEnvWithStore(cfg, store)
}

func newTestEnvWithStore(cfg *model.Config, store *fines.Store) *testEnv {
	platform := newFakePlatform()
	sched := &scheduler{}
	svc := NewService(cfg, platform, store)
	svc.now = func() time.Time { return testNow }
	var n int64 = 1234567890
	svc.newFineNumber = func() int64 {
		n++
		return n
	}
	svc.afterFunc = sched.afterFunc
	return &testEnv{svc: svc, platform: platform, store: store, sched: sched}
}

func memberInteraction(userID, channelID string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "interaction-" + userID,
		GuildID:   testGuild,
		ChannelID: channelID,
		Member: &discordgo.Member{
			User: &discordgo.User{ID: userID, Username: "user" + userID, Discriminator: "0"},
		},
	}
}

func speedingFine() IssueOptions {
	return IssueOptions{
		Officer:   Identity{ID: testOfficerID, Tag: "user" + testOfficerID},
		FinedUser: Identity{ID: testFinedUserID, Tag: "driver"},
		Reason:    "Speeding",
		City:      "Rivertown",
		Plate:     "ABC-123",
		Amount:    500,
	}
}

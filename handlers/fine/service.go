package fine

import (
	"fine-bot/model"
	"fine-bot/utils"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	minFineNumber = 1_000_000_000
	maxFineNumber = 9_999_999_999
)

// RecordStore is the persistence the workflows need from the fines file.
type RecordStore interface {
	Append(record model.FineRecord) error
	FindByNumber(fineNumber int64) ([]model.FineRecord, error)
	MarkClosed(fineNumber int64, channelID, closedBy string, at time.Time) (*model.FineRecord, error)
}

// Identity is a platform user as shown in notices and records.
type Identity struct {
	ID  string
	Tag string
}

func identityOf(u *discordgo.User) Identity {
	if u == nil {
		return Identity{}
	}
	return Identity{ID: u.ID, Tag: userTag(u)}
}

// userTag is username#discriminator for legacy accounts and the bare username otherwise.
func userTag(u *discordgo.User) string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// interactionUser returns who triggered i; guild interactions carry the user on Member.
func interactionUser(i *discordgo.Interaction) Identity {
	if i.Member != nil && i.Member.User != nil {
		return identityOf(i.Member.User)
	}
	return identityOf(i.User)
}

// Service runs the fine issuance and case closure workflows.
type Service struct {
	cfg      *model.Config
	platform model.Platform
	store    RecordStore
	cases    *Registry
	limiter  *utils.IssueLimiter

	// namingMu keeps name resolution and channel creation together so concurrent
	// fines for the same user cannot pick the same name.
	namingMu sync.Mutex

	now           func() time.Time
	newFineNumber func() int64
	afterFunc     func(d time.Duration, f func())
}

func NewService(cfg *model.Config, platform model.Platform, store RecordStore) *Service {
	return &Service{
		cfg:           cfg,
		platform:      platform,
		store:         store,
		cases:         NewRegistry(),
		limiter:       utils.NewIssueLimiter(cfg.FineRatePerMinute),
		now:           time.Now,
		newFineNumber: randomFineNumber,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Cases exposes the live Close Case subscriptions.
func (s *Service) Cases() *Registry {
	return s.cases
}

// randomFineNumber draws uniformly from the 10-digit range. It does not check existing
// records, so two cases can share a number.
func randomFineNumber() int64 {
	return minFineNumber + rand.Int64N(maxFineNumber-minFineNumber+1)
}

func (s *Service) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.UTC
}

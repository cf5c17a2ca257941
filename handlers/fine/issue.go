package fine

import (
	"errors"
	"fine-bot/metrics"
	"fine-bot/model"
	"fine-bot/utils"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// IssueOptions are the /fine command inputs.
type IssueOptions struct {
	Officer   Identity
	FinedUser Identity
	Reason    string
	City      string
	Plate     string
	Amount    int64
}

func (o IssueOptions) validate() error {
	if o.Officer.ID == "" || o.FinedUser.ID == "" {
		return fmt.Errorf("%w: officer and fined user are required", ErrInvalidInput)
	}
	if strings.TrimSpace(o.Reason) == "" || strings.TrimSpace(o.City) == "" || strings.TrimSpace(o.Plate) == "" {
		return fmt.Errorf("%w: reason, city and vehicle are required", ErrInvalidInput)
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidInput, o.Amount)
	}
	return nil
}

// Case is the handle returned by a successful issuance.
type Case struct {
	ChannelID  string
	FineNumber int64
	Record     model.FineRecord
}

// Issue runs the issuance workflow for a /fine interaction and answers the officer exactly once.
func (s *Service) Issue(i *discordgo.Interaction, opts IssueOptions) {
	if err := s.platform.Defer(i); err != nil {
		log.Printf("Failed to defer /fine interaction %s: %v", i.ID, err)
		return
	}

	c, err := s.issue(i.GuildID, opts)
	if err != nil {
		log.Printf("Fine issuance by %s for %s aborted: %v", opts.Officer.ID, opts.FinedUser.ID, err)
	} else {
		log.Printf("Fine #%d issued to %s by %s in channel %s", c.FineNumber, c.Record.FinedUser, c.Record.Officer, c.ChannelID)
	}
	if editErr := s.platform.Edit(i, issueReply(c, err)); editErr != nil {
		log.Printf("Failed to answer /fine interaction %s: %v", i.ID, editErr)
	}
}

// issueReply picks the officer-facing message. Internal error text is never included.
func issueReply(c *Case, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Fine issued successfully! Case logged in <#%s>", c.ChannelID)
	case errors.Is(err, ErrAuthorizationDenied):
		return "🚫 You are not authorized to use this command."
	case errors.Is(err, ErrInvalidInput):
		return "❌ Every field is required and the amount must be greater than zero."
	case errors.Is(err, ErrRateLimited):
		return "⏳ You are issuing fines too quickly. Please wait a moment and try again."
	default:
		return "❌ Something went wrong while issuing the fine."
	}
}

func (s *Service) issue(guildID string, opts IssueOptions) (*Case, error) {
	// Unauthorized callers are turned away before their input is looked at.
	ok, err := s.platform.HasRole(guildID, opts.Officer.ID, s.cfg.CopRoleID)
	if err != nil {
		metrics.FineIssueFailures.WithLabelValues(metrics.StageAuthorize).Inc()
		return nil, &PlatformError{Stage: metrics.StageAuthorize, Err: err}
	}
	if !ok {
		return nil, ErrAuthorizationDenied
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if !s.limiter.Allow(opts.Officer.ID) {
		return nil, ErrRateLimited
	}

	// One instant feeds both the date and the time so they cannot disagree.
	issuedAt := s.now().In(s.location())
	fields := noticeFields{
		FineNumber: s.newFineNumber(),
		Officer:    opts.Officer,
		FinedUser:  opts.FinedUser,
		Reason:     opts.Reason,
		City:       opts.City,
		Plate:      opts.Plate,
		Amount:     opts.Amount,
		Date:       issuedAt.Format("2006-01-02"),
		Time:       issuedAt.Format("15:04"),
		IssuedAt:   issuedAt,
		Color:      s.cfg.EmbedColor,
		PayCommand: s.cfg.PayCommand,
	}

	channel, err := s.createCaseChannel(guildID, opts)
	if err != nil {
		metrics.FineIssueFailures.WithLabelValues(metrics.StageChannel).Inc()
		return nil, &PlatformError{Stage: metrics.StageChannel, Err: err}
	}

	if _, err := s.platform.SendMessage(channel.ID, buildNotice(fields)); err != nil {
		metrics.FineIssueFailures.WithLabelValues(metrics.StageNotice).Inc()
		return nil, &PlatformError{Stage: metrics.StageNotice, Err: err}
	}
	s.cases.Register(channel.ID, fields.FineNumber)

	record := model.FineRecord{
		FineNumber:  fields.FineNumber,
		Officer:     opts.Officer.Tag,
		OfficerID:   opts.Officer.ID,
		FinedUser:   opts.FinedUser.Tag,
		FinedUserID: opts.FinedUser.ID,
		Reason:      opts.Reason,
		City:        opts.City,
		Plate:       opts.Plate,
		Amount:      opts.Amount,
		Date:        fields.Date,
		Time:        fields.Time,
		Status:      model.FineStatusOpen,
		ChannelID:   channel.ID,
	}
	if err := s.store.Append(record); err != nil {
		metrics.FineIssueFailures.WithLabelValues(metrics.StageRecord).Inc()
		return nil, &PersistenceError{Err: err}
	}

	metrics.FinesIssued.Inc()

	s.mirrorToStaffLog(utils.LogInfo, "Fine issued", issuedLogDetails(fields, channel.ID))

	return &Case{ChannelID: channel.ID, FineNumber: fields.FineNumber, Record: record}, nil
}

func (s *Service) createCaseChannel(guildID string, opts IssueOptions) (*discordgo.Channel, error) {
	s.namingMu.Lock()
	defer s.namingMu.Unlock()

	names, err := s.platform.ChannelNames(guildID)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	name := ResolveChannelName(opts.FinedUser.ID, names)

	overwrites := caseOverwrites(guildID, s.cfg.StaffRoleID, opts.Officer.ID, opts.FinedUser.ID)
	channel, err := s.platform.CreatePrivateChannel(guildID, name, overwrites)
	if err != nil {
		return nil, fmt.Errorf("creating channel %s: %w", name, err)
	}
	return channel, nil
}

type staffLogFunc func(sender model.MessageSender, channelID, module, operation, extraInfo string) error

// mirrorToStaffLog copies an event to the staff log channel. Failures are only logged.
func (s *Service) mirrorToStaffLog(logFn staffLogFunc, operation, details string) {
	if s.cfg.LogChannelID == "" {
		return
	}
	if err := logFn(s.platform, s.cfg.LogChannelID, "Fines", operation, details); err != nil {
		log.Printf("Staff log unavailable for %q: %v", operation, err)
	}
}

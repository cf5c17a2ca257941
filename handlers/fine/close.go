package fine

import (
	"errors"
	"fine-bot/metrics"
	"fine-bot/utils"
	"fine-bot/utils/database/fines"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

const (
	closeDeniedReply   = "🚫 Only staff members can close this case."
	closeInvalidReply  = "❌ This case could not be identified."
	closeFailedReply   = "❌ Something went wrong while closing the case."
	closeInFlightReply = "ℹ️ This case is already being closed."
)

// Close runs the closure workflow for a Close Case button click. A malformed button is
// rejected at once; everything else is deferred first, since the role lookup and the record
// update can outlast the interaction window.
func (s *Service) Close(i *discordgo.Interaction, customID string) {
	fineNumber, ok := ParseCloseCustomID(customID)
	if !ok {
		s.respond(i, closeInvalidReply)
		return
	}
	if err := s.platform.Defer(i); err != nil {
		log.Printf("Failed to defer close interaction %s: %v", i.ID, err)
		return
	}
	if err := s.platform.Edit(i, s.closeCase(i, fineNumber)); err != nil {
		log.Printf("Failed to answer close interaction %s: %v", i.ID, err)
	}
}

func (s *Service) closeCase(i *discordgo.Interaction, fineNumber int64) string {
	closer := interactionUser(i)

	isStaff, err := s.platform.HasRole(i.GuildID, closer.ID, s.cfg.StaffRoleID)
	if err != nil {
		log.Printf("Could not check staff role for %s on fine #%d: %v", closer.ID, fineNumber, err)
		return closeFailedReply
	}
	if !isStaff {
		metrics.CaseCloseDenied.Inc()
		return closeDeniedReply
	}

	sub := s.cases.Acquire(i.ChannelID, fineNumber)
	if !sub.TryClose() {
		return closeInFlightReply
	}

	err = s.closeRecord(sub, closer)
	if errors.Is(err, fines.ErrAlreadyClosed) {
		// Closed by an earlier click whose subscription is gone, or before a restart.
		sub.markDeleted()
		s.cases.Remove(sub.ChannelID)
		return s.alreadyClosedReply(sub)
	}
	metrics.CasesClosed.Inc()
	log.Printf("Fine #%d closed by %s", sub.FineNumber, closer.Tag)

	delay := s.cfg.CloseDelay
	s.mirrorToStaffLog(utils.LogInfo, "Case closed", closedLogDetails(sub.FineNumber, closer, sub.ChannelID, err == nil))

	s.afterFunc(delay, func() {
		s.teardown(sub)
	})
	return fmt.Sprintf("🔒 Case closed. This channel will be deleted in %s.", delay)
}

// closeRecord marks the stored record closed. Only ErrAlreadyClosed stops the closure;
// a missing or unreadable record is logged and the channel is torn down anyway.
func (s *Service) closeRecord(sub *Subscription, closer Identity) error {
	_, err := s.store.MarkClosed(sub.FineNumber, sub.ChannelID, closer.Tag, s.now())
	switch {
	case err == nil:
	case errors.Is(err, fines.ErrRecordNotFound):
		log.Printf("No record for fine #%d, closing channel %s anyway", sub.FineNumber, sub.ChannelID)
	case errors.Is(err, fines.ErrAlreadyClosed):
		log.Printf("Record for fine #%d was already closed, ignoring click in %s", sub.FineNumber, sub.ChannelID)
	default:
		log.Printf("Failed to update record for fine #%d: %v", sub.FineNumber, &PersistenceError{Err: err})
		s.mirrorToStaffLog(utils.LogError, "Record update failed", fmt.Sprintf("Fine #%d could not be marked closed in the fines file.", sub.FineNumber))
	}
	return err
}

// alreadyClosedReply names who closed the case when the stored record says so.
func (s *Service) alreadyClosedReply(sub *Subscription) string {
	records, err := s.store.FindByNumber(sub.FineNumber)
	if err != nil {
		log.Printf("Could not look up fine #%d: %v", sub.FineNumber, err)
	}
	for _, r := range records {
		if r.ChannelID == sub.ChannelID && !r.IsOpen() && r.ClosedBy != "" {
			return fmt.Sprintf("ℹ️ This case was already closed by %s.", r.ClosedBy)
		}
	}
	return "ℹ️ This case was already closed."
}

// teardown deletes the case channel and drops its subscription. A failed delete is reported
// but not retried; later clicks find the record closed and do nothing.
func (s *Service) teardown(sub *Subscription) {
	sub.markDeleted()
	defer s.cases.Remove(sub.ChannelID)

	if err := s.platform.DeleteChannel(sub.ChannelID); err != nil {
		metrics.ChannelDeleteFailures.Inc()
		log.Printf("Failed to delete case channel %s for fine #%d: %v", sub.ChannelID, sub.FineNumber, err)
		s.mirrorToStaffLog(utils.LogWarn, "Channel delete failed", fmt.Sprintf("Case channel <#%s> for fine #%d has to be removed by hand.", sub.ChannelID, sub.FineNumber))
	}
}

func (s *Service) respond(i *discordgo.Interaction, content string) {
	if err := s.platform.RespondEphemeral(i, content); err != nil {
		log.Printf("Failed to answer interaction %s: %v", i.ID, err)
	}
}

package fine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const closeCustomIDPrefix = "close_fine:"

// CloseCustomID is the button CustomID for the case with the given fine number.
func CloseCustomID(fineNumber int64) string {
	return closeCustomIDPrefix + strconv.FormatInt(fineNumber, 10)
}

// IsCloseCustomID reports whether customID belongs to a Close Case button.
func IsCloseCustomID(customID string) bool {
	return strings.HasPrefix(customID, closeCustomIDPrefix)
}

// ParseCloseCustomID extracts the fine number from a Close Case button CustomID.
func ParseCloseCustomID(customID string) (int64, bool) {
	if !IsCloseCustomID(customID) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(customID, closeCustomIDPrefix), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// caseOverwrites hides the channel from everyone except staff, the officer and the fined user.
// The @everyone role shares the guild's ID.
func caseOverwrites(guildID, staffRoleID, officerID, finedUserID string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: staffRoleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionViewChannel},
		{ID: officerID, Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel},
	}
	if finedUserID != officerID {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID: finedUserID, Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel,
		})
	}
	return overwrites
}

// noticeFields is everything shown in a case notice and the staff log summary.
type noticeFields struct {
	FineNumber int64
	Officer    Identity
	FinedUser  Identity
	Reason     string
	City       string
	Plate      string
	Amount     int64
	Date       string
	Time       string
	IssuedAt   time.Time
	Color      int
	PayCommand string
}

func (f noticeFields) payInstruction() string {
	return fmt.Sprintf("Pay with %s %s %d", f.PayCommand, f.Officer.Tag, f.Amount)
}

func buildNoticeEmbed(f noticeFields) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: f.Color,
		Description: fmt.Sprintf(
			"Violation recorded:\n%s\nFine Number: __%d__\nID: %s\nDate: __%s__\nTime: __%s__\nCity: %s\nOn vehicle: %s\nAmount: %d",
			f.Reason, f.FineNumber, f.FinedUser.ID, f.Date, f.Time, f.City, f.Plate, f.Amount,
		),
		Footer: &discordgo.MessageEmbedFooter{
			Text: f.payInstruction(),
		},
		Timestamp: f.IssuedAt.Format(time.RFC3339),
	}
}

func closeButtonRow(fineNumber int64) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Close Case",
				Style:    discordgo.DangerButton,
				CustomID: CloseCustomID(fineNumber),
			},
		},
	}
}

// buildNotice is the message posted into a new case channel.
func buildNotice(f noticeFields) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s>", f.FinedUser.ID),
		Embeds:     []*discordgo.MessageEmbed{buildNoticeEmbed(f)},
		Components: []discordgo.MessageComponent{closeButtonRow(f.FineNumber)},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{f.FinedUser.ID},
		},
	}
}

// issuedLogDetails summarises a new fine for the staff log channel.
func issuedLogDetails(f noticeFields, channelID string) string {
	return fmt.Sprintf(
		"Fine #%d issued by %s (<@%s>) to %s (<@%s>)\nReason: %s\nDate: %s %s\nCity: %s\nVehicle: %s\nAmount: %d\nChannel: <#%s>",
		f.FineNumber, f.Officer.Tag, f.Officer.ID, f.FinedUser.Tag, f.FinedUser.ID,
		f.Reason, f.Date, f.Time, f.City, f.Plate, f.Amount, channelID,
	)
}

func closedLogDetails(fineNumber int64, closer Identity, channelID string, recorded bool) string {
	details := fmt.Sprintf("Fine #%d closed by %s (<@%s>) in <#%s>", fineNumber, closer.Tag, closer.ID, channelID)
	if !recorded {
		details += "\nNo stored record was updated for this case."
	}
	return details
}

/* announce.go
 * Contains the Discord announcer that posts tournament milestones to a
 * configured channel. Requires a discord bot token and channel id, both of
 * which are passed in from main.go
 * Authors: Zachary Bower
 */

package announce

import (
	"fmt"
	"strings"
	"time"

	"putting-league/api/api"
	"putting-league/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Announcer posts milestone messages to one Discord channel. It implements
// the api notifier, so the facade drives it the same way as the live hub
type Announcer struct {
	session   DiscordSession
	gateway   *discordgo.Session
	channelID string
	limiter   *rate.Limiter
	log       zerolog.Logger
}

var _ api.Notifier = (*Announcer)(nil)

func NewAnnouncer(botToken string, channelID string, log zerolog.Logger) (*Announcer, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channelID is required but none was provided")
	}

	discord, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, err
	}

	return &Announcer{
		session:   discord,
		gateway:   discord,
		channelID: channelID,
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 5),
		log:       log,
	}, nil
}

// Open connects the underlying session so the bot shows as online. Message
// sends go over REST and work either way
func (a *Announcer) Open() error {
	if a.gateway == nil {
		return nil
	}
	return a.gateway.Open()
}

// Close closes the underlying session
func (a *Announcer) Close() error {
	if a.gateway == nil {
		return nil
	}
	return a.gateway.Close()
}

// MatchUpdated is intentionally silent. Per match traffic belongs on the
// WebSocket feed, the channel only hears about milestones
func (a *Announcer) MatchUpdated(event shared.MatchEvent) {}

// BracketGenerated announces a freshly drawn bracket
func (a *Announcer) BracketGenerated(tournamentID string, teams int, matches int) {
	a.send(fmt.Sprintf("A new bracket has been generated with %d teams and %d matches", teams, matches))
}

// TournamentCompleted announces the champions, and the ace pot payout when
// they took it
func (a *Announcer) TournamentCompleted(summary api.CompletionSummary) {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s win the %s tournament!", joinNames(summary.ChampionNames), summary.Date))
	if summary.AcePotPayout > 0 {
		res.WriteString(fmt.Sprintf(" They went undefeated and split the $%.2f ace pot.", summary.AcePotPayout))
	}
	a.send(res.String())
}

// send posts one message to the announcement channel. Sends beyond the rate
// limit are dropped, announcements are fire and forget
func (a *Announcer) send(content string) {
	if !a.limiter.Allow() {
		a.log.Debug().Msg("announcement dropped by rate limit")
		return
	}
	if _, err := a.session.ChannelMessageSend(a.channelID, content); err != nil {
		a.log.Error().Err(err).Msg("failed to send announcement")
	}
}

// joinNames renders a name list the way it reads in a sentence
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "The champions"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

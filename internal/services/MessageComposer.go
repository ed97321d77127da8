package services

import (
	"fmt"
	"math/rand/v2"
	"rankwatch/internal/models"
	"rankwatch/internal/structures"
	"strings"
	"time"
)

const emojiCount = 5

var (
	positiveEmojis = []string{"🏆", "👑", "💰", "🪙", "💵", "🤤", "🔥", "💯", "👆"}
	negativeEmojis = []string{"🚫🏠", "😔", "💐", "🪦", "💀", "💩"}
	neutralFaces   = ":neutral_face: :neutral_face: :neutral_face:"
)

type flavour struct {
	upTo int
	text string
}

// flavours is scanned top to bottom; the first bound >= rank wins.
var flavours = []flavour{
	{10, "Dota is finished, well played!"},
	{50, "THE GOD OF DOTA"},
	{75, "Your father is proud of you!"},
	{100, "Locked in, taking no prisoners, nobody left to tell the tale..."},
	{125, "⚡⚡⚡⚡ \"I AM THE ONE WHO KNOCKS\" ⚡⚡⚡⚡"},
	{150, "LOCKED IN"},
	{175, "ARMED AND DANGEROUS! AGAIN!! AGAIN!!! 🔫🔫🔫"},
	{200, "HELL UNLEASHED!!!!"},
	{225, "Time is a flat circle and you are on top of it 🔥🔥🔥"},
	{250, "Still standing, still swinging 🔫🔫🔫"},
	{275, "Fists of reinforced concrete"},
	{300, "WHAT ARE YOU DOING TO THEM"},
	{325, "CAN ANYBODY STOP THIS OUTRAGEOUS PLAYER???!!!"},
	{350, "Wake up, the game is not over yet!"},
	{375, "We are falling asleep here 🛌"},
	{400, "You skipped the gym for this?"},
	{450, "Everybody is on the edge of their seat"},
	{500, "Game of Thrones season 8 energy"},
	{550, "At this point let someone else play on your account"},
	{600, "Rest in peace 💀💀💀💀"},
	{625, "What are you doing with your life?"},
	{650, "No rank, no plan 💩💩💩💩💩"},
	{700, "Stick to replays lil bro, you're not ready for the big leagues"},
	{725, "Genetic failure"},
	{750, "♿♿♿♿♿♿"},
	{775, "WHAT ARE YOU EVEN DOING?"},
	{800, "Rank 53172685378216538712 🗿🗿🗿🗿🗿"},
	{850, "You need to make a deal with the devil to get out of this one 🤝😈"},
	{900, "Maybe another game would suit you better"},
	{1000, "Get a job lil bro... https://www.linkedin.com/"},
	{2000, "Off the leaderboard any minute now"},
}

const lastFlavour = "Time to hit uninstall"

type Composition struct {
	Message     string
	ChannelName string
	Trend       models.Trend
}

type MessageComposerInterface interface {
	// Compose builds the status message and channel name. previous is nil on the first run.
	Compose(newRank int, previous *int) Composition
}

type MessageComposer struct {
	prefix string
	name   string
	rnd    *rand.Rand
}

func NewMessageComposer(conf *structures.Config) MessageComposerInterface {
	seed := uint64(time.Now().UnixNano())
	return NewMessageComposerWithRand(conf, rand.New(rand.NewPCG(seed, seed>>1)))
}

// NewMessageComposerWithRand lets callers pin the emoji picks.
func NewMessageComposerWithRand(conf *structures.Config, rnd *rand.Rand) MessageComposerInterface {
	return &MessageComposer{
		prefix: conf.Channel.Prefix,
		name:   conf.Channel.DisplayName,
		rnd:    rnd,
	}
}

func (mc *MessageComposer) Compose(newRank int, previous *int) Composition {
	var (
		line  string
		trend models.Trend
	)

	switch {
	case previous == nil:
		line = fmt.Sprintf("%s's rank was updated, now at **%d**", mc.name, newRank)
		trend = models.TrendNone
	case newRank < *previous:
		line = fmt.Sprintf("%s climbed from **%d**, now at **%d** %s", mc.name, *previous, newRank, mc.pick(positiveEmojis))
		trend = models.TrendImproved
	case newRank > *previous:
		line = fmt.Sprintf("%s dropped from **%d**, now at **%d** %s", mc.name, *previous, newRank, mc.pick(negativeEmojis))
		trend = models.TrendWorsened
	default:
		line = fmt.Sprintf("%s is still at **%d** %s", mc.name, newRank, neutralFaces)
		trend = models.TrendUnchanged
	}

	return Composition{
		Message:     line + "\n" + FlavourFor(newRank),
		ChannelName: models.FormatChannelName(mc.prefix, newRank, trend),
		Trend:       trend,
	}
}

// pick draws emojiCount emojis with replacement.
func (mc *MessageComposer) pick(set []string) string {
	out := make([]string, emojiCount)
	for i := range out {
		out[i] = set[mc.rnd.IntN(len(set))]
	}
	return strings.Join(out, " ")
}

func FlavourFor(rank int) string {
	for _, f := range flavours {
		if rank <= f.upTo {
			return f.text
		}
	}
	return lastFlavour
}

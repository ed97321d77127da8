package providers

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"rankwatch/internal/models"
	"rankwatch/internal/structures"

	"github.com/bwmarrin/discordgo"
)

type ChatProviderInterface interface {
	ChannelName(ctx context.Context, channelID string) (string, error)
	// RenameChannel returns the HTTP status of the rename call, 0 when no response arrived.
	RenameChannel(ctx context.Context, channelID, name string) (int, error)
	// MessagesBefore returns up to limit messages older than beforeID, newest first.
	// An empty beforeID starts from the newest message.
	MessagesBefore(ctx context.Context, channelID, beforeID string, limit int) ([]models.ChatMessage, error)
	SendFiles(ctx context.Context, channelID, content string, paths ...string) (string, error)
	Pin(ctx context.Context, channelID, messageID string) error
}

type DiscordChat struct {
	session *discordgo.Session
}

func NewChatProvider(conf *structures.Config) (ChatProviderInterface, error) {
	session, err := discordgo.New("Bot " + conf.Discord.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Client = &http.Client{Timeout: conf.Discord.Timeout}
	return &DiscordChat{session: session}, nil
}

func (d *DiscordChat) ChannelName(ctx context.Context, channelID string) (string, error) {
	channel, err := d.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("reading channel %s: %w", channelID, err)
	}
	if channel == nil {
		return "", fmt.Errorf("%w: channel %s has no body", models.ErrMalformedResponse, channelID)
	}
	return channel.Name, nil
}

func (d *DiscordChat) RenameChannel(ctx context.Context, channelID, name string) (int, error) {
	_, err := d.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return restStatus(err), err
	}
	return http.StatusOK, nil
}

func (d *DiscordChat) MessagesBefore(ctx context.Context, channelID, beforeID string, limit int) ([]models.ChatMessage, error) {
	page, err := d.session.ChannelMessages(channelID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("reading history of %s before %q: %w", channelID, beforeID, err)
	}
	out := make([]models.ChatMessage, 0, len(page))
	for _, m := range page {
		if m == nil {
			continue
		}
		out = append(out, models.ChatMessage{ID: m.ID, Content: m.Content, Timestamp: m.Timestamp})
	}
	return out, nil
}

func (d *DiscordChat) SendFiles(ctx context.Context, channelID, content string, paths ...string) (string, error) {
	files := make([]*discordgo.File, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening attachment: %w", err)
		}
		defer f.Close()
		files = append(files, &discordgo.File{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Reader:      f,
		})
	}

	msg, err := d.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Files:   files,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("uploading to %s: %w", channelID, err)
	}
	return msg.ID, nil
}

func (d *DiscordChat) Pin(ctx context.Context, channelID, messageID string) error {
	return d.session.ChannelMessagePin(channelID, messageID, discordgo.WithContext(ctx))
}

func restStatus(err error) int {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode
	}
	return 0
}

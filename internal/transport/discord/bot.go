// discord содержит транспортный слой бота: подключение к gateway,
// регистрацию команд и маршрутизацию событий в бизнес-логику.
//
// Принципы:
//   - Контекст процесса прокидывается в обработчики без потерь;
//   - Ошибки сервиса явно транслируются в пользовательские сообщения:
//   - ErrNoLaunches -> «нечего показать»;
//   - иные ошибки -> единое безопасное сообщение о недоступности источника.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pribylovaa/spaceflight-bot/internal/config"
	"github.com/pribylovaa/spaceflight-bot/internal/paginator"
	"github.com/pribylovaa/spaceflight-bot/internal/pkg/log"
	"github.com/pribylovaa/spaceflight-bot/internal/service"
)

// commandFetch — имя slash-команды и текстовой legacy-команды.
const commandFetch = "fetch"

// rest — подмножество REST-методов discordgo.Session, используемое обработчиками.
// Выделено интерфейсом ради тестируемости цикла пагинации.
type rest interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot — транспорт Discord поверх бизнес-логики service.Service.
type Bot struct {
	session   *discordgo.Session
	rest      rest
	svc       *service.Service
	collector *paginator.Collector
	cfg       config.Config
}

// New создаёт подключение к Discord (без открытия gateway-сессии).
func New(cfg config.Config, svc *service.Service) (*Bot, error) {
	const op = "transport/discord/New"

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// MESSAGE_CONTENT нужен только legacy-команде с префиксом.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return &Bot{
		session:   session,
		rest:      session,
		svc:       svc,
		collector: paginator.NewCollector(cfg.Paginator.Buffer),
		cfg:       cfg,
	}, nil
}

// Run открывает gateway-сессию, регистрирует команды и блокируется до отмены ctx.
func (b *Bot) Run(ctx context.Context) error {
	const op = "transport/discord/Run"

	lg := log.From(ctx)

	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		lg.Info("gateway_ready",
			slog.String("op", op),
			slog.String("user", r.User.Username),
		)
	})
	b.session.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		b.handleInteraction(ctx, ic)
	})
	b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		b.handleMessage(ctx, m)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("%s: open: %w", op, err)
	}
	defer b.session.Close()

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	lg.Info("commands_registered",
		slog.String("op", op),
		slog.String("guild_id", b.cfg.Discord.GuildID),
	)

	<-ctx.Done()
	lg.Info("gateway_closing", slog.String("op", op))

	return nil
}

// registerCommands регистрирует slash-команды: в гильдии из конфига,
// либо глобально, если гильдия не задана.
func (b *Bot) registerCommands() error {
	_, err := b.session.ApplicationCommandCreate(
		b.session.State.User.ID,
		b.cfg.Discord.GuildID,
		&discordgo.ApplicationCommand{
			Name:        commandFetch,
			Description: "Upcoming rocket launches from NextSpaceflight",
		},
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", commandFetch, err)
	}
	return nil
}

// handleInteraction маршрутизирует события gateway: вызовы команд — в свой
// обработчик, нажатия компонентов — в коллектор активных сессий.
func (b *Bot) handleInteraction(ctx context.Context, ic *discordgo.InteractionCreate) {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		if ic.ApplicationCommandData().Name == commandFetch {
			go b.runSlashFetch(ctx, ic)
		}
	case discordgo.InteractionMessageComponent:
		b.collector.Dispatch(ic)
	}
}

// handleMessage обрабатывает legacy-вызов текстовой командой с префиксом.
func (b *Bot) handleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !isFetchCommand(m.Content, b.cfg.Discord.Prefix) {
		return
	}
	go b.runPrefixFetch(ctx, m)
}

// isFetchCommand распознаёт текстовый вызов вида "!fetch" (допускается хвост
// из пробельных аргументов, любые другие аргументы игнорируются).
func isFetchCommand(content, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return false
	}
	fields := strings.Fields(content[len(prefix):])
	return len(fields) > 0 && fields[0] == commandFetch
}

// userMessage переводит ошибку сервиса в пользовательское сообщение.
// Детали внутренних ошибок наружу не раскрываются.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, service.ErrNoLaunches) {
		return "There are no upcoming launches to show right now."
	}
	return "NextSpaceflight is unavailable right now, try again later."
}

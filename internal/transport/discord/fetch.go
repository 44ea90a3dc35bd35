package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/pribylovaa/spaceflight-bot/internal/paginator"
	"github.com/pribylovaa/spaceflight-bot/internal/pkg/log"
)

// runSlashFetch обрабатывает вызов /fetch: скрейп, первая карточка с кнопками
// навигации, затем цикл пагинации до простоя.
//
// Ошибки до первой карточки отправляются пользователю ephemeral-сообщением,
// чтобы не засорять канал.
func (b *Bot) runSlashFetch(ctx context.Context, ic *discordgo.InteractionCreate) {
	const op = "transport/discord/runSlashFetch"

	invocationID := uuid.NewString()
	ctx = log.With(ctx, slog.String("invocation_id", invocationID))
	lg := log.From(ctx)

	pages, err := b.svc.FetchPages(ctx)
	if err != nil {
		respondErr := b.rest.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: userMessage(err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if respondErr != nil {
			lg.Error("error_reply_failed",
				slog.String("op", op),
				slog.String("err", respondErr.Error()),
			)
		}
		return
	}

	sess := paginator.NewSession(invocationID, len(pages))

	err = b.rest.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     pages[:1],
			Components: navigation(sess),
		},
	})
	if err != nil {
		lg.Error("initial_reply_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return
	}

	b.paginate(ctx, sess, pages)
}

// runPrefixFetch обрабатывает legacy-вызов "!fetch" обычным сообщением.
// Кнопки на обычном сообщении приходят теми же компонентными событиями,
// поэтому цикл пагинации общий со slash-путём.
func (b *Bot) runPrefixFetch(ctx context.Context, m *discordgo.MessageCreate) {
	const op = "transport/discord/runPrefixFetch"

	invocationID := uuid.NewString()
	ctx = log.With(ctx, slog.String("invocation_id", invocationID))
	lg := log.From(ctx)

	pages, err := b.svc.FetchPages(ctx)
	if err != nil {
		if _, sendErr := b.rest.ChannelMessageSend(m.ChannelID, userMessage(err)); sendErr != nil {
			lg.Error("error_reply_failed",
				slog.String("op", op),
				slog.String("err", sendErr.Error()),
			)
		}
		return
	}

	sess := paginator.NewSession(invocationID, len(pages))

	_, err = b.rest.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     pages[:1],
		Components: navigation(sess),
		Reference:  m.Reference(),
	})
	if err != nil {
		lg.Error("initial_reply_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return
	}

	b.paginate(ctx, sess, pages)
}

// paginate — цикл одной сессии: строго последовательная обработка нажатий
// с окном простоя, отсчитываемым от последнего события.
//
// Каждое нажатие отвечает in-place правкой исходного сообщения (новое сообщение
// не публикуется). Незнакомый custom_id внутри префикса сессии — no-op:
// индекс не меняется, но текущая карточка перерисовывается. По истечении окна
// простоя сессия завершается молча, её кнопки перестают отвечать.
func (b *Bot) paginate(ctx context.Context, sess *paginator.Session, pages []*discordgo.MessageEmbed) {
	const op = "transport/discord/paginate"

	lg := log.From(ctx)

	presses, cancel := b.collector.Subscribe(sess.ID())
	defer cancel()

	idle := b.cfg.Paginator.IdleTimeout
	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			lg.Info("session_idle_timeout", slog.String("op", op))
			return

		case press := <-presses:
			index := sess.Apply(press.CustomID)

			err := b.rest.InteractionRespond(press.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseUpdateMessage,
				Data: &discordgo.InteractionResponseData{
					Embeds:     pages[index : index+1],
					Components: navigation(sess),
				},
			})
			if err != nil {
				lg.Error("page_edit_failed",
					slog.String("op", op),
					slog.Int("index", index),
					slog.String("err", err.Error()),
				)
				return
			}

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(idle)
		}
	}
}

// navigation — ряд кнопок Previous/Next, неймспейс custom_id — идентификатор сессии.
func navigation(sess *paginator.Session) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: sess.PreviousID(),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: sess.NextID(),
				},
			},
		},
	}
}

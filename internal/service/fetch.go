package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/pribylovaa/spaceflight-bot/internal/pkg/log"
)

// FetchPages выполняет свежий скрейп источника и рендерит весь набор карточек.
//
// Кэша нет намеренно: каждый вызов команды видит актуальный список.
//
// Ошибки:
//   - ErrNoLaunches — успешный скрейп с пустым списком;
//   - прочие ошибки скрапера — обёрнутые и прокинутые наверх.
func (s *Service) FetchPages(ctx context.Context) ([]*discordgo.MessageEmbed, error) {
	const op = "service/fetch/FetchPages"

	lg := log.From(ctx)

	launches, err := s.scraper.FetchLaunches(ctx)
	if err != nil {
		lg.Error("fetch_launches_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(launches) == 0 {
		lg.Warn("fetch_launches_empty", slog.String("op", op))

		return nil, fmt.Errorf("%s: %w", op, ErrNoLaunches)
	}

	pages := s.renderer.RenderAll(launches)

	lg.Info("fetch_pages_ok",
		slog.String("op", op),
		slog.Int("pages", len(pages)),
	)

	return pages, nil
}

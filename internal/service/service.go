// service содержит бизнес-логику бота: один вызов команды — один свежий
// скрейп источника и полный набор заранее отрендеренных карточек.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/spaceflight-bot/internal/cards"
	"github.com/pribylovaa/spaceflight-bot/internal/models"
)

var (
	// ErrNoLaunches — источник ответил успешно, но валидных запусков нет.
	// Транспорт: пользовательское сообщение «нечего показать».
	ErrNoLaunches = errors.New("no upcoming launches")
)

// Scraper описывает абстракцию источника запусков.
//
// Требования к реализации:
// 1) Список возвращается в порядке документа источника.
// 2) Записи с неразобранными полями отбрасываются реализацией молча;
// пустой список при успешном вызове допустим.
// 3) Реализация обязана уважать ctx (отмена/таймауты).
type Scraper interface {
	FetchLaunches(ctx context.Context) ([]models.Launch, error)
}

// Service — бизнес-логика spaceflight-bot.
type Service struct {
	scraper  Scraper
	renderer *cards.Renderer
}

// New создаёт новый экземпляр Service.
func New(scraper Scraper, renderer *cards.Renderer) *Service {
	return &Service{
		scraper:  scraper,
		renderer: renderer,
	}
}

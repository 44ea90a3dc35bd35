// scraper загружает страницу NextSpaceflight со списком предстоящих запусков
// и разбирает её в доменные объекты models.Launch.
//
// У источника нет документированного API, поэтому разбор привязан к текущей
// верстке. Все селекторы собраны в одном блоке ниже: при изменении layout
// источника править нужно только его.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"github.com/pribylovaa/spaceflight-bot/internal/config"
	"github.com/pribylovaa/spaceflight-bot/internal/models"
	"github.com/pribylovaa/spaceflight-bot/internal/pkg/log"
)

// Селекторы карточки запуска на странице источника.
const (
	// selCard — контейнер одной карточки запуска.
	selCard = ".mdl-card"
	// selName — заголовок с названием миссии.
	selName = "h5.header-style"
	// selSupporting — блок с временем и площадкой запуска.
	selSupporting = ".mdl-card__supporting-text"
	// selDetails — кнопка со ссылкой на страницу запуска.
	selDetails = ".mdc-button"
)

// supportingRuns — ожидаемое число текстовых узлов в блоке selSupporting:
// [1] — строка времени, [3] — площадка. Карточки с другой структурой
// отбрасываются целиком (структурный предохранитель от смены верстки).
const supportingRuns = 4

// timeLayout — строгий формат времени источника, например "Wed Aug 07, 2024 08:30 UTC".
const timeLayout = "Mon Jan 02, 2006 15:04 MST"

// Scraper выполняет один HTTP GET и разбор HTML. Состояния не имеет,
// безопасен для конкурентного использования.
type Scraper struct {
	client      *resty.Client
	launchesURL string
}

// New создаёт скрапер с таймаутом из конфигурации.
func New(cfg config.ScraperConfig) *Scraper {
	return &Scraper{
		client:      resty.New().SetTimeout(cfg.Timeout),
		launchesURL: cfg.LaunchesURL(),
	}
}

// FetchLaunches загружает страницу запусков и возвращает список в порядке документа.
//
// Ошибки транспорта, неуспешный HTTP-статус и нечитаемый HTML фатальны для
// всего вызова. Карточки, у которых не разобралось хотя бы одно поле,
// молча пропускаются; успешный вызов с пустым списком возможен.
func (s *Scraper) FetchLaunches(ctx context.Context) ([]models.Launch, error) {
	const op = "scraper.FetchLaunches"

	lg := log.From(ctx)

	res, err := s.client.R().SetContext(ctx).Get(s.launchesURL)
	if err != nil {
		return nil, fmt.Errorf("%s: get: %w", op, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s: status=%d", op, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", op, err)
	}

	var launches []models.Launch
	doc.Find(selCard).Each(func(i int, card *goquery.Selection) {
		launch, ok := parseCard(card)
		if !ok {
			lg.Debug("launch_card_skipped",
				slog.String("op", op),
				slog.Int("index", i),
			)
			return
		}
		launches = append(launches, launch)
	})

	lg.Info("launches_fetched",
		slog.String("op", op),
		slog.Int("count", len(launches)),
	)

	return launches, nil
}

// parseCard разбирает одну карточку. Возвращает ok=false, если какое-либо
// из четырёх полей отсутствует или не разобралось.
func parseCard(card *goquery.Selection) (models.Launch, bool) {
	runs := textRuns(card.Find(selSupporting).First())
	if len(runs) != supportingRuns {
		return models.Launch{}, false
	}

	launchTime, err := parseLaunchTime(runs[1])
	if err != nil {
		return models.Launch{}, false
	}

	name, ok := firstTextNode(card.Find(selName).First())
	if !ok {
		return models.Launch{}, false
	}

	href, ok := card.Find(selDetails).First().Attr("href")
	if !ok || href == "" {
		return models.Launch{}, false
	}

	return models.Launch{
		Name:        name,
		Time:        launchTime,
		Site:        runs[3],
		DetailsPath: href,
	}, true
}

// parseLaunchTime разбирает строку времени по timeLayout.
//
// Аббревиатура зоны в строке распознаётся форматом, но НЕ учитывается как
// смещение: разобранное «настенное» время трактуется как UTC. Это осознанно
// повторяет поведение источника данных бота и не зависит от TZ процесса.
func parseLaunchTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// textRuns собирает содержимое всех текстовых узлов-потомков в порядке документа.
// Узлы не обрезаются и не фильтруются: число узлов — часть структурного контракта.
func textRuns(sel *goquery.Selection) []string {
	var runs []string
	for _, node := range sel.Nodes {
		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode {
				runs = append(runs, n.Data)
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	return runs
}

// firstTextNode возвращает содержимое первого текстового узла-потомка.
func firstTextNode(sel *goquery.Selection) (string, bool) {
	runs := textRuns(sel)
	if len(runs) == 0 {
		return "", false
	}
	return runs[0], true
}

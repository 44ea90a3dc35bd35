// cards — чистый рендер доменных Launch в embed-карточки Discord.
//
// Никакого I/O и скрытого состояния: одинаковые входы дают одинаковую карточку.
package cards

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pribylovaa/spaceflight-bot/internal/models"
)

const (
	// accentColor — белая цветовая полоса embed.
	accentColor = 0xFFFFFF
	// footerText — атрибуция источника.
	footerText = "Via NextSpaceflight"

	fieldTime = "Time"
	fieldSite = "Launch Site"
)

// Renderer собирает карточки, резолвя относительные ссылки против origin источника.
type Renderer struct {
	origin string
}

// NewRenderer создаёт рендер с заданным origin (например, "https://nextspaceflight.com").
func NewRenderer(origin string) *Renderer {
	return &Renderer{origin: strings.TrimSuffix(origin, "/")}
}

// Render строит карточку одного запуска. num — 1-based номер в выдаче,
// попадает в заголовок вида "#3 | Starlink Group 10-7".
//
// Поле времени — платформенный timestamp-токен: клиент Discord сам отображает
// момент в локали зрителя, ISO-строка не отправляется.
func (r *Renderer) Render(l models.Launch, num int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("#%d | %s", num, strings.TrimSpace(l.Name)),
		URL:   l.DetailsURL(r.origin),
		Color: accentColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: fieldTime, Value: Timestamp(l.Time), Inline: false},
			{Name: fieldSite, Value: l.Site, Inline: false},
		},
	}
}

// RenderAll рендерит весь список заранее: нажатия кнопок пагинации
// становятся O(1)-правками сообщения без повторного похода к источнику.
func (r *Renderer) RenderAll(launches []models.Launch) []*discordgo.MessageEmbed {
	pages := make([]*discordgo.MessageEmbed, 0, len(launches))
	for i, l := range launches {
		pages = append(pages, r.Render(l, i+1))
	}
	return pages
}

// Timestamp возвращает inline-токен Discord вида "<t:{unix}:F>",
// рендерящийся у зрителя как полная дата-время в его локали.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}

package paginator

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Press — одно нажатие компонента, адресованное сессии.
// Interaction нужен циклу сессии, чтобы ответить in-place правкой сообщения.
type Press struct {
	CustomID    string
	Interaction *discordgo.Interaction
}

// Collector доставляет нажатия кнопок подписанным сессиям по префиксу custom_id.
//
// Go-вариант «коллектора» компонентных событий: единственный gateway-обработчик
// зовёт Dispatch, каждая сессия читает свой буферизированный канал. Dispatch
// никогда не блокируется: нажатия к незнакомым префиксам и нажатия поверх
// заполненного буфера отбрасываются (завершённые сессии просто перестают
// отвечать, дополнительных сообщений не шлётся).
type Collector struct {
	mu     sync.Mutex
	subs   map[string]chan Press
	buffer int
}

// NewCollector создаёт коллектор; buffer — ёмкость канала нажатий одной сессии.
func NewCollector(buffer int) *Collector {
	if buffer <= 0 {
		buffer = 16
	}
	return &Collector{
		subs:   make(map[string]chan Press),
		buffer: buffer,
	}
}

// Subscribe регистрирует сессию по префиксу её custom_id.
// Возвращает канал нажатий и функцию отписки; отписка закрывает канал.
func (c *Collector) Subscribe(prefix string) (<-chan Press, func()) {
	ch := make(chan Press, c.buffer)

	c.mu.Lock()
	c.subs[prefix] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if cur, ok := c.subs[prefix]; ok && cur == ch {
			delete(c.subs, prefix)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Dispatch маршрутизирует компонентное событие в сессию, чей префикс совпал.
// Возвращает true, если нажатие было доставлено.
func (c *Collector) Dispatch(ic *discordgo.InteractionCreate) bool {
	if ic.Type != discordgo.InteractionMessageComponent {
		return false
	}
	customID := ic.MessageComponentData().CustomID

	c.mu.Lock()
	defer c.mu.Unlock()

	for prefix, ch := range c.subs {
		if !strings.HasPrefix(customID, prefix) {
			continue
		}
		select {
		case ch <- Press{CustomID: customID, Interaction: ic.Interaction}:
			return true
		default:
			// Буфер сессии полон: нажатие отбрасывается, порядок остальных сохраняется.
			return false
		}
	}
	return false
}

// paginator — состояние сессии пагинации и маршрутизация нажатий кнопок.
//
// Сессия принадлежит ровно одному вызову команды. custom_id кнопок
// неймспейсятся её идентификатором, поэтому параллельные вызовы (одного или
// разных пользователей) не могут управлять чужими сессиями.
package paginator

// Суффиксы custom_id кнопок навигации.
const (
	suffixPrevious = "previous"
	suffixNext     = "next"
)

// Session — состояние пагинации одного вызова: кольцо из n страниц
// с текущим индексом. Не потокобезопасна: владелец — единственная
// горутина цикла обработки нажатий.
type Session struct {
	id    string
	n     int
	index int
}

// NewSession создаёт сессию с n страницами (n >= 1) и индексом 0.
// id — непрозрачный уникальный токен вызова, префикс custom_id кнопок.
func NewSession(id string, n int) *Session {
	return &Session{id: id, n: n}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string { return s.id }

// Index возвращает текущий индекс страницы.
func (s *Session) Index() int { return s.index }

// PreviousID — custom_id кнопки «Previous».
func (s *Session) PreviousID() string { return s.id + suffixPrevious }

// NextID — custom_id кнопки «Next».
func (s *Session) NextID() string { return s.id + suffixNext }

// Matches сообщает, принадлежит ли нажатие этой сессии.
func (s *Session) Matches(customID string) bool {
	return len(customID) >= len(s.id) && customID[:len(s.id)] == s.id
}

// Apply применяет нажатие и возвращает новый индекс.
//
// Правила:
//   - NextID: index+1 по модулю n;
//   - PreviousID: index-1 с заворотом из 0 в n-1;
//   - любой другой custom_id: индекс не меняется (но страница перерисовывается
//     вызывающей стороной).
func (s *Session) Apply(customID string) int {
	switch customID {
	case s.NextID():
		s.index = (s.index + 1) % s.n
	case s.PreviousID():
		s.index = (s.index - 1 + s.n) % s.n
	}
	return s.index
}

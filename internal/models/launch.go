// models содержит доменные сущности бота.
// Эти типы используются слоями скрапера, бизнес-логики и рендера карточек.
package models

import (
	"strings"
	"time"
)

// Launch — доменная сущность предстоящего запуска.
//
// Особенности:
//   - Time — момент запуска в UTC;
//   - DetailsPath — относительный путь на странице источника (начинается с "/").
type Launch struct {
	// Name — название миссии (может содержать обрамляющие пробелы, обрезается при рендере).
	Name string
	// Time — расчётное время запуска (UTC).
	Time time.Time
	// Site — площадка запуска, как указано у источника.
	Site string
	// DetailsPath — относительная ссылка на страницу запуска.
	DetailsPath string
}

// DetailsURL собирает абсолютную ссылку на страницу запуска из origin источника.
func (l Launch) DetailsURL(origin string) string {
	return strings.TrimSuffix(origin, "/") + l.DetailsPath
}

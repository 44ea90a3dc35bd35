package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/spaceflight-bot/internal/config"
)

// mkCard — утилита шаблона карточки запуска в верстке источника.
// supporting подставляется как есть, чтобы управлять числом текстовых узлов.
func mkCard(name, supporting, href string) string {
	h5 := ""
	if name != "" {
		h5 = fmt.Sprintf(`<h5 class="header-style">%s</h5>`, name)
	}
	btn := ""
	if href != "" {
		btn = fmt.Sprintf(`<a class="mdc-button" href="%s">Details</a>`, href)
	}
	return fmt.Sprintf(`<div class="mdl-card">%s<div class="mdl-card__supporting-text">%s</div>%s</div>`, h5, supporting, btn)
}

// supporting4 — блок из ровно четырёх текстовых узлов: [1] — время, [3] — площадка.
func supporting4(timeStr, site string) string {
	return fmt.Sprintf("Launch<br>%s<br>Site<br>%s", timeStr, site)
}

func mkPage(cards ...string) string {
	return "<html><body>" + strings.Join(cards, "\n") + "</body></html>"
}

// newScraper — скрапер, указывающий на тестовый сервер.
func newScraper(baseURL string) *Scraper {
	return New(config.ScraperConfig{
		BaseURL:      baseURL,
		LaunchesPath: "/launches/",
		Timeout:      5 * time.Second,
	})
}

func serve(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestFetchLaunches_OK — три валидные карточки в порядке документа.
func TestFetchLaunches_OK(t *testing.T) {
	t.Parallel()

	page := mkPage(
		mkCard("Alpha", supporting4("Wed Aug 07, 2024 08:30 UTC", "LC-39A, Kennedy Space Center"), "/launches/details/1"),
		mkCard("Bravo", supporting4("Thu Aug 08, 2024 12:00 UTC", "SLC-40, Cape Canaveral"), "/launches/details/2"),
		mkCard("Charlie", supporting4("Fri Aug 09, 2024 23:59 UTC", "Boca Chica, Texas"), "/launches/details/3"),
	)
	srv := serve(t, page, http.StatusOK)

	launches, err := newScraper(srv.URL).FetchLaunches(context.Background())
	require.NoError(t, err)
	require.Len(t, launches, 3)

	require.Equal(t, "Alpha", launches[0].Name)
	require.Equal(t, "Bravo", launches[1].Name)
	require.Equal(t, "Charlie", launches[2].Name)

	require.Equal(t, time.Date(2024, 8, 7, 8, 30, 0, 0, time.UTC), launches[0].Time)
	require.Equal(t, "LC-39A, Kennedy Space Center", launches[0].Site)
	require.Equal(t, "/launches/details/1", launches[0].DetailsPath)
}

// TestFetchLaunches_Deterministic — одинаковый HTML даёт одинаковый результат.
func TestFetchLaunches_Deterministic(t *testing.T) {
	t.Parallel()

	page := mkPage(
		mkCard("Alpha", supporting4("Wed Aug 07, 2024 08:30 UTC", "LC-39A"), "/launches/details/1"),
		mkCard("Bravo", supporting4("Thu Aug 08, 2024 12:00 UTC", "SLC-40"), "/launches/details/2"),
	)
	srv := serve(t, page, http.StatusOK)
	s := newScraper(srv.URL)

	first, err := s.FetchLaunches(context.Background())
	require.NoError(t, err)
	second, err := s.FetchLaunches(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestFetchLaunches_StructuralFilter — карточка с «неправильным» числом
// текстовых узлов отбрасывается, нумерация уцелевших сохраняет порядок документа.
func TestFetchLaunches_StructuralFilter(t *testing.T) {
	t.Parallel()

	page := mkPage(
		mkCard("Alpha", supporting4("Wed Aug 07, 2024 08:30 UTC", "LC-39A"), "/launches/details/1"),
		mkCard("Broken", "Launch<br>Thu Aug 08, 2024 12:00 UTC<br>Site", "/launches/details/2"),
		mkCard("Charlie", supporting4("Fri Aug 09, 2024 23:59 UTC", "Boca Chica"), "/launches/details/3"),
	)
	srv := serve(t, page, http.StatusOK)

	launches, err := newScraper(srv.URL).FetchLaunches(context.Background())
	require.NoError(t, err)
	require.Len(t, launches, 2)
	require.Equal(t, "Alpha", launches[0].Name)
	require.Equal(t, "Charlie", launches[1].Name)
}

// TestFetchLaunches_DropRules — по одной карточке на каждое «сломанное» поле.
func TestFetchLaunches_DropRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		card string
	}{
		{
			name: "bad time",
			card: mkCard("X", supporting4("TBD", "LC-39A"), "/launches/details/1"),
		},
		{
			name: "unpadded day rejected by strict layout",
			card: mkCard("X", supporting4("Wed Aug 7, 2024 08:30 UTC", "LC-39A"), "/launches/details/1"),
		},
		{
			name: "missing header",
			card: mkCard("", supporting4("Wed Aug 07, 2024 08:30 UTC", "LC-39A"), "/launches/details/1"),
		},
		{
			name: "missing details button",
			card: mkCard("X", supporting4("Wed Aug 07, 2024 08:30 UTC", "LC-39A"), ""),
		},
		{
			name: "missing supporting text",
			card: `<div class="mdl-card"><h5 class="header-style">X</h5><a class="mdc-button" href="/d">D</a></div>`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := serve(t, mkPage(tc.card), http.StatusOK)

			launches, err := newScraper(srv.URL).FetchLaunches(context.Background())
			require.NoError(t, err)
			require.Empty(t, launches)
		})
	}
}

// TestFetchLaunches_UpstreamStatus — неуспешный статус фатален для всего вызова.
func TestFetchLaunches_UpstreamStatus(t *testing.T) {
	t.Parallel()

	srv := serve(t, "oops", http.StatusInternalServerError)

	_, err := newScraper(srv.URL).FetchLaunches(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=500")
}

// TestFetchLaunches_TransportError — недоступный сервер -> одна ошибка «источник недоступен».
func TestFetchLaunches_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newScraper(srv.URL).FetchLaunches(context.Background())
	require.Error(t, err)
}

// Test_parseLaunchTime — строгий формат и трактовка «настенного» времени как UTC.
func Test_parseLaunchTime(t *testing.T) {
	t.Parallel()

	t.Run("utc zone", func(t *testing.T) {
		t.Parallel()
		got, err := parseLaunchTime("Wed Aug 07, 2024 08:30 UTC")
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 8, 7, 8, 30, 0, 0, time.UTC), got)
	})

	// Аббревиатура зоны не учитывается как смещение: 05:00 MSK становится 05:00 UTC.
	t.Run("non-utc zone is not honored", func(t *testing.T) {
		t.Parallel()
		got, err := parseLaunchTime("Mon Dec 01, 2025 05:00 MSK")
		require.NoError(t, err)
		require.Equal(t, time.Date(2025, 12, 1, 5, 0, 0, 0, time.UTC), got)
		require.Equal(t, int64(1764565200), got.Unix())
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"", "TBD", "2024-08-07T08:30:00Z", "Aug 07, 2024 08:30 UTC"} {
			_, err := parseLaunchTime(value)
			require.Error(t, err, value)
		}
	})
}

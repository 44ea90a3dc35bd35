package cards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/spaceflight-bot/internal/models"
)

func sampleLaunch() models.Launch {
	return models.Launch{
		Name:        "  Falcon 9 | Starlink Group 10-7  ",
		Time:        time.Date(2024, 8, 7, 8, 30, 0, 0, time.UTC),
		Site:        "SLC-40, Cape Canaveral SFS, Florida, USA",
		DetailsPath: "/launches/details/7423",
	}
}

// TestRender_Shape — заголовок, ссылка, цвет, футер и поля карточки.
func TestRender_Shape(t *testing.T) {
	t.Parallel()

	r := NewRenderer("https://nextspaceflight.com")
	embed := r.Render(sampleLaunch(), 3)

	require.Equal(t, "#3 | Falcon 9 | Starlink Group 10-7", embed.Title)
	require.Equal(t, "https://nextspaceflight.com/launches/details/7423", embed.URL)
	require.Equal(t, 0xFFFFFF, embed.Color)
	require.Equal(t, "Via NextSpaceflight", embed.Footer.Text)

	require.Len(t, embed.Fields, 2)
	require.Equal(t, "Time", embed.Fields[0].Name)
	require.Equal(t, "<t:1723019400:F>", embed.Fields[0].Value)
	require.False(t, embed.Fields[0].Inline)
	require.Equal(t, "Launch Site", embed.Fields[1].Name)
	require.Equal(t, "SLC-40, Cape Canaveral SFS, Florida, USA", embed.Fields[1].Value)
	require.False(t, embed.Fields[1].Inline)
}

// TestRender_Pure — одинаковые входы дают одинаковые карточки.
func TestRender_Pure(t *testing.T) {
	t.Parallel()

	r := NewRenderer("https://nextspaceflight.com")
	require.Equal(t, r.Render(sampleLaunch(), 1), r.Render(sampleLaunch(), 1))
}

// TestRenderAll_Numbering — карточки нумеруются с единицы в порядке списка.
func TestRenderAll_Numbering(t *testing.T) {
	t.Parallel()

	launches := []models.Launch{
		{Name: "Alpha", Time: time.Unix(1, 0).UTC(), Site: "A", DetailsPath: "/a"},
		{Name: "Bravo", Time: time.Unix(2, 0).UTC(), Site: "B", DetailsPath: "/b"},
		{Name: "Charlie", Time: time.Unix(3, 0).UTC(), Site: "C", DetailsPath: "/c"},
	}

	r := NewRenderer("https://nextspaceflight.com/")
	pages := r.RenderAll(launches)

	require.Len(t, pages, 3)
	require.Equal(t, "#1 | Alpha", pages[0].Title)
	require.Equal(t, "#2 | Bravo", pages[1].Title)
	require.Equal(t, "#3 | Charlie", pages[2].Title)
	require.Equal(t, "https://nextspaceflight.com/b", pages[1].URL)
}

// TestTimestamp — токен несёт UNIX-секунды момента запуска.
func TestTimestamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<t:0:F>", Timestamp(time.Unix(0, 0)))
	require.Equal(t, "<t:1764565200:F>", Timestamp(time.Date(2025, 12, 1, 5, 0, 0, 0, time.UTC)))
}

package domain

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDue(t *testing.T) {
	q := &Quote{ID: 1, Content: "x", DisplayDate: "2026-01-07"}

	assert.True(t, q.IsDue("2026-01-07"))
	assert.True(t, q.IsDue("2026-01-08"))
	assert.True(t, q.IsDue("2027-01-01"))
	assert.False(t, q.IsDue("2026-01-06"))
	assert.False(t, q.IsDue("2025-12-31"))
}

func TestNewerOrdering(t *testing.T) {
	quotes := []*Quote{
		{ID: 1, DisplayDate: "2026-01-06"},
		{ID: 2, DisplayDate: "2026-01-08"},
		{ID: 3, DisplayDate: "2026-01-06"},
		{ID: 4, DisplayDate: "2025-12-31"},
	}

	sort.Slice(quotes, func(i, j int) bool { return Newer(quotes[i], quotes[j]) })

	ids := make([]int64, 0, len(quotes))
	for _, q := range quotes {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
}

func TestClockToday(t *testing.T) {
	late := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	clock := Clock(func() time.Time { return late })
	assert.Equal(t, "2026-03-01", clock.Today())

	var unset Clock
	assert.Len(t, unset.Today(), len(DateLayout))
}

func TestMidnightUTC(t *testing.T) {
	ts, err := MidnightUTC("2026-01-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), ts)

	_, err = MidnightUTC("2026-13-01")
	assert.Error(t, err)
}

func TestXMLText(t *testing.T) {
	assert.True(t, ValidXMLText("Tab\tund Zeile\r\n, Ümlaut 🙂"))
	assert.False(t, ValidXMLText("bell\u0001"))
	assert.False(t, ValidXMLText("form\u000cfeed"))
	assert.False(t, ValidXMLText("x\ufffe"))
	assert.False(t, ValidXMLText("bad \xff utf-8"))

	assert.Equal(t, "ok", SanitizeXMLText("ok"))
	assert.Equal(t, "bell\ufffdhere\ufffdff", SanitizeXMLText("bell\u0001here\u000cff"))
	assert.Equal(t, "bad \ufffd utf-8", SanitizeXMLText("bad \xff utf-8"))
}

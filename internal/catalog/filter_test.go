package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultItems(t *testing.T) []Item {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c.Items()
}

func names(items []RankedItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestParseTerms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace", raw: "   \t ", want: []string{}},
		{name: "only commas", raw: ",, , ,", want: []string{}},
		{name: "lowercases and trims", raw: "  Vainilla ,ALMIZCLE ", want: []string{"vainilla", "almizcle"}},
		{name: "drops empty pieces", raw: "rosa,,  ,jazmín", want: []string{"rosa", "jazmín"}},
		{name: "keeps repeated terms", raw: "rosa, rosa", want: []string{"rosa", "rosa"}},
		{name: "caps at five after filtering", raw: "a, ,b,c,,d,e,f,g", want: []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTerms(tt.raw))
		})
	}
}

func TestFilterNoTermsReturnsCatalogInOrder(t *testing.T) {
	t.Parallel()
	items := defaultItems(t)

	for _, raw := range []string{"", "   ", ",,,", " , , "} {
		got := Filter(raw, items)
		require.Len(t, got, len(items), "input %q", raw)
		for i := range items {
			assert.Equal(t, items[i].Name, got[i].Name, "input %q position %d", raw, i)
			assert.Zero(t, got[i].MatchCount)
		}
	}
}

func TestFilterSingleTermKeepsCatalogOrderOnTies(t *testing.T) {
	t.Parallel()
	got := Filter("almizcle", defaultItems(t))

	require.Equal(t, []string{"Eternity for Women", "Chanel No. 5"}, names(got))
	assert.Equal(t, 1, got[0].MatchCount)
	assert.Equal(t, 1, got[1].MatchCount)
}

func TestFilterRanksByMatchCount(t *testing.T) {
	t.Parallel()
	got := Filter("vainilla, almizcle", defaultItems(t))

	require.Equal(t, []string{"Chanel No. 5", "Eternity for Women", "J'adore by Dior"}, names(got))
	assert.Equal(t, []int{2, 1, 1}, []int{got[0].MatchCount, got[1].MatchCount, got[2].MatchCount})
}

func TestFilterTermMatchingNameAndNoteCountsOnce(t *testing.T) {
	t.Parallel()
	items := []Item{
		{Name: "Rosa Intensa", Price: decimal.NewFromInt(10), Notes: []string{"rosa", "rosa negra"}},
	}
	got := Filter("rosa", items)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].MatchCount)
}

func TestFilterIsCaseInsensitiveOnNameAndNotes(t *testing.T) {
	t.Parallel()
	got := Filter("CHANEL, Violeta", defaultItems(t))
	require.Len(t, got, 1)
	assert.Equal(t, "Chanel No. 5", got[0].Name)
	assert.Equal(t, 2, got[0].MatchCount)
}

func TestFilterIgnoresTermsBeyondFive(t *testing.T) {
	t.Parallel()
	items := defaultItems(t)

	capped := Filter("zzz, yyy, xxx, www, vvv, almizcle", items)
	assert.Empty(t, capped, "sixth term must not take part in matching")

	within := Filter("zzz, yyy, xxx, www, almizcle, vainilla", items)
	assert.Equal(t, []string{"Eternity for Women", "Chanel No. 5"}, names(within))
}

func TestFilterRepeatedTermsCountPerPosition(t *testing.T) {
	t.Parallel()
	got := Filter("cedro, cedro", defaultItems(t))
	require.Len(t, got, 1)
	assert.Equal(t, "Paco Rabanne Invictus", got[0].Name)
	assert.Equal(t, 2, got[0].MatchCount)
}

func TestFilterNoMatchesReturnsEmpty(t *testing.T) {
	t.Parallel()
	got := Filter("oud", defaultItems(t))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterStabilityAcrossManyTies(t *testing.T) {
	t.Parallel()
	items := make([]Item, 0, 20)
	for i := 0; i < 20; i++ {
		notes := []string{"base"}
		if i%3 == 0 {
			notes = append(notes, "extra")
		}
		items = append(items, Item{Name: string(rune('A' + i)), Price: decimal.NewFromInt(1), Notes: notes})
	}

	got := Filter("base, extra", items)
	require.Len(t, got, 20)

	var twos, ones []string
	for _, item := range items {
		if len(item.Notes) == 2 {
			twos = append(twos, item.Name)
		} else {
			ones = append(ones, item.Name)
		}
	}
	assert.Equal(t, append(twos, ones...), names(got))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	items := defaultItems(t)
	got := Filter("rosa", items)
	require.NotEmpty(t, got)
	got[0].Notes[0] = "mutated"
	assert.NotEqual(t, "mutated", items[0].Notes[0])
}

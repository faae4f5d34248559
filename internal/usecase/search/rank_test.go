package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/medspace/internal/domain"
	"github.com/kailas-cloud/medspace/internal/domain/content"
	"github.com/kailas-cloud/medspace/internal/domain/search/result"
)

func item(id, title string, kind content.Kind, specialty string) content.Item {
	return content.Reconstruct(id, title, kind, specialty, "", "")
}

func ids(rs []result.Scored) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].ID()
	}
	return out
}

func TestRank_WordAndTypeBonus(t *testing.T) {
	// "guideline" is not a substring of "guide": only "ecmo" and the type bonus score.
	items := []content.Item{item("1", "ECMO Cannulation Guide", content.Guideline, "")}

	got, err := Rank("ecmo guideline", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 75, got[0].Score())
	assert.Equal(t, []string{"ecmo"}, got[0].MatchedKeywords())
}

func TestRank_TwoWordsAndTypeBonus(t *testing.T) {
	items := []content.Item{item("1", "ECMO Cannulation Guideline", content.Guideline, "")}

	got, err := Rank("ecmo guideline", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 125, got[0].Score())
	assert.Equal(t, []string{"ecmo", "guideline"}, got[0].MatchedKeywords())
}

func TestRank_PhraseOutranksWords(t *testing.T) {
	items := []content.Item{
		item("2", "Appendectomy Notes", content.Document, ""),
		item("1", "Appendectomy Video Tutorial", content.Video, ""),
	}

	got, err := Rank("appendectomy video", items)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"1", "2"}, ids(got))
	// phrase 100 + two words 100 + video type 25
	assert.Equal(t, 225, got[0].Score())
	assert.Equal(t, []string{"appendectomy video", "appendectomy", "video"}, got[0].MatchedKeywords())
	assert.Equal(t, 50, got[1].Score())
	assert.Equal(t, []string{"appendectomy"}, got[1].MatchedKeywords())
}

func TestRank_SpecialtyBonus(t *testing.T) {
	items := []content.Item{item("1", "Sepsis Protocol", content.Guideline, "emergency")}

	got, err := Rank("emergency sepsis", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 80, got[0].Score())
	assert.Equal(t, []string{"sepsis", "emergency"}, got[0].MatchedKeywords())
}

func TestRank_SpecialtyIsNotLowercased(t *testing.T) {
	items := []content.Item{item("1", "Sepsis Protocol", content.Guideline, "Emergency")}

	got, err := Rank("emergency sepsis", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Score())
}

func TestRank_UnknownSpecialtyIgnored(t *testing.T) {
	items := []content.Item{item("1", "Triage", content.Document, content.SpecialtyUnknown)}

	got, err := Rank("unknown", items)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRank_ShortWordsDropped(t *testing.T) {
	assert.Equal(t, []string{"ecmo"}, queryWords("an ecmo"))
	assert.Equal(t, []string{"ecmo", "the"}, queryWords("to ecmo  the"))
	assert.Empty(t, queryWords("a an of"))

	// "an" appears in "Cannulation" but must not score as a word.
	items := []content.Item{item("1", "Cannulation", content.Video, "")}
	got, err := Rank("an ecmo", items)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRank_ShortWordsCountRunes(t *testing.T) {
	// three runes, six bytes
	assert.Equal(t, []string{"ωψχ"}, queryWords("ωψ ωψχ"))
}

func TestRank_SingleWordDoubleCounts(t *testing.T) {
	items := []content.Item{item("1", "ECMO basics", content.Image, "")}

	got, err := Rank("ecmo", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 150, got[0].Score())
	assert.Equal(t, []string{"ecmo", "ecmo"}, got[0].MatchedKeywords())
}

func TestRank_NoImageBonus(t *testing.T) {
	items := []content.Item{item("1", "Chest X-ray", content.Image, "")}

	got, err := Rank("image", items)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRank_TypeBonusAlone(t *testing.T) {
	items := []content.Item{
		item("1", "Suturing", content.Video, ""),
		item("2", "Suturing", content.Document, ""),
	}

	got, err := Rank("any video", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID())
	assert.Equal(t, 25, got[0].Score())
	assert.Empty(t, got[0].MatchedKeywords())
}

func TestRank_UnknownKindTolerated(t *testing.T) {
	items := []content.Item{item("1", "Podcast on sepsis", content.Kind("podcast"), "")}

	got, err := Rank("sepsis", items)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 150, got[0].Score())
}

func TestRank_EmptyItems(t *testing.T) {
	got, err := Rank("anything", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRank_NoMatchExcluded(t *testing.T) {
	items := []content.Item{
		item("1", "Cardiology", content.Document, ""),
		item("2", "Sepsis", content.Document, ""),
	}

	got, err := Rank("sepsis", items)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestRank_MissingTitleFailsFast(t *testing.T) {
	items := []content.Item{
		item("1", "Sepsis", content.Document, ""),
		item("2", "", content.Video, ""),
	}

	got, err := Rank("sepsis", items)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrInvalidContent))

	var verr *domain.ContentValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "2", verr.ID)
	assert.Equal(t, 1, verr.Index)
}

func TestRank_WhitespaceTitleIsNotMissing(t *testing.T) {
	items := []content.Item{
		item("1", "  ", content.Video, ""),
		item("2", "Sepsis", content.Document, ""),
	}

	got, err := Rank("sepsis video", items)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(got))
	assert.Equal(t, 25, got[1].Score())
}

func TestRank_StableOnTies(t *testing.T) {
	var items []content.Item
	for i := 0; i < 20; i++ {
		items = append(items, item(fmt.Sprintf("%02d", i), "Sepsis bundle", content.Document, ""))
	}
	items = append(items, item("top", "Sepsis bundle video", content.Video, ""))

	got, err := Rank("sepsis video", items)
	require.NoError(t, err)
	require.Len(t, got, 21)
	assert.Equal(t, "top", got[0].ID())
	for i := 1; i < len(got); i++ {
		assert.Equal(t, fmt.Sprintf("%02d", i-1), got[i].ID())
	}
}

func TestRank_Properties(t *testing.T) {
	items := []content.Item{
		item("a", "ECMO Cannulation Video", content.Video, "cardiac"),
		item("b", "Sepsis Protocol", content.Guideline, "emergency"),
		item("c", "Appendectomy Notes", content.Document, ""),
		item("d", "Chest X-ray atlas", content.Image, "radiology"),
		item("e", "Cardiac ECMO guideline", content.Guideline, "cardiac"),
		item("f", "Unrelated", content.Document, content.SpecialtyUnknown),
	}
	snapshot := append([]content.Item(nil), items...)

	queries := []string{
		"ecmo", "cardiac ecmo video", "emergency sepsis guideline",
		"appendectomy document", "x-ray", "nothing here",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			first, err := Rank(q, items)
			require.NoError(t, err)
			second, err := Rank(q, items)
			require.NoError(t, err)

			// determinism
			assert.Equal(t, first, second)

			input := make(map[string]bool, len(items))
			for i := range items {
				input[items[i].ID()] = true
			}
			for i := range first {
				// score floor and subset
				assert.GreaterOrEqual(t, first[i].Score(), 1)
				assert.True(t, input[first[i].ID()])
				// sort order
				if i > 0 {
					assert.GreaterOrEqual(t, first[i-1].Score(), first[i].Score())
				}
			}
			assert.LessOrEqual(t, len(first), len(items))
		})
	}

	// input not mutated
	assert.Equal(t, snapshot, items)
}

package diff

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/redline/model"
)

func run(text string, c model.Category) model.Run {
	return model.Run{Text: text, Category: c}
}

func TestChunkSimilarUsesCharacters(t *testing.T) {
	d := NewDiffer(NewFactSet(nil), DefaultThreshold)

	got := d.Chunk([]string{"correct"}, []string{"corrected"})
	want := []model.Run{
		run("correct", model.Unchanged),
		run("ed", model.Added),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chunk = %+v, want %+v", got, want)
	}
}

func TestChunkDissimilarUsesWholeRange(t *testing.T) {
	d := NewDiffer(NewFactSet(nil), DefaultThreshold)

	got := d.Chunk([]string{"Trump"}, []string{"Musk"})
	want := []model.Run{
		run("Trump", model.Deleted),
		run("Musk", model.Added),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chunk = %+v, want %+v", got, want)
	}
}

func TestChunkOneSideEmpty(t *testing.T) {
	fs := NewFactSet([]FactChange{{Original: "old", Corrected: "new"}})
	d := NewDiffer(fs, DefaultThreshold)

	got := d.Chunk(nil, []string{"new ", "words"})
	want := []model.Run{run("new ", model.FactCorrection), run("words", model.Added)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("insert-only Chunk = %+v, want %+v", got, want)
	}

	got = d.Chunk([]string{"old ", "stuff"}, nil)
	want = []model.Run{run("old ", model.FactCorrection), run("stuff", model.Deleted)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delete-only Chunk = %+v, want %+v", got, want)
	}
}

func TestChunkFactReplacement(t *testing.T) {
	fs := NewFactSet([]FactChange{{Original: "Дональд Трамп", Corrected: "Илон Маск"}})
	d := NewDiffer(fs, DefaultThreshold)

	got := d.Chunk([]string{"Дональд ", "Трамп"}, []string{"Илон ", "Маск"})
	want := []model.Run{
		run("Дональд Трамп", model.FactCorrection),
		run("Илон Маск", model.FactCorrection),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chunk = %+v, want %+v", got, want)
	}
}

func TestChunkThresholdIsStrict(t *testing.T) {
	// "abcd" vs "bcde" scores exactly 0.75.
	at := NewDiffer(NewFactSet(nil), 0.75)
	got := at.Chunk([]string{"abcd"}, []string{"bcde"})
	if len(got) != 2 || got[0].Text != "abcd" || got[1].Text != "bcde" {
		t.Errorf("ratio equal to threshold should fall back to whole range, got %+v", got)
	}

	below := NewDiffer(NewFactSet(nil), 0.7)
	got = below.Chunk([]string{"abcd"}, []string{"bcde"})
	want := []model.Run{
		run("a", model.Deleted),
		run("bcd", model.Unchanged),
		run("e", model.Added),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chunk = %+v, want %+v", got, want)
	}
}

func TestWords(t *testing.T) {
	d := NewDiffer(NewFactSet(nil), DefaultThreshold)

	got := d.Words("Hello world", "Hello beautiful world")
	want := []model.Run{
		run("Hello ", model.Unchanged),
		run("beautiful ", model.Added),
		run("world", model.Unchanged),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %+v, want %+v", got, want)
	}

	got = d.Words("Hello beautiful world", "Hello world")
	want = []model.Run{
		run("Hello ", model.Unchanged),
		run("beautiful ", model.Deleted),
		run("world", model.Unchanged),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %+v, want %+v", got, want)
	}
}

func TestWordsCharacterLevelReplace(t *testing.T) {
	d := NewDiffer(NewFactSet(nil), DefaultThreshold)

	got := d.Words("It is correct now", "It is corrected now")
	want := []model.Run{
		run("It is ", model.Unchanged),
		run("correct", model.Unchanged),
		run("ed", model.Added),
		run(" ", model.Unchanged),
		run("now", model.Unchanged),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %+v, want %+v", got, want)
	}
}

func TestChars(t *testing.T) {
	d := NewDiffer(NewFactSet(nil), DefaultThreshold)

	got := d.Chars("colour", "color")
	want := []model.Run{
		run("colo", model.Unchanged),
		run("u", model.Deleted),
		run("r", model.Unchanged),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chars = %+v, want %+v", got, want)
	}
}

func TestWordsIsLossless(t *testing.T) {
	d := NewDiffer(NewFactSet(nil), DefaultThreshold)
	pairs := [][2]string{
		{"The quick brown fox", "A quick red fox jumps"},
		{"Second line with error.", "Second line corrected."},
		{"  spaced  out  ", "spaced in"},
		{"Привет мир", "Привет прекрасный мир"},
	}

	for _, p := range pairs {
		var orig, corr strings.Builder
		for _, r := range d.Words(p[0], p[1]) {
			switch r.Category {
			case model.Unchanged:
				orig.WriteString(r.Text)
				corr.WriteString(r.Text)
			case model.Deleted:
				orig.WriteString(r.Text)
			case model.Added:
				corr.WriteString(r.Text)
			default:
				t.Fatalf("unexpected category %v", r.Category)
			}
		}
		if orig.String() != p[0] {
			t.Errorf("original side = %q, want %q", orig.String(), p[0])
		}
		if corr.String() != p[1] {
			t.Errorf("corrected side = %q, want %q", corr.String(), p[1])
		}
	}
}

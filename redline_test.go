package redline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/redline/docx"
	"github.com/tsawler/redline/model"
)

// readBack decodes DOCX bytes into a model document.
func readBack(t *testing.T, data []byte) *model.Document {
	t.Helper()

	r, err := docx.OpenBytes(data)
	if err != nil {
		t.Fatalf("docx.OpenBytes: %v", err)
	}
	doc, err := r.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	return doc
}

func runsOf(doc *model.Document) []model.Run {
	var runs []model.Run
	for _, p := range doc.Paragraphs {
		runs = append(runs, p.Runs...)
	}
	return runs
}

func checkRuns(t *testing.T, got, want []model.Run) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d runs %+v, want %d runs %+v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGenerateInsertedWord(t *testing.T) {
	clean, diffDoc, err := Generate("Hello world", "Hello beautiful world", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	cleanDoc := readBack(t, clean)
	if cleanDoc.ParagraphCount() != 1 || cleanDoc.Text() != "Hello beautiful world" {
		t.Errorf("clean document = %q (%d paragraphs)", cleanDoc.Text(), cleanDoc.ParagraphCount())
	}

	checkRuns(t, runsOf(readBack(t, diffDoc)), []model.Run{
		{Text: "Hello ", Category: model.Unchanged},
		{Text: "beautiful ", Category: model.Added},
		{Text: "world", Category: model.Unchanged},
	})
}

func TestGenerateFactCorrection(t *testing.T) {
	facts := []FactChange{{
		Original:  "Дональд Трамп",
		Corrected: "Илон Маск",
		Context:   "CEO of Tesla",
	}}

	clean, diffDoc, err := Generate("Глава Tesla Дональд Трамп", "Глава Tesla Илон Маск", facts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	cleanText := readBack(t, clean).Text()
	if !strings.Contains(cleanText, "Илон Маск") || strings.Contains(cleanText, "Дональд Трамп") {
		t.Errorf("clean document = %q", cleanText)
	}

	checkRuns(t, runsOf(readBack(t, diffDoc)), []model.Run{
		{Text: "Глава Tesla ", Category: model.Unchanged},
		{Text: "Дональд Трамп", Category: model.FactCorrection},
		{Text: "Илон Маск", Category: model.FactCorrection},
	})
}

func TestGenerateWithoutFactsUsesPlainEdits(t *testing.T) {
	_, diffDoc, err := Generate("Глава Tesla Дональд Трамп", "Глава Tesla Илон Маск", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	checkRuns(t, runsOf(readBack(t, diffDoc)), []model.Run{
		{Text: "Глава Tesla ", Category: model.Unchanged},
		{Text: "Дональд Трамп", Category: model.Deleted},
		{Text: "Илон Маск", Category: model.Added},
	})
}

func TestGenerateParagraphAdded(t *testing.T) {
	clean, diffDoc, err := Generate("First.\nThird.", "First.\nSecond.\nThird.", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	cleanDoc := readBack(t, clean)
	if cleanDoc.ParagraphCount() != 3 {
		t.Fatalf("clean paragraphs = %d, want 3", cleanDoc.ParagraphCount())
	}
	if got := cleanDoc.Paragraphs[1].Text(); got != "Second." {
		t.Errorf("middle paragraph = %q", got)
	}

	d := readBack(t, diffDoc)
	if d.ParagraphCount() != 3 {
		t.Fatalf("diff paragraphs = %d, want 3", d.ParagraphCount())
	}
	checkRuns(t, d.Paragraphs[1].Runs, []model.Run{{Text: "Second.", Category: model.Added}})
}

func TestGenerateIdentical(t *testing.T) {
	text := "One paragraph.\n\nAnother, with\ttab."
	clean, diffDoc, err := Generate(text, text, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if got := readBack(t, clean).Text(); got != text {
		t.Errorf("clean text = %q", got)
	}
	d := readBack(t, diffDoc)
	if d.Text() != text {
		t.Errorf("diff text = %q", d.Text())
	}
	if d.Stats().Changed() {
		t.Error("identical inputs produced changed runs")
	}
}

func TestGenerateBothEmpty(t *testing.T) {
	clean, diffDoc, err := Generate("", "", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if n := readBack(t, clean).ParagraphCount(); n != 1 {
		t.Errorf("clean paragraphs = %d, want 1", n)
	}
	if n := readBack(t, diffDoc).ParagraphCount(); n != 1 {
		t.Errorf("diff paragraphs = %d, want 1", n)
	}
}

func TestDocumentsCleanParagraphs(t *testing.T) {
	corrected := "a\n\nb\nc"
	clean, _, err := Compare("x", corrected).Documents()
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	want := strings.Split(corrected, "\n")
	if clean.ParagraphCount() != len(want) {
		t.Fatalf("paragraphs = %d, want %d", clean.ParagraphCount(), len(want))
	}
	for i, p := range clean.Paragraphs {
		if p.Text() != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, p.Text(), want[i])
		}
	}
}

func TestThresholdChangesGranularity(t *testing.T) {
	// "correct" vs "corrected" has ratio 0.875.
	_, chars, err := Compare("correct", "corrected").Documents()
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	checkRuns(t, runsOf(chars), []model.Run{
		{Text: "correct", Category: model.Unchanged},
		{Text: "ed", Category: model.Added},
	})

	_, words, err := Compare("correct", "corrected").Threshold(0.9).Documents()
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	checkRuns(t, runsOf(words), []model.Run{
		{Text: "correct", Category: model.Deleted},
		{Text: "corrected", Category: model.Added},
	})
}

func TestThresholdOutOfRange(t *testing.T) {
	for _, v := range []float64{-0.1, 1.5} {
		if _, _, err := Compare("a", "b").Threshold(v).Generate(); err == nil {
			t.Errorf("Threshold(%v): expected error", v)
		}
	}
}

func TestComparisonIsImmutable(t *testing.T) {
	base := Compare("95 рублей", "92 рубля")
	withFacts := base.Facts(FactChange{Original: "95", Corrected: "92"})

	if len(base.options.facts) != 0 {
		t.Errorf("base comparison gained %d facts", len(base.options.facts))
	}
	if len(withFacts.options.facts) != 1 {
		t.Errorf("derived comparison has %d facts, want 1", len(withFacts.options.facts))
	}

	more := withFacts.Facts(FactChange{Original: "рублей", Corrected: "рубля"})
	if len(withFacts.options.facts) != 1 || len(more.options.facts) != 2 {
		t.Error("Facts should accumulate without touching the receiver")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cmp := Compare("Курс 95 рублей", "Курс 92 рубля")
	a1, b1, err := cmp.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	a2, b2, err := cmp.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(a1, a2) || !bytes.Equal(b1, b2) {
		t.Error("same comparison produced different bytes")
	}
}

func TestMetadata(t *testing.T) {
	date := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	clean, _, err := Compare("a", "b").Title("Review").Author("Desk").Date(date).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	r, err := docx.OpenBytes(clean)
	if err != nil {
		t.Fatalf("docx.OpenBytes: %v", err)
	}
	meta := r.Metadata()
	if meta.Title != "Review" || meta.Author != "Desk" {
		t.Errorf("metadata = %+v", meta)
	}
	if !meta.CreationDate.Equal(date) {
		t.Errorf("CreationDate = %v, want %v", meta.CreationDate, date)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, _, err := Compare("a b", "a c").Logger(logger).Documents(); err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "rendered comparison") || !strings.Contains(out, "added_runs=1") {
		t.Errorf("log output = %q", out)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must() = %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(docx.Marshal(nil))
}

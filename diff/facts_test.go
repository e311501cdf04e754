package diff

import (
	"testing"

	"github.com/tsawler/redline/model"
)

func TestFactSetClassify(t *testing.T) {
	fs := NewFactSet([]FactChange{
		{Original: "Дональд Трамп", Corrected: "Илон Маск", Context: "Глава Tesla"},
		{Original: "  Paris ", Corrected: "Lyon"},
	})

	tests := []struct {
		name string
		span string
		side Side
		want model.Category
	}{
		{"original match", "Дональд Трамп", Original, model.FactCorrection},
		{"case insensitive", "ДОНАЛЬД ТРАМП", Original, model.FactCorrection},
		{"trailing whitespace trimmed", "Илон Маск ", Corrected, model.FactCorrection},
		{"registered value trimmed", "paris", Original, model.FactCorrection},
		{"wrong side original", "Илон Маск", Original, model.Deleted},
		{"wrong side corrected", "Дональд Трамп", Corrected, model.Added},
		{"partial match is not a fact", "Трамп", Original, model.Deleted},
		{"plain insert", "beautiful ", Corrected, model.Added},
		{"whitespace", " ", Corrected, model.Added},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fs.Classify(tt.span, tt.side); got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.span, tt.side, got, tt.want)
			}
		})
	}
}

func TestFactSetIgnoresBlankValues(t *testing.T) {
	fs := NewFactSet([]FactChange{{Original: "   ", Corrected: ""}})
	if fs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", fs.Len())
	}
	if fs.IsFact(" ", Corrected) || fs.IsFact("", Original) {
		t.Error("blank spans must never be facts")
	}
}

func TestEmptyFactSet(t *testing.T) {
	var fs FactSet
	if got := fs.Classify("anything", Original); got != model.Deleted {
		t.Errorf("zero FactSet Classify = %v, want Deleted", got)
	}
	fs = NewFactSet(nil)
	if got := fs.Classify("anything", Corrected); got != model.Added {
		t.Errorf("empty FactSet Classify = %v, want Added", got)
	}
}

func TestSideString(t *testing.T) {
	if Original.String() != "original" || Corrected.String() != "corrected" {
		t.Errorf("unexpected Side strings %q %q", Original, Corrected)
	}
}

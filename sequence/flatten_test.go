package sequence

import (
	"testing"

	"chessdex/model"
)

func text(s string) model.Element {
	return &model.TextElement{Content: s}
}

func img(ref string) model.Element {
	return &model.ImageElement{ContentRef: ref}
}

func TestFlatten(t *testing.T) {
	pages := []Page{
		{Number: 1, Elements: []model.Element{text("a"), img("i1"), text("b")}},
		{Number: 2, Elements: []model.Element{text("c")}},
	}

	seq := Flatten(pages)
	if len(seq) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(seq))
	}

	for i, item := range seq {
		if item.GlobalIndex != i {
			t.Errorf("Item %d: expected global index %d, got %d", i, i, item.GlobalIndex)
		}
	}

	if seq[2].Page != 1 || seq[2].PageIndex != 2 {
		t.Errorf("Expected item 2 on page 1 at index 2, got page %d index %d",
			seq[2].Page, seq[2].PageIndex)
	}
	if seq[3].Page != 2 || seq[3].PageIndex != 0 {
		t.Errorf("Expected item 3 on page 2 at index 0, got page %d index %d",
			seq[3].Page, seq[3].PageIndex)
	}
}

func TestFlattenSortsPages(t *testing.T) {
	pages := []Page{
		{Number: 3, Elements: []model.Element{text("third")}},
		{Number: 1, Elements: []model.Element{text("first")}},
		{Number: 2, Elements: []model.Element{text("second")}},
	}

	seq := Flatten(pages)
	want := []string{"first", "second", "third"}
	for i, w := range want {
		got := seq[i].Element.(*model.TextElement).Content
		if got != w {
			t.Errorf("Position %d: expected %q, got %q", i, w, got)
		}
	}

	// Input slice order is untouched.
	if pages[0].Number != 3 {
		t.Error("Flatten must not reorder the caller's slice")
	}
}

func TestFlattenEmpty(t *testing.T) {
	if seq := Flatten(nil); len(seq) != 0 {
		t.Errorf("Expected empty sequence, got %d items", len(seq))
	}
	seq := Flatten([]Page{{Number: 1}})
	if len(seq) != 0 {
		t.Errorf("Expected empty sequence for empty page, got %d items", len(seq))
	}
}

func TestPageTailLen(t *testing.T) {
	seq := Flatten([]Page{
		{Number: 1, Elements: []model.Element{text("a"), text("b"), text("c")}},
		{Number: 2, Elements: []model.Element{text("d")}},
	})

	cases := []struct {
		index int
		want  int
	}{
		{0, 3},
		{2, 1},
		{3, 1},
		{-1, 0},
		{4, 0},
	}
	for _, tc := range cases {
		if got := seq.PageTailLen(tc.index); got != tc.want {
			t.Errorf("PageTailLen(%d): expected %d, got %d", tc.index, tc.want, got)
		}
	}
}

func TestPageRange(t *testing.T) {
	seq := Flatten([]Page{
		{Number: 1, Elements: []model.Element{text("a"), text("b")}},
		{Number: 2, Elements: []model.Element{text("c"), text("d"), text("e")}},
	})

	start, end := seq.PageRange(2)
	if start != 2 || end != 5 {
		t.Errorf("Expected page 2 range [2, 5), got [%d, %d)", start, end)
	}

	start, end = seq.PageRange(9)
	if start != 0 || end != 0 {
		t.Errorf("Expected empty range for missing page, got [%d, %d)", start, end)
	}
}

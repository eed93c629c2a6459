package sequence

import (
	"sort"

	"chessdex/model"
)

// Page is one page's worth of elements in reading order.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Elements are the page's elements, already ordered top to bottom.
	Elements []model.Element
}

// Item is one element in the flattened stream.
type Item struct {
	// GlobalIndex is the element's position in the whole document.
	GlobalIndex int

	// Page is the 1-based page the element came from.
	Page int

	// PageIndex is the element's position within its page.
	PageIndex int

	// Element is the underlying page element.
	Element model.Element
}

// GlobalSequence is the flattened, globally indexed element stream.
type GlobalSequence []Item

// Flatten concatenates pages in ascending page order into one global
// sequence. Element order within each page is preserved. The input
// slice is not modified.
func Flatten(pages []Page) GlobalSequence {
	ordered := make([]Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	total := 0
	for _, p := range ordered {
		total += len(p.Elements)
	}

	seq := make(GlobalSequence, 0, total)
	for _, p := range ordered {
		for i, el := range p.Elements {
			seq = append(seq, Item{
				GlobalIndex: len(seq),
				Page:        p.Number,
				PageIndex:   i,
				Element:     el,
			})
		}
	}
	return seq
}

// PageTailLen returns how many elements of the item's page remain at or
// after the given global index, the item itself included. The engine
// uses this to detect headers sitting near the bottom of a page.
func (s GlobalSequence) PageTailLen(index int) int {
	if index < 0 || index >= len(s) {
		return 0
	}
	page := s[index].Page
	n := 0
	for i := index; i < len(s) && s[i].Page == page; i++ {
		n++
	}
	return n
}

// PageRange returns the half-open global index range [start, end) of
// the given page, or (0, 0) when the page has no elements.
func (s GlobalSequence) PageRange(page int) (start, end int) {
	for i, item := range s {
		if item.Page == page {
			start = i
			for end = i; end < len(s) && s[end].Page == page; end++ {
			}
			return start, end
		}
	}
	return 0, 0
}

package model

import "sort"

// CategoryTotal aggregates the items sharing one category label.
type CategoryTotal struct {
	Category string
	Items    int
	Units    int
	Value    float64
}

// Summary is the header line of the inventory views.
type Summary struct {
	Items      int
	Units      int
	Value      float64
	Categories []CategoryTotal // ordered by category; "" sorts first
}

// Summarize computes totals over items. Nothing here is persisted.
func Summarize(items []Item) Summary {
	var s Summary
	byCat := map[string]*CategoryTotal{}
	for _, it := range items {
		s.Items++
		s.Units += it.Quantity
		s.Value += it.TotalValue()

		ct, ok := byCat[it.Category]
		if !ok {
			ct = &CategoryTotal{Category: it.Category}
			byCat[it.Category] = ct
		}
		ct.Items++
		ct.Units += it.Quantity
		ct.Value += it.TotalValue()
	}
	s.Categories = make([]CategoryTotal, 0, len(byCat))
	for _, ct := range byCat {
		s.Categories = append(s.Categories, *ct)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Category < s.Categories[j].Category
	})
	return s
}

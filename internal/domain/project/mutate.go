package project

// UpdateItem returns a new category list with fn applied to the addressed item.
// The input is never modified. Categories other than the addressed one keep
// their original item slices, so only the touched category and item change
// identity. Unknown IDs yield a list equal to the input.
func UpdateItem(categories []Category, categoryID, itemID string, fn func(Item) Item) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	for i, cat := range categories {
		if cat.ID != categoryID {
			continue
		}
		items := make([]Item, len(cat.Items))
		copy(items, cat.Items)
		for j := range items {
			if items[j].ID == itemID {
				items[j] = fn(items[j])
			}
		}
		out[i].Items = items
	}
	return out
}

// ToggleChecked flips the checked flag.
func ToggleChecked(item Item) Item {
	item.Checked = !item.Checked
	return item
}

// SetComment returns an update that replaces the comment verbatim.
func SetComment(comment string) func(Item) Item {
	return func(item Item) Item {
		item.Comment = comment
		return item
	}
}

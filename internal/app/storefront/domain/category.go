package domain

import "strings"

// Category is a node of the business category tree.
type Category struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Children []Category `json:"children,omitempty"`
}

// CategoryTree is the forest of top-level categories.
type CategoryTree []Category

// Find returns the category with id anywhere in the tree. Ids compare
// case-insensitively.
func (t CategoryTree) Find(id string) (Category, bool) {
	for _, c := range t {
		if strings.EqualFold(c.ID, id) {
			return c, true
		}
		if found, ok := CategoryTree(c.Children).Find(id); ok {
			return found, true
		}
	}
	return Category{}, false
}

// Scope is the category itself plus every descendant.
func (t CategoryTree) Scope(id string) (Scope, error) {
	c, ok := t.Find(id)
	if !ok {
		return Scope{}, ErrCategoryNotFound
	}
	return NewScope(c.descendantIDs(nil)...), nil
}

// ChildScope is the set of direct children, which is what a main-category
// page lists.
func (t CategoryTree) ChildScope(id string) (Scope, error) {
	c, ok := t.Find(id)
	if !ok {
		return Scope{}, ErrCategoryNotFound
	}
	ids := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		ids = append(ids, child.ID)
	}
	return NewScope(ids...), nil
}

func (c Category) descendantIDs(acc []string) []string {
	acc = append(acc, c.ID)
	for _, child := range c.Children {
		acc = child.descendantIDs(acc)
	}
	return acc
}

package service

import (
	"context" // Request-scoped cancellation
	"strconv" // Number parsing

	"foodgram/internal/domain" // Domain models and error kinds
	"foodgram/internal/render" // Shopping list rendering
)

const ShoppingListTitle = "Shopping list:"

// CartLine is the summed amount of one ingredient name.
type CartLine struct {
	Name   string
	Amount int
	Unit   string
}

// String formats the line as "- name: amount,unit." or "- name: amount."
// when no unit is recorded.
func (l CartLine) String() string {
	s := "- " + l.Name + ": " + strconv.Itoa(l.Amount)
	if l.Unit != "" {
		s += "," + l.Unit
	}
	return s + "."
}

// AggregateCart sums ingredient amounts across the cart rows by ingredient
// name. The unit is taken from the first occurrence and lines keep the
// order in which names were first seen.
func AggregateCart(rows []domain.ShoppingCart) []CartLine {
	index := map[string]int{}
	lines := []CartLine{}
	for _, row := range rows {
		for _, ri := range row.Recipe.Ingredients {
			name := ri.Ingredient.Name
			if i, ok := index[name]; ok {
				lines[i].Amount += ri.Amount
				continue
			}
			index[name] = len(lines)
			lines = append(lines, CartLine{Name: name, Amount: ri.Amount, Unit: ri.Ingredient.MeasurementUnit})
		}
	}
	return lines
}

// ShoppingListDocument builds the printable document for lines.
func ShoppingListDocument(lines []CartLine) render.Document {
	doc := render.Document{Title: ShoppingListTitle, Lines: make([]string, len(lines))}
	for i, l := range lines {
		doc.Lines[i] = l.String()
	}
	return doc
}

// ShoppingList aggregates the actor's cart into a document.
func (s *Service) ShoppingList(ctx context.Context, actor Actor) (render.Document, error) {
	if err := actor.require(); err != nil {
		return render.Document{}, err
	}
	rows, err := s.store.CartWithIngredients(ctx, actor.UserID)
	if err != nil {
		return render.Document{}, err
	}
	return ShoppingListDocument(AggregateCart(rows)), nil
}

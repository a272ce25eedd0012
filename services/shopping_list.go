package services

import (
	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/errs"
)

// ShoppingList consolidates a user's cart into one line per (ingredient
// name, measurement unit) pair with summed amounts, ordered by name then
// unit. An empty cart is an explicit error, not an empty list.
func ShoppingList(cartRepo *database.CartRepo, userID uint) ([]database.ShoppingListLine, error) {
	hasEntries, err := cartRepo.HasEntries(userID)
	if err != nil {
		return nil, errs.NewDatabaseError("read shopping cart", "shopping_cart", err)
	}
	if !hasEntries {
		return nil, errs.NewEmptyCartError()
	}

	lines, err := cartRepo.ConsolidatedLines(userID)
	if err != nil {
		return nil, errs.NewDatabaseError("consolidate shopping cart", "shopping_cart", err)
	}
	return lines, nil
}

package game

import "fmt"

// TryCraft runs one conversion of the recipe with the given ID.
func (g *Game) TryCraft(recipeID string) error {
	idx := g.findRecipe(recipeID)
	if idx < 0 {
		return fmt.Errorf("recipe %q: %w", recipeID, ErrInvalidReference)
	}
	r := g.recipes[idx]
	if !g.recipeUnlocked(r) {
		return fmt.Errorf("recipe %s needs %s: %w", r.ID, r.Requires, ErrLocked)
	}
	if !g.ledger.TrySpend(r.InputResource, r.InputAmount) {
		return fmt.Errorf("recipe %s needs %.2f %s: %w", r.ID, r.InputAmount, r.InputResource, ErrInsufficientResources)
	}
	g.ledger.Add(r.OutputResource, r.OutputAmount)
	g.stats.crafted++
	g.evaluateAchievements()
	return nil
}

// Craft reports whether the conversion happened.
func (g *Game) Craft(recipeID string) bool {
	return g.TryCraft(recipeID) == nil
}

func (g *Game) recipeUnlocked(r RecipeDef) bool {
	return r.Requires == "" || g.IsUnlocked(r.Requires)
}

// Recipes returns every recipe with its current lock state.
func (g *Game) Recipes() []Recipe {
	out := make([]Recipe, 0, len(g.recipes))
	for _, r := range g.recipes {
		out = append(out, Recipe{RecipeDef: r, Unlocked: g.recipeUnlocked(r)})
	}
	return out
}

package tasks

import "github.com/desertthunder/dmrsv-appdata/internal/models"

// ReconcileCategories appends a placeholder [models.Category] to doc for every
// aggregated DLC code it does not already contain.
//
// Codes are processed in ascending order, so the appended entries (also returned)
// are sorted by code regardless of track order. Existing entries keep their
// position and contents. Running it again with the same aggregate appends nothing.
func ReconcileCategories(doc *models.AppData, dlcs models.DLCAggregate) []models.Category {
	existing := doc.CategoryIDs()
	added := []models.Category{}

	for _, code := range dlcs.Codes() {
		if _, ok := existing[code]; ok {
			continue
		}
		category := models.NewPlaceholderCategory(code, dlcs[code].Name)
		doc.Categories = append(doc.Categories, category)
		added = append(added, category)
	}

	return added
}

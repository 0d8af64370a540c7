package catalog

import "github.com/raushankrgupta/glory-storefront/models"

// GroupModels nests records as category -> model name -> year variants.
// Categories and model names keep the order they first appear in; years keep
// the input order.
func GroupModels(records []models.VehicleModel) []models.CategoryGroup {
	var groups []models.CategoryGroup
	catIdx := make(map[string]int)
	modelIdx := make(map[string]map[string]int)

	for _, rec := range records {
		ci, ok := catIdx[rec.Category]
		if !ok {
			ci = len(groups)
			catIdx[rec.Category] = ci
			modelIdx[rec.Category] = make(map[string]int)
			groups = append(groups, models.CategoryGroup{Category: rec.Category})
		}

		mi, ok := modelIdx[rec.Category][rec.Model]
		if !ok {
			mi = len(groups[ci].Models)
			modelIdx[rec.Category][rec.Model] = mi
			groups[ci].Models = append(groups[ci].Models, models.ModelGroup{Name: rec.Model})
		}
		groups[ci].Models[mi].Years = append(groups[ci].Models[mi].Years, rec)
	}
	return groups
}

// Package translate maps trip field names between the external (camelCase,
// client-facing) shape and the internal (snake_case, relational schema)
// shape.
//
// Both directions derive from the single fieldPairs table below, so a rename
// can never be one-sided. Every field added to domain.Trip MUST get an entry
// here — a missing pair means external partial updates for that field
// silently never reach storage.
package translate

// fieldPairs is the authoritative list of {external, internal} name pairs.
// Names that are identical in both shapes are still enumerated so tests can
// assert the table covers the whole entity.
var fieldPairs = [][2]string{
	{"id", "id"},
	{"tripStartDate", "trip_start_date"},
	{"estimatedEndDate", "estimated_end_date"},
	{"vehicleNumber", "vehicle_number"},
	{"driverName", "driver_name"},
	{"partner", "partner"},
	{"purchasePlace", "purchase_place"},
	{"itemName", "item_name"},
	{"startingKm", "starting_km"},
	{"endingKm", "ending_km"},
	{"distance", "distance"},
	{"tonnage", "tonnage"},
	{"ratePerTon", "rate_per_ton"},
	{"freight", "freight"},
	{"expenses", "expenses"},
	{"totalExpenses", "total_expenses"},
	{"revenue", "revenue"},
	{"profit", "profit"},
	{"status", "status"},
	{"locked", "locked"},
	{"amountGivenToDriver", "amount_given_to_driver"},
	{"notes", "notes"},
	{"createdAt", "created_at"},
	{"updatedAt", "updated_at"},
	{"createdBy", "created_by"},
}

var (
	extToInt = make(map[string]string, len(fieldPairs))
	intToExt = make(map[string]string, len(fieldPairs))
)

func init() {
	for _, p := range fieldPairs {
		extToInt[p[0]] = p[1]
		intToExt[p[1]] = p[0]
	}
}

// ToInternal returns a copy of fields with external names replaced by their
// internal equivalents. Unknown keys pass through unchanged so future fields
// are not dropped on the floor. Values are untouched.
func ToInternal(fields map[string]any) map[string]any {
	return rename(fields, extToInt)
}

// ToExternal is the inverse of ToInternal: internal names become external
// ones, unknown keys pass through unchanged.
func ToExternal(fields map[string]any) map[string]any {
	return rename(fields, intToExt)
}

// InternalName returns the internal name for an external field name and
// whether the field is part of the enumerated mapping.
func InternalName(external string) (string, bool) {
	n, ok := extToInt[external]
	return n, ok
}

// ExternalName returns the external name for an internal field name and
// whether the field is part of the enumerated mapping.
func ExternalName(internal string) (string, bool) {
	n, ok := intToExt[internal]
	return n, ok
}

// Pairs returns the full {external, internal} mapping table.
// Exposed so tests can enumerate every pair against the entity model.
func Pairs() [][2]string {
	out := make([][2]string, len(fieldPairs))
	copy(out, fieldPairs)
	return out
}

func rename(fields map[string]any, names map[string]string) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if mapped, ok := names[k]; ok {
			out[mapped] = v
			continue
		}
		out[k] = v
	}
	return out
}

package authz

// Update allowlists, keyed by stored field name. Fields outside these sets are
// never written by an update, whatever the caller submits.
var (
	ListingUpdateFields = fieldSet(
		"city",
		"streetName",
		"streetNumber",
		"areaSize",
		"hasClimateControl",
		"yearBuilt",
		"rentPrice",
		"dateAvailable",
	)

	UserUpdateFields = fieldSet(
		"firstName",
		"lastName",
		"birthDate",
	)
)

func fieldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// FilterListingUpdate drops every field a listing update may not change.
func FilterListingUpdate(fields map[string]any) map[string]any {
	return filter(ListingUpdateFields, fields)
}

// FilterUserUpdate drops every field a profile update may not change, which
// includes email, the secret hash and the privilege flag.
func FilterUserUpdate(fields map[string]any) map[string]any {
	return filter(UserUpdateFields, fields)
}

func filter(allowed map[string]struct{}, fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}

package form

// ResolveLegacyKey finds the stored raw value of f. Submissions written before
// the id-keyed migration store values under the field label, so a missing or
// null id entry falls back to the label entry.
//
// TODO: retire once every stored submission has been rewritten with id keys.
func ResolveLegacyKey(data map[string]any, f Field) (any, bool) {
	if v, ok := data[f.ID]; ok && v != nil {
		return v, true
	}
	v, ok := data[f.Label]
	return v, ok && v != nil
}

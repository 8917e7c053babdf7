package ingest

// Truncate returns at most limit elements of images, preserving order.
func Truncate(images []string, limit int) []string {
	if limit <= 0 || len(images) <= limit {
		return images
	}
	return images[:limit]
}

// MergeSingle computes the final value of a singular category (banner,
// brochure). A new upload always wins; otherwise keepExisting preserves the
// stored URL; otherwise the category is cleared.
func MergeSingle(existing string, keepExisting bool, uploaded string) string {
	if uploaded != "" {
		return uploaded
	}
	if keepExisting {
		return existing
	}
	return ""
}

// MergeList computes the final URL list of a list category. The base is the
// stored set when keepExisting is signalled, empty otherwise; incoming URLs
// are appended and the result capped at the ceiling. Append-then-cap: stored
// media is never evicted to make room for new uploads, so uploads beyond the
// remaining capacity are dropped from the stored result.
func MergeList(existing []string, keepExisting bool, incoming []string, ceiling int) []string {
	var base []string
	if keepExisting {
		base = existing
	}
	merged := make([]string, 0, len(base)+len(incoming))
	merged = append(merged, base...)
	merged = append(merged, incoming...)
	merged = Truncate(merged, ceiling)
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// applySingle leaves the stored URL untouched when the category is absent
// from the payload (no upload, no keep flag).
func applySingle(existing string, keep *bool, uploaded string) string {
	if uploaded == "" && keep == nil {
		return existing
	}
	return MergeSingle(existing, keep != nil && *keep, uploaded)
}

// applyList leaves the stored set untouched when the category is absent from
// the payload.
func applyList(existing []string, keep *bool, incoming []string, ceiling int) []string {
	if len(incoming) == 0 && keep == nil {
		return existing
	}
	return MergeList(existing, keep != nil && *keep, incoming, ceiling)
}

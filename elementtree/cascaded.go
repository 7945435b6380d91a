package elementtree

import "github.com/zss-dev/zss/decls"

// CascadedValues holds the single per-element result of a cascade run: one
// decls.Aggregates bundle, folded field-by-field from every (block,
// importance) pair the cascade engine recorded for this element, applied in
// cascade order (later entries override earlier ones).
type CascadedValues = decls.Aggregates

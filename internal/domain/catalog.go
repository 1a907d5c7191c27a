package domain

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	FilterTypes []FilterType `json:"filter_types,omitempty"`
}

// FilterType groups filter options under a category ("Color" under "Tools").
// The (category, name) pair is unique.
type FilterType struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;uniqueIndex:uq_filter_type_category_name" json:"category_id"`
	Name       string `gorm:"size:255;not null;uniqueIndex:uq_filter_type_category_name" json:"name"`

	Options []FilterOption `json:"options,omitempty"`
}

type FilterOption struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FilterTypeID uint   `gorm:"not null;index" json:"filter_type_id"`
	Value        string `gorm:"size:255;not null" json:"value"`

	FilterType *FilterType `json:"filter_type,omitempty"`
}

// MetadataTree is the nested category → filter-type → option document served to
// filter UIs: category name → {id, filters: type name → {id, options}}.
type MetadataTree map[string]MetadataCategory

type MetadataCategory struct {
	ID      uint                      `json:"id"`
	Filters map[string]MetadataFilter `json:"filters"`
}

type MetadataFilter struct {
	ID      uint             `json:"id"`
	Options []MetadataOption `json:"options"`
}

type MetadataOption struct {
	ID    uint   `json:"id"`
	Value string `json:"value"`
}

package course

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Slug         string `json:"slug" gorm:"unique;not null"`
	Description  string `json:"description" gorm:"type:text"`
	ParentID     *uint  `json:"parent_id"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
}

type CourseTag struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
	Slug string `json:"slug" gorm:"unique;not null"`
}

// CourseTagMapping is the join table behind Course.Tags. Declared explicitly
// so tag remapping on course update can rewrite rows inside a transaction.
type CourseTagMapping struct {
	CourseID uint `json:"course_id" gorm:"primaryKey"`
	TagID    uint `json:"tag_id" gorm:"primaryKey;column:course_tag_id"`
}

func (CourseTagMapping) TableName() string {
	return "course_tag_mappings"
}

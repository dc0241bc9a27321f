package course

import "gorm.io/gorm"

type Section struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:SectionID"`
}

type Lesson struct {
	gorm.Model
	SectionID     uint   `json:"section_id" gorm:"index;not null"`
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description" gorm:"type:text"`
	LessonType    string `json:"lesson_type" gorm:"not null"` // video, document, quiz, assignment
	VideoURL      string `json:"video_url"`
	VideoDuration int    `json:"video_duration" gorm:"default:0"`
	Content       string `json:"content" gorm:"type:text"`
	AllowPreview  bool   `json:"allow_preview" gorm:"default:false"`
	DisplayOrder  int    `json:"display_order" gorm:"default:0"`

	Section   *Section         `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Resources []LessonResource `json:"resources,omitempty" gorm:"foreignKey:LessonID"`
}

type LessonResource struct {
	gorm.Model
	LessonID uint   `json:"lesson_id" gorm:"index;not null"`
	Title    string `json:"title" gorm:"not null"`
	FileURL  string `json:"file_url" gorm:"not null"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size" gorm:"default:0"`
}

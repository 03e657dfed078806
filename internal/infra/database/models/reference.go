package models

type AppealType struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Code        string `json:"code" gorm:"type:text;uniqueIndex;not null"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`
	SortOrder   int    `json:"sort_order" gorm:"not null"`
}

type SeverityLevel struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Code     string `json:"code" gorm:"type:text;uniqueIndex;not null"`
	Name     string `json:"name" gorm:"type:text;not null"`
	Priority int    `json:"priority" gorm:"not null"`
}

type AppealStatus struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Code      string `json:"code" gorm:"type:text;uniqueIndex;not null"`
	Name      string `json:"name" gorm:"type:text;not null"`
	SortOrder int    `json:"sort_order" gorm:"not null"`
}

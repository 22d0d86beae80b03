// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name  string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Icon  string `json:"icon,omitempty" gorm:"size:255"`
	Image string `json:"image,omitempty" gorm:"size:1024"`
}

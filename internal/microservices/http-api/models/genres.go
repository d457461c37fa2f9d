package models

// Genre IDs come from the external provider, so no autoIncrement here.
type Genre struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"size:100;unique;not null"`
}

func (Genre) TableName() string {
	return "genres"
}

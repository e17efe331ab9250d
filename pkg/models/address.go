package models

type Address struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       string `gorm:"type:varchar(36);not null;index" json:"userId"`
	Type         string `gorm:"type:varchar(20);default:'home'" json:"type"`
	FullName     string `gorm:"type:varchar(100);not null" json:"fullName"`
	AddressLine1 string `gorm:"type:varchar(255);not null" json:"addressLine1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"addressLine2"`
	City         string `gorm:"type:varchar(100);not null" json:"city"`
	State        string `gorm:"type:varchar(100);not null" json:"state"`
	ZipCode      string `gorm:"type:varchar(20);not null" json:"zipCode"`
	Country      string `gorm:"type:varchar(100);default:'India'" json:"country"`
	IsDefault    bool   `gorm:"default:false" json:"isDefault"`
}

func (Address) TableName() string {
	return "addresses"
}

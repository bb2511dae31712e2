package domain

// User is an entry of the internal user directory
type User struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:200;index" json:"name"`
}

// TableName Specify table name
func (User) TableName() string {
	return "sys_user"
}

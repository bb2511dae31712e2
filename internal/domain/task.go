package domain

// Task is a dashboard to-do item
type Task struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title     string `gorm:"size:200" json:"title"`
	Assignee  string `gorm:"size:200;index" json:"assignee"`
	DueDate   string `gorm:"size:32" json:"dueDate"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// TableName Specify table name
func (Task) TableName() string {
	return "dashboard_task"
}

package domain

// Product collections
const (
	CategoryRaw       = "raw"
	CategoryProcessed = "processed"
)

// Product is a catalog entry. Raw and processed products share this schema and
// differ only by Category.
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"id" csv:"id"`
	Name        string `gorm:"size:200;index" json:"name" csv:"name"`
	Short       string `gorm:"size:500" json:"short" csv:"short"`
	Description string `gorm:"type:text" json:"description" csv:"description"`
	Image       string `gorm:"size:1024" json:"image" csv:"image"` // asset reference, resolved by the web layer
	Price       int64  `json:"price" csv:"price"`                    // price in XAF
	Category    string `gorm:"size:32;index" json:"category" csv:"category"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "catalog_product"
}

// IsProcessed reports whether the product belongs to the processed collection
func (p Product) IsProcessed() bool {
	return p.Category == CategoryProcessed
}

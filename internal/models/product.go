// internal/models/product.go
package models

type Product struct {
	BaseModel
	Title             string        `json:"title" gorm:"size:255;not null"`
	Description       string        `json:"description" gorm:"type:text"`
	Image             string        `json:"image" gorm:"size:1024"`
	Images            StringList    `json:"images" gorm:"type:text"`
	DescriptionImages StringList    `json:"descriptionImages" gorm:"type:text"`
	VideoURL          string        `json:"videoUrl,omitempty" gorm:"size:1024"`
	Price             float64       `json:"price" gorm:"type:decimal(14,2);not null"`
	OriginalPrice     float64       `json:"originalPrice" gorm:"type:decimal(14,2)"`
	Discount          float64       `json:"discount" gorm:"type:decimal(5,2);default:0"`
	CategoryID        string        `json:"categoryId" gorm:"size:36;index"`
	CategoryName      string        `json:"category" gorm:"size:100;index"`
	Status            ProductStatus `json:"status" gorm:"type:varchar(20);default:'online';index"`
	SoldCount         int64         `json:"sold" gorm:"default:0"`
	OrderCount        int64         `json:"orderCount" gorm:"default:0"`
	Rating            float64       `json:"rating" gorm:"type:decimal(3,2);default:5"`
	ViewCount         int64         `json:"viewCount" gorm:"default:0"`
}

// MainImage returns the display image, falling back to the gallery.
func (p *Product) MainImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// CatalogTotals holds the aggregates behind the dashboard.
type CatalogTotals struct {
	NetSales    float64
	PageViews   int64
	TotalOrders int64
}

type DashboardStats struct {
	NetSales    float64 `json:"netSales"`
	Earnings    float64 `json:"earnings"`
	PageViews   int64   `json:"pageViews"`
	TotalOrders int64   `json:"totalOrders"`
}

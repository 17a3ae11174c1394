package models

import "time"

// YearData: bir ürünün bir yıla ait ölçülen/türetilen metrikleri.
// (product_id, year) çifti benzersizdir, kayıt her zaman upsert edilir.
type YearData struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"uniqueIndex:idx_product_year;not null"`
	Year      int  `gorm:"uniqueIndex:idx_product_year;not null"`

	DT  *float64 // tasarım (çevrim) süresi, dakika
	UT  *float64 // faydalı süre, dakika
	NVA *float64 // katma değersiz süre, dakika
	KD  *float64 // verimlilik oranı (0-1)
	KE  *float64 // UT / OTR
	KER *float64 // DT / UT
	KSR *float64 // OTR / DT
	OTR *float64 // toplam süre = DT + UT + NVA

	TSR *string `gorm:"size:255"` // serbest metin referans kodu, bazen "#DIV/0!" kalıntısı

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package metrics, türetilen verimlilik oranlarının tek kaynağıdır.
// Manuel giriş, toplu içe aktarma ve seed aracı aynı hesabı buradan alır.
package metrics

import "math"

// DivZeroSentinel: sıfıra bölme durumunda TSR alanında gösterilen
// eski elektronik tablo kalıntısı. Görüntüleme değeridir, parse edilmez.
const DivZeroSentinel = "#DIV/0!"

// MaxMagnitude: kabul edilen en büyük mutlak değer. Daha büyüğü
// geçersiz sayılır ve null'a düşer.
const MaxMagnitude = 1e10

// Derived: Compute sonucu. Nil alanlar hesaplanamayan değerleri temsil
// eder. TSRDisplay sadece sıfıra bölme olduğunda dolu gelir.
type Derived struct {
	OTR        *float64 // DT + UT + NVA
	KE         *float64 // UT / OTR
	KER        *float64 // DT / UT
	KSR        *float64 // OTR / DT
	TSRDisplay *string  // "#DIV/0!" ya da nil
}

// Compute: dt, ut, nva'dan (aynı zaman birimi, dakika) türetilen
// oranları hesaplar. KD burada ASLA türetilmez, çağıran sağlar.
// Girdilerden biri nil ise ona bağlı çıktılar da nil kalır.
func Compute(dt, ut, nva *float64) Derived {
	var d Derived
	divZero := false

	if dt != nil && ut != nil && nva != nil {
		otr := *dt + *ut + *nva
		d.OTR = &otr

		if otr != 0 {
			ke := *ut / otr
			d.KE = &ke
		} else {
			divZero = true
		}

		if *dt != 0 {
			ksr := otr / *dt
			d.KSR = &ksr
		} else {
			divZero = true
		}
	}

	if dt != nil && ut != nil {
		if *ut != 0 {
			ker := *dt / *ut
			d.KER = &ker
		} else {
			divZero = true
		}
	}

	if divZero {
		s := DivZeroSentinel
		d.TSRDisplay = &s
	}

	return d
}

// ValidNumber: girdi doğrulaması. NaN, sonsuz ve aşırı büyük değerler
// reddedilir (null'a çevrilir).
func ValidNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= MaxMagnitude
}

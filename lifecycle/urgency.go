package lifecycle

// UrgencyTier adalah prioritas persiapan dapur yang diturunkan dari ETA
// tamu. Murni fungsi dari menit ETA, dihitung ulang saat dibaca - tidak ada
// timer server yang menyimpan state.
type UrgencyTier string

const (
	UrgencyUrgent UrgencyTier = "urgent" // mulai siapkan sekarang
	UrgencySoon   UrgencyTier = "soon"
	UrgencyLater  UrgencyTier = "later"
)

// ClassifyUrgency memetakan menit ETA ke tier prioritas.
// Batas bawah inklusif: tepat 5 menit masih urgent, tepat 15 masih soon.
func ClassifyUrgency(etaMinutes int) UrgencyTier {
	switch {
	case etaMinutes <= 5:
		return UrgencyUrgent
	case etaMinutes <= 15:
		return UrgencySoon
	default:
		return UrgencyLater
	}
}

// TierRank dipakai untuk sorting tampilan dapur; angka kecil = lebih mendesak
func TierRank(t UrgencyTier) int {
	switch t {
	case UrgencyUrgent:
		return 0
	case UrgencySoon:
		return 1
	default:
		return 2
	}
}

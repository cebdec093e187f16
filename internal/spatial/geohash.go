package spatial

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// EncodeGeohash encodes latitude and longitude into a geohash of 1-12 characters.
func EncodeGeohash(lat, lon float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}

	latRange := [2]float64{-90.0, 90.0}
	lonRange := [2]float64{-180.0, 180.0}

	geohash := make([]byte, 0, precision)
	bits, ch := 0, 0
	even := true

	for len(geohash) < precision {
		if even {
			ch = bisect(&lonRange, lon, ch, bits)
		} else {
			ch = bisect(&latRange, lat, ch, bits)
		}
		even = !even

		bits++
		if bits == 5 {
			geohash = append(geohash, base32[ch])
			bits, ch = 0, 0
		}
	}

	return string(geohash)
}

func bisect(r *[2]float64, v float64, ch, bits int) int {
	mid := (r[0] + r[1]) / 2
	if v > mid {
		r[0] = mid
		return ch | 1<<(4-bits)
	}
	r[1] = mid
	return ch
}

// DecodeGeohash returns the center of a geohash cell. Invalid characters are skipped.
func DecodeGeohash(geohash string) (lat, lon float64) {
	latRange := [2]float64{-90.0, 90.0}
	lonRange := [2]float64{-180.0, 180.0}

	even := true
	for i := 0; i < len(geohash); i++ {
		idx := indexOfBase32(geohash[i])
		if idx == -1 {
			continue
		}

		for mask := 16; mask > 0; mask >>= 1 {
			r := &latRange
			if even {
				r = &lonRange
			}
			mid := (r[0] + r[1]) / 2
			if idx&mask != 0 {
				r[0] = mid
			} else {
				r[1] = mid
			}
			even = !even
		}
	}

	return (latRange[0] + latRange[1]) / 2, (lonRange[0] + lonRange[1]) / 2
}

func indexOfBase32(ch byte) int {
	for i := 0; i < len(base32); i++ {
		if base32[i] == ch {
			return i
		}
	}
	return -1
}

package strategy

// ema computes the exponential moving average of the series with the given
// period, seeded with a simple average of the first period values. Returns
// false when the series is too short.
func ema(series []float64, period int) (float64, bool) {
	if len(series) < period || period <= 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range series[:period] {
		sum += v
	}
	avg := sum / float64(period)
	k := 2.0 / float64(period+1)
	for _, v := range series[period:] {
		avg = v*k + avg*(1-k)
	}
	return avg, true
}

// rsi computes Wilder's relative strength index over the given period.
func rsi(series []float64, period int) (float64, bool) {
	if len(series) < period+1 || period <= 0 {
		return 0, false
	}
	var gain, loss float64
	for i := 1; i <= period; i++ {
		d := series[i] - series[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	for i := period + 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		g, l := 0.0, 0.0
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
	}
	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// highLow returns the highest high and lowest low over the last n bars of
// the slice, excluding the final bar when excludeLast is set.
func highLow(highs, lows []float64, n int, excludeLast bool) (float64, float64, bool) {
	end := len(highs)
	if excludeLast {
		end--
	}
	if end < n || n <= 0 {
		return 0, 0, false
	}
	hi, lo := highs[end-n], lows[end-n]
	for i := end - n + 1; i < end; i++ {
		if highs[i] > hi {
			hi = highs[i]
		}
		if lows[i] < lo {
			lo = lows[i]
		}
	}
	return hi, lo, true
}

// mean of the last n values.
func mean(series []float64, n int) (float64, bool) {
	if len(series) < n || n <= 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range series[len(series)-n:] {
		sum += v
	}
	return sum / float64(n), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package bacf implements bitstream autocorrelation pitch detection.
//
// A window of samples is binarized with a hysteresis zero-crossing detector
// and packed into 32-bit words. For every candidate lag the Hamming distance
// between the stream and its shifted copy is counted with popcount; the lag
// with the smallest distance is the raw period estimate. Harmonic correction
// then looks for a shorter period whose echoes are also strongly periodic,
// and the final period is refined to sub-sample precision by interpolating
// zero crossings of the raw signal.
//
// The default configuration covers 50..500 Hz at 44.1 kHz with a
// 2048-sample window:
//
//	cfg := bacf.DefaultConfig()
//	est, _ := bacf.NewEstimator(cfg)
//	if hz, ok := est.Estimate(window); ok {
//		fmt.Printf("%.3f Hz\n", hz)
//	}
package bacf

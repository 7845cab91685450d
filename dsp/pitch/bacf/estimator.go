package bacf

// Result describes one analysis of a window.
type Result struct {
	RawLag    int     // lag with the smallest bit distance
	Lag       int     // lag after harmonic correction
	MaxCount  uint32  // largest bit distance in the table
	Frequency float64 // refined frequency in Hz, valid when OK
	OK        bool
}

// Estimator runs the detector pipeline with buffers owned by the estimator,
// so repeated calls do not allocate. An Estimator is not safe for concurrent
// use; give each goroutine its own.
type Estimator struct {
	cfg   Config
	bits  *Bitstream
	table []uint32
}

// NewEstimator allocates the bitstream and correlation table for cfg.
func NewEstimator(cfg Config) (*Estimator, error) {
	bits := NewBitstream(cfg)
	if err := bits.prepareKernel(); err != nil {
		return nil, err
	}

	return &Estimator{
		cfg:   cfg,
		bits:  bits,
		table: make([]uint32, cfg.HalfWindow),
	}, nil
}

// Config returns the configuration the estimator was built with.
func (e *Estimator) Config() Config { return e.cfg }

// Table returns the correlation table of the last analysis. It is overwritten
// by the next call.
func (e *Estimator) Table() []uint32 { return e.table }

// Estimate returns the pitch of window in Hz. The second result is false when
// the pitch is undetermined, including for windows whose length is not
// WindowSize.
func (e *Estimator) Estimate(window []float32) (float64, bool) {
	r := e.Analyze(window)
	return r.Frequency, r.OK
}

// Analyze runs the full pipeline and reports the intermediate lags.
func (e *Estimator) Analyze(window []float32) Result {
	if len(window) != e.cfg.WindowSize {
		return Result{}
	}

	e.bits.Fill(window)
	corr := e.bits.AutocorrelateInto(e.cfg.MinPeriod, e.table)

	res := Result{
		RawLag:   corr.BestLag,
		MaxCount: corr.MaxCount,
	}
	res.Lag = CorrectHarmonics(e.cfg, corr.MaxCount, corr.BestLag, corr.Table)
	res.Frequency, res.OK = Refine(e.cfg, window, res.Lag)
	if !res.OK {
		res.Frequency = 0
	}

	return res
}

// EstimatePitch is a one-shot convenience around Estimator. It allocates per
// call; real-time callers should keep an Estimator instead.
func EstimatePitch(cfg Config, window []float32) (float64, bool) {
	e, err := NewEstimator(cfg)
	if err != nil {
		return 0, false
	}
	return e.Estimate(window)
}

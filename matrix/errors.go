package matrix

import "errors"

var (
	ErrPanelCount   = errors.New("matrix: panel count must be positive")
	ErrBufferSize   = errors.New("matrix: buffer length must be 64 * panel count")
	ErrChainOrder   = errors.New("matrix: unknown chain order")
	ErrIntensity    = errors.New("matrix: intensity out of range")
	ErrScanLimit    = errors.New("matrix: scan limit out of range")
	ErrRegister     = errors.New("matrix: unknown register address")
	ErrDecodeMode   = errors.New("matrix: unknown decode mode")
	ErrShutdownMode = errors.New("matrix: unknown shutdown mode")

	// ErrBus wraps every failure reported by the Bus or the Latch.
	ErrBus = errors.New("matrix: bus i/o failed")
)

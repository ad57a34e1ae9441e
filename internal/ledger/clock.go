package ledger

import "time"

// Clock supplies expense timestamps. The engine never reads the wall
// clock directly so tests can pin time.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock in Unix seconds.
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().Unix() }

package allocator_test

import (
	"io"
	"log"
)

func newStdLogger(w io.Writer) *log.Logger { return log.New(w, "", 0) }

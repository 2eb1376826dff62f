package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrSessionClosed = fmt.Errorf("session closed")
	ErrSlowConsumer  = fmt.Errorf("outgoing buffer full, line dropped")
)

package pool

import (
	"log"

	"github.com/ticklab/writeafter/hooking"
)

// A DeliveryLogger is a hook that writes a line for each pool lifecycle
// event into the logger.
type DeliveryLogger struct {
	Logger *log.Logger
}

// NewDeliveryLogger returns a DeliveryLogger that writes into the logger.
func NewDeliveryLogger(logger *log.Logger) *DeliveryLogger {
	return &DeliveryLogger{Logger: logger}
}

// Func writes the pool event information into the logger.
func (h *DeliveryLogger) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosEnqueue:
		info := ctx.Detail.(EntryInfo)
		h.Logger.Printf("enqueue, %s, %s, %.4f",
			info.Pool, info.PayloadType, info.Delay)
	case HookPosDeliver:
		info := ctx.Detail.(EntryInfo)
		h.Logger.Printf("deliver, %s, %s", info.Pool, info.PayloadType)
	case HookPosDrain:
		h.Logger.Printf("drain, %s", ctx.Detail.(string))
	case HookPosCancel:
		info := ctx.Detail.(EntryInfo)
		h.Logger.Printf("cancel, %s, %s", info.Pool, info.PayloadType)
	}
}

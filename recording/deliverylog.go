package recording

import (
	"github.com/ticklab/writeafter/hooking"
	"github.com/ticklab/writeafter/pool"
)

// EnqueueRow is one recorded enqueue.
type EnqueueRow struct {
	Pool        string
	EntryID     string
	PayloadType string
	Delay       float64
}

// DeliveryRow is one recorded delivery.
type DeliveryRow struct {
	Pool        string
	EntryID     string
	PayloadType string
}

// DrainRow is one recorded drain notification.
type DrainRow struct {
	Pool string
}

// CancelRow is one recorded cancellation.
type CancelRow struct {
	Pool        string
	EntryID     string
	PayloadType string
}

// A DeliveryLog is a hook that records pool activity into a Recorder. Attach
// it to individual pools or through a registry's AcceptPoolHook.
type DeliveryLog struct {
	recorder Recorder
}

// NewDeliveryLog creates a DeliveryLog writing into rec. It creates the
// enqueues, deliveries, drains, and cancels tables.
func NewDeliveryLog(rec Recorder) *DeliveryLog {
	rec.CreateTable("enqueues", EnqueueRow{})
	rec.CreateTable("deliveries", DeliveryRow{})
	rec.CreateTable("drains", DrainRow{})
	rec.CreateTable("cancels", CancelRow{})

	return &DeliveryLog{recorder: rec}
}

// Func records the pool event carried by ctx.
func (l *DeliveryLog) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case pool.HookPosEnqueue:
		info := ctx.Detail.(pool.EntryInfo)
		l.recorder.InsertData("enqueues", EnqueueRow{
			Pool:        info.Pool,
			EntryID:     info.ID,
			PayloadType: info.PayloadType,
			Delay:       float64(info.Delay),
		})
	case pool.HookPosDeliver:
		info := ctx.Detail.(pool.EntryInfo)
		l.recorder.InsertData("deliveries", DeliveryRow{
			Pool:        info.Pool,
			EntryID:     info.ID,
			PayloadType: info.PayloadType,
		})
	case pool.HookPosDrain:
		l.recorder.InsertData("drains", DrainRow{
			Pool: ctx.Detail.(string),
		})
	case pool.HookPosCancel:
		info := ctx.Detail.(pool.EntryInfo)
		l.recorder.InsertData("cancels", CancelRow{
			Pool:        info.Pool,
			EntryID:     info.ID,
			PayloadType: info.PayloadType,
		})
	}
}

// Package watchface implements the simplr watchface: time, date, battery,
// companion connection and today's step count on a single window.
//
// The face is glue over the host framework. Face.Load builds five text
// layers, fills them from a synchronous snapshot of the services so the first
// frame is never blank, and subscribes to minute ticks, battery changes and
// connection changes. Each notification formats one reading and writes it into
// its own layer. Face.Unload cancels the subscriptions and destroys the layers.
//
// All methods run on the host loop goroutine; nothing here locks.
package watchface

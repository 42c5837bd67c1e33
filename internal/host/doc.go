// Package host emulates the application framework of a wrist-worn device.
//
// A watchface never talks to hardware directly. It builds text layers on a
// window, asks services for the current battery, connection and health
// readings, and subscribes to change notifications. This package provides
// those facilities so a watchface can run on a workstation and be tested
// without a device.
//
// # Event Loop
//
// All application code runs on a single goroutine owned by a Loop. Service
// sources (the minute ticker, the battery poller, the companion link) may run
// on any goroutine; they publish through Device, which posts events to the
// loop. Handlers registered with Subscribe are only ever invoked from
// Loop.Dispatch, so application code never needs locking.
//
//	dev := host.NewDevice(host.WithClock(time.Now))
//	stack := host.NewWindowStack()
//	win := host.NewWindow()
//	win.SetHandlers(face.Handlers())
//	stack.Push(win)
//	go host.NewMinuteTicker(dev).Run(ctx)
//	_ = dev.Loop().Run(ctx)
//
// # Subscriptions
//
// Each service keeps at most one handler, matching the device framework.
// Subscribe returns a Subscription handle; Cancel removes the handler and is
// safe to call more than once.
//
// # Display
//
// Geometry is expressed in device pixels on a 144x168 screen. The package
// does not draw anything itself; see internal/render.
package host

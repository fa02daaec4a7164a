// Package toast provides feedback notifications for EventConnect screens.
//
// Screens never render toasts themselves. They emit a named event with a
// small payload and the host decides how to present it (a terminal line, a
// UI toast library, a log entry).
//
// # Emitters
//
// Anything with an Emit method can receive toasts:
//
//	type Emitter interface {
//	    Emit(name string, data any)
//	}
//
// Recorder keeps every toast in memory and Writer prints them:
//
//	w := toast.NewWriter(os.Stdout)
//	toast.Success(w, "Post created")
//
// With title:
//
//	toast.WithTitle(w, toast.TypeSuccess, "Services", "Booking 2 service(s)...")
package toast

/*
Package multicast provides an in-process multicast delegate registry: an
ordered, identity-keyed set of observer references with synchronous
fan-out invocation.

# Overview

A registry holds members that implement some capability type T and applies
a callback to each of them, in the order they were added, on the calling
goroutine. It is the observer-list building block used by
event-notification code.

Two registry flavors cover the two ownership models:

  - Registry[T] holds members strongly and relies on explicit
    deregistration. T is typically an observer interface; membership is
    keyed by Go identity (dynamic type and pointer), never by structural
    equality.
  - WeakRegistry[T] holds pointer members through weak references. A
    member reclaimed by the garbage collector is dropped transparently:
    the registry never extends a member's lifetime and never yields a
    dangling reference.

# Basic Usage

	type Listener interface {
	    OnChange(path string)
	}

	reg := multicast.New[Listener]()
	reg.Add(watcherA)
	reg.Add(watcherB)
	reg.Add(watcherA) // duplicate, ignored

	reg.Invoke(func(l Listener) {
	    l.OnChange("/etc/app.yaml")
	})

# Snapshot Semantics

Invoke and Notify iterate a snapshot taken when the pass starts. A member
added or removed by a callback does not join or leave the current pass:

	reg.Invoke(func(l Listener) {
	    reg.Remove(l) // takes effect for later passes only
	})

# Error-Aware Fan-Out

Notify applies an error-returning callback under a configurable failure
policy. The default, FailFast, aborts the remaining fan-out on the first
callback error and returns it wrapped in *InvokeError. ContinueOnError
runs the full pass and joins every failure:

	reg := multicast.New[Listener](
	    multicast.WithFailurePolicy(multicast.ContinueOnError),
	    multicast.WithLogger(logger),
	)

	if err := reg.Notify(ctx, func(ctx context.Context, l Listener) error {
	    return l.Flush(ctx)
	}); err != nil {
	    var ie *multicast.InvokeError
	    errors.As(err, &ie) // ie.Failed of ie.Members callbacks failed
	}

# Weak Membership

WeakRegistry keeps members alive only as long as some other owner does.
It is built on the runtime's weak pointers, so an observer that goes out
of scope elsewhere simply stops appearing:

	reg := multicast.NewWeak[Watcher]()
	reg.Add(w)            // does not keep w alive
	reg.Members()         // only still-live members
	reg.IsEmpty()         // true once every member is gone

# Thread Safety

All registry methods are safe for concurrent use. Fan-out callbacks run
outside the registry lock, so they may freely mutate the registry.
*/
package multicast

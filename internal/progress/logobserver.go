package progress

import "log"

// event is the union of everything LogObserver can print, boxed so a
// single channel can carry any of them.
type event struct {
	load      *LoadComplete
	discovery *DiscoveryProgress
	complete  *RunComplete
	failed    *RunFailed
}

// LogObserver prints events with the standard log package from a single
// dedicated goroutine. The channel recv blocks with no polling between
// events — the goroutine parks completely while the run is between
// milestones, the same zero-busy-wait discipline as a dedicated logging
// thread draining a blocking channel.
type LogObserver struct {
	events chan event
	done   chan struct{}
}

// NewLogObserver starts the draining goroutine and returns an Observer.
// Close must be called once the run is over to let the goroutine exit.
func NewLogObserver() *LogObserver {
	o := &LogObserver{
		events: make(chan event, 64),
		done:   make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *LogObserver) run() {
	for e := range o.events {
		switch {
		case e.load != nil:
			log.Printf("load complete: %d trajectories, %d buckets (%s)", e.load.Trajectories, e.load.Buckets, e.load.Elapsed)
		case e.discovery != nil:
			log.Printf("discovery progress: %d/%d trajectories (%s)", e.discovery.TrajectoriesDone, e.discovery.TrajectoriesTotal, e.discovery.Elapsed)
		case e.complete != nil:
			log.Printf("run complete: %d corridors, %d clustered, %d non-clustered (%s)",
				e.complete.Corridors, e.complete.ClusteredSegments, e.complete.NonClusteredSegments, e.complete.Elapsed)
		case e.failed != nil:
			log.Printf("run failed after %s: %v", e.failed.Elapsed, e.failed.Err)
		}
	}
	close(o.done)
}

// Close stops accepting events and waits for the draining goroutine to
// finish printing whatever is already queued.
func (o *LogObserver) Close() {
	close(o.events)
	<-o.done
}

func (o *LogObserver) OnLoadComplete(e LoadComplete) {
	o.events <- event{load: &e}
}

func (o *LogObserver) OnDiscoveryProgress(e DiscoveryProgress) {
	o.events <- event{discovery: &e}
}

func (o *LogObserver) OnRunComplete(e RunComplete) {
	o.events <- event{complete: &e}
}

func (o *LogObserver) OnRunFailed(e RunFailed) {
	o.events <- event{failed: &e}
}

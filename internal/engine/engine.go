// Package engine runs a parallel work-stealing search: a roster of
// workers repeatedly improves items of type I until each is finished,
// sharing surplus work through a common buffer so no worker starves while
// another sits on a deep stack of unexplored nodes.
package engine

import (
	"sync/atomic"

	"github.com/Zubayear/ryushin/queue"
	"github.com/Zubayear/ryushin/stack"
)

// Worker knows how to expand one item into its unfinished children and
// how to tell whether an item is already finished.
type Worker[I any] interface {
	Improve(item I) []I
	Inspect(item I) bool
}

// Result is one message on the engine's output channel. Ok is false
// exactly once, as the final message, signaling that the search is over
// either because every item finished or because the kill switch was set.
type Result[I any] struct {
	Item I
	Ok   bool
}

// DefaultSlopFactor bounds how many times the worker count the shared
// buffer is allowed to hold before workers stop topping it up, absent any
// caller-supplied override.
const DefaultSlopFactor = 3

type bossMessage int

const (
	goMessage bossMessage = iota
	stopMessage
)

type workerMessageKind int

const (
	wakeUp workerMessageKind = iota
	sleeping
	slain
)

type workerMessage struct {
	kind workerMessageKind
	id   int
}

// Run launches roster workers over the given seeds with the default slop
// factor and returns a channel of results plus a kill switch the caller
// can set to stop the search early. Exactly one Result with Ok == false
// is ever sent, as the last message; the caller should stop reading once
// it sees that message.
func Run[I comparable](roster int, seeds []I, worker Worker[I]) (<-chan Result[I], *atomic.Bool) {
	return RunWithSlopFactor(roster, DefaultSlopFactor, seeds, worker)
}

// RunWithSlopFactor is Run with an explicit slop factor, letting a caller
// (e.g. one reading internal/config's EngineConfig.SlopFactor) tune how
// large the shared buffer is allowed to grow relative to the roster.
// Values less than 1 fall back to DefaultSlopFactor.
func RunWithSlopFactor[I comparable](roster, slopFactor int, seeds []I, worker Worker[I]) (<-chan Result[I], *atomic.Bool) {
	if roster < 1 {
		roster = 1
	}
	if slopFactor < 1 {
		slopFactor = DefaultSlopFactor
	}
	shared := queue.NewQueue[I]()
	var sharedCount atomic.Int64
	for _, s := range seeds {
		shared.Enqueue(s)
		sharedCount.Add(1)
	}

	killSwitch := &atomic.Bool{}
	out := make(chan Result[I])
	commandChans := make([]chan bossMessage, roster)
	for i := range commandChans {
		commandChans[i] = make(chan bossMessage, 1)
	}
	supervisorChan := make(chan workerMessage, roster*4)

	for id := 0; id < roster; id++ {
		go runWorker(id, roster, slopFactor, shared, &sharedCount, commandChans[id], supervisorChan, out, killSwitch, worker)
	}
	go runSupervisor(roster, commandChans, supervisorChan, out)

	for _, c := range commandChans {
		c <- goMessage
	}
	return out, killSwitch
}

func runWorker[I comparable](id, roster, slopFactor int, shared *queue.Queue[I], sharedCount *atomic.Int64, in <-chan bossMessage, supervisorChan chan<- workerMessage, out chan<- Result[I], killSwitch *atomic.Bool, worker Worker[I]) {
	local := stack.NewStack[I]()
	for msg := range in {
		if msg == stopMessage {
			return
		}
		if killSwitch.Load() {
			supervisorChan <- workerMessage{kind: slain}
			return
		}

		for {
			item, err := shared.Dequeue()
			if err != nil {
				break
			}
			sharedCount.Add(-1)
			local.Push(item)
		}

		for {
			if killSwitch.Load() {
				supervisorChan <- workerMessage{kind: slain}
				return
			}
			item, err := local.Pop()
			if err != nil {
				break
			}
			if worker.Inspect(item) {
				out <- Result[I]{Item: item, Ok: true}
				continue
			}
			children := worker.Improve(item)
			if len(children) > 0 {
				remaining, shared_ := shareSurplus(roster, slopFactor, shared, sharedCount, children, local)
				if shared_ {
					supervisorChan <- workerMessage{kind: wakeUp}
				}
				for _, c := range remaining {
					local.Push(c)
				}
			}
		}

		supervisorChan <- workerMessage{kind: sleeping, id: id}
	}
}

// shareSurplus donates work to the shared buffer when it is running low,
// taking first from the newly produced children (to preserve this
// worker's own depth-first exploration) and only then from the top of its
// local stack. It reports the children left for the caller to push
// locally, and whether anything was donated.
func shareSurplus[I comparable](roster, slopFactor int, shared *queue.Queue[I], sharedCount *atomic.Int64, children []I, local *stack.Stack[I]) ([]I, bool) {
	threshold := int64(roster)
	maxShared := threshold * int64(slopFactor)
	currentlyShared := sharedCount.Load()
	if currentlyShared >= threshold {
		return children, false
	}
	own := len(children) + local.Size()
	if own <= 1 {
		return children, false
	}
	tithe := int64(own - 1)
	if room := maxShared - currentlyShared; tithe > room {
		tithe = room
	}
	if tithe <= 0 {
		return children, false
	}
	donated := int64(0)
	remaining := children
	if tithe <= int64(len(children)) {
		for i := int64(0); i < tithe; i++ {
			shared.Enqueue(children[i])
			donated++
		}
		remaining = children[tithe:]
	} else {
		for _, c := range children {
			shared.Enqueue(c)
			donated++
		}
		remaining = nil
		needed := tithe - int64(len(children))
		for i := int64(0); i < needed; i++ {
			v, err := local.Pop()
			if err != nil {
				break
			}
			shared.Enqueue(v)
			donated++
		}
	}
	if donated > 0 {
		sharedCount.Add(donated)
		return remaining, true
	}
	return remaining, false
}

func runSupervisor[I comparable](roster int, commandChans []chan bossMessage, supervisorChan <-chan workerMessage, out chan<- Result[I]) {
	idled := make(map[int]bool)
	for msg := range supervisorChan {
		switch msg.kind {
		case wakeUp:
			for id := range idled {
				commandChans[id] <- goMessage
				delete(idled, id)
			}
		case sleeping:
			idled[msg.id] = true
			if len(idled) == roster {
				out <- Result[I]{Ok: false}
				for _, c := range commandChans {
					c <- stopMessage
				}
				return
			}
		case slain:
			out <- Result[I]{Ok: false}
			for id := range idled {
				commandChans[id] <- goMessage
			}
			return
		}
	}
}

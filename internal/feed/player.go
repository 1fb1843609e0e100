package feed

import (
	"context"
	"time"

	"github.com/ayusman/jarvishud/internal/hud"
	"github.com/ayusman/jarvishud/internal/logger"
)

// Step is one frame of a scripted session: the landmarks seen and, when a
// gesture was recognised, its name. A step with no landmarks reports that
// no hand is in view.
type Step struct {
	Landmarks []hud.Landmark
	Gesture   string
}

// Demo returns a looping script that exercises every message kind: an open
// palm drifting right, a thumbs up, and an empty frame.
func Demo() []Step {
	var steps []Step
	palm := OpenPalm()
	for i := 0; i < 10; i++ {
		steps = append(steps, Step{Landmarks: Shift(palm, float64(i)*0.02, 0)})
	}
	steps = append(steps, Step{Landmarks: Shift(palm, 0.2, 0), Gesture: "swipe_right"})
	steps = append(steps, Step{Landmarks: OpenPalm(), Gesture: "open_palm"})
	for i := 0; i < 5; i++ {
		steps = append(steps, Step{Landmarks: ThumbsUp()})
	}
	steps = append(steps, Step{Landmarks: ThumbsUp(), Gesture: "thumbs_up"})
	steps = append(steps, Step{})
	return steps
}

// Player publishes a script on a fixed interval.
type Player struct {
	broadcaster *Broadcaster
	steps       []Step
	interval    time.Duration
}

// NewPlayer creates a Player publishing steps to b every interval.
func NewPlayer(b *Broadcaster, steps []Step, interval time.Duration) *Player {
	return &Player{broadcaster: b, steps: steps, interval: interval}
}

// Run loops over the script until ctx is cancelled. Steps are skipped while
// no client is connected.
func (p *Player) Run(ctx context.Context) error {
	if len(p.steps) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if p.broadcaster.Clients() == 0 {
			continue
		}
		if err := p.Publish(p.steps[i]); err != nil {
			logger.Warn("feed", "publish step %d: %v", i, err)
		}
		i = (i + 1) % len(p.steps)
	}
}

// Publish sends one step: landmarks then gesture, or a no_hand status.
func (p *Player) Publish(step Step) error {
	if len(step.Landmarks) == 0 {
		return p.broadcaster.Publish(NoHand())
	}
	if err := p.broadcaster.Publish(NewLandmarks(step.Landmarks)); err != nil {
		return err
	}
	if step.Gesture != "" {
		return p.broadcaster.Publish(NewGesture(step.Gesture))
	}
	return nil
}

package systems

import (
	"fmt"
	"time"
)

// TypingTimings holds the delays between typing steps.
type TypingTimings struct {
	Type   time.Duration // Per character typed
	Delete time.Duration // Per character deleted
	Hold   time.Duration // After a phrase is complete
	Next   time.Duration // After a phrase is fully deleted
}

// DefaultTypingTimings returns the classic terminal cadence.
func DefaultTypingTimings() TypingTimings {
	return TypingTimings{
		Type:   100 * time.Millisecond,
		Delete: 50 * time.Millisecond,
		Hold:   2000 * time.Millisecond,
		Next:   500 * time.Millisecond,
	}
}

// TypingEffect types a phrase one character at a time, holds it, deletes it
// and moves to the next phrase, cycling forever.
type TypingEffect struct {
	phrases  [][]rune
	timings  TypingTimings
	index    int
	shown    int
	deleting bool
	wait     time.Duration
	cycles   int
}

// NewTypingEffect returns an effect showing the first character of the first phrase.
func NewTypingEffect(phrases []string, timings TypingTimings) (*TypingEffect, error) {
	if len(phrases) == 0 {
		return nil, fmt.Errorf("%w: no phrases", ErrInvalidOptions)
	}
	if timings.Type <= 0 || timings.Delete <= 0 || timings.Hold <= 0 || timings.Next <= 0 {
		return nil, fmt.Errorf("%w: typing delays must be positive", ErrInvalidOptions)
	}
	t := &TypingEffect{timings: timings}
	for i, p := range phrases {
		if p == "" {
			return nil, fmt.Errorf("%w: phrase %d is empty", ErrInvalidOptions, i)
		}
		t.phrases = append(t.phrases, []rune(p))
	}
	t.wait = t.step()
	return t, nil
}

// step applies one typing action and returns the delay before the next.
func (t *TypingEffect) step() time.Duration {
	full := t.phrases[t.index]
	if t.deleting {
		t.shown--
	} else {
		t.shown++
	}

	switch {
	case !t.deleting && t.shown == len(full):
		t.deleting = true
		return t.timings.Hold
	case t.deleting && t.shown == 0:
		t.deleting = false
		t.index = (t.index + 1) % len(t.phrases)
		if t.index == 0 {
			t.cycles++
		}
		return t.timings.Next
	case t.deleting:
		return t.timings.Delete
	default:
		return t.timings.Type
	}
}

// Update advances the effect by dt, applying every step that falls due.
func (t *TypingEffect) Update(dt time.Duration) {
	if t == nil || dt <= 0 {
		return
	}
	t.wait -= dt
	for t.wait <= 0 {
		t.wait += t.step()
	}
}

// Text returns the currently visible text.
func (t *TypingEffect) Text() string {
	if t == nil {
		return ""
	}
	return string(t.phrases[t.index][:t.shown])
}

// Phrase returns the index of the phrase being typed or deleted.
func (t *TypingEffect) Phrase() int {
	if t == nil {
		return 0
	}
	return t.index
}

// Deleting reports whether the effect is removing characters.
func (t *TypingEffect) Deleting() bool {
	return t != nil && t.deleting
}

// Cycles returns how many times every phrase has been shown.
func (t *TypingEffect) Cycles() int {
	if t == nil {
		return 0
	}
	return t.cycles
}

package session

import "github.com/vovakirdan/deadpixel/internal/model"

// Feedback signals the result of a tap to the player.
// Calls must return promptly; slow work belongs on the implementation's
// own goroutine.
type Feedback interface {
	Success()
	Failure()
}

// FeedbackFunc adapts a function to Feedback. The argument is true for
// a hit.
type FeedbackFunc func(success bool)

// Success calls f(true).
func (f FeedbackFunc) Success() { f(true) }

// Failure calls f(false).
func (f FeedbackFunc) Failure() { f(false) }

// feedbackSinks picks the sinks enabled by the player's preferences.
func feedbackSinks(prefs model.UserPreferences, haptic, sound Feedback) []Feedback {
	var sinks []Feedback
	if prefs.HapticFeedback && haptic != nil {
		sinks = append(sinks, haptic)
	}
	if prefs.SoundEffects && sound != nil {
		sinks = append(sinks, sound)
	}
	return sinks
}

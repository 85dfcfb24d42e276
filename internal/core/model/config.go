package model

import "time"

const (
	// DefaultWorkDuration is the length of one focus phase.
	DefaultWorkDuration = 1500 * time.Second
	// DefaultBreakDuration is the length of one break phase.
	DefaultBreakDuration = 300 * time.Second
	// DefaultNotificationTimeout is how long a notification stays on screen.
	DefaultNotificationTimeout = 10 * time.Second
)

// DefaultIdeas is the built-in idea list rotated through during breaks.
var DefaultIdeas = []string{
	"AI Legal Assistant for SMBs - $49/month automated contract review",
	"Drone Fleet Manager - Enterprise SaaS for commercial drone operations",
	"No-Code AR Platform - Drag-and-drop AR experience builder",
	"Healthcare Compliance Automator - HIPAA/GDPR compliance as a service",
	"Adaptive Learning Cloud - AI that personalizes education in real-time",
}

// CycleConfig contains runtime settings for the cycle timer.
type CycleConfig struct {
	WorkDuration        time.Duration
	BreakDuration       time.Duration
	NotificationTimeout time.Duration
	Ideas               []string
}

// DefaultCycleConfig returns the stock 25/5 cycle with the built-in ideas.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		WorkDuration:        DefaultWorkDuration,
		BreakDuration:       DefaultBreakDuration,
		NotificationTimeout: DefaultNotificationTimeout,
		Ideas:               append([]string(nil), DefaultIdeas...),
	}
}

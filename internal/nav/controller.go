// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package nav

import (
	"sync"

	"github.com/rahulrai19/smart-energy/internal/platform/apperr"
)

// # Navigation State

// State is the complete navigation condition of the authenticated shell.
//
// OverlayOpen is meaningful only while Active is not the assistant view;
// the transition function forces it false on entry to the assistant.
type State struct {
	Active      View
	OverlayOpen bool
}

// initialState is where every authenticated session starts.
func initialState() State {
	return State{Active: ViewDashboard, OverlayOpen: false}
}

// transition is the single place a navigation state change happens.
//
// Invariant: whenever the target is the assistant view the overlay flag
// comes out false, no matter what it was before.
func transition(current State, target View) State {
	next := State{Active: target, OverlayOpen: current.OverlayOpen}
	if target == ViewAssistant {
		next.OverlayOpen = false
	}
	return next
}

// # Controller

// Controller holds the navigation state for one authenticated session.
//
// # Lifetime
//
// Created when the authenticated shell mounts, discarded on logout; Reset
// restores the initial state on the next login.
type Controller struct {
	mu    sync.Mutex
	state State
}

// NewController constructs a controller at the initial state
// (dashboard, overlay closed).
func NewController() *Controller {
	return &Controller{state: initialState()}
}

/*
Navigate sets the active view.

Description: Entering the assistant view additionally forces the overlay
closed — the full-page assistant and the floating overlay never coexist.

Parameters:
  - target: View

Returns:
  - error: Validation failure for an unknown view identifier
*/
func (controller *Controller) Navigate(target View) error {
	if !target.Valid() {
		return apperr.ValidationError("Unknown view", apperr.FieldError{
			Field:   "view",
			Message: "Must name a navigable view",
		})
	}

	controller.mu.Lock()
	controller.state = transition(controller.state, target)
	controller.mu.Unlock()
	return nil
}

/*
ToggleOverlay flips the assistant overlay flag.

Description: While the assistant view is active the toggle control is not
offered, so the call is a guarded no-op there rather than an error.

Returns:
  - bool: The overlay state after the call
*/
func (controller *Controller) ToggleOverlay() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.state.Active == ViewAssistant {
		return false
	}
	controller.state.OverlayOpen = !controller.state.OverlayOpen
	return controller.state.OverlayOpen
}

// State returns a copy of the current navigation state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Reset restores the initial state. Called when a new authenticated
// session begins.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	controller.state = initialState()
	controller.mu.Unlock()
}

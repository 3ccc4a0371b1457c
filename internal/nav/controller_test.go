// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulrai19/smart-energy/internal/nav"
	"github.com/rahulrai19/smart-energy/internal/platform/apperr"
)

/*
TestController_InitialState verifies the authenticated shell mounts at the
dashboard with the overlay closed.
*/
func TestController_InitialState(t *testing.T) {
	controller := nav.NewController()

	state := controller.State()
	assert.Equal(t, nav.ViewDashboard, state.Active)
	assert.False(t, state.OverlayOpen)
}

/*
TestController_OverlayAssistantExclusivity drives sequences of navigate and
toggle calls and checks the invariant after every transition: whenever the
assistant view is active, the overlay is closed.
*/
func TestController_OverlayAssistantExclusivity(t *testing.T) {
	type step struct {
		navigate nav.View // empty means toggle instead
	}

	// Representative call sequences, including the adversarial one: open the
	// overlay and then enter the assistant view.
	sequences := [][]step{
		{{navigate: nav.ViewAssistant}},
		{{}, {navigate: nav.ViewAssistant}},
		{{}, {navigate: nav.ViewFeedback}, {navigate: nav.ViewAssistant}},
		{{navigate: nav.ViewDevices}, {}, {}, {navigate: nav.ViewAssistant}, {navigate: nav.ViewReports}},
		{{}, {navigate: nav.ViewAssistant}, {}, {navigate: nav.ViewDashboard}, {}},
	}

	for _, sequence := range sequences {
		controller := nav.NewController()

		for _, s := range sequence {
			if s.navigate != "" {
				require.NoError(t, controller.Navigate(s.navigate))
			} else {
				controller.ToggleOverlay()
			}

			state := controller.State()
			if state.Active == nav.ViewAssistant {
				assert.False(t, state.OverlayOpen,
					"overlay must be closed while the assistant view is active")
			}
		}
	}
}

/*
TestController_ToggleOverlay verifies the flip semantics and the guarded
no-op while the assistant view is active.
*/
func TestController_ToggleOverlay(t *testing.T) {
	controller := nav.NewController()

	// 1. Plain flip on a non-assistant view
	assert.True(t, controller.ToggleOverlay())
	assert.True(t, controller.State().OverlayOpen)
	assert.False(t, controller.ToggleOverlay())

	// 2. No-op on the assistant view
	require.NoError(t, controller.Navigate(nav.ViewAssistant))
	assert.False(t, controller.ToggleOverlay())
	assert.False(t, controller.State().OverlayOpen)

	// 3. Leaving the assistant view re-arms the toggle
	require.NoError(t, controller.Navigate(nav.ViewInsights))
	assert.True(t, controller.ToggleOverlay())
}

/*
TestController_OverlaySurvivesOrdinaryNavigation verifies the overlay flag is
orthogonal to view changes between non-assistant views.
*/
func TestController_OverlaySurvivesOrdinaryNavigation(t *testing.T) {
	controller := nav.NewController()

	controller.ToggleOverlay()
	require.NoError(t, controller.Navigate(nav.ViewForecast))

	state := controller.State()
	assert.Equal(t, nav.ViewForecast, state.Active)
	assert.True(t, state.OverlayOpen)
}

/*
TestController_NavigateUnknownView verifies that an unknown identifier is
rejected without a state change.
*/
func TestController_NavigateUnknownView(t *testing.T) {
	controller := nav.NewController()

	err := controller.Navigate(nav.View("preferences"))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
	assert.Equal(t, nav.ViewDashboard, controller.State().Active)
}

/*
TestController_Reset verifies the controller returns to the initial state
for a fresh authenticated session.
*/
func TestController_Reset(t *testing.T) {
	controller := nav.NewController()

	require.NoError(t, controller.Navigate(nav.ViewSettings))
	controller.ToggleOverlay()

	controller.Reset()

	state := controller.State()
	assert.Equal(t, nav.ViewDashboard, state.Active)
	assert.False(t, state.OverlayOpen)
}

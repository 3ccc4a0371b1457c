// Copyright (c) 2026 Smart Energy. All rights reserved.
// Author: protocolpsi@gmail.com

/*
Package nav implements the single-page navigation state machine.

It owns the active-view selector and the transient assistant-overlay flag,
and enforces their one coupling rule: the floating overlay never coexists
with the full-page assistant view.

Architecture:

  - State: An explicit tagged value (view enum × overlay boolean).
  - Transition: One pure function performs every state change, so the
    exclusivity invariant lives in exactly one place instead of being
    scattered across call sites.
  - Lifetime: The controller persists for one authenticated session and is
    reset on the next login.
*/
package nav

// # View Enumeration

// View identifies one of the console's mounted pages.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewDevices   View = "devices"
	ViewForecast  View = "forecast"
	ViewInsights  View = "insights"
	ViewReports   View = "reports"
	ViewFeedback  View = "feedback"
	ViewAssistant View = "assistant"
	ViewSettings  View = "settings"
)

// Views lists every navigable view, in sidebar order.
var Views = []View{
	ViewDashboard,
	ViewDevices,
	ViewForecast,
	ViewInsights,
	ViewReports,
	ViewFeedback,
	ViewAssistant,
	ViewSettings,
}

// Valid reports whether v names a navigable view.
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

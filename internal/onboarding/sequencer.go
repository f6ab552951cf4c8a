// Package onboarding derives the ordered step list a trainee walks
// through: a fixed prefix, conditional module steps driven by the
// trainee's training assignments, and a completion step.
package onboarding

import "trainhub/internal/models"

// Step is one screen in the onboarding flow. Route, when set, is where
// "next" navigates instead of simply advancing the cursor.
type Step struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Route string `json:"route,omitempty"`
}

var prefixSteps = []Step{
	{Key: "welcome", Title: "Welcome", Route: "/onboarding/welcome"},
	{Key: "policy", Title: "Policy Acknowledgment", Route: "/onboarding/policy"},
	{Key: "course_registration", Title: "Course Registration", Route: "/onboarding/course-registration"},
	{Key: "medical_screening", Title: "Medical Screening", Route: "/onboarding/medical-screening"},
}

// moduleSteps maps assignable module codes to their conditional steps, in
// the order they appear when assigned.
var moduleSteps = []struct {
	module string
	step   Step
}{
	{models.ModuleBOSIET, Step{Key: "bosiet", Title: "BOSIET", Route: "/onboarding/bosiet"}},
	{models.ModuleFireWatch, Step{Key: "fire_watch", Title: "Fire Watch", Route: "/onboarding/fire-watch"}},
	{models.ModuleCSER, Step{Key: "cser", Title: "CSE&R", Route: "/onboarding/cser"}},
}

var completionStep = Step{Key: "completion", Title: "Completion"}

// Steps builds the full step list for a trainee with the given assigned
// modules. The result is deterministic: assignment order does not matter.
func Steps(assignedModules []string) []Step {
	assigned := make(map[string]bool, len(assignedModules))
	for _, m := range assignedModules {
		assigned[m] = true
	}

	steps := make([]Step, 0, len(prefixSteps)+len(moduleSteps)+1)
	steps = append(steps, prefixSteps...)
	for _, ms := range moduleSteps {
		if assigned[ms.module] {
			steps = append(steps, ms.step)
		}
	}
	steps = append(steps, completionStep)
	return steps
}

// Next advances the 1-based cursor, capped at the last step.
func Next(steps []Step, cursor int) int {
	if cursor < len(steps) {
		return cursor + 1
	}
	return len(steps)
}

// Previous decrements the 1-based cursor with a floor of 1.
func Previous(cursor int) int {
	if cursor > 1 {
		return cursor - 1
	}
	return 1
}

// Current returns the step under the cursor, clamping out-of-range values.
func Current(steps []Step, cursor int) Step {
	if cursor < 1 {
		cursor = 1
	}
	if cursor > len(steps) {
		cursor = len(steps)
	}
	return steps[cursor-1]
}

// Package deps checks that the tools named in suggested commands are
// installed. mediamanager never runs them; a missing tool only means the
// printed suggestions will fail when the user pastes them.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"mediamanager/internal/config"
)

// Requirement names an external tool a suggestion relies on.
type Requirement struct {
	Name    string
	Command string
	// UsedBy is the configured command line that needs the tool.
	UsedBy string
}

// Status reports the availability of a tool.
type Status struct {
	Name      string
	Command   string
	UsedBy    string
	Available bool
	Detail    string
}

// RequirementsFromConfig lists the distinct programs invoked by the track
// command and the follow-up commands, in first-use order.
func RequirementsFromConfig(cfg *config.Config) []Requirement {
	if cfg == nil {
		return nil
	}
	lines := append([]string{cfg.Placement.TrackCommand}, cfg.Commands.FollowUp...)
	seen := make(map[string]struct{}, len(lines))
	var reqs []Requirement
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		program := fields[0]
		if _, ok := seen[program]; ok {
			continue
		}
		seen[program] = struct{}{}
		reqs = append(reqs, Requirement{Name: program, Command: program, UsedBy: strings.TrimSpace(line)})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:    req.Name,
			Command: cmd,
			UsedBy:  req.UsedBy,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

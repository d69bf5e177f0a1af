// Package session implements the interactive browse loop as an explicit
// state machine. The machine holds no I/O: callers feed it one line of
// input at a time and print the Output it returns.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/parkdir"
)

// State is a position in the browse loop.
type State int

// States of the browse loop. ListEntities is transient: the machine enters
// it after a valid region and leaves it before returning.
const (
	AwaitRegion State = iota
	ListEntities
	AwaitSelection
	Done
)

func (s State) String() string {
	switch s {
	case AwaitRegion:
		return "await-region"
	case ListEntities:
		return "list-entities"
	case AwaitSelection:
		return "await-selection"
	case Done:
		return "done"
	}
	return "unknown"
}

// Prompts and messages shown to the user.
const (
	RegionPrompt        = `Enter a state name (e.g. Michigan, michigan) or "exit": `
	SelectionPrompt     = `Choose the number for detail search or "exit" or "back": `
	InvalidRegionMsg    = "Sorry! Please enter the full name of a valid state."
	InvalidSelectionMsg = "Invalid input"
	GoodbyeMsg          = "Bye!"
)

// Commands recognized at the prompts.
const (
	cmdExit = "exit"
	cmdBack = "back"
)

// Output is what the machine produced for one input.
type Output struct {
	Lines  []string
	Prompt string
}

// handler processes one input in a given state.
type handler func(m *Machine, ctx context.Context, input string) Output

// transitions maps each input-accepting state to its handler.
var transitions = map[State]handler{
	AwaitRegion:    (*Machine).handleRegion,
	AwaitSelection: (*Machine).handleSelection,
}

// Machine drives the region, listing and selection loop.
type Machine struct {
	catalog parkdir.Catalog
	nearby  parkdir.NearbyService

	state     State
	directory parkdir.Directory
	region    string
	sites     []*parkdir.Site
}

// New creates a Machine in the AwaitRegion state.
func New(catalog parkdir.Catalog, nearby parkdir.NearbyService) *Machine {
	return &Machine{
		catalog: catalog,
		nearby:  nearby,
		state:   AwaitRegion,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Start builds the region directory and returns the first prompt.
// A directory failure is returned since no region can be resolved without it.
func (m *Machine) Start(ctx context.Context) (Output, error) {
	dir, err := m.catalog.BuildDirectory(ctx)
	if err != nil {
		return Output{}, err
	}
	m.directory = dir
	m.state = AwaitRegion
	return Output{Prompt: RegionPrompt}, nil
}

// Handle processes one line of input and returns what to show next.
// In the Done state every input is ignored.
func (m *Machine) Handle(ctx context.Context, input string) Output {
	h, ok := transitions[m.state]
	if !ok {
		return Output{}
	}
	return h(m, ctx, strings.TrimSpace(input))
}

func (m *Machine) handleRegion(ctx context.Context, input string) Output {
	region := parkdir.NormalizeRegion(input)
	if region == cmdExit {
		return m.exit()
	}

	regionURL, ok := m.directory.Lookup(region)
	if !ok {
		return Output{Lines: []string{"", InvalidRegionMsg}, Prompt: RegionPrompt}
	}

	m.state = ListEntities
	return m.listEntities(ctx, region, regionURL)
}

func (m *Machine) listEntities(ctx context.Context, region, regionURL string) Output {
	sites, err := m.catalog.ExtractRegionEntities(ctx, regionURL)
	if err != nil {
		m.state = AwaitRegion
		return Output{Lines: []string{errorLine(err)}, Prompt: RegionPrompt}
	}

	m.region = region
	m.sites = sites
	m.state = AwaitSelection

	title := fmt.Sprintf("List of national sites in %s", region)
	rule := strings.Repeat("-", len(title))
	lines := []string{rule, title, rule}
	for i, site := range sites {
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, site.Info()))
	}
	return Output{Lines: lines, Prompt: SelectionPrompt}
}

func (m *Machine) handleSelection(ctx context.Context, input string) Output {
	switch strings.ToLower(input) {
	case cmdExit:
		return m.exit()
	case cmdBack:
		m.state = AwaitRegion
		m.region = ""
		m.sites = nil
		return Output{Prompt: RegionPrompt}
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(m.sites) {
		return Output{Lines: []string{InvalidSelectionMsg}, Prompt: SelectionPrompt}
	}

	site := m.sites[n-1]
	search, err := m.nearby.FindNearby(ctx, site)
	if err != nil {
		return Output{Lines: []string{errorLine(err)}, Prompt: SelectionPrompt}
	}

	title := fmt.Sprintf("Places near %s", site.Name)
	rule := strings.Repeat("-", len(title))
	lines := []string{rule, title, rule}
	for _, place := range search.Results {
		lines = append(lines, "- "+place.String())
	}
	return Output{Lines: lines, Prompt: SelectionPrompt}
}

func (m *Machine) exit() Output {
	m.state = Done
	return Output{Lines: []string{GoodbyeMsg}}
}

func errorLine(err error) string {
	return "Error: " + parkdir.ErrorMessage(err)
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"explorer/internal/engine"
	"explorer/internal/models"
	"explorer/internal/query"
)

func newMenuCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Browse the queries interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.loadStore(cmd)
			if err != nil {
				return err
			}
			m := &menu{
				store: store,
				in:    bufio.NewScanner(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
			}
			return m.run()
		},
	}
}

const homeText = `Fast Food Restaurants across the USA

Welcome to the fast-food restaurant explorer. Pick a query from the menu to
learn where the chains are and which ones dominate.`

var menuItems = []struct {
	key   string
	id    query.ID
	title string
}{
	{"1", query.DensestCity, "Which city has the largest amount of fast food restaurants?"},
	{"2", query.BrandByRegion, "Number of fast-food restaurants by state for a restaurant name"},
	{"3", query.Scatter, "Geographical distribution of fast-food locations"},
	{"4", query.MarketShare, "What is the top fast food chain?"},
}

// errQuit ends the menu loop on "q" or end of input.
var errQuit = errors.New("quit")

type menu struct {
	store *engine.RecordStore
	in    *bufio.Scanner
	out   io.Writer
}

func (m *menu) run() error {
	fmt.Fprintln(m.out, homeText)
	for {
		m.printMenu()
		choice, err := m.prompt("Select")
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		switch choice = strings.ToLower(choice); choice {
		case "q", "quit", "exit":
			return nil
		case "0", "h", "home":
			fmt.Fprintln(m.out, homeText)
			continue
		}

		id, ok := lookupItem(choice)
		if !ok {
			fmt.Fprintf(m.out, "Unknown choice %q.\n", choice)
			continue
		}
		if err := m.runQuery(id); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

func lookupItem(choice string) (query.ID, bool) {
	for _, item := range menuItems {
		if item.key == choice || string(item.id) == choice {
			return item.id, true
		}
	}
	return "", false
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "  0) Home")
	for _, item := range menuItems {
		fmt.Fprintf(m.out, "  %s) %s\n", item.key, item.title)
	}
	fmt.Fprintln(m.out, "  q) Quit")
}

// prompt reads one trimmed line. End of input is reported as errQuit.
func (m *menu) prompt(label string) (string, error) {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// choose prompts for one of options, defaulting to "All" on empty input.
func (m *menu) choose(label string, options []string) (string, error) {
	for {
		v, err := m.prompt(fmt.Sprintf("%s %v [All]", label, options))
		if err != nil {
			return "", err
		}
		if v == "" {
			return engine.All, nil
		}
		for _, o := range options {
			if strings.EqualFold(o, v) {
				return o, nil
			}
		}
		fmt.Fprintf(m.out, "%q is not one of the options.\n", v)
	}
}

func (m *menu) runQuery(id query.ID) error {
	opts := query.Options(m.store)
	var (
		p   query.Params
		err error
	)

	switch id {
	case query.DensestCity, query.Scatter:
		if p.Country, err = m.choose("Filter by Country", opts.Countries); err != nil {
			return err
		}
		if p.Province, err = m.choose("Filter by Province", opts.Provinces); err != nil {
			return err
		}
	case query.BrandByRegion:
		if p.Country, err = m.choose("Filter by Country", opts.Countries); err != nil {
			return err
		}
		if p.Name, err = m.prompt("Enter the name of the fast-food restaurant (e.g., McDonald's)"); err != nil {
			return err
		}
		if p.Name == "" {
			fmt.Fprintln(m.out, "Please enter a restaurant name to begin the analysis.")
			return nil
		}
		if p.Province, err = m.chooseState(p); err != nil {
			return err
		}
	}

	res, err := query.Run(m.store, id, p)
	if err != nil {
		return err
	}
	return renderer{w: m.out, pointLimit: 20}.render(res)
}

// chooseState offers the states where the brand actually appears.
func (m *menu) chooseState(p query.Params) (string, error) {
	res, err := query.RunBrandByRegion(m.store, p)
	if err != nil || res.Outcome != models.OutcomeOK {
		return engine.All, err
	}
	states := make([]string, 0, len(res.Ranking.Entries))
	for _, g := range res.Ranking.Entries {
		states = append(states, g.Key)
	}
	sort.Strings(states)
	return m.choose("Filter by State", append([]string{engine.All}, states...))
}

package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yndnr/isis-go/internal/cli/prompt"
)

// Item is one numbered menu entry. An Item with a nil Action ends the menu.
type Item struct {
	Key    string
	Label  string
	Action func(ctx context.Context, p *prompt.Prompter) error
}

// Menu loops over a list of items until the user picks an exit entry or
// input ends.
type Menu struct {
	prompter *prompt.Prompter
	out      io.Writer
	banner   string
	items    []Item
}

// New creates a menu that prints to the prompter's writer.
func New(p *prompt.Prompter, banner string, items ...Item) *Menu {
	return &Menu{
		prompter: p,
		out:      p.Out(),
		banner:   banner,
		items:    items,
	}
}

// Run shows the menu until an exit item is chosen, input reaches EOF or ctx
// is cancelled. Errors returned by actions are printed and the loop goes on.
func (m *Menu) Run(ctx context.Context) error {
	if m.banner != "" {
		fmt.Fprintln(m.out, m.banner)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.render()
		choice, err := m.prompter.Line(fmt.Sprintf("Select an option (%s): ", m.keyRange()))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
		if err != nil {
			return err
		}

		item, ok := m.lookup(choice)
		if !ok {
			fmt.Fprintln(m.out, "\nInvalid option. Try again.")
			fmt.Fprintln(m.out)
			continue
		}
		if item.Action == nil {
			fmt.Fprintln(m.out, "\nGoodbye!")
			return nil
		}

		err = item.Action(ctx, m.prompter)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(m.out)
			return nil
		case err != nil:
			fmt.Fprintf(m.out, "\nError: %v\n\n", err)
		}
	}
}

func (m *Menu) render() {
	for _, it := range m.items {
		fmt.Fprintf(m.out, "%s. %s\n", it.Key, it.Label)
	}
	fmt.Fprintln(m.out)
}

func (m *Menu) lookup(key string) (Item, bool) {
	for _, it := range m.items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

func (m *Menu) keyRange() string {
	switch len(m.items) {
	case 0:
		return ""
	case 1:
		return m.items[0].Key
	default:
		return m.items[0].Key + "-" + m.items[len(m.items)-1].Key
	}
}

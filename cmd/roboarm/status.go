package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/roboarm/pkg/client"
)

type StatusCommand struct {
	Addr string `long:"addr" default:"http://127.0.0.1:8080" description:"Controller address"`
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	enabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (c *StatusCommand) Execute(args []string) error {
	ctx := context.Background()
	cl := client.New(c.Addr)

	st, err := cl.Status(ctx)
	if err != nil {
		return err
	}
	cfg, err := cl.Config(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Roboarm Status"))
	fmt.Println(dimStyle.Render(strings.Repeat("━", 14)))

	if st.Enabled {
		fmt.Println("Motors:  " + enabledStyle.Render("enabled"))
	} else {
		fmt.Println("Motors:  " + stoppedStyle.Render("disabled"))
	}
	if st.Moving {
		fmt.Println("Motion:  moving")
	} else {
		fmt.Println("Motion:  idle")
	}
	fmt.Printf("Uptime:  %ds\n\n", st.Uptime)

	for _, j := range cfg.Joints {
		key := fmt.Sprintf("j%d", j.Joint)
		fmt.Printf("J%d %-12s pos %8d  target %8d\n",
			j.Joint, j.Name, st.Positions[key], st.Targets[key])
	}
	return nil
}

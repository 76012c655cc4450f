package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gwillem/roboarm/pkg/client"
)

type SendCommand struct {
	Addr string `long:"addr" default:"http://127.0.0.1:8080" description:"Controller address"`
	Args struct {
		Command []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes"`
}

func (c *SendCommand) Execute(args []string) error {
	line := strings.Join(c.Args.Command, " ")

	res, err := client.New(c.Addr).Command(context.Background(), line)
	if err != nil {
		return err
	}

	if res.Message != "" {
		fmt.Println(res.Message)
	}
	if !res.OK {
		os.Exit(1)
	}
	return nil
}

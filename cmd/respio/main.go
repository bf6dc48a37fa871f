// Copyright 2012 Gary Burd
//
// Licensed under the Apache License, Version 2.0 (the "License"): you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

// Command respio is a small command line client for RESP servers, useful for
// poking at a server and for eyeballing what the library decodes.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.opencensus.io/stats/view"
	"go.uber.org/zap"

	"github.com/respio/respio/internal/env"
	"github.com/respio/respio/resp"
)

var addr string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "respio",
	Short:         "A RESP2/RESP3 command line client",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&addr, "addr", "a", "", "server address (overrides RESPIO_ADDR)")
	rootCmd.AddCommand(sendCmd, pipeCmd, subscribeCmd)
}

// connect builds a client from the environment configuration and flags.
func connect(ctx context.Context) (*resp.Client, *zap.Logger, error) {
	config, err := env.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	log, err := env.MakeLogger(config.Debug)
	if err != nil {
		return nil, nil, err
	}

	target := config.Addr
	if addr != "" {
		target = addr
	}

	options := []resp.Option{resp.WithLogger(log)}
	if config.Metrics {
		if err := view.Register(resp.MetricViews()...); err != nil {
			return nil, nil, err
		}
		options = append(options, resp.WithMetrics())
	}

	c, err := resp.DialTimeout("tcp", target, config.DialTimeout, options...)
	if err != nil {
		return nil, nil, err
	}
	return c, log, nil
}

var sendCmd = &cobra.Command{
	Use:   "send COMMAND [ARG...]",
	Short: "Send one command and print its reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		extra := make([]interface{}, len(args)-1)
		for i, a := range args[1:] {
			extra[i] = a
		}
		reply, err := c.Do(resp.NewCommand(args[0], extra...))
		if err != nil {
			return err
		}
		fmt.Println(formatReply(reply))
		return nil
	},
}

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Read commands from stdin, one per line, and pipeline them",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		var cmds []resp.Command
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			extra := make([]interface{}, len(fields)-1)
			for i, f := range fields[1:] {
				extra[i] = f
			}
			cmds = append(cmds, resp.NewCommand(fields[0], extra...))
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		replies, err := c.Pipeline(cmds)
		if err != nil && replies == nil {
			return err
		}
		for i, reply := range replies {
			if reply == nil {
				fmt.Printf("%d) (error)\n", i+1)
				continue
			}
			fmt.Printf("%d) %s\n", i+1, formatReply(reply))
		}
		return err
	},
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe CHANNEL [CHANNEL...]",
	Short: "Subscribe to channels and print pushed messages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, log, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		psc := resp.PubSubConn{Conn: c}
		channels := make([]interface{}, len(args))
		for i, a := range args {
			channels[i] = a
		}
		if err := psc.Subscribe(channels...); err != nil {
			return err
		}

		for {
			switch msg := psc.ReceiveContext(cmd.Context()).(type) {
			case resp.Message:
				fmt.Printf("%s: %s\n", msg.Channel, msg.Data)
			case resp.Subscription:
				log.Info("subscription changed",
					zap.String("kind", msg.Kind),
					zap.String("channel", msg.Channel),
					zap.Int("count", msg.Count))
				if msg.Count == 0 {
					return nil
				}
			case error:
				return msg
			}
		}
	},
}

func formatReply(r *resp.Reply) string {
	if r.IsNull() {
		return "(nil)"
	}
	switch r.Type {
	case resp.TypeSimpleString, resp.TypeBulkString, resp.TypeVerbatimString:
		if r.Bytes != nil {
			return string(r.Bytes)
		}
		return r.Str
	case resp.TypeInteger:
		return fmt.Sprintf("(integer) %d", r.Int)
	case resp.TypeDouble:
		return fmt.Sprintf("(double) %g", r.Double)
	case resp.TypeBigNumber:
		return fmt.Sprintf("(big number) %s", r.Big)
	case resp.TypeBoolean:
		if r.Bool {
			return "(true)"
		}
		return "(false)"
	case resp.TypeArray, resp.TypePush, resp.TypeSet:
		parts := make([]string, len(r.Elems))
		for i, e := range r.Elems {
			parts[i] = formatReply(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case resp.TypeMap:
		parts := make([]string, len(r.Entries))
		for i, e := range r.Entries {
			parts[i] = formatReply(e.Key) + ": " + formatReply(e.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("(unknown %v)", r.Type)
}

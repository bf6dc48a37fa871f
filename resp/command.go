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

package resp

// Command is an ordered, non-empty argument list for the server. The first
// argument is the command name. A Command is immutable once built; the
// encoder does not retain it.
//
// Arguments of type string and []byte are sent as is ([]byte is binary safe
// and never re-encoded). Integer kinds are rendered as decimal text. nil
// becomes the empty string. Anything else is formatted with fmt.Fprint.
type Command struct {
	args []interface{}
}

// NewCommand builds a command from a name and its arguments.
func NewCommand(name string, args ...interface{}) Command {
	all := make([]interface{}, 0, 1+len(args))
	all = append(all, name)
	all = append(all, args...)
	return Command{args: all}
}

// Name returns the command name.
func (cmd Command) Name() string {
	if len(cmd.args) == 0 {
		return ""
	}
	name, _ := cmd.args[0].(string)
	return name
}

// Len returns the number of arguments, command name included.
func (cmd Command) Len() int { return len(cmd.args) }

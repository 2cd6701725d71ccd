// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrTaskIncomplete is returned when a task lacks a name or a responsible.
	ErrTaskIncomplete = errors.New("task needs a name and a responsible")
	// ErrTaskNotFound is returned for out of range task positions.
	ErrTaskNotFound = errors.New("task not found")
)

// Task is one post-match chore and who takes care of it.
type Task struct {
	Name        string `json:"name"`
	Responsible string `json:"responsible"`
}

// Checklist is the ordered list of post-match ("third half") tasks.
type Checklist struct {
	items []Task
}

// NewChecklist returns an empty checklist.
func NewChecklist() *Checklist {
	return &Checklist{items: make([]Task, 0)}
}

// Add appends a task.
func (c *Checklist) Add(name, responsible string) (Task, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(responsible) == "" {
		return Task{}, ErrTaskIncomplete
	}
	if err := validateStringLen(name, maxNameLen, "task"); err != nil {
		return Task{}, err
	}
	if err := validateStringLen(responsible, maxNameLen, "responsible"); err != nil {
		return Task{}, err
	}
	t := Task{Name: name, Responsible: responsible}
	c.items = append(c.items, t)
	return t, nil
}

// Delete removes the task at index. Later tasks move up by one.
func (c *Checklist) Delete(index int) (Task, error) {
	if index < 0 || index >= len(c.items) {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, index)
	}
	t := c.items[index]
	c.items = slices.Delete(c.items, index, index+1)
	return t, nil
}

// Items returns a copy of the tasks in order.
func (c *Checklist) Items() []Task {
	return slices.Clone(c.items)
}

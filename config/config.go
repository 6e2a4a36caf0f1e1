// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config // import "github.com/Aghajari/MathParser/config"

// A Config holds the session-wide settings governing how expressions
// are evaluated and displayed. The zero value of a Config holds the
// default values for all settings: rounding enabled at 6 decimal
// places, no debug flags, no REPL prompt.
type Config struct {
	prompt      string
	format      string
	debug       map[string]bool
	roundSet    bool
	roundEnable bool
	scaleSet    bool
	roundScale  int
}

const defaultRoundScale = 6

// RoundEnabled reports whether final results are rounded before being
// returned. Defaults to true.
func (c *Config) RoundEnabled() bool {
	if c == nil || !c.roundSet {
		return true
	}
	return c.roundEnable
}

func (c *Config) SetRoundEnabled(enabled bool) {
	c.roundSet = true
	c.roundEnable = enabled
}

// RoundScale is the number of decimal places results are rounded to.
// Defaults to 6.
func (c *Config) RoundScale() int {
	if c == nil || !c.scaleSet {
		return defaultRoundScale
	}
	return c.roundScale
}

func (c *Config) SetRoundScale(scale int) {
	c.scaleSet = true
	c.roundScale = scale
}

func (c *Config) Format() string {
	if c == nil {
		return ""
	}
	return c.format
}

func (c *Config) SetFormat(s string) {
	c.format = s
}

func (c *Config) Debug(s string) bool {
	if c == nil {
		return false
	}
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}

func (c *Config) Prompt() string {
	if c == nil {
		return ""
	}
	return c.prompt
}

func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

// Clone returns an independent copy of c; mutating the clone's debug
// flags must not affect c's.
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}
	n := *c
	if c.debug != nil {
		n.debug = make(map[string]bool, len(c.debug))
		for k, v := range c.debug {
			n.debug[k] = v
		}
	}
	return &n
}

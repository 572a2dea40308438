// Copyright 2024 The winevents Authors
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

package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/winlogkit/winevents/winlog"
)

// filterConfig is the config file shape of one filter entry.
type filterConfig struct {
	Channel     string        `mapstructure:"channel"`
	Levels      []string      `mapstructure:"levels"`
	EventIDs    string        `mapstructure:"event_ids"`
	IgnoreOlder time.Duration `mapstructure:"ignore_older"`
	Providers   []string      `mapstructure:"providers"`
}

// filterSpecs converts decoded config entries into compiler input. Unlike
// the selector terms inside event_ids, which degrade silently, a bad level
// name or a missing channel is a config mistake worth failing loudly on.
func filterSpecs(configs []filterConfig) ([]winlog.FilterSpec, error) {
	specs := make([]winlog.FilterSpec, 0, len(configs))
	for i, c := range configs {
		if c.Channel == "" {
			return nil, errors.Errorf("filter %d: channel is required", i)
		}
		spec := winlog.FilterSpec{
			Channel:     c.Channel,
			EventIDs:    c.EventIDs,
			IgnoreOlder: c.IgnoreOlder,
			Providers:   c.Providers,
		}
		for _, name := range c.Levels {
			level, err := winlog.ParseLevel(name)
			if err != nil {
				return nil, errors.Wrapf(err, "filter %d (%s)", i, c.Channel)
			}
			spec.Levels = append(spec.Levels, level)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func configuredSpecs() ([]winlog.FilterSpec, error) {
	var configs []filterConfig
	if err := viper.UnmarshalKey("filters", &configs); err != nil {
		return nil, errors.Wrap(err, "decoding filters")
	}
	return filterSpecs(configs)
}

func configuredOutput() (winlog.Output, error) {
	return winlog.ParseOutput(viper.GetString("output"))
}

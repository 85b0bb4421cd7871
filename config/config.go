/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config holds the tunables of the multipath transport and the
// viper/mapstructure wiring used to load them from an embedding application's
// configuration file or environment.
package config

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config gathers every tunable named by the transport design. Zero-value
// fields are replaced by Default() at load time.
type Config struct {
	// TableMax is the maximum number of concurrent in-progress backlog
	// entries the acceptor keeps before dropping new sessions.
	TableMax int `mapstructure:"table_max"`

	// BacklogTimeout is how long a backlog entry may sit incomplete before
	// the janitor sweeps it.
	BacklogTimeout time.Duration `mapstructure:"backlog_timeout"`

	// RankUpdateCooldown is the configured interval between path-ranker
	// recomputations. The transport does not read this field: its send path
	// always uses scheduler.RankUpdateCooldown.
	RankUpdateCooldown time.Duration `mapstructure:"rank_update_cooldown"`

	// ExploreProbability is the chance, per send, that no second path is
	// exercised in addition to the sampled one (ChooseExplore abstains).
	ExploreProbability float64 `mapstructure:"explore_probability"`

	// MaxPayload bounds the size of a pooled receive buffer, in bytes.
	MaxPayload int `mapstructure:"max_payload"`

	// DispatcherBuffer is a value for Bind's dispatcherBuffer argument. Bind
	// takes that size as a parameter and does not read it from Config.
	DispatcherBuffer int `mapstructure:"dispatcher_buffer"`
}

// Default returns the tunables used when the caller does not override them.
func Default() Config {
	return Config{
		TableMax:           64,
		BacklogTimeout:     60 * time.Second,
		RankUpdateCooldown: time.Second,
		ExploreProbability: 0.3,
		MaxPayload:         65536,
		DispatcherBuffer:   64,
	}
}

// Merge overlays non-zero fields of o onto a copy of the receiver and returns
// the result, so partially-specified configuration never clobbers defaults.
func (c Config) Merge(o Config) Config {
	r := c

	if o.TableMax != 0 {
		r.TableMax = o.TableMax
	}
	if o.BacklogTimeout != 0 {
		r.BacklogTimeout = o.BacklogTimeout
	}
	if o.RankUpdateCooldown != 0 {
		r.RankUpdateCooldown = o.RankUpdateCooldown
	}
	if o.ExploreProbability != 0 {
		r.ExploreProbability = o.ExploreProbability
	}
	if o.MaxPayload != 0 {
		r.MaxPayload = o.MaxPayload
	}
	if o.DispatcherBuffer != 0 {
		r.DispatcherBuffer = o.DispatcherBuffer
	}

	return r
}

// DurationDecodeHook parses duration-valued fields (e.g. "60s") the same way
// the rest of the dependency pack's viper-backed config types do.
func DurationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		case reflect.Int, reflect.Int32, reflect.Int64:
			return data, nil
		default:
			return data, nil
		}
	}
}

// Load decodes a Config from the given viper instance, applying the duration
// decode hook, and fills any unset field from Default().
func Load(v *viper.Viper) (Config, error) {
	var c Config

	dec := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		DurationDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))

	if err := v.Unmarshal(&c, dec); err != nil {
		return Config{}, err
	}

	return Default().Merge(c), nil
}

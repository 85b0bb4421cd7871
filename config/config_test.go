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

package config_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/nabbar/multipath/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config Suite")
}

var _ = Describe("Config", func() {
	It("has sane defaults matching the design", func() {
		c := config.Default()
		Expect(c.TableMax).To(Equal(64))
		Expect(c.BacklogTimeout).To(Equal(60 * time.Second))
		Expect(c.RankUpdateCooldown).To(Equal(time.Second))
		Expect(c.ExploreProbability).To(Equal(0.3))
		Expect(c.MaxPayload).To(Equal(65536))
	})

	It("merges partial overrides without clobbering unset fields", func() {
		c := config.Default().Merge(config.Config{TableMax: 8})
		Expect(c.TableMax).To(Equal(8))
		Expect(c.BacklogTimeout).To(Equal(60 * time.Second))
	})

	It("loads and decodes duration strings from viper", func() {
		v := viper.New()
		v.Set("table_max", 16)
		v.Set("backlog_timeout", "90s")

		c, err := config.Load(v)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.TableMax).To(Equal(16))
		Expect(c.BacklogTimeout).To(Equal(90 * time.Second))
	})
})

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

package atomic_test

import (
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libatm "github.com/nabbar/multipath/atomic"
)

func TestAtomic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "atomic Suite")
}

var _ = Describe("MapTyped", func() {
	It("stores and loads typed values", func() {
		m := libatm.NewMapTyped[string, int]()

		_, ok := m.Load("a")
		Expect(ok).To(BeFalse())

		m.Store("a", 1)
		v, ok := m.Load("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))
	})

	It("deletes on LoadAndDelete and reports the prior value", func() {
		m := libatm.NewMapTyped[string, int]()
		m.Store("a", 10)

		v, loaded := m.LoadAndDelete("a")
		Expect(loaded).To(BeTrue())
		Expect(v).To(Equal(10))

		_, ok := m.Load("a")
		Expect(ok).To(BeFalse())

		_, loaded = m.LoadAndDelete("a")
		Expect(loaded).To(BeFalse())
	})

	It("ranges over every stored entry", func() {
		m := libatm.NewMapTyped[string, int]()
		m.Store("a", 1)
		m.Store("b", 2)

		seen := map[string]int{}
		m.Range(func(k string, v int) bool {
			seen[k] = v
			return true
		})
		Expect(seen).To(Equal(map[string]int{"a": 1, "b": 2}))
	})

	It("stops ranging early when the callback returns false", func() {
		m := libatm.NewMapTyped[string, int]()
		m.Store("a", 1)
		m.Store("b", 2)

		count := 0
		m.Range(func(k string, v int) bool {
			count++
			return false
		})
		Expect(count).To(Equal(1))
	})

	It("is safe for concurrent readers and writers", func() {
		m := libatm.NewMapTyped[int, int]()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				m.Store(i, i)
				_, _ = m.Load(i)
				m.Range(func(int, int) bool { return true })
			}(i)
		}
		wg.Wait()
	})
})

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

package level_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/nabbar/multipath/logger/level"
)

func TestLevel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "logger/level Suite")
}

var _ = Describe("Level.Logrus", func() {
	It("maps every level to its logrus equivalent", func() {
		Expect(level.DebugLevel.Logrus()).To(Equal(logrus.DebugLevel))
		Expect(level.InfoLevel.Logrus()).To(Equal(logrus.InfoLevel))
		Expect(level.WarnLevel.Logrus()).To(Equal(logrus.WarnLevel))
		Expect(level.ErrorLevel.Logrus()).To(Equal(logrus.ErrorLevel))
		Expect(level.FatalLevel.Logrus()).To(Equal(logrus.FatalLevel))
		Expect(level.PanicLevel.Logrus()).To(Equal(logrus.PanicLevel))
	})

	It("falls back to Info for an out-of-range value", func() {
		Expect(level.Level(200).Logrus()).To(Equal(logrus.InfoLevel))
	})
})

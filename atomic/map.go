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

// Package atomic provides the one concurrency-safe container the transport
// needs: a typed map over sync.Map, used by backlog to hold in-assembly
// sessions without a package-wide lock.
package atomic

import "sync"

// MapTyped is a concurrency-safe map with typed values.
type MapTyped[K comparable, V any] interface {
	Load(key K) (value V, ok bool)
	Store(key K, value V)
	LoadAndDelete(key K) (value V, loaded bool)
	Range(f func(key K, value V) bool)
}

type mapTyped[K comparable, V any] struct {
	m sync.Map
}

// NewMapTyped returns an empty MapTyped.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mapTyped[K, V]{}
}

func (o *mapTyped[K, V]) Load(key K) (V, bool) {
	v, ok := o.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (o *mapTyped[K, V]) Store(key K, value V) {
	o.m.Store(key, value)
}

func (o *mapTyped[K, V]) LoadAndDelete(key K) (V, bool) {
	v, loaded := o.m.LoadAndDelete(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (o *mapTyped[K, V]) Range(f func(key K, value V) bool) {
	o.m.Range(func(k, v any) bool {
		return f(k.(K), v.(V))
	})
}
